package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenDefaults(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "profile"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.ServerURL() != DefaultServerURL {
		t.Errorf("server = %q", s.ServerURL())
	}
	if s.IsLoggedIn() {
		t.Error("fresh profile should not be logged in")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	s.SetServerURL("https://admin.example.com")
	if err := s.SaveAuth("jane@example.com", "token-123"); err != nil {
		t.Fatalf("SaveAuth: %v", err)
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v", info.Mode().Perm())
	}

	reloaded, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.ServerURL() != "https://admin.example.com" || reloaded.AccessToken() != "token-123" || reloaded.Email() != "jane@example.com" {
		t.Errorf("reloaded = %q %q %q", reloaded.ServerURL(), reloaded.AccessToken(), reloaded.Email())
	}

	if err := reloaded.ClearAuth(); err != nil {
		t.Fatal(err)
	}
	again, _ := Open(dir)
	if again.IsLoggedIn() {
		t.Error("ClearAuth should remove the token")
	}
	if again.ServerURL() != "https://admin.example.com" {
		t.Error("ClearAuth should keep the server url")
	}
}
