package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"wallpaper-admin/internal/app/apptest"
)

// run 执行一次命令，返回标准输出和错误
func run(t *testing.T, dir, server, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", dir, "--server", server}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	srv, a := apptest.NewServer(t)
	apptest.RegisterAdmin(t, a, "jane@example.com")
	dir := t.TempDir()

	out, err := run(t, dir, srv.URL, "", "status")
	if err != nil || !strings.Contains(out, "未登录") {
		t.Fatalf("status = %q, %v", out, err)
	}

	if _, err := run(t, dir, srv.URL, "", "me"); err == nil || !strings.Contains(err.Error(), "当前未登录") {
		t.Fatalf("me before login err = %v", err)
	}

	if _, err := run(t, dir, srv.URL, "", "login", "-e", "jane@example.com", "-p", "wrong12!"); err == nil ||
		!strings.Contains(err.Error(), "Invalid email or password") {
		t.Fatalf("bad login err = %v", err)
	}

	out, err = run(t, dir, srv.URL, "jane@example.com\n"+apptest.Password+"\n", "login")
	if err != nil || !strings.Contains(out, "登录成功") {
		t.Fatalf("login = %q, %v", out, err)
	}

	out, err = run(t, dir, srv.URL, "", "me")
	if err != nil {
		t.Fatal(err)
	}
	var me struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal([]byte(out), &me); err != nil || me.Email != "jane@example.com" {
		t.Fatalf("me = %q, %v", out, err)
	}

	out, err = run(t, dir, srv.URL, "", "wallpapers", "create",
		"--title", "Ganesha blessing",
		"--description", "Ganesha blessing devotees at dawn",
		"--image-url", "https://cdn.example.com/ganesha.jpg",
		"--keyword", "blessing,dawn",
		"--category", "lord_ganesha",
		"--style", "real",
	)
	if err != nil {
		t.Fatalf("create: %v (%s)", err, out)
	}
	var created struct {
		ID       string   `json:"_id"`
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(out), &created); err != nil || created.ID == "" {
		t.Fatalf("create output = %q, %v", out, err)
	}
	if len(created.Keywords) != 2 {
		t.Errorf("keywords = %v", created.Keywords)
	}

	t.Run("create validation", func(t *testing.T) {
		_, err := run(t, dir, srv.URL, "", "wallpapers", "create", "--title", "Ga")
		if err == nil || !strings.Contains(err.Error(), "Invalid input parameters") {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		out, err := run(t, dir, srv.URL, "", "wallpapers", "update", created.ID, "--active=false")
		if err != nil {
			t.Fatal(err)
		}
		var w struct {
			Title    string `json:"title"`
			IsActive bool   `json:"isActive"`
		}
		json.Unmarshal([]byte(out), &w)
		if w.Title != "Ganesha blessing" || w.IsActive {
			t.Errorf("updated = %q", out)
		}
	})

	t.Run("download and list", func(t *testing.T) {
		out, err := run(t, dir, srv.URL, "", "wp", "download", created.ID)
		if err != nil || !strings.Contains(out, "下载次数: 1") {
			t.Errorf("download = %q, %v", out, err)
		}

		out, err = run(t, dir, srv.URL, "", "wallpapers", "list", "--active", "false", "--keyword", "dawn")
		if err != nil || !strings.Contains(out, created.ID) {
			t.Errorf("list = %q, %v", out, err)
		}

		if _, err := run(t, dir, srv.URL, "", "wallpapers", "home"); err != nil {
			t.Errorf("home: %v", err)
		}
	})

	t.Run("admins", func(t *testing.T) {
		out, err := run(t, dir, srv.URL, "", "admins", "list", "--limit", "5")
		if err != nil || !strings.Contains(out, "jane@example.com") {
			t.Errorf("admins list = %q, %v", out, err)
		}
		_, err = run(t, dir, srv.URL, "", "admins", "delete", me.ID)
		if err == nil || !strings.Contains(err.Error(), "You cannot delete your own account") {
			t.Errorf("delete self err = %v", err)
		}
	})

	t.Run("delete wallpaper", func(t *testing.T) {
		out, err := run(t, dir, srv.URL, "", "wallpapers", "delete", created.ID)
		if err != nil || !strings.Contains(out, "已删除壁纸") {
			t.Errorf("delete = %q, %v", out, err)
		}
	})

	out, err = run(t, dir, srv.URL, "", "logout")
	if err != nil || !strings.Contains(out, "已登出") {
		t.Fatalf("logout = %q, %v", out, err)
	}
	out, _ = run(t, dir, srv.URL, "", "status")
	if !strings.Contains(out, "未登录") {
		t.Errorf("status after logout = %q", out)
	}
}

func TestCreateRejectsFileWithImageURL(t *testing.T) {
	srv, a := apptest.NewServer(t)
	apptest.RegisterAdmin(t, a, "jane@example.com")
	dir := t.TempDir()

	if _, err := run(t, dir, srv.URL, "", "login", "-e", "jane@example.com", "-p", apptest.Password); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, dir, srv.URL, "", "wallpapers", "create", "--image-url", "https://x.example.com/a.jpg", "--file", "a.jpg")
	if err == nil || !strings.Contains(err.Error(), "--file") {
		t.Errorf("err = %v", err)
	}
}
