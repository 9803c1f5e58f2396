package events

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"wallpaper-admin/internal/app/apptest"
	"wallpaper-admin/internal/cli/api"
)

func TestNewClientURL(t *testing.T) {
	cases := map[string]string{
		"http://localhost:3001":  "ws://localhost:3001/api/v1/admin/events",
		"https://admin.example/": "wss://admin.example/api/v1/admin/events",
	}
	for in, want := range cases {
		if got := NewClient(in, "t").URL(); got != want {
			t.Errorf("URL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConnectRequiresToken(t *testing.T) {
	srv, _ := apptest.NewServer(t)
	err := NewClient(srv.URL, "").Connect(context.Background())
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("err = %v", err)
	}
}

func TestWatchEvents(t *testing.T) {
	srv, a := apptest.NewServer(t)
	apptest.RegisterAdmin(t, a, "jane@example.com")
	ctx := context.Background()

	rest := api.NewClient(srv.URL, "")
	token, _, err := rest.Login(ctx, "jane@example.com", apptest.Password)
	if err != nil {
		t.Fatal(err)
	}

	msgs := make(chan *Message, 16)
	client := NewClient(srv.URL, token)
	client.OnMessage(func(m *Message) { msgs <- m })
	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer client.Disconnect()

	next := func() *Message {
		t.Helper()
		select {
		case m := <-msgs:
			return m
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for message")
			return nil
		}
	}

	if m := next(); m.Type != TypeConnected {
		t.Fatalf("first message = %+v", m)
	}

	id, err := client.SendHeartbeat()
	if err != nil {
		t.Fatal(err)
	}
	if m := next(); m.Type != TypePong || m.MessageID != id {
		t.Fatalf("pong = %+v", m)
	}

	title, desc, img, cat, style := "Hanuman flying", "Hanuman carrying the mountain", "https://cdn.example.com/h.jpg", "lord_hanuman", "anime"
	if _, err := rest.CreateWallpaper(ctx, &api.WallpaperInput{
		Title: &title, Description: &desc, ImageURL: &img,
		Keywords: []string{"mountain"}, Category: &cat, WallpaperStyle: &style,
	}); err != nil {
		t.Fatal(err)
	}

	m := next()
	if m.Type != "wallpaper:created" {
		t.Fatalf("event = %+v", m)
	}
	var payload map[string]interface{}
	json.Unmarshal(m.Payload, &payload)
	if payload["title"] != title {
		t.Errorf("payload = %s", m.Payload)
	}

	client.Disconnect()
	select {
	case <-client.Done():
	case <-time.After(time.Second):
		t.Error("Done not closed after Disconnect")
	}
}
