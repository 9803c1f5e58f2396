package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"wallpaper-admin/internal/app/apptest"
)

func strPtr(s string) *string { return &s }

func TestClientAgainstServer(t *testing.T) {
	srv, a := apptest.NewServer(t)
	apptest.RegisterAdmin(t, a, "jane@example.com")
	ctx := context.Background()

	t.Run("requires login", func(t *testing.T) {
		_, err := NewClient(srv.URL, "").Me(ctx)
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized || apiErr.Message != "No access token found" {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("bad login", func(t *testing.T) {
		_, _, err := NewClient(srv.URL, "").Login(ctx, "jane@example.com", "wrong12!")
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Message != "Invalid email or password" {
			t.Fatalf("err = %v", err)
		}
	})

	client := NewClient(srv.URL+"/", "")
	token, admin, err := client.Login(ctx, "jane@example.com", apptest.Password)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || admin.Email != "jane@example.com" {
		t.Fatalf("login = %q %+v", token, admin)
	}

	t.Run("me and admins", func(t *testing.T) {
		data, err := NewClient(srv.URL, token).Me(ctx)
		if err != nil {
			t.Fatal(err)
		}
		var me map[string]interface{}
		json.Unmarshal(data, &me)
		if me["email"] != "jane@example.com" {
			t.Errorf("me = %s", data)
		}

		data, err = client.ListAdmins(ctx, 1, 5)
		if err != nil {
			t.Fatal(err)
		}
		var list struct {
			Pagination struct {
				Limit int `json:"limit"`
			} `json:"pagination"`
		}
		json.Unmarshal(data, &list)
		if list.Pagination.Limit != 5 {
			t.Errorf("list = %s", data)
		}

		_, err = client.GetAdmin(ctx, "bad-id")
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Message != "Invalid ID!" {
			t.Errorf("GetAdmin err = %v", err)
		}
	})

	t.Run("wallpapers", func(t *testing.T) {
		_, err := client.CreateWallpaper(ctx, &WallpaperInput{Title: strPtr("ab")})
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest || len(apiErr.Issues) == 0 {
			t.Fatalf("invalid create err = %v", err)
		}
		if apiErr.Issues[0].Path != "title" {
			t.Errorf("first issue = %+v", apiErr.Issues[0])
		}

		data, err := client.CreateWallpaper(ctx, &WallpaperInput{
			Title:          strPtr("Shiva meditating"),
			Description:    strPtr("Shiva meditating on Mount Kailash"),
			ImageURL:       strPtr("https://cdn.example.com/shiva.jpg"),
			Keywords:       []string{"kailash"},
			Category:       strPtr("lord_shiva"),
			WallpaperStyle: strPtr("real"),
		})
		if err != nil {
			t.Fatalf("CreateWallpaper: %v", err)
		}
		var created struct {
			ID string `json:"_id"`
		}
		json.Unmarshal(data, &created)

		count, err := client.Download(ctx, created.ID)
		if err != nil || count != 1 {
			t.Errorf("Download = %d, %v", count, err)
		}

		active := false
		if _, err := client.UpdateWallpaper(ctx, created.ID, &WallpaperInput{IsActive: &active}); err != nil {
			t.Errorf("UpdateWallpaper: %v", err)
		}

		data, err = client.ListWallpapers(ctx, url.Values{"isActive": {"false"}})
		if err != nil {
			t.Fatal(err)
		}
		var list struct {
			Wallpapers []json.RawMessage `json:"wallpapers"`
		}
		json.Unmarshal(data, &list)
		if len(list.Wallpapers) != 1 {
			t.Errorf("list = %s", data)
		}

		if _, err := client.Home(ctx); err != nil {
			t.Errorf("Home: %v", err)
		}
		if _, err := client.GetWallpaper(ctx, created.ID); err != nil {
			t.Errorf("GetWallpaper: %v", err)
		}
		if err := client.DeleteWallpaper(ctx, created.ID); err != nil {
			t.Errorf("DeleteWallpaper: %v", err)
		}
		_, err = client.GetWallpaper(ctx, created.ID)
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
			t.Errorf("get deleted err = %v", err)
		}
	})

	t.Run("logout", func(t *testing.T) {
		if err := client.Logout(ctx); err != nil {
			t.Errorf("Logout: %v", err)
		}
	})
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Status: 400, Message: "Invalid input parameters", Issues: []Issue{
		{Path: "title", Message: "Title must be at least 3 characters long"},
		{Path: []interface{}{"keywords", 0.0}, Message: "Keyword cannot be empty"},
	}}
	want := "Invalid input parameters (HTTP 400): title: Title must be at least 3 characters long; [keywords 0]: Keyword cannot be empty"
	if err.Error() != want {
		t.Errorf("Error() = %q", err.Error())
	}

	plain := &APIError{Status: 404, Message: "Wallpaper not found"}
	if plain.Error() != "Wallpaper not found (HTTP 404)" {
		t.Errorf("Error() = %q", plain.Error())
	}
}
