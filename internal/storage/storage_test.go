package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wallpaper-admin/internal/config"
	"wallpaper-admin/internal/logger"
	"wallpaper-admin/internal/model"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "wallpaper.db")
	log := logger.NewWithWriter(config.LogConfig{Level: "error"}, "test", io.Discard)

	db, err := Connect(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          path,
		MaxIdleConns: 2,
		MaxOpenConns: 4,
		MaxLifetime:  60,
	}, log)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { Close(db) })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}

	for _, table := range []interface{}{&model.AdminUser{}, &model.Wallpaper{}} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table for %T missing", table)
		}
	}
	if !db.Migrator().HasIndex(&model.Wallpaper{}, "idx_wallpapers_category_style") {
		t.Error("category/style index missing")
	}
	if !db.Migrator().HasIndex(&model.Wallpaper{}, "idx_wallpapers_download_count") {
		t.Error("download count index missing")
	}
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	log := logger.NewWithWriter(config.LogConfig{}, "test", io.Discard)
	_, err := Connect(config.DatabaseConfig{Driver: "oracle"}, log)
	if err == nil || !strings.Contains(err.Error(), "unsupported database driver") {
		t.Fatalf("expected unsupported driver error, got %v", err)
	}
}

func TestSQLiteDSN(t *testing.T) {
	dir := t.TempDir()
	got, err := sqliteDSN(filepath.Join(dir, "a.db"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, "?"+sqlitePragmas) {
		t.Errorf("dsn = %q", got)
	}

	custom := "file:test.db?_pragma=foreign_keys(1)"
	if got, _ := sqliteDSN(custom); got != custom {
		t.Errorf("custom dsn rewritten to %q", got)
	}
}

func TestSQLiteUnicodeLower(t *testing.T) {
	log := logger.NewWithWriter(config.LogConfig{Level: "error"}, "test", io.Discard)
	db, err := Connect(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "lower.db"),
	}, log)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { Close(db) })

	if got := LowerFunc(db); got != SQLiteLowerFunc {
		t.Fatalf("LowerFunc = %q", got)
	}

	var got string
	if err := db.Raw("SELECT " + SQLiteLowerFunc + "(?)", "ŚIVA Ñandú").Scan(&got).Error; err != nil {
		t.Fatal(err)
	}
	if got != "śiva ñandú" {
		t.Errorf("unicode_lower = %q", got)
	}
}
