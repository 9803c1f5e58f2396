package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"wallpaper-admin/pkg/apperr"
	"wallpaper-admin/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return env
}

func TestTranslateError(t *testing.T) {
	ve := &apperr.ValidationError{}
	ve.Add("title", "Path `title` is required.")

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", ve, 400, "Path `title` is required."},
		{"wrapped validation", pkgerrors.Wrap(ve, "save"), 400, "Path `title` is required."},
		{"duplicate", &apperr.DuplicateKeyError{Field: "email"}, 400, "Duplicate value entered for email field, please use another value"},
		{"cast", &apperr.CastError{Kind: "uuid", Value: "x"}, 400, "Invalid ID!"},
		{"invalid token", jwt.ErrInvalidToken, 401, MessageInvalidToken},
		{"expired token", jwt.ErrExpiredToken, 401, MessageExpiredToken},
		{"custom", apperr.NotFound("Wallpaper not found"), 404, "Wallpaper not found"},
		{"rate limited", ErrTooManyLogins, 429, "Too many login attempts, please try again later"},
		{"unknown", errors.New("disk on fire"), 500, "Something went wrong!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, message := TranslateError(tc.err)
			if status != tc.status || message != tc.message {
				t.Errorf("got %d %q, want %d %q", status, message, tc.status, tc.message)
			}
		})
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(discardLogger()))
	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("hidden detail"))
	})
	r.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
		c.Error(errors.New("after write"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	env := decode(t, w)
	if w.Code != 500 || env.Success || env.Message != "Something went wrong!" || env.Data != nil {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	if w.Code != http.StatusTeapot || strings.Contains(w.Body.String(), "Something") {
		t.Errorf("written response should be kept, got %d %s", w.Code, w.Body.String())
	}
}

func TestAuth(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Hour)
	token, err := svc.GenerateAccessToken(jwt.Profile{ID: "admin-1", Email: "a@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	expired, err := jwt.NewJWTService("secret", -time.Minute).GenerateAccessToken(jwt.Profile{ID: "admin-1"})
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.Use(ErrorHandler(discardLogger()))
	r.GET("/me", Auth(svc), func(c *gin.Context) {
		admin, ok := CurrentAdmin(c)
		if !ok {
			t.Error("admin missing from context")
		}
		c.String(http.StatusOK, admin.Profile.ID)
	})

	cases := []struct {
		name    string
		cookie  string
		status  int
		message string
	}{
		{"no cookie", "", 401, "No access token found"},
		{"garbage", "not-a-jwt", 401, MessageInvalidToken},
		{"expired", expired, 401, MessageExpiredToken},
		{"valid", token, 200, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if tc.status == 200 {
				if w.Body.String() != "admin-1" {
					t.Errorf("body = %q", w.Body.String())
				}
				return
			}
			if env := decode(t, w); env.Message != tc.message {
				t.Errorf("message = %q", env.Message)
			}
		})
	}
}

func TestCurrentAdminWithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := CurrentAdmin(c); ok {
		t.Error("expected no admin")
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(DefaultCORSConfig()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("reflects origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://admin.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example.com" {
			t.Errorf("allow origin = %q", got)
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
			t.Error("credentials should be allowed")
		}
	})

	t.Run("no origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("allow origin = %q", got)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "https://admin.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET,POST,PUT,DELETE,OPTIONS" {
			t.Errorf("methods = %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type,Authorization" {
			t.Errorf("headers = %q", got)
		}
	})

	t.Run("allow list", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"https://admin.example.com"}
		r := gin.New()
		r.Use(CORS(cfg))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://other.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("unexpected allow origin %q", got)
		}
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(RequestIDHeader)
	if len(generated) != 36 || w.Body.String() != generated {
		t.Errorf("generated id = %q, body %q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("incoming id not kept: %q", w.Header().Get(RequestIDHeader))
	}
}

func TestLoggerLine(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(Logger(logrus.NewEntry(l)))
	r.GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "hello") })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items?page=2", nil))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log: %v (%s)", err, buf.String())
	}
	msg, _ := entry["msg"].(string)
	if !strings.HasPrefix(msg, "GET /items?page=2 200 5 - ") || !strings.HasSuffix(msg, " ms") {
		t.Errorf("msg = %q", msg)
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	if !strings.Contains(buf.String(), `"level":"warning"`) {
		t.Errorf("404 should log at warning: %s", buf.String())
	}
}

func TestFormatLogLine(t *testing.T) {
	got := formatLogLine("POST", "/api/v1/admin/auth/login", 400, -1, 1500*time.Microsecond)
	if got != "POST /api/v1/admin/auth/login 400 - - 1.500 ms" {
		t.Errorf("got %q", got)
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(discardLogger()), ErrorHandler(discardLogger()))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	env := decode(t, w)
	if w.Code != 500 || env.Message != "Something went wrong!" {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
}

// fakeLimiter 按调用次数限流
type fakeLimiter struct {
	calls int
	err   error
}

func (f *fakeLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.calls <= limit, nil
}

func TestLoginRateLimit(t *testing.T) {
	newRouter := func(l Limiter, perMinute int) *gin.Engine {
		r := gin.New()
		r.Use(ErrorHandler(discardLogger()))
		r.POST("/login", LoginRateLimit(l, perMinute, discardLogger()), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}
	do := func(r *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		return w
	}

	t.Run("limits", func(t *testing.T) {
		r := newRouter(&fakeLimiter{}, 2)
		for i := 0; i < 2; i++ {
			if w := do(r); w.Code != 200 {
				t.Fatalf("attempt %d: %d", i+1, w.Code)
			}
		}
		w := do(r)
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("status = %d", w.Code)
		}
		if env := decode(t, w); env.Message != "Too many login attempts, please try again later" {
			t.Errorf("message = %q", env.Message)
		}
	})

	t.Run("fails open", func(t *testing.T) {
		r := newRouter(&fakeLimiter{err: errors.New("redis down")}, 1)
		for i := 0; i < 3; i++ {
			if w := do(r); w.Code != 200 {
				t.Fatalf("attempt %d: %d", i+1, w.Code)
			}
		}
	})

	t.Run("disabled", func(t *testing.T) {
		r := newRouter(nil, 1)
		for i := 0; i < 3; i++ {
			if w := do(r); w.Code != 200 {
				t.Fatalf("attempt %d: %d", i+1, w.Code)
			}
		}
	})
}
