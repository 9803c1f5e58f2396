package upload

import (
	"context"
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("/tmp/Krishna.JPG")
	if !strings.HasPrefix(key, KeyPrefix+"/") || !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key = %q", key)
	}
	if ObjectKey("a.png") == ObjectKey("a.png") {
		t.Error("keys should be unique")
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType("x.PNG"); got != "image/png" {
		t.Errorf("png = %q", got)
	}
	if got := ContentType("noext"); got != "" {
		t.Errorf("noext = %q", got)
	}
}

func TestObjectURL(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "public base",
			opts: Options{Bucket: "b", Endpoint: "http://minio:9000", PublicBaseURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/wallpapers/a.jpg",
		},
		{
			name: "endpoint",
			opts: Options{Bucket: "b", Endpoint: "http://minio:9000/"},
			want: "http://minio:9000/b/wallpapers/a.jpg",
		},
		{
			name: "aws",
			opts: Options{Bucket: "b", Region: "ap-south-1"},
			want: "https://b.s3.ap-south-1.amazonaws.com/wallpapers/a.jpg",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ObjectURL(tc.opts, "wallpapers/a.jpg"); got != tc.want {
				t.Errorf("ObjectURL = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewS3UploaderRequiresBucket(t *testing.T) {
	if _, err := NewS3Uploader(context.Background(), Options{}); err == nil {
		t.Error("expected error without bucket")
	}
}
