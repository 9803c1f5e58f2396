// Package upload 把本地壁纸图片上传到 S3 兼容存储，返回可公开访问的地址
package upload

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// KeyPrefix 上传对象的键前缀
const KeyPrefix = "wallpapers"

// Options S3 上传配置
type Options struct {
	Bucket        string
	Region        string
	Endpoint      string // S3 兼容服务地址，设置后使用路径风格
	PublicBaseURL string // 图片对外访问的基础地址，为空时根据 Endpoint 或 AWS 默认域名推导
}

// S3Uploader 上传壁纸图片
type S3Uploader struct {
	uploader *manager.Uploader
	opts     Options
}

// NewS3Uploader 根据默认凭证链创建上传器
func NewS3Uploader(ctx context.Context, opts Options) (*S3Uploader, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	var loadOpts []func(*awscfg.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awscfg.WithRegion(opts.Region))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if opts.Region == "" {
		opts.Region = awsCfg.Region
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		uploader: manager.NewUploader(client),
		opts:     opts,
	}, nil
}

// Upload 上传本地文件，返回对象的公开地址
func (u *S3Uploader) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file %s: %w", path, err)
	}
	defer f.Close()

	key := ObjectKey(path)
	input := &s3.PutObjectInput{
		Bucket: aws.String(u.opts.Bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := ContentType(path); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := u.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return ObjectURL(u.opts, key), nil
}

// ObjectKey 生成对象键 wallpapers/<uuid><ext>，扩展名统一为小写
func ObjectKey(path string) string {
	return KeyPrefix + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(path))
}

// ContentType 根据扩展名推断 MIME 类型
func ContentType(path string) string {
	return mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
}

// ObjectURL 拼接对象的公开地址
func ObjectURL(opts Options, key string) string {
	switch {
	case opts.PublicBaseURL != "":
		return strings.TrimRight(opts.PublicBaseURL, "/") + "/" + key
	case opts.Endpoint != "":
		return strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", opts.Bucket, opts.Region, key)
	}
}
