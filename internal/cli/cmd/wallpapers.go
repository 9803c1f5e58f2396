package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"wallpaper-admin/internal/cli/api"
	"wallpaper-admin/internal/cli/upload"
)

// wallpaperFlags 创建和更新壁纸共用的参数
type wallpaperFlags struct {
	title       string
	description string
	imageURL    string
	keywords    []string
	category    string
	style       string
	active      bool

	file   string
	bucket upload.Options
}

func (f *wallpaperFlags) register(cmd *cobra.Command, withActive bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "标题")
	fs.StringVar(&f.description, "description", "", "描述")
	fs.StringVar(&f.imageURL, "image-url", "", "图片地址")
	fs.StringSliceVar(&f.keywords, "keyword", nil, "关键词，可重复或以逗号分隔")
	fs.StringVar(&f.category, "category", "", "分类，如 lord_krishna")
	fs.StringVar(&f.style, "style", "", "风格: anime / real")
	if withActive {
		fs.BoolVar(&f.active, "active", true, "是否上架")
	}

	fs.StringVar(&f.file, "file", "", "本地图片，上传到 S3 后作为图片地址")
	fs.StringVar(&f.bucket.Bucket, "bucket", "", "S3 存储桶")
	fs.StringVar(&f.bucket.Region, "region", "", "S3 区域")
	fs.StringVar(&f.bucket.Endpoint, "endpoint", "", "S3 兼容服务地址")
	fs.StringVar(&f.bucket.PublicBaseURL, "public-base-url", "", "图片对外访问的基础地址")
}

// input 只包含命令行中显式设置的字段
func (f *wallpaperFlags) input(cmd *cobra.Command) *api.WallpaperInput {
	fs := cmd.Flags()
	in := &api.WallpaperInput{}
	if fs.Changed("title") {
		in.Title = &f.title
	}
	if fs.Changed("description") {
		in.Description = &f.description
	}
	if fs.Changed("image-url") {
		in.ImageURL = &f.imageURL
	}
	if fs.Changed("keyword") {
		in.Keywords = f.keywords
	}
	if fs.Changed("category") {
		in.Category = &f.category
	}
	if fs.Changed("style") {
		in.WallpaperStyle = &f.style
	}
	if fs.Lookup("active") != nil && fs.Changed("active") {
		in.IsActive = &f.active
	}
	return in
}

// uploadFile 设置了 --file 时上传图片并返回地址
func (f *wallpaperFlags) uploadFile(cmd *cobra.Command, in *api.WallpaperInput) error {
	if f.file == "" {
		return nil
	}
	if in.ImageURL != nil {
		return fmt.Errorf("--file 和 --image-url 不能同时使用")
	}

	uploader, err := upload.NewS3Uploader(cmd.Context(), f.bucket)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "📤 正在上传 %s...\n", f.file)
	imageURL, err := uploader.Upload(cmd.Context(), f.file)
	if err != nil {
		return err
	}
	in.ImageURL = &imageURL
	return nil
}

func (c *cli) wallpapersCommand() *cobra.Command {
	wallpapers := &cobra.Command{
		Use:     "wallpapers",
		Aliases: []string{"wp"},
		Short:   "管理壁纸",
	}

	wallpapers.AddCommand(
		c.wallpaperListCommand(),
		c.wallpaperGetCommand(),
		c.wallpaperHomeCommand(),
		c.wallpaperCreateCommand(),
		c.wallpaperUpdateCommand(),
		c.wallpaperDeleteCommand(),
		c.wallpaperDownloadCommand(),
	)
	return wallpapers
}

func (c *cli) wallpaperListCommand() *cobra.Command {
	var (
		page, limit               int
		category, style, keyword  string
		sortBy, sortOrder, active string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "分页列出壁纸",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("page", strconv.Itoa(page))
			q.Set("limit", strconv.Itoa(limit))
			for name, v := range map[string]string{
				"category":       category,
				"wallpaperStyle": style,
				"keyword":        keyword,
				"sortBy":         sortBy,
				"sortOrder":      sortOrder,
				"isActive":       active,
			} {
				if v != "" {
					q.Set(name, v)
				}
			}

			data, err := c.client().ListWallpapers(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&page, "page", 1, "页码")
	fs.IntVar(&limit, "limit", 10, "每页数量")
	fs.StringVar(&category, "category", "", "分类或 all")
	fs.StringVar(&style, "style", "", "风格或 all")
	fs.StringVar(&keyword, "keyword", "", "在标题、描述和关键词中搜索")
	fs.StringVar(&sortBy, "sort-by", "", "createdAt / downloadCount / title")
	fs.StringVar(&sortOrder, "sort-order", "", "asc / desc")
	fs.StringVar(&active, "active", "", "true / false")
	return cmd
}

func (c *cli) wallpaperGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "查看壁纸（下载次数加 1）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.client().GetWallpaper(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
}

func (c *cli) wallpaperHomeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "查看首页聚合数据",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.client().Home(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
}

func (c *cli) wallpaperCreateCommand() *cobra.Command {
	f := &wallpaperFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "创建壁纸",
		Example: `  wallpaperctl wallpapers create --title "Krishna" --description "Krishna playing the flute" \
    --keyword flute --keyword river --category lord_krishna --style anime \
    --file ./krishna.jpg --bucket wallpapers --region ap-south-1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.authedClient()
			if err != nil {
				return err
			}
			in := f.input(cmd)
			if err := f.uploadFile(cmd, in); err != nil {
				return err
			}
			data, err := client.CreateWallpaper(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
	f.register(cmd, false)
	return cmd
}

func (c *cli) wallpaperUpdateCommand() *cobra.Command {
	f := &wallpaperFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "更新壁纸，只发送显式设置的字段",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.authedClient()
			if err != nil {
				return err
			}
			in := f.input(cmd)
			if err := f.uploadFile(cmd, in); err != nil {
				return err
			}
			data, err := client.UpdateWallpaper(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
	f.register(cmd, true)
	return cmd
}

func (c *cli) wallpaperDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "删除壁纸",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.authedClient()
			if err != nil {
				return err
			}
			if err := client.DeleteWallpaper(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ 已删除壁纸 %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) wallpaperDownloadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "download <id>",
		Short: "记录一次下载",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := c.client().Download(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ 下载次数: %d\n", count)
			return nil
		},
	}
}
