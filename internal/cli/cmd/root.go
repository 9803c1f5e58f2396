// Package cmd 实现 wallpaperctl 的命令
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wallpaper-admin/internal/cli/api"
	"wallpaper-admin/internal/cli/config"
)

// cli 命令共享的状态
type cli struct {
	configDir string
	server    string
	store     *config.Store
}

// NewRootCommand 创建根命令及全部子命令
func NewRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "wallpaperctl",
		Short: "壁纸管理后台命令行客户端",
		Long: `wallpaperctl 壁纸管理后台命令行客户端

通过管理端 REST API 管理管理员账号和壁纸。
先运行 'wallpaperctl login' 登录，凭证保存在 ~/.wallpaperctl/config.yaml。`,
		SilenceUsage:      true,
		PersistentPreRunE: c.init,
	}

	root.PersistentFlags().StringVar(&c.configDir, "config", "", "配置目录 (默认: ~/.wallpaperctl)")
	root.PersistentFlags().StringVarP(&c.server, "server", "s", "", "服务器地址 (默认: "+config.DefaultServerURL+")")

	root.AddCommand(
		c.loginCommand(),
		c.logoutCommand(),
		c.meCommand(),
		c.statusCommand(),
		c.adminsCommand(),
		c.wallpapersCommand(),
		c.watchCommand(),
	)
	return root
}

// Execute 执行根命令
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

// init 打开配置，--server 覆盖配置中的服务器地址
func (c *cli) init(cmd *cobra.Command, args []string) error {
	dir := c.configDir
	if dir == "" {
		d, err := config.DefaultDir()
		if err != nil {
			return err
		}
		dir = d
	}

	store, err := config.Open(dir)
	if err != nil {
		return fmt.Errorf("初始化配置失败: %w", err)
	}
	if c.server != "" {
		store.SetServerURL(c.server)
	}
	c.store = store
	return nil
}

// client 使用已保存的凭证创建 API 客户端
func (c *cli) client() *api.Client {
	return api.NewClient(c.store.ServerURL(), c.store.AccessToken())
}

// authedClient 与 client 相同，但未登录时直接返回错误
func (c *cli) authedClient() (*api.Client, error) {
	if !c.store.IsLoggedIn() {
		return nil, fmt.Errorf("当前未登录，请先运行 'wallpaperctl login'")
	}
	return c.client(), nil
}

// printJSON 缩进输出响应数据
func printJSON(w io.Writer, data json.RawMessage) error {
	if len(data) == 0 {
		return nil
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
