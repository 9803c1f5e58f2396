package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"wallpaper-admin/internal/cli/events"
)

func (c *cli) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "实时查看壁纸和管理员变更事件",
		Long: `连接管理端事件推送，逐行打印收到的事件。

按 Ctrl+C 退出。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.store.IsLoggedIn() {
				return fmt.Errorf("当前未登录，请先运行 'wallpaperctl login'")
			}
			out := cmd.OutOrStdout()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := events.NewClient(c.store.ServerURL(), c.store.AccessToken())
			client.OnMessage(func(msg *events.Message) {
				switch msg.Type {
				case events.TypePong:
					return
				case events.TypeConnected:
					fmt.Fprintln(out, "✓ 已连接，等待事件...")
				default:
					ts := time.UnixMilli(msg.Timestamp).Format("15:04:05")
					fmt.Fprintf(out, "[%s] %s %s\n", ts, msg.Type, string(msg.Payload))
				}
			})

			fmt.Fprintf(out, "🌐 正在连接 %s\n", client.URL())
			if err := client.Connect(ctx); err != nil {
				return err
			}

			select {
			case <-ctx.Done():
				client.Disconnect()
				fmt.Fprintln(out, "✓ 已断开连接")
			case <-client.Done():
				fmt.Fprintln(out, "连接已被服务器关闭")
			}
			return nil
		},
	}
}
