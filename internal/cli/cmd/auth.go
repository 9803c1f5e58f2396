package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (c *cli) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "登录并保存凭证",
		Long: `使用管理员邮箱和密码登录。

未通过参数提供时会提示输入，密码输入不会回显。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if email == "" {
				fmt.Fprint(out, "请输入邮箱: ")
				line, _ := reader.ReadString('\n')
				email = strings.TrimSpace(line)
			}
			if email == "" {
				return fmt.Errorf("邮箱不能为空")
			}

			if password == "" {
				fmt.Fprint(out, "请输入密码: ")
				p, err := readPassword(cmd.InOrStdin(), reader)
				fmt.Fprintln(out)
				if err != nil {
					return fmt.Errorf("读取密码失败: %w", err)
				}
				password = p
			}
			if password == "" {
				return fmt.Errorf("密码不能为空")
			}

			fmt.Fprintln(out, "🔐 正在登录...")
			token, admin, err := c.client().Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("登录失败: %w", err)
			}
			if err := c.store.SaveAuth(admin.Email, token); err != nil {
				return err
			}

			fmt.Fprintln(out, "✓ 登录成功")
			fmt.Fprintf(out, "  👤 %s %s <%s>\n", admin.FirstName, admin.LastName, admin.Email)
			fmt.Fprintf(out, "  📡 服务器: %s\n", c.store.ServerURL())
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "管理员邮箱")
	cmd.Flags().StringVarP(&password, "password", "p", "", "密码（不建议在命令行中明文传入）")
	return cmd
}

// readPassword 标准输入是终端时隐藏输入，否则按行读取
func readPassword(in io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "登出并清除本地凭证",
		Long: `登出当前账号并清除本地保存的 access_token。

登出后需要重新运行 'wallpaperctl login' 才能使用。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !c.store.IsLoggedIn() {
				fmt.Fprintln(out, "当前未登录")
				return nil
			}

			// Token 是无状态的，服务端登出失败不影响清除本地凭证
			if err := c.client().Logout(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  服务端登出失败: %v\n", err)
			}
			if err := c.store.ClearAuth(); err != nil {
				return fmt.Errorf("清除凭证失败: %w", err)
			}

			fmt.Fprintln(out, "✓ 已登出并清除本地凭证")
			return nil
		},
	}
}

func (c *cli) meCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "显示当前登录的管理员",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.authedClient()
			if err != nil {
				return err
			}
			data, err := client.Me(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
}

func (c *cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "显示当前状态",
		Long: `显示当前登录状态和配置信息。

包括：
- 服务器地址
- 登录状态
- 配置文件位置`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "服务器: %s\n", c.store.ServerURL())
			if c.store.IsLoggedIn() {
				fmt.Fprintf(out, "登录状态: ✓ 已登录 (%s)\n", c.store.Email())
			} else {
				fmt.Fprintln(out, "登录状态: ✗ 未登录")
				fmt.Fprintln(out, "请运行 'wallpaperctl login' 完成登录")
			}
			fmt.Fprintf(out, "配置文件: %s\n", c.store.Path())
			return nil
		},
	}
}
