package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) adminsCommand() *cobra.Command {
	admins := &cobra.Command{
		Use:   "admins",
		Short: "管理管理员账号",
	}

	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "分页列出管理员",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.authedClient()
			if err != nil {
				return err
			}
			data, err := client.ListAdmins(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
	list.Flags().IntVar(&page, "page", 1, "页码")
	list.Flags().IntVar(&limit, "limit", 10, "每页数量")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "查看管理员",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.authedClient()
			if err != nil {
				return err
			}
			data, err := client.GetAdmin(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "删除管理员（不能删除自己）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.authedClient()
			if err != nil {
				return err
			}
			if err := client.DeleteAdmin(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ 已删除管理员 %s\n", args[0])
			return nil
		},
	}

	admins.AddCommand(list, get, del)
	return admins
}
