// Package main 是 wallpaperctl 命令行客户端的入口点
package main

import "wallpaper-admin/internal/cli/cmd"

func main() {
	cmd.Execute()
}
