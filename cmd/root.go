package cmd

import (
	"fmt"
	"os"

	"github.com/YangQing-Lin/featgen/internal/i18n"
	"github.com/YangQing-Lin/featgen/internal/settings"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	projectDir    string
	noInteraction bool
)

var rootCmd = &cobra.Command{
	Use:   "featgen",
	Short: "Laravel CRUD 功能脚手架",
	Long: `featgen 根据一个名称为 Laravel 项目生成完整的 CRUD 功能：
模型、迁移、Web 与 API 控制器、表单请求、Vue (Inertia) 页面、
按功能拆分的路由文件、权限 seeder 以及可选组件。

使用方法：
  featgen create Product              生成全栈功能
  featgen create Product --api        只生成 API 部分
  featgen delete Product              删除功能文件
  featgen modules install             安装模块路由加载器`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = i18n.Init()
		applyColorSetting()
	},
}

// Execute 运行命令树，出错时打印到 stderr 并以 1 退出
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗ %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", "", "Laravel 项目根目录（默认当前目录）")
	rootCmd.PersistentFlags().BoolVarP(&noInteraction, "no-interaction", "n", false, "不显示任何交互式提示")

	// 自定义帮助模板
	rootCmd.SetHelpTemplate(`{{.Long}}

{{if .HasAvailableSubCommands}}可用命令:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}

{{if .HasAvailableLocalFlags}}选项:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
{{if .HasAvailableInheritedFlags}}全局选项:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}

使用 "{{.CommandPath}} [command] --help" 获取更多关于命令的信息。
`)
}

// applyColorSetting 用户设置关闭彩色输出时生效；NO_COLOR 由 color 包自行处理
func applyColorSetting() {
	manager, err := settings.NewManager()
	if err != nil {
		return
	}
	if manager.Get().NoColor {
		color.NoColor = true
	}
}
