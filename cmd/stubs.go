package cmd

import (
	"fmt"

	"github.com/YangQing-Lin/featgen/internal/i18n"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var stubsForce bool

var stubsCmd = &cobra.Command{
	Use:   "stubs",
	Short: "管理代码模板",
	Long: `管理生成时使用的模板。项目内的自定义模板优先于内置模板。

示例:
  featgen stubs publish            # 把内置模板复制到项目，便于修改
  featgen stubs list               # 列出模板及其是否被覆盖`,
}

var stubsPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "把内置模板复制到项目的自定义模板目录",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		results, err := ws.renderer.Publish(stubsForce)
		written := 0
		for _, r := range results {
			rel := ws.project.Rel(r.Path)
			if r.Written {
				written++
				color.Green("✓ %s", i18n.T("stubs.published", rel))
			} else {
				color.Yellow("- %s", i18n.T("stubs.kept", rel))
			}
		}
		if err != nil {
			return err
		}

		fmt.Println()
		color.Green("✓ %s", i18n.T("stubs.done", written, ws.config.StubsDir))
		return nil
	},
}

var stubsListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出内置模板",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		entries, err := ws.renderer.List()
		if err != nil {
			return err
		}

		for _, e := range entries {
			if e.Overridden {
				fmt.Printf("● %-32s %s (%s)\n", e.ID, i18n.T("stubs.overridden"), ws.project.Rel(e.Path))
			} else {
				fmt.Printf("○ %-32s %s\n", e.ID, i18n.T("stubs.builtin"))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stubsCmd)
	stubsCmd.AddCommand(stubsPublishCmd, stubsListCmd)
	stubsPublishCmd.Flags().BoolVar(&stubsForce, "force", false, "覆盖已发布的模板")
}
