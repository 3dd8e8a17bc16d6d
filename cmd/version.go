package cmd

import (
	"fmt"

	"github.com/YangQing-Lin/featgen/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Long:  `显示 featgen 的版本信息`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("featgen 版本: %s\n", version.GetVersion())

		if version.GetBuildDate() != "unknown" {
			fmt.Printf("构建日期: %s\n", version.GetBuildDate())
		}

		if version.GetGitCommit() != "unknown" {
			fmt.Printf("Git 提交: %s\n", version.GetGitCommit())
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = version.GetVersion()
	rootCmd.SetVersionTemplate(version.Summary() + "\n")
}
