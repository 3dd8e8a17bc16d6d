package cmd

import (
	"fmt"

	"github.com/YangQing-Lin/featgen/internal/config"
	"github.com/YangQing-Lin/featgen/internal/i18n"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "管理项目配置文件",
	Long: `管理项目根目录下的 featgen.yaml / featgen.toml。

示例:
  featgen config init                  # 写入默认的 featgen.yaml
  featgen config init --format toml    # 写入 featgen.toml
  featgen config show                  # 显示生效的配置`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "写入默认配置文件",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configFormat != "yaml" && configFormat != "toml" {
			return fmt.Errorf("不支持的配置格式: %s (支持: yaml, toml)", configFormat)
		}

		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		path, err := config.Init(ws.project.Root, configFormat)
		if err != nil {
			return err
		}
		color.Green("✓ %s", i18n.T("config.created", ws.project.Rel(path)))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "显示生效的配置",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		if ws.config.Source != "" {
			color.Cyan("%s", i18n.T("config.source", ws.project.Rel(ws.config.Source)))
		} else {
			color.Cyan("%s", i18n.T("config.default"))
		}

		data, err := config.Marshal(ws.config, "yaml")
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
	configInitCmd.Flags().StringVar(&configFormat, "format", "yaml", "配置文件格式 (yaml, toml)")
}
