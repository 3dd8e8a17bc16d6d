package cmd

import (
	"fmt"
	"strings"

	"github.com/YangQing-Lin/featgen/internal/i18n"
	"github.com/YangQing-Lin/featgen/internal/settings"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	getSetting bool
	setSetting string
)

var settingsCmd = &cobra.Command{
	Use:   "settings [key]",
	Short: "管理用户设置",
	Long: `管理 featgen 用户设置（~/.featgen/settings.json）

示例:
  featgen settings                      # 显示所有设置
  featgen settings --get language       # 获取语言设置
  featgen settings --set language=id    # 设置界面语言 (en, id)
  featgen settings --set no_color=true  # 关闭彩色输出`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettings(args)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.Flags().BoolVar(&getSetting, "get", false, "获取指定设置项的值")
	settingsCmd.Flags().StringVar(&setSetting, "set", "", "设置项 (格式: key=value)")
}

func runSettings(args []string) error {
	manager, err := settings.NewManager()
	if err != nil {
		return err
	}

	// 设置模式
	if setSetting != "" {
		parts := strings.SplitN(setSetting, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("设置格式错误，应为: key=value")
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if err := manager.SetValue(key, value); err != nil {
			return err
		}
		if key == "language" {
			i18n.SetLanguage(value)
		}
		color.Green("✓ %s: %s=%s", i18n.T("settings.saved"), key, value)
		return nil
	}

	// 获取模式
	if getSetting {
		if len(args) == 0 {
			return fmt.Errorf("请指定要获取的设置项名称")
		}
		value, err := manager.Value(args[0])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	}

	// 显示所有设置
	fmt.Println(i18n.T("settings.current"))
	for _, key := range settings.Keys() {
		value, _ := manager.Value(key)
		fmt.Printf("  %-10s %s\n", key, value)
	}
	return nil
}
