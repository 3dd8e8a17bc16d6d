package cmd

import (
	"errors"
	"fmt"

	"github.com/YangQing-Lin/featgen/internal/i18n"
	"github.com/YangQing-Lin/featgen/internal/planner"
	"github.com/YangQing-Lin/featgen/internal/project"
	"github.com/YangQing-Lin/featgen/internal/stub"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var modulesForce bool

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "管理模块路由加载器",
	Long: `管理 routes/modules.php 与 routes/api-modules.php 两个路由加载器。

示例:
  featgen modules install          # 写入加载器并接入 routes/web.php 与 routes/api.php
  featgen modules setup            # 只写入加载器，打印接入方式`,
}

var modulesInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "写入加载器并把 require 语句追加到路由文件",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		return ws.withLock(func() error {
			return installLoaders(ws, modulesForce)
		})
	},
}

var modulesSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "只写入加载器文件",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		return ws.withLock(func() error {
			return setupLoaders(ws, modulesForce)
		})
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
	modulesCmd.AddCommand(modulesInstallCmd, modulesSetupCmd)
	modulesCmd.PersistentFlags().BoolVar(&modulesForce, "force", false, "覆盖已存在的加载器")
}

func installLoaders(ws *workspace, force bool) error {
	changes, err := ws.project.InstallLoaders(ws.renderer, project.InstallOptions{
		Force: force,
		Confirm: func(path string) bool {
			if noInteraction {
				return false
			}
			return confirm(i18n.T("loader.confirm_append", path))
		},
	})
	printChanges(changes)
	if errors.Is(err, stub.ErrNotFound) {
		color.Red("✗ %v", err)
		return nil
	}
	if err != nil {
		return err
	}

	color.Green("✓ %s", i18n.T("modules.installed"))
	return nil
}

func setupLoaders(ws *workspace, force bool) error {
	changes, err := ws.project.WriteLoaders(ws.renderer, force)
	printChanges(changes)
	if errors.Is(err, stub.ErrNotFound) {
		color.Red("✗ %v", err)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println()
	color.Cyan("%s", i18n.T("modules.setup_done"))
	printLoaderHints(ws.project, ws.project.DetectLoaders(), planner.ModeFull)
	return nil
}

func printChanges(changes []project.Change) {
	for _, c := range changes {
		switch c.Kind {
		case project.ChangeCreated:
			color.Green("✓ %s", i18n.T("modules.created", c.Path))
		case project.ChangeOverwritten:
			color.Green("✓ %s", i18n.T("modules.overwritten", c.Path))
		case project.ChangeIntegrated:
			color.Green("✓ %s", i18n.T("modules.integrated", c.Path))
		case project.ChangeExists:
			color.Yellow("- %s", i18n.T("modules.exists", c.Path))
		case project.ChangeAlready:
			color.Yellow("- %s", i18n.T("modules.already", c.Path))
		case project.ChangeDeclined:
			color.Yellow("- %s", i18n.T("modules.declined", c.Path))
		case project.ChangeMissing:
			color.Yellow("! %s", i18n.T("modules.missing", c.Path))
		}
	}
}

// printLoaderHints 打印尚未完成的路由接入步骤
func printLoaderHints(p *project.Project, status project.LoaderStatus, mode planner.Mode) {
	if !status.WebIntegrated && mode.HasView() {
		if target := status.WebTarget(); target != "" {
			fmt.Println(i18n.T("loader.web_hint", target))
			fmt.Printf("  %s\n", project.WebRequire)
		} else {
			color.Yellow("! %s", i18n.T("loader.no_web_target"))
		}
	}

	if !status.APIIntegrated && mode.HasAPI() {
		if !status.HasAPIRoutes && p.StreamlinedSkeleton() {
			if v, err := p.FrameworkVersion(); err == nil {
				color.Yellow("! %s", i18n.T("loader.streamlined", v.String()))
			}
		}
		fmt.Println(i18n.T("loader.api_hint"))
		fmt.Printf("  %s\n", project.APIRequire)
	}
}

// offerLoaderInstall 生成后检查路由接入，交互模式下询问是否立即安装
func offerLoaderInstall(ws *workspace, mode planner.Mode, skipInstall bool) error {
	status := ws.project.DetectLoaders()
	webMissing := mode.HasView() && !status.WebIntegrated
	apiMissing := mode.HasAPI() && !status.APIIntegrated
	if !webMissing && !apiMissing {
		return nil
	}

	fmt.Println()
	color.Yellow("! %s", i18n.T("loader.missing"))
	printLoaderHints(ws.project, status, mode)
	fmt.Println(i18n.T("loader.run_install"))

	if skipInstall || !interactive() {
		return nil
	}
	if !confirm(i18n.T("loader.confirm_install")) {
		return nil
	}
	return ws.withLock(func() error {
		return installLoaders(ws, false)
	})
}
