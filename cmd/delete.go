package cmd

import (
	"errors"
	"fmt"

	"github.com/YangQing-Lin/featgen/internal/i18n"
	"github.com/YangQing-Lin/featgen/internal/planner"
	"github.com/YangQing-Lin/featgen/internal/project"
	"github.com/YangQing-Lin/featgen/internal/remover"
	"github.com/YangQing-Lin/featgen/internal/report"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	deleteWith   []string
	deleteAll    bool
	deleteForce  bool
	deleteAPI    bool
	deleteView   bool
	deleteDryRun bool
	deleteReport string
)

var deleteCmd = &cobra.Command{
	Use:     "delete [name]",
	Aliases: []string{"delete:feature"},
	Short:   "删除一个功能生成的文件",
	Long: `删除 create 生成的文件，并清理留下的空目录。

示例:
  featgen delete Product                  # 删除 API 与 Web 两部分
  featgen delete Product --api            # 只删除 API 部分
  featgen delete Product --all            # 连同全部可选组件
  featgen delete Product --force          # 不询问确认`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(args)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringSliceVar(&deleteWith, "with", nil, "同时删除的可选组件（可重复或逗号分隔）")
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "删除全部可选组件")
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "强制删除，不需要确认")
	deleteCmd.Flags().BoolVar(&deleteAPI, "api", false, "只删除 API 部分")
	deleteCmd.Flags().BoolVar(&deleteView, "view", false, "只删除 Web 页面部分")
	deleteCmd.Flags().BoolVar(&deleteDryRun, "dry-run", false, "只列出将要删除的文件")
	deleteCmd.Flags().StringVar(&deleteReport, "report", "", "把运行结果写入 JSON 报告文件")
}

func runDelete(args []string) error {
	mode, err := planner.ResolveMode(deleteAPI, deleteView)
	if errors.Is(err, planner.ErrConflictingModes) {
		printConflictingModes()
		return nil
	}
	if err != nil {
		return err
	}

	with, err := planner.ParseComponents(deleteWith)
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	name, err := resolveName(args)
	if cancelled(err) {
		return nil
	}
	if err != nil {
		return err
	}

	opts := remover.Options{
		Mode:   mode,
		With:   with,
		All:    deleteAll,
		DryRun: deleteDryRun,
		Layout: ws.layout(),
	}
	rm := remover.New(ws.project, ws.renderer)

	candidates, err := rm.Collect(name, opts)
	if err != nil {
		return err
	}
	core, err := rm.CoreMigrations(name)
	if err != nil {
		return err
	}
	for _, path := range core {
		color.Yellow("! %s", i18n.T("warning.core_migration_kept", path))
	}
	if len(candidates) == 0 {
		color.Yellow("%s", i18n.T("delete.nothing", name.Model))
		return nil
	}

	rep := report.New("delete", name.Model, ws.project.Root)
	rep.Mode = string(mode)
	rep.DryRun = deleteDryRun
	rep.Force = deleteForce
	if deleteAll {
		rep.Components = componentStrings(planner.Components)
	} else {
		rep.Components = componentStrings(with)
	}

	color.Cyan("%s", i18n.T("delete.heading", name.Model))
	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		fmt.Printf("  - %s\n", c.Path)
		paths = append(paths, c.Path)
	}
	fmt.Println()
	warnUncommitted(ws, paths, rep)

	if deleteDryRun {
		for _, path := range paths {
			rep.Add(path, "planned", "", "")
		}
		color.Green("✓ %s", i18n.T("delete.dry_run_done", len(paths)))
		return writeReport(rep, deleteReport)
	}

	if !deleteForce && (noInteraction || !confirm(i18n.T("delete.confirm"))) {
		color.Yellow("%s", i18n.T("delete.cancelled"))
		return nil
	}

	var result *remover.Result
	err = ws.withLock(func() error {
		var delErr error
		result, delErr = rm.Delete(name, opts)
		return delErr
	})
	if result != nil {
		printDeleteResult(result, rep)
	}
	if err != nil {
		rep.Fail(err)
		_ = writeReport(rep, deleteReport)
		return err
	}

	fmt.Println()
	color.Green("✓ %s", i18n.T("delete.done", name.Model, len(result.Deleted)))
	return writeReport(rep, deleteReport)
}

func printDeleteResult(result *remover.Result, rep *report.Report) {
	for _, path := range result.Deleted {
		color.Green("✓ %s", i18n.T("delete.deleted", path))
		rep.Add(path, "deleted", "", "")
	}
	if result.ObserverUnregistered {
		color.Green("✓ %s", i18n.T("observer.unregistered", project.ProviderFile))
	}
	for _, path := range result.SharedDeleted {
		color.Green("✓ %s", i18n.T("delete.shared_delete", path))
		rep.Add(path, "deleted", "", "")
	}
	for _, path := range result.SharedKept {
		fmt.Println(i18n.T("delete.shared_kept", path))
	}
	for _, dir := range result.RemovedDirs {
		fmt.Println(i18n.T("delete.dir_removed", dir))
		rep.Add(dir, "dir-removed", "", "")
	}
}
