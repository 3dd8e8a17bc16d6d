package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/YangQing-Lin/featgen/internal/i18n"
	"github.com/YangQing-Lin/featgen/internal/naming"
	"github.com/YangQing-Lin/featgen/internal/planner"
	"github.com/YangQing-Lin/featgen/internal/project"
	"github.com/YangQing-Lin/featgen/internal/report"
	"github.com/YangQing-Lin/featgen/internal/stub"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	createAPI         bool
	createView        bool
	createWith        []string
	createForce       bool
	createSkipInstall bool
	createDryRun      bool
	createReport      string
)

var createCmd = &cobra.Command{
	Use:     "create [name]",
	Aliases: []string{"features:create", "make:feature", "module:create"},
	Short:   "生成一个 CRUD 功能",
	Long: `生成一个完整的 CRUD 功能。

示例:
  featgen create Product                      # 全栈（API + Web）
  featgen create Product --api                # 只生成 API
  featgen create Product --view               # 只生成 Web 页面
  featgen create Product --with=observer,test # 附加可选组件
  featgen create Product --dry-run            # 只预览，不写入`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().BoolVar(&createAPI, "api", false, "只生成 API 部分")
	createCmd.Flags().BoolVar(&createView, "view", false, "只生成 Web 页面部分")
	createCmd.Flags().StringSliceVar(&createWith, "with", nil, "可选组件: enum, observer, policy, factory, test（可重复或逗号分隔）")
	createCmd.Flags().BoolVar(&createForce, "force", false, "覆盖已存在的文件")
	createCmd.Flags().BoolVar(&createSkipInstall, "skip-install", false, "不提示安装模块路由加载器")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "只显示将要写入的文件，不做任何修改")
	createCmd.Flags().StringVar(&createReport, "report", "", "把运行结果写入 JSON 报告文件")
}

func runCreate(cmd *cobra.Command, args []string) error {
	mode, err := planner.ResolveMode(createAPI, createView)
	if errors.Is(err, planner.ErrConflictingModes) {
		printConflictingModes()
		return nil
	}
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

	if !createAPI && !createView && interactive() {
		mode, err = modeSelector()
		if cancelled(err) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	with, err := resolveComponents(cmd, ws)
	if cancelled(err) {
		return nil
	}
	if err != nil {
		return err
	}

	opts := planner.Options{
		Mode:   mode,
		With:   with,
		Force:  createForce,
		DryRun: createDryRun,
		Layout: ws.layout(),
	}

	rep := report.New("create", name.Model, ws.project.Root)
	rep.Mode = string(mode)
	rep.Components = componentStrings(with)
	rep.DryRun = createDryRun
	rep.Force = createForce

	color.Cyan("%s", i18n.T("create.heading", name.Model, modeLabel(mode)))
	if createForce {
		warnUncommitted(ws, existingTargets(ws, name, opts), rep)
	}

	var result *planner.Result
	err = ws.withLock(func() error {
		var genErr error
		result, genErr = planner.New(ws.project, ws.renderer).Generate(name, opts)
		return genErr
	})
	if result != nil {
		printActions(result, rep)
	}
	if err != nil {
		rep.Fail(err)
		_ = writeReport(rep, createReport)
		return err
	}

	printObserver(result)

	if rep.Count(string(planner.ActionSkipped)) > 0 && !createForce {
		color.Yellow("%s", i18n.T("hint.force"))
	}

	fmt.Println()
	if createDryRun {
		color.Green("✓ %s", i18n.T("create.dry_run_done", result.Written()))
		return writeReport(rep, createReport)
	}
	color.Green("✓ %s", i18n.T("create.done", name.Model, result.Written()))

	if err := offerLoaderInstall(ws, mode, createSkipInstall || ws.config.SkipInstall); err != nil {
		rep.Fail(err)
		_ = writeReport(rep, createReport)
		return err
	}

	return writeReport(rep, createReport)
}

// resolveComponents --with 优先，其次交互多选（以配置的 default_with 预选），最后使用配置
func resolveComponents(cmd *cobra.Command, ws *workspace) ([]planner.Component, error) {
	if cmd.Flags().Changed("with") {
		return planner.ParseComponents(createWith)
	}

	defaults, err := planner.ParseComponents(ws.config.DefaultWith)
	if err != nil {
		return nil, err
	}
	if interactive() {
		return componentSelector(defaults)
	}
	return defaults, nil
}

// existingTargets 本次生成会覆盖的现有文件
func existingTargets(ws *workspace, name naming.Name, opts planner.Options) []string {
	var paths []string
	for _, target := range planner.Targets(name, opts.Mode, opts.With, opts.Layout) {
		if target.Migration {
			migrations, _ := ws.project.FindMigrations(name.MigrationMarker())
			for _, m := range migrations {
				paths = append(paths, ws.project.Rel(m))
			}
			continue
		}
		paths = append(paths, target.Rel)
	}
	return paths
}

func printActions(result *planner.Result, rep *report.Report) {
	for _, a := range result.Actions {
		rep.Add(a.Path, string(a.Kind), a.StubID, string(a.Source))

		switch a.Kind {
		case planner.ActionCreated:
			color.Green("✓ %s", i18n.T("action.created", a.Path))
		case planner.ActionOverwritten:
			color.Green("✓ %s", i18n.T("action.overwritten", a.Path))
		case planner.ActionSkipped:
			color.Yellow("- %s", i18n.T("action.skipped", a.Path))
		case planner.ActionPlanned:
			if a.Exists {
				color.Cyan("~ %s", i18n.T("action.planned_over", a.Path))
				if a.Diff != "" && a.Diff != stub.NoDifferences {
					fmt.Print(stub.FormatDiff(a.Diff))
				}
			} else {
				color.Cyan("+ %s", i18n.T("action.planned", a.Path))
			}
		case planner.ActionMissingStub:
			color.Red("✗ %s", i18n.T("action.missing_stub", a.StubID, a.Path))
			rep.Warn("stub %s not found, %s not written", a.StubID, a.Path)
		}

		if a.Core {
			color.Yellow("! %s", i18n.T("warning.core_migration", a.Path))
			rep.Warn("%s ships with Laravel, reused without changes", a.Path)
		}

		if a.Source == stub.SourceFallback {
			color.Yellow("! %s", i18n.T("warning.fallback", a.StubID, a.Path))
			rep.Warn("stub %s not found, basic template used for %s", a.StubID, a.Path)
		}
	}
}

func printObserver(result *planner.Result) {
	switch {
	case result.ObserverRegistered:
		color.Green("✓ %s", i18n.T("observer.registered", project.ProviderFile))
	case result.ProviderMissing:
		reg := project.NewObserverRegistration(result.Name.Model)
		color.Yellow("! %s", i18n.T("observer.provider_missing", project.ProviderFile, strings.TrimSpace(reg.ObserveLine)))
	}
}
