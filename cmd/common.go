package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/YangQing-Lin/featgen/internal/config"
	"github.com/YangQing-Lin/featgen/internal/i18n"
	"github.com/YangQing-Lin/featgen/internal/lock"
	"github.com/YangQing-Lin/featgen/internal/naming"
	"github.com/YangQing-Lin/featgen/internal/planner"
	"github.com/YangQing-Lin/featgen/internal/project"
	"github.com/YangQing-Lin/featgen/internal/report"
	"github.com/YangQing-Lin/featgen/internal/stub"
	"github.com/YangQing-Lin/featgen/internal/tui"
	"github.com/YangQing-Lin/featgen/internal/vcs"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// isTerminal 判断 stdin 是否为终端，测试中可替换
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// 交互式提示，测试中可替换
var (
	namePrompt        = promptName
	modeSelector      = selectMode
	componentSelector = selectComponents
)

func interactive() bool {
	return !noInteraction && isTerminal()
}

// workspace 一次命令运行所需的项目、配置与模板渲染器
type workspace struct {
	project  *project.Project
	config   config.Config
	renderer *stub.Renderer
}

func openWorkspace() (*workspace, error) {
	p, err := project.Open(projectDir)
	if err != nil {
		return nil, err
	}
	if !p.IsLaravel() {
		return nil, fmt.Errorf("%s: %w", i18n.T("error.not_laravel", p.Root), project.ErrNotLaravel)
	}

	cfg, err := config.Load(p.Root)
	if err != nil {
		return nil, err
	}

	return &workspace{
		project:  p,
		config:   cfg,
		renderer: stub.NewRenderer(p.BasePath(cfg.StubsDir)),
	}, nil
}

func (w *workspace) layout() planner.Layout {
	return planner.Layout{PagesDir: w.config.PagesDir, APIControllerDir: w.config.APIControllerDir}
}

// withLock 持有项目锁执行 fn
func (w *workspace) withLock(fn func() error) error {
	l, err := lock.ForProject(w.project.Root)
	if err != nil {
		return err
	}
	if err := l.Acquire(); err != nil {
		return err
	}
	defer l.Release()

	return fn()
}

// resolveName 取参数中的名称；缺失时在交互模式下提示输入
func resolveName(args []string) (naming.Name, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	}

	if strings.TrimSpace(raw) == "" {
		if !interactive() {
			return naming.Name{}, fmt.Errorf("%s: %w", i18n.T("error.name_required"), naming.ErrEmptyName)
		}
		input, err := namePrompt()
		if err != nil {
			return naming.Name{}, err
		}
		raw = input
	}

	return naming.Parse(raw)
}

func promptName() (string, error) {
	return tui.RunInput(i18n.T("prompt.name"), i18n.T("prompt.help_input"), "Product", func(s string) error {
		_, err := naming.Parse(s)
		return err
	})
}

func modeOptions() []tui.Option {
	return []tui.Option{
		{Value: string(planner.ModeFull), Label: i18n.T("mode.full"), Description: i18n.T("mode.full_desc")},
		{Value: string(planner.ModeAPI), Label: i18n.T("mode.api"), Description: i18n.T("mode.api_desc")},
		{Value: string(planner.ModeView), Label: i18n.T("mode.view"), Description: i18n.T("mode.view_desc")},
	}
}

func selectMode() (planner.Mode, error) {
	value, err := tui.RunSelect(i18n.T("prompt.mode"), i18n.T("prompt.help_menu"), modeOptions(), 0)
	if err != nil {
		return "", err
	}
	return planner.Mode(value), nil
}

func selectComponents(preset []planner.Component) ([]planner.Component, error) {
	options := make([]tui.Option, 0, len(planner.Components))
	for _, c := range planner.Components {
		target := planner.ComponentTarget(naming.Name{Model: "{Model}"}, c)
		options = append(options, tui.Option{Value: string(c), Label: string(c), Description: target.Rel})
	}

	values, err := tui.RunMultiSelect(i18n.T("prompt.components"), i18n.T("prompt.help_multi"), options, componentStrings(preset))
	if err != nil {
		return nil, err
	}
	return planner.ParseComponents(values)
}

func componentStrings(components []planner.Component) []string {
	values := make([]string, 0, len(components))
	for _, c := range components {
		values = append(values, string(c))
	}
	return values
}

func modeLabel(mode planner.Mode) string {
	return i18n.T("mode." + string(mode))
}

// printConflictingModes --api 与 --view 同时使用只提示，不视为失败
func printConflictingModes() {
	color.Red("✗ %s", i18n.T("error.conflicting_modes"))
}

func cancelled(err error) bool {
	if errors.Is(err, tui.ErrCancelled) {
		color.Yellow("%s", i18n.T("prompt.cancelled"))
		return true
	}
	return false
}

// stdinReader 在 os.Stdin 被替换后重新创建，避免缓冲的输入丢失
var (
	stdinReader *bufio.Reader
	stdinSource *os.File
)

// confirm 打印提示并读取 y/N 回答
func confirm(prompt string) bool {
	fmt.Print(prompt)

	if stdinReader == nil || stdinSource != os.Stdin {
		stdinReader = bufio.NewReader(os.Stdin)
		stdinSource = os.Stdin
	}

	response, err := stdinReader.ReadString('\n')
	if err != nil && response == "" {
		fmt.Println()
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// warnUncommitted 列出即将被改写且有未提交修改的文件
func warnUncommitted(w *workspace, paths []string, rep *report.Report) {
	dirty, err := vcs.Uncommitted(w.project.Root, paths)
	if err != nil || len(dirty) == 0 {
		return
	}

	color.Yellow("! %s", i18n.T("vcs.uncommitted"))
	for _, path := range dirty {
		fmt.Printf("  - %s\n", path)
	}
	if rep != nil {
		rep.Warn("uncommitted changes: %s", strings.Join(dirty, ", "))
	}
}

func writeReport(rep *report.Report, path string) error {
	if path == "" {
		return nil
	}
	if err := rep.Write(path); err != nil {
		return err
	}
	fmt.Println(i18n.T("report.written", path))
	return nil
}
