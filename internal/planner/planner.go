package planner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/YangQing-Lin/featgen/internal/naming"
	"github.com/YangQing-Lin/featgen/internal/project"
	"github.com/YangQing-Lin/featgen/internal/stub"
	"github.com/YangQing-Lin/featgen/internal/utils"
)

// ActionKind 单个文件的处理结果
type ActionKind string

const (
	ActionCreated     ActionKind = "created"
	ActionOverwritten ActionKind = "overwritten"
	ActionSkipped     ActionKind = "skipped"
	ActionPlanned     ActionKind = "planned"
	ActionMissingStub ActionKind = "missing-stub"
)

// Action 对一个目标文件执行的操作
type Action struct {
	Path   string      `json:"path"`
	Kind   ActionKind  `json:"kind"`
	StubID string      `json:"stub"`
	Source stub.Source `json:"source,omitempty"`
	Shared bool        `json:"shared,omitempty"`
	Exists bool        `json:"exists,omitempty"` // 执行前目标文件已存在
	Core   bool        `json:"core,omitempty"`   // 匹配到 Laravel 自带的迁移
	Diff   string      `json:"-"`                // 仅 dry run 且会覆盖时生成
}

// Options 生成选项
type Options struct {
	Mode   Mode
	With   []Component
	Force  bool
	DryRun bool
	Layout Layout
}

// Result 一次生成的结果
type Result struct {
	Name               naming.Name
	Mode               Mode
	Actions            []Action
	ObserverRegistered bool
	ProviderMissing    bool
}

// Written 实际写入（或 dry run 中将写入）的文件数
func (r *Result) Written() int {
	n := 0
	for _, a := range r.Actions {
		switch a.Kind {
		case ActionCreated, ActionOverwritten, ActionPlanned:
			n++
		}
	}
	return n
}

// Planner 文件放置规划器
type Planner struct {
	project  *project.Project
	renderer *stub.Renderer
	now      func() time.Time
}

// New 创建规划器
func New(p *project.Project, r *stub.Renderer) *Planner {
	return &Planner{project: p, renderer: r, now: time.Now}
}

// WithClock 替换迁移时间戳使用的时钟
func (pl *Planner) WithClock(now func() time.Time) *Planner {
	pl.now = now
	return pl
}

// Generate 渲染并写入功能的全部文件
// 已存在的文件只有在 Force 时才会被覆盖；DryRun 时不写入任何文件
func (pl *Planner) Generate(name naming.Name, opts Options) (*Result, error) {
	if opts.Mode == "" {
		opts.Mode = ModeFull
	}

	result := &Result{Name: name, Mode: opts.Mode}
	vars := name.Vars()

	for _, shared := range SharedFiles {
		if shared.APIOnly && !opts.Mode.HasAPI() {
			continue
		}
		action, err := pl.placeShared(shared, opts)
		if err != nil {
			return result, err
		}
		result.Actions = append(result.Actions, action)
	}

	observerWritten := false
	for _, target := range Targets(name, opts.Mode, opts.With, opts.Layout) {
		abs, err := pl.resolve(name, target)
		if err != nil {
			return result, err
		}

		rendered, err := pl.renderer.Render(target.StubID, target.vars(vars))
		if err != nil {
			return result, fmt.Errorf("渲染 %s 失败: %w", target.StubID, err)
		}

		// Laravel 自带的迁移只复用，--force 也不改写
		core := target.Migration && project.IsCoreMigration(abs)
		action, err := pl.place(abs, rendered, opts.Force && !core, opts.DryRun)
		if err != nil {
			return result, err
		}
		action.Core = core
		result.Actions = append(result.Actions, action)

		if target.Component == ComponentObserver && (action.Kind == ActionCreated || action.Kind == ActionOverwritten) {
			observerWritten = true
		}
	}

	if observerWritten {
		changed, err := pl.project.RegisterObserver(name.Model)
		switch {
		case errors.Is(err, project.ErrNoProvider):
			result.ProviderMissing = true
		case err != nil:
			return result, fmt.Errorf("注册 observer 失败: %w", err)
		default:
			result.ObserverRegistered = changed
		}
	}

	return result, nil
}

// resolve 计算目标的绝对路径；迁移文件优先复用已存在的同名迁移
func (pl *Planner) resolve(name naming.Name, target Target) (string, error) {
	if !target.Migration {
		return pl.project.BasePath(target.Rel), nil
	}

	existing, err := pl.project.FindMigrations(name.MigrationMarker())
	if err != nil {
		return "", err
	}
	for _, path := range existing {
		if !project.IsCoreMigration(path) {
			return path, nil
		}
	}
	if len(existing) > 0 {
		return existing[0], nil
	}
	return pl.project.MigrationPath(name.MigrationMarker(), pl.now()), nil
}

func (pl *Planner) placeShared(shared SharedFile, opts Options) (Action, error) {
	abs := pl.project.BasePath(shared.Rel)

	rendered, err := pl.renderer.RenderStrict(shared.StubID, nil)
	if errors.Is(err, stub.ErrNotFound) {
		return Action{Path: shared.Rel, Kind: ActionMissingStub, StubID: shared.StubID, Shared: true}, nil
	}
	if err != nil {
		return Action{}, fmt.Errorf("渲染 %s 失败: %w", shared.StubID, err)
	}

	action, err := pl.place(abs, rendered, opts.Force && shared.Overwrite, opts.DryRun)
	action.Shared = true
	return action, err
}

// place 写入单个文件
func (pl *Planner) place(abs string, rendered stub.Rendered, force, dryRun bool) (Action, error) {
	action := Action{
		Path:   pl.project.Rel(abs),
		StubID: rendered.ID,
		Source: rendered.Source,
	}

	existing, err := os.ReadFile(abs)
	switch {
	case err == nil:
		action.Exists = true
	case errors.Is(err, fs.ErrNotExist):
	default:
		return action, fmt.Errorf("读取 %s 失败: %w", action.Path, err)
	}

	if action.Exists && !force {
		action.Kind = ActionSkipped
		return action, nil
	}

	if dryRun {
		action.Kind = ActionPlanned
		if action.Exists {
			action.Diff = stub.Diff(string(existing), rendered.Content, action.Path, action.Path+" (rendered)")
		}
		return action, nil
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return action, fmt.Errorf("创建目录失败: %w", err)
	}
	if err := utils.AtomicWriteFile(abs, []byte(rendered.Content), 0644); err != nil {
		return action, fmt.Errorf("写入 %s 失败: %w", action.Path, err)
	}

	action.Kind = ActionCreated
	if action.Exists {
		action.Kind = ActionOverwritten
	}
	return action, nil
}
