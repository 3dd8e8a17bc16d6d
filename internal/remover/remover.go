package remover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/YangQing-Lin/featgen/internal/naming"
	"github.com/YangQing-Lin/featgen/internal/planner"
	"github.com/YangQing-Lin/featgen/internal/project"
	"github.com/YangQing-Lin/featgen/internal/stub"
	"github.com/YangQing-Lin/featgen/internal/utils"
)

// Options 删除选项
type Options struct {
	Mode   planner.Mode // full 表示两套控制器与路由都删除
	With   []planner.Component
	All    bool // 删除全部可选组件
	DryRun bool
	Layout planner.Layout
}

// Candidate 一个待删除且当前存在的文件
type Candidate struct {
	Path      string            `json:"path"` // 相对项目根目录
	Component planner.Component `json:"component,omitempty"`
	Shared    bool              `json:"shared,omitempty"`
}

// Result 删除结果
type Result struct {
	Name                 naming.Name
	Deleted              []string
	RemovedDirs          []string
	SharedDeleted        []string
	SharedKept           []string // 仍有功能或内容被修改过的共享文件
	ObserverUnregistered bool
}

// Remover 删除规划器
type Remover struct {
	project  *project.Project
	renderer *stub.Renderer
}

// New 创建删除规划器，renderer 用于判断共享文件是否被修改过
func New(p *project.Project, r *stub.Renderer) *Remover {
	return &Remover{project: p, renderer: r}
}

func (o Options) components() []planner.Component {
	if o.All {
		return planner.Components
	}
	return o.With
}

// Collect 列出功能当前存在的文件（不含共享文件）
func (rm *Remover) Collect(name naming.Name, opts Options) ([]Candidate, error) {
	mode := opts.Mode
	if mode == "" {
		mode = planner.ModeFull
	}

	var candidates []Candidate
	for _, target := range planner.Targets(name, mode, opts.components(), opts.Layout) {
		if target.Migration {
			migrations, err := rm.project.FindMigrations(name.MigrationMarker())
			if err != nil {
				return nil, err
			}
			for _, m := range migrations {
				if project.IsCoreMigration(m) {
					continue
				}
				candidates = append(candidates, Candidate{Path: rm.project.Rel(m)})
			}
			continue
		}

		if utils.FileExists(rm.project.BasePath(target.Rel)) {
			candidates = append(candidates, Candidate{Path: target.Rel, Component: target.Component})
		}
	}

	return candidates, nil
}

// CoreMigrations 返回匹配功能名但随 Laravel 骨架提供的迁移，这些文件不会被删除
func (rm *Remover) CoreMigrations(name naming.Name) ([]string, error) {
	migrations, err := rm.project.FindMigrations(name.MigrationMarker())
	if err != nil {
		return nil, err
	}

	var core []string
	for _, m := range migrations {
		if project.IsCoreMigration(m) {
			core = append(core, rm.project.Rel(m))
		}
	}
	return core, nil
}

// Delete 删除功能文件，清理空目录，注销 observer；最后一个功能删除后移除未修改的共享文件
func (rm *Remover) Delete(name naming.Name, opts Options) (*Result, error) {
	result := &Result{Name: name}

	candidates, err := rm.Collect(name, opts)
	if err != nil {
		return result, err
	}
	if opts.DryRun {
		for _, c := range candidates {
			result.Deleted = append(result.Deleted, c.Path)
		}
		return result, nil
	}

	observerDeleted := false
	for _, c := range candidates {
		deleted, err := rm.remove(c.Path, result)
		if err != nil {
			return result, err
		}
		if deleted {
			result.Deleted = append(result.Deleted, c.Path)
		}
		if c.Component == planner.ComponentObserver {
			observerDeleted = true
		}
	}

	if observerDeleted {
		changed, err := rm.project.UnregisterObserver(name.Model)
		if err != nil {
			return result, fmt.Errorf("注销 observer 失败: %w", err)
		}
		result.ObserverUnregistered = changed
	}

	if err := rm.removeShared(result); err != nil {
		return result, err
	}

	sort.Strings(result.RemovedDirs)
	return result, nil
}

// remove 删除单个文件并向上清理空目录，文件已不存在时返回 false
func (rm *Remover) remove(rel string, result *Result) (bool, error) {
	abs := rm.project.BasePath(rel)
	if err := os.Remove(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("删除 %s 失败: %w", rel, err)
	}

	removed, err := CleanupDirs(rm.project, filepath.Dir(abs))
	for _, dir := range removed {
		result.RemovedDirs = appendUnique(result.RemovedDirs, rm.project.Rel(dir))
	}
	return true, err
}

// removeShared 没有任何功能路由目录时删除与模板一致的共享文件
func (rm *Remover) removeShared(result *Result) error {
	remaining, err := FeatureDirs(rm.project)
	if err != nil {
		return err
	}

	for _, shared := range planner.SharedFiles {
		if !utils.FileExists(rm.project.BasePath(shared.Rel)) {
			continue
		}
		if len(remaining) > 0 {
			result.SharedKept = append(result.SharedKept, shared.Rel)
			continue
		}

		pristine, err := rm.project.IsPristine(rm.renderer, shared.Rel, shared.StubID, nil)
		if err != nil {
			return err
		}
		if !pristine {
			result.SharedKept = append(result.SharedKept, shared.Rel)
			continue
		}

		deleted, err := rm.remove(shared.Rel, result)
		if err != nil {
			return err
		}
		if deleted {
			result.SharedDeleted = append(result.SharedDeleted, shared.Rel)
		}
	}
	return nil
}

// FeatureDirs 返回 routes/Modules 下仍存在的功能目录名
func FeatureDirs(p *project.Project) ([]string, error) {
	entries, err := os.ReadDir(p.BasePath(planner.ModulesDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", planner.ModulesDir, err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs, nil
}

// CleanupDirs 从 dir 开始逐级删除空目录，到项目根目录为止
func CleanupDirs(p *project.Project, dir string) ([]string, error) {
	var removed []string
	for p.Contains(dir) && utils.IsDir(dir) {
		empty, err := utils.IsDirEmpty(dir)
		if err != nil {
			return removed, fmt.Errorf("读取目录失败: %w", err)
		}
		if !empty {
			break
		}
		if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("删除目录失败: %w", err)
		}
		removed = append(removed, dir)
		dir = filepath.Dir(dir)
	}
	return removed, nil
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
