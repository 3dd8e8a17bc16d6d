package planner

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/YangQing-Lin/featgen/internal/naming"
	"github.com/YangQing-Lin/featgen/internal/project"
)

var (
	// ErrConflictingModes --api 与 --view 同时出现
	ErrConflictingModes = errors.New("--api and --view cannot be used together")
	// ErrUnknownComponent --with 中出现未知组件
	ErrUnknownComponent = errors.New("unknown component")
)

// Mode 生成模式
type Mode string

const (
	ModeFull Mode = "full"
	ModeAPI  Mode = "api"
	ModeView Mode = "view"
)

// ResolveMode 根据 --api / --view 计算模式；两者都未指定时为 full
func ResolveMode(apiOnly, viewOnly bool) (Mode, error) {
	switch {
	case apiOnly && viewOnly:
		return "", ErrConflictingModes
	case apiOnly:
		return ModeAPI, nil
	case viewOnly:
		return ModeView, nil
	default:
		return ModeFull, nil
	}
}

// HasAPI 是否生成 API 控制器、请求类与 api 路由
func (m Mode) HasAPI() bool { return m != ModeView }

// HasView 是否生成 web 控制器、页面与 web 路由
func (m Mode) HasView() bool { return m != ModeAPI }

// Component 可选组件
type Component string

const (
	ComponentEnum     Component = "enum"
	ComponentObserver Component = "observer"
	ComponentPolicy   Component = "policy"
	ComponentFactory  Component = "factory"
	ComponentTest     Component = "test"
)

// Components 全部可选组件，顺序即生成顺序
var Components = []Component{
	ComponentEnum,
	ComponentObserver,
	ComponentPolicy,
	ComponentFactory,
	ComponentTest,
}

// ParseComponents 解析 --with 的取值，支持重复参数和逗号分隔，结果去重并按 Components 排序
func ParseComponents(values []string) ([]Component, error) {
	selected := make(map[Component]bool)
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			c := Component(part)
			if !c.valid() {
				return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, part)
			}
			selected[c] = true
		}
	}

	var out []Component
	for _, c := range Components {
		if selected[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (c Component) valid() bool {
	for _, known := range Components {
		if c == known {
			return true
		}
	}
	return false
}

// Layout 可配置的目录
type Layout struct {
	PagesDir         string
	APIControllerDir string
}

// DefaultLayout Laravel + Inertia 的默认目录
func DefaultLayout() Layout {
	return Layout{
		PagesDir:         "resources/js/pages",
		APIControllerDir: "app/Http/Controllers/API",
	}
}

// Target 一个待生成的文件
type Target struct {
	Rel       string // 相对项目根目录，正斜杠
	StubID    string
	Component Component
	Migration bool // 路径由时间戳决定，存在性按文件名子串判断

	// Vars 覆盖名称变量，只作用于本目标
	Vars map[string]string
}

// vars 合并名称变量与目标自己的覆盖值
func (t Target) vars(base map[string]string) map[string]string {
	if len(t.Vars) == 0 {
		return base
	}
	merged := make(map[string]string, len(base)+len(t.Vars))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range t.Vars {
		merged[k] = v
	}
	return merged
}

// Pages 每个功能生成的 Vue 页面
var Pages = []string{"Index", "Create", "Edit", "Show"}

// Targets 计算功能在指定模式和组件下的全部文件，顺序即生成顺序
func Targets(name naming.Name, mode Mode, with []Component, layout Layout) []Target {
	if layout.PagesDir == "" || layout.APIControllerDir == "" {
		def := DefaultLayout()
		if layout.PagesDir == "" {
			layout.PagesDir = def.PagesDir
		}
		if layout.APIControllerDir == "" {
			layout.APIControllerDir = def.APIControllerDir
		}
	}

	targets := []Target{
		{Rel: "app/Models/" + name.Model + ".php", StubID: "model.stub"},
		{Rel: project.MigrationsDir + "/" + name.MigrationMarker() + ".php", StubID: "migration.stub", Migration: true},
	}

	if mode.HasAPI() {
		targets = append(targets, Target{
			Rel:    path.Join(layout.APIControllerDir, name.Model+"Controller.php"),
			StubID: "controller.api.stub",
		})
	}
	if mode.HasView() {
		stubID := "controller.stub"
		if mode == ModeView {
			stubID = "controller.view.stub"
		}
		targets = append(targets, Target{
			Rel:    "app/Http/Controllers/" + name.Model + "Controller.php",
			StubID: stubID,
		})
	}

	if mode.HasAPI() {
		targets = append(targets,
			Target{Rel: "app/Http/Requests/Store" + name.Model + "Request.php", StubID: "request.store.stub"},
			Target{Rel: "app/Http/Requests/Update" + name.Model + "Request.php", StubID: "request.update.stub"},
		)
	}

	if mode.HasView() {
		for _, page := range Pages {
			targets = append(targets, Target{
				Rel:    path.Join(layout.PagesDir, name.Plural, page+".vue"),
				StubID: page + ".vue.stub",
			})
		}
	}

	routesDir := ModulesDir + "/" + name.Plural
	if mode.HasAPI() {
		targets = append(targets, Target{Rel: routesDir + "/api.php", StubID: "routes.api.stub"})
	}
	if mode.HasView() {
		stubID := "routes.stub"
		if mode == ModeView {
			stubID = "routes.view.stub"
		}
		targets = append(targets, Target{Rel: routesDir + "/web.php", StubID: stubID})
	}

	targets = append(targets, Target{
		Rel:    "database/seeders/Permission/" + name.SeederClass + ".php",
		StubID: "seeder.permission.stub",
		Vars:   map[string]string{"class": name.SeederClass},
	})

	for _, c := range with {
		targets = append(targets, ComponentTarget(name, c))
	}

	return targets
}

// ComponentTarget 可选组件对应的文件
func ComponentTarget(name naming.Name, c Component) Target {
	t := Target{Component: c}
	switch c {
	case ComponentEnum:
		t.Rel, t.StubID = "app/Enums/"+name.Model+"Status.php", "Enum.stub"
	case ComponentObserver:
		t.Rel, t.StubID = "app/Observers/"+name.Model+"Observer.php", "Observer.stub"
	case ComponentPolicy:
		t.Rel, t.StubID = "app/Policies/"+name.Model+"Policy.php", "policy.stub"
	case ComponentFactory:
		t.Rel, t.StubID = "database/factories/"+name.Model+"Factory.php", "factory.stub"
	case ComponentTest:
		t.Rel, t.StubID = "tests/Feature/"+name.Model+"FeatureTest.php", "tests/FeatureTest.stub"
	}
	return t
}

// ModulesDir 每个功能一个子目录的路由目录
const ModulesDir = "routes/Modules"

// SharedFile 多个功能共享的脚手架文件
type SharedFile struct {
	Rel       string
	StubID    string
	Overwrite bool // --force 时是否覆盖
	APIOnly   bool // 仅在生成 API 控制器时需要
}

// SharedFiles 共享文件清单
var SharedFiles = []SharedFile{
	{Rel: "app/Traits/ApiResponser.php", StubID: "api-responser.trait.stub", APIOnly: true},
	{Rel: project.WebLoaderFile, StubID: project.WebLoaderStub, Overwrite: true},
	{Rel: project.APILoaderFile, StubID: project.APILoaderStub, Overwrite: true},
}
