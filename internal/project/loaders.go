package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/YangQing-Lin/featgen/internal/stub"
	"github.com/YangQing-Lin/featgen/internal/utils"
)

const (
	WebLoaderFile = "routes/modules.php"
	APILoaderFile = "routes/api-modules.php"

	WebLoaderStub = "modules-loader.stub"
	APILoaderStub = "api-modules-loader.stub"

	WebRequire = "require __DIR__ . '/modules.php';"
	APIRequire = "require __DIR__ . '/api-modules.php';"
)

// 判断是否已集成时不要求分号，兼容 require_once
var (
	webMarkers = []string{"require __DIR__ . '/modules.php'", "require_once __DIR__ . '/modules.php'"}
	apiMarkers = []string{"require __DIR__ . '/api-modules.php'", "require_once __DIR__ . '/api-modules.php'"}
)

// LoaderStatus 路由加载器的安装与集成状态
type LoaderStatus struct {
	WebLoaderExists bool
	APILoaderExists bool
	WebIntegrated   bool
	APIIntegrated   bool
	HasAppRoutes    bool // routes/app.php 存在
	HasWebRoutes    bool
	HasAPIRoutes    bool
}

// NeedsInstall 任一加载器尚未集成到路由文件
func (s LoaderStatus) NeedsInstall() bool {
	return !s.WebIntegrated || !s.APIIntegrated
}

// WebTarget 应写入 web 加载器 require 的路由文件（优先 routes/app.php）
func (s LoaderStatus) WebTarget() string {
	switch {
	case s.HasAppRoutes:
		return "routes/app.php"
	case s.HasWebRoutes:
		return "routes/web.php"
	default:
		return ""
	}
}

// DetectLoaders 检查加载器文件及其 require 语句
func (p *Project) DetectLoaders() LoaderStatus {
	status := LoaderStatus{
		WebLoaderExists: utils.FileExists(p.BasePath(WebLoaderFile)),
		APILoaderExists: utils.FileExists(p.BasePath(APILoaderFile)),
	}

	if content, ok := p.readOptional("routes/web.php"); ok {
		status.HasWebRoutes = true
		status.WebIntegrated = containsAny(content, webMarkers)
	}
	if content, ok := p.readOptional("routes/app.php"); ok {
		status.HasAppRoutes = true
		status.WebIntegrated = status.WebIntegrated || containsAny(content, webMarkers)
	}
	if content, ok := p.readOptional("routes/api.php"); ok {
		status.HasAPIRoutes = true
		status.APIIntegrated = containsAny(content, apiMarkers)
	}

	return status
}

// ChangeKind 对单个文件的处理结果
type ChangeKind string

const (
	ChangeCreated     ChangeKind = "created"
	ChangeOverwritten ChangeKind = "overwritten"
	ChangeExists      ChangeKind = "exists"
	ChangeIntegrated  ChangeKind = "integrated"
	ChangeAlready     ChangeKind = "already"
	ChangeDeclined    ChangeKind = "declined"
	ChangeMissing     ChangeKind = "missing"
)

// Change 加载器安装过程中的一步
type Change struct {
	Path string
	Kind ChangeKind
}

// InstallOptions modules install 的选项
type InstallOptions struct {
	Force bool
	// Confirm 在路由文件疑似已通过其他方式引入加载器时询问；为 nil 视为拒绝
	Confirm func(path string) bool
}

// WriteLoaders 写入两个加载器文件；已存在的文件仅在 force 时覆盖
// 模板缺失时返回 stub.ErrNotFound，且不写入该文件
func (p *Project) WriteLoaders(r *stub.Renderer, force bool) ([]Change, error) {
	var changes []Change
	for _, loader := range []struct{ file, id string }{
		{WebLoaderFile, WebLoaderStub},
		{APILoaderFile, APILoaderStub},
	} {
		change, err := p.writeLoader(r, loader.file, loader.id, force)
		if err != nil {
			return changes, err
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func (p *Project) writeLoader(r *stub.Renderer, file, id string, force bool) (Change, error) {
	path := p.BasePath(file)
	exists := utils.FileExists(path)
	if exists && !force {
		return Change{Path: file, Kind: ChangeExists}, nil
	}

	rendered, err := r.RenderStrict(id, nil)
	if err != nil {
		return Change{Path: file, Kind: ChangeMissing}, err
	}
	if err := os.MkdirAll(p.RoutesPath(), 0755); err != nil {
		return Change{}, fmt.Errorf("创建 routes 目录失败: %w", err)
	}
	if err := utils.AtomicWriteFile(path, []byte(rendered.Content), 0644); err != nil {
		return Change{}, err
	}

	if exists {
		return Change{Path: file, Kind: ChangeOverwritten}, nil
	}
	return Change{Path: file, Kind: ChangeCreated}, nil
}

// InstallLoaders 写入加载器并把 require 语句追加到路由文件（modules install）
func (p *Project) InstallLoaders(r *stub.Renderer, opts InstallOptions) ([]Change, error) {
	changes, err := p.WriteLoaders(r, opts.Force)
	if err != nil {
		return changes, err
	}

	status := p.DetectLoaders()

	webTarget := status.WebTarget()
	if webTarget == "" {
		changes = append(changes, Change{Path: "routes/web.php", Kind: ChangeMissing})
	} else {
		change, err := p.integrate(webTarget, WebRequire, "modules.php", "// Auto-load module routes", webMarkers, opts)
		if err != nil {
			return changes, err
		}
		changes = append(changes, change)
	}

	if !status.HasAPIRoutes {
		changes = append(changes, Change{Path: "routes/api.php", Kind: ChangeMissing})
	} else {
		change, err := p.integrate("routes/api.php", APIRequire, "api-modules.php", "// Auto-load API module routes", apiMarkers, opts)
		if err != nil {
			return changes, err
		}
		changes = append(changes, change)
	}

	return changes, nil
}

func (p *Project) integrate(file, line, loaderName, comment string, markers []string, opts InstallOptions) (Change, error) {
	path := p.BasePath(file)
	data, err := os.ReadFile(path)
	if err != nil {
		return Change{}, fmt.Errorf("读取 %s 失败: %w", file, err)
	}
	content := string(data)

	if containsAny(content, markers) {
		return Change{Path: file, Kind: ChangeAlready}, nil
	}

	if !opts.Force && strings.Contains(content, loaderName) {
		if opts.Confirm == nil || !opts.Confirm(file) {
			return Change{Path: file, Kind: ChangeDeclined}, nil
		}
	}

	content = strings.TrimRight(content, " \t\r\n") + "\n\n" + comment + "\n" + line + "\n"
	if err := utils.AtomicWriteFile(path, []byte(content), 0); err != nil {
		return Change{}, err
	}
	return Change{Path: file, Kind: ChangeIntegrated}, nil
}

func (p *Project) readOptional(rel string) (string, bool) {
	data, err := os.ReadFile(p.BasePath(rel))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// IsPristine 文件内容与渲染后的模板逐字节一致；文件不存在返回 false
func (p *Project) IsPristine(r *stub.Renderer, rel, id string, vars map[string]string) (bool, error) {
	data, err := os.ReadFile(p.BasePath(rel))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	rendered, err := r.RenderStrict(id, vars)
	if errors.Is(err, stub.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(data) == rendered.Content, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
