package stub

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed stubs views
var builtinFS embed.FS

// DefaultOverrideDir 项目内自定义模板目录（相对项目根目录）
const DefaultOverrideDir = "stubs/laravel-module-generator"

// ErrNotFound 模板在所有位置都不存在
var ErrNotFound = errors.New("stub not found")

// Source 模板内容的来源
type Source string

const (
	SourceCustom   Source = "custom"
	SourceBuiltin  Source = "builtin"
	SourceFallback Source = "fallback"
)

// Rendered 渲染结果
type Rendered struct {
	ID      string
	Content string
	Source  Source
}

// Renderer 模板渲染器：先查项目自定义目录，再查内置模板
type Renderer struct {
	overrideDir string
	builtinDirs []string
}

// NewRenderer 创建渲染器，overrideDir 为空表示不使用自定义模板
func NewRenderer(overrideDir string) *Renderer {
	return &Renderer{
		overrideDir: overrideDir,
		builtinDirs: []string{"stubs", "views"},
	}
}

// OverrideDir 返回自定义模板目录
func (r *Renderer) OverrideDir() string {
	return r.overrideDir
}

// Load 读取模板原文
func (r *Renderer) Load(id string) (string, Source, error) {
	if r.overrideDir != "" {
		custom := filepath.Join(r.overrideDir, filepath.FromSlash(id))
		data, err := os.ReadFile(custom)
		if err == nil {
			return string(data), SourceCustom, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", "", fmt.Errorf("read custom stub %s: %w", id, err)
		}
	}

	text, err := r.loadBuiltin(id)
	if err != nil {
		return "", "", err
	}
	return text, SourceBuiltin, nil
}

// Render 渲染模板；找不到时退回内联基础模板
func (r *Renderer) Render(id string, vars map[string]string) (Rendered, error) {
	text, source, err := r.Load(id)
	if errors.Is(err, ErrNotFound) {
		text, source, err = basicStub(id), SourceFallback, nil
	}
	if err != nil {
		return Rendered{}, err
	}

	return Rendered{ID: id, Content: Replace(text, vars), Source: source}, nil
}

// RenderStrict 渲染模板；找不到时返回 ErrNotFound
func (r *Renderer) RenderStrict(id string, vars map[string]string) (Rendered, error) {
	text, source, err := r.Load(id)
	if err != nil {
		return Rendered{}, err
	}

	return Rendered{ID: id, Content: Replace(text, vars), Source: source}, nil
}

// Replace 将每个 {{ key }} 替换为对应的值
func Replace(text string, vars map[string]string) string {
	if len(vars) == 0 {
		return text
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{{ "+key+" }}", vars[key])
	}

	return strings.NewReplacer(pairs...).Replace(text)
}

// BuiltinIDs 列出所有内置模板 ID（按字母排序）
func BuiltinIDs() ([]string, error) {
	var ids []string
	for _, dir := range []string{"stubs", "views"} {
		err := fs.WalkDir(builtinFS, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, ".stub") {
				return nil
			}
			ids = append(ids, strings.TrimPrefix(p, dir+"/"))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(ids)
	return ids, nil
}

// Builtin 返回内置模板原文
func Builtin(id string) (string, error) {
	return NewRenderer("").loadBuiltin(id)
}

func (r *Renderer) loadBuiltin(id string) (string, error) {
	// embed.FS 只接受正斜杠路径
	for _, dir := range r.builtinDirs {
		if data, err := builtinFS.ReadFile(path.Join(dir, id)); err == nil {
			return string(data), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, id)
}
