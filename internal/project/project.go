package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotLaravel 目录不像 Laravel 项目根目录
var ErrNotLaravel = errors.New("not a Laravel project (artisan not found)")

// Project Laravel 项目根目录及常用路径
type Project struct {
	Root string
}

// Open 解析项目根目录；dir 为空时使用当前目录
func Open(dir string) (*Project, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("获取当前目录失败: %w", err)
		}
		dir = cwd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("解析项目路径失败: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("项目目录不可用: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("项目路径不是目录: %s", abs)
	}

	return &Project{Root: abs}, nil
}

// IsLaravel 根目录下存在 artisan
func (p *Project) IsLaravel() bool {
	_, err := os.Stat(filepath.Join(p.Root, "artisan"))
	return err == nil
}

// BasePath 拼接相对项目根目录的路径（使用正斜杠）
func (p *Project) BasePath(rel ...string) string {
	parts := make([]string, 0, len(rel)+1)
	parts = append(parts, p.Root)
	for _, r := range rel {
		parts = append(parts, filepath.FromSlash(r))
	}
	return filepath.Join(parts...)
}

// AppPath app/ 下的路径
func (p *Project) AppPath(rel ...string) string {
	return p.BasePath(append([]string{"app"}, rel...)...)
}

// DatabasePath database/ 下的路径
func (p *Project) DatabasePath(rel ...string) string {
	return p.BasePath(append([]string{"database"}, rel...)...)
}

// ResourcePath resources/ 下的路径
func (p *Project) ResourcePath(rel ...string) string {
	return p.BasePath(append([]string{"resources"}, rel...)...)
}

// RoutesPath routes/ 下的路径
func (p *Project) RoutesPath(rel ...string) string {
	return p.BasePath(append([]string{"routes"}, rel...)...)
}

// Rel 返回相对项目根目录的正斜杠路径，无法计算时原样返回
func (p *Project) Rel(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// Contains 判断 path 是否位于项目根目录之内（不含根目录本身）
func (p *Project) Contains(path string) bool {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
