package stub

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/YangQing-Lin/featgen/internal/utils"
)

// Entry 内置模板及其覆盖状态
type Entry struct {
	ID         string
	Overridden bool
	Path       string // 自定义模板路径（仅 Overridden 时有值）
}

// List 列出内置模板，标记被项目自定义目录覆盖的条目
func (r *Renderer) List() ([]Entry, error) {
	ids, err := BuiltinIDs()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entry := Entry{ID: id}
		if r.overrideDir != "" {
			custom := filepath.Join(r.overrideDir, filepath.FromSlash(id))
			if utils.FileExists(custom) {
				entry.Overridden = true
				entry.Path = custom
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// PublishResult 单个模板的发布结果
type PublishResult struct {
	ID      string
	Path    string
	Written bool
}

// Publish 将内置模板复制到自定义目录，已存在的文件仅在 force 时覆盖
func (r *Renderer) Publish(force bool) ([]PublishResult, error) {
	if r.overrideDir == "" {
		return nil, errors.New("no override directory configured")
	}

	ids, err := BuiltinIDs()
	if err != nil {
		return nil, err
	}

	results := make([]PublishResult, 0, len(ids))
	for _, id := range ids {
		target := filepath.Join(r.overrideDir, filepath.FromSlash(id))
		result := PublishResult{ID: id, Path: target}

		if _, err := os.Stat(target); err == nil && !force {
			results = append(results, result)
			continue
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return results, fmt.Errorf("stat %s: %w", target, err)
		}

		content, err := r.loadBuiltin(id)
		if err != nil {
			return results, err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return results, fmt.Errorf("create directory: %w", err)
		}
		if err := utils.AtomicWriteFile(target, []byte(content), 0644); err != nil {
			return results, err
		}

		result.Written = true
		results = append(results, result)
	}

	return results, nil
}
