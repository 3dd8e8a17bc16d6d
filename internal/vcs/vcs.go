package vcs

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Uncommitted 返回 paths 中在 git 工作区里有未提交改动（含未跟踪）的文件
// root 不在 git 仓库中时返回 nil
func Uncommitted(root string, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("打开 git 仓库失败: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("读取工作区失败: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("读取 git 状态失败: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	prefix, err := filepath.Rel(wt.Filesystem.Root(), absRoot)
	if err != nil {
		return nil, fmt.Errorf("计算仓库相对路径失败: %w", err)
	}

	var dirty []string
	for _, rel := range paths {
		key := filepath.ToSlash(filepath.Join(prefix, filepath.FromSlash(rel)))
		key = strings.TrimPrefix(key, "./")
		s, ok := status[key]
		if !ok {
			continue
		}
		if s.Worktree == git.Unmodified && s.Staging == git.Unmodified {
			continue
		}
		dirty = append(dirty, rel)
	}

	sort.Strings(dirty)
	return dirty, nil
}
