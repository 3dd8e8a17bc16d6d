package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const frameworkPackage = "laravel/framework"

// ErrFrameworkUnknown 无法从 composer 文件确定框架版本
var ErrFrameworkUnknown = errors.New("laravel/framework version unknown")

type composerLock struct {
	Packages []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"packages"`
}

type composerJSON struct {
	Require map[string]string `json:"require"`
}

// FrameworkVersion 返回项目使用的 Laravel 版本
// 优先读取 composer.lock 的精确版本，否则取 composer.json 约束中的最低版本
func (p *Project) FrameworkVersion() (*semver.Version, error) {
	if data, err := os.ReadFile(p.BasePath("composer.lock")); err == nil {
		var lock composerLock
		if err := json.Unmarshal(data, &lock); err != nil {
			return nil, fmt.Errorf("解析 composer.lock 失败: %w", err)
		}
		for _, pkg := range lock.Packages {
			if pkg.Name == frameworkPackage {
				v, err := semver.NewVersion(pkg.Version)
				if err != nil {
					return nil, fmt.Errorf("%w: %s", ErrFrameworkUnknown, pkg.Version)
				}
				return v, nil
			}
		}
	}

	data, err := os.ReadFile(p.BasePath("composer.json"))
	if err != nil {
		return nil, ErrFrameworkUnknown
	}
	var manifest composerJSON
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("解析 composer.json 失败: %w", err)
	}

	constraint, ok := manifest.Require[frameworkPackage]
	if !ok {
		return nil, ErrFrameworkUnknown
	}
	return lowestVersion(constraint)
}

// lowestVersion 从 "^11.31" 或 "^10.0|^11.0" 这类约束中取最低的版本号
func lowestVersion(constraint string) (*semver.Version, error) {
	// composer 允许单个 | 表示"或"
	normalized := strings.ReplaceAll(strings.ReplaceAll(constraint, "||", "|"), "|", "||")
	if _, err := semver.NewConstraint(normalized); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFrameworkUnknown, constraint)
	}

	var lowest *semver.Version
	for _, field := range strings.FieldsFunc(constraint, func(r rune) bool {
		return r == '|' || r == ',' || r == ' '
	}) {
		field = strings.TrimLeft(field, "^~>=<v")
		field = strings.TrimSuffix(strings.TrimSuffix(field, ".*"), ".x")
		v, err := semver.NewVersion(field)
		if err != nil {
			continue
		}
		if lowest == nil || v.LessThan(lowest) {
			lowest = v
		}
	}

	if lowest == nil {
		return nil, fmt.Errorf("%w: %s", ErrFrameworkUnknown, constraint)
	}
	return lowest, nil
}

var streamlinedSkeleton = semver.MustParse("11.0.0")

// StreamlinedSkeleton Laravel 11 起默认不再包含 routes/api.php
func (p *Project) StreamlinedSkeleton() bool {
	v, err := p.FrameworkVersion()
	if err != nil {
		return false
	}
	return !v.LessThan(streamlinedSkeleton)
}
