package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MigrationsDir 迁移文件目录
const MigrationsDir = "database/migrations"

// CoreMigrationPrefix Laravel 骨架自带迁移的文件名前缀（如 create_users_table）
const CoreMigrationPrefix = "0001_01_01_"

// migrationTimestamp 与 artisan make:migration 的文件名前缀一致
const migrationTimestamp = "2006_01_02_150405"

// FindMigrations 返回文件名包含 marker 的迁移文件（绝对路径，按名称排序）
func (p *Project) FindMigrations(marker string) ([]string, error) {
	pattern := filepath.Join(p.BasePath(MigrationsDir), "*"+marker+"*.php")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("查找迁移文件失败: %w", err)
	}

	// 目录名里的 glob 元字符可能造成误匹配，按文件名再过滤一次
	var found []string
	for _, match := range matches {
		if strings.Contains(filepath.Base(match), marker) {
			found = append(found, match)
		}
	}
	sort.Strings(found)
	return found, nil
}

// IsCoreMigration 判断迁移是否随 Laravel 骨架提供，而非 featgen 生成
func IsCoreMigration(path string) bool {
	return strings.HasPrefix(filepath.Base(path), CoreMigrationPrefix)
}

// MigrationPath 生成新迁移文件的路径
func (p *Project) MigrationPath(marker string, now time.Time) string {
	return p.BasePath(MigrationsDir, now.Format(migrationTimestamp)+"_"+marker+".php")
}
