package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Version 当前版本
const Version = "0.3.0"

// BuildDate 构建日期（由编译时注入）
var BuildDate = "unknown"

// GitCommit Git 提交哈希（由编译时注入）
var GitCommit = "unknown"

// GetVersion 获取版本信息
func GetVersion() string { return Version }

// GetBuildDate 获取构建日期
func GetBuildDate() string { return BuildDate }

// GetGitCommit 获取 Git 提交哈希
func GetGitCommit() string { return GitCommit }

// Semver 解析后的当前版本
func Semver() (*semver.Version, error) {
	return semver.NewVersion(Version)
}

// Summary 单行版本摘要，含注入的构建信息
func Summary() string {
	s := fmt.Sprintf("featgen %s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
	if GitCommit != "unknown" {
		s += " commit " + GitCommit
	}
	if BuildDate != "unknown" {
		s += " built " + BuildDate
	}
	return s
}
