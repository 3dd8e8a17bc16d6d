package testutil

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
)

// CreateTempDir 创建临时测试目录
func CreateTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "featgen-test-*")
	if err != nil {
		t.Fatalf("创建临时目录失败: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// CreateTempFile 创建临时测试文件
func CreateTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}
	return path
}

// AssertFileExists 断言文件存在
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("文件不存在: %s", path)
	}
}

// AssertFileNotExists 断言文件不存在
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("文件不应该存在: %s", path)
	}
}

// AssertFileContent 断言文件内容
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取文件失败: %v", err)
	}
	if string(content) != expected {
		t.Errorf("文件内容不匹配\n期望: %s\n实际: %s", expected, string(content))
	}
}

// AssertFileMode 断言文件权限（仅在非Windows系统）
func AssertFileMode(t *testing.T, path string, expected os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("获取文件信息失败: %v", err)
	}
	actual := info.Mode().Perm()
	if actual != expected {
		t.Errorf("文件权限不匹配\n期望: %o\n实际: %o", expected, actual)
	}
}

// WithTempHome 在临时 HOME 下执行 fn
func WithTempHome(t *testing.T, fn func(home string)) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	fn(home)
}

// WithTempCWD 切换到临时目录执行 fn，结束后恢复
func WithTempCWD(t *testing.T, fn func(cwd string)) {
	t.Helper()
	original, err := os.Getwd()
	if err != nil {
		t.Fatalf("获取当前工作目录失败: %v", err)
	}

	dir := t.TempDir()
	// macOS 的 /var 是 /private/var 的符号链接
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("切换工作目录失败: %v", err)
	}
	defer func() {
		if err := os.Chdir(original); err != nil {
			t.Fatalf("恢复工作目录失败: %v", err)
		}
	}()

	fn(dir)
}

// CaptureOutput 捕获 fn 执行期间的 stdout 和 stderr（包括 color 包的输出）
func CaptureOutput(t *testing.T, fn func()) (string, string) {
	t.Helper()

	oldStdout, oldStderr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("创建管道失败: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("创建管道失败: %v", err)
	}

	oldColorOut, oldColorErr := color.Output, color.Error
	os.Stdout, os.Stderr = outW, errW
	color.Output, color.Error = outW, errW

	outCh := make(chan string)
	errCh := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, outR)
		outCh <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, errR)
		errCh <- buf.String()
	}()

	defer func() {
		os.Stdout, os.Stderr = oldStdout, oldStderr
		color.Output, color.Error = oldColorOut, oldColorErr
	}()
	fn()

	outW.Close()
	errW.Close()
	stdout := <-outCh
	stderr := <-errCh
	outR.Close()
	errR.Close()

	return stdout, stderr
}

// BubbleTeaTestHelper 依次发送按键并返回最终模型
func BubbleTeaTestHelper(t *testing.T, model tea.Model, keys []string) tea.Model {
	t.Helper()
	current := model
	for _, key := range keys {
		current, _ = current.Update(KeyMsg(key))
	}
	return current
}

// KeyMsg 将按键名转换为 tea.KeyMsg
func KeyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// LaravelProject 创建一个最小的 Laravel 项目骨架
func LaravelProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	CreateTempFile(t, root, "artisan", "#!/usr/bin/env php\n<?php\n")
	CreateTempFile(t, root, "composer.json", `{
    "name": "laravel/laravel",
    "require": {
        "php": "^8.2",
        "laravel/framework": "^11.31"
    }
}
`)
	CreateTempFile(t, root, filepath.Join("routes", "web.php"), "<?php\n\nuse Illuminate\\Support\\Facades\\Route;\n\nRoute::get('/', function () {\n    return view('welcome');\n});\n")
	CreateTempFile(t, root, filepath.Join("app", "Providers", "AppServiceProvider.php"), `<?php

namespace App\Providers;

use Illuminate\Support\ServiceProvider;

class AppServiceProvider extends ServiceProvider
{
    /**
     * Register any application services.
     */
    public function register(): void
    {
        //
    }

    /**
     * Bootstrap any application services.
     */
    public function boot(): void
    {
        //
    }
}
`)
	CreateTempFile(t, root, filepath.Join("app", "Http", "Controllers", "Controller.php"), "<?php\n\nnamespace App\\Http\\Controllers;\n\nabstract class Controller\n{\n    //\n}\n")
	if err := os.MkdirAll(filepath.Join(root, "database", "migrations"), 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	CreateTempFile(t, root, filepath.Join("database", "migrations", "0001_01_01_000000_create_users_table.php"), "<?php\n// users\n")

	return root
}

// Snapshot 记录目录树下每个路径（目录以 / 结尾）及文件内容
func Snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			tree[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("遍历目录失败: %v", err)
	}
	return tree
}

// TreeDiff 比较两次快照，返回排序后的差异描述
func TreeDiff(before, after map[string]string) []string {
	var diffs []string
	for path, content := range before {
		got, ok := after[path]
		switch {
		case !ok:
			diffs = append(diffs, "missing: "+path)
		case got != content:
			diffs = append(diffs, "changed: "+path)
		}
	}
	for path := range after {
		if _, ok := before[path]; !ok {
			diffs = append(diffs, "extra: "+path)
		}
	}
	sort.Strings(diffs)
	return diffs
}

// AssertSameTree 断言两次快照一致
func AssertSameTree(t *testing.T, before, after map[string]string) {
	t.Helper()
	if diffs := TreeDiff(before, after); len(diffs) > 0 {
		t.Errorf("目录树不一致:\n%v", diffs)
	}
}
