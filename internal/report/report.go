package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/YangQing-Lin/featgen/internal/utils"
)

// Entry 报告中的单个文件
type Entry struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Stub   string `json:"stub,omitempty"`
	Source string `json:"source,omitempty"`
}

// Report 一次 create / delete 运行的机器可读记录
type Report struct {
	RunID      string    `json:"run_id"`
	Command    string    `json:"command"`
	Feature    string    `json:"feature"`
	Mode       string    `json:"mode,omitempty"`
	Components []string  `json:"components,omitempty"`
	DryRun     bool      `json:"dry_run"`
	Force      bool      `json:"force"`
	Project    string    `json:"project"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Entries    []Entry   `json:"entries"`
	Warnings   []string  `json:"warnings,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// New 创建报告并分配运行 ID
func New(command, feature, project string) *Report {
	return &Report{
		RunID:     uuid.New().String(),
		Command:   command,
		Feature:   feature,
		Project:   project,
		StartedAt: time.Now().UTC(),
		Entries:   []Entry{},
	}
}

// Add 追加一条文件记录
func (r *Report) Add(path, kind, stub, source string) {
	r.Entries = append(r.Entries, Entry{Path: path, Kind: kind, Stub: stub, Source: source})
}

// Warn 追加一条警告
func (r *Report) Warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Fail 记录导致运行中止的错误
func (r *Report) Fail(err error) {
	if err != nil {
		r.Error = err.Error()
	}
}

// Count 统计指定类型的条目数
func (r *Report) Count(kind string) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Write 写入 JSON 文件，path 为空时不做任何事
func (r *Report) Write(path string) error {
	if path == "" {
		return nil
	}
	r.FinishedAt = time.Now().UTC()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建报告目录失败: %w", err)
		}
	}
	if err := utils.WriteJSONFile(path, r, 0644); err != nil {
		return fmt.Errorf("写入报告失败: %w", err)
	}
	return nil
}
