package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled 用户按 ESC 取消
var ErrCancelled = errors.New("cancelled")

// programRunner 运行 bubbletea 程序并返回最终模型，测试中可替换
var programRunner = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// RunSelect 显示单选菜单并返回选中项的值
func RunSelect(title, help string, options []Option, initial int) (string, error) {
	final, err := programRunner(NewSelect(title, help, options, initial))
	if err != nil {
		return "", fmt.Errorf("运行菜单失败: %w", err)
	}

	m, ok := final.(SelectModel)
	if !ok {
		return "", fmt.Errorf("unexpected model %T", final)
	}
	opt, ok := m.Selected()
	if !ok {
		return "", ErrCancelled
	}
	return opt.Value, nil
}

// RunMultiSelect 显示多选列表并返回勾选的值
func RunMultiSelect(title, help string, options []Option, preset []string) ([]string, error) {
	final, err := programRunner(NewMultiSelect(title, help, options, preset))
	if err != nil {
		return nil, fmt.Errorf("运行菜单失败: %w", err)
	}

	m, ok := final.(MultiSelectModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model %T", final)
	}
	if !m.Confirmed() {
		return nil, ErrCancelled
	}
	return m.Values(), nil
}

// RunInput 显示输入框并返回输入内容
func RunInput(title, help, placeholder string, validate func(string) error) (string, error) {
	final, err := programRunner(NewInput(title, help, placeholder, validate))
	if err != nil {
		return "", fmt.Errorf("运行输入框失败: %w", err)
	}

	m, ok := final.(InputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model %T", final)
	}
	if !m.Submitted() {
		return "", ErrCancelled
	}
	return m.Value(), nil
}
