package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// MultiSelectModel 多选列表，空格切换勾选
type MultiSelectModel struct {
	title     string
	help      string
	options   []Option
	checked   map[int]bool
	cursor    int
	done      bool
	cancelled bool
}

// NewMultiSelect 创建多选列表，preset 中的值默认勾选
func NewMultiSelect(title, help string, options []Option, preset []string) MultiSelectModel {
	checked := make(map[int]bool)
	for i, opt := range options {
		for _, v := range preset {
			if opt.Value == v {
				checked[i] = true
			}
		}
	}
	return MultiSelectModel{title: title, help: help, options: options, checked: checked}
}

func (m MultiSelectModel) Init() tea.Cmd { return nil }

func (m MultiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.options) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.options) - 1
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case " ", "space", "x":
		m.checked[m.cursor] = !m.checked[m.cursor]
	case "a":
		all := len(m.Values()) == len(m.options)
		for i := range m.options {
			m.checked[i] = !all
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MultiSelectModel) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(m.title) + "\n\n")

	for i, opt := range m.options {
		box := inactiveMarkerStyle.Render("[ ]")
		if m.checked[i] {
			box = activeMarkerStyle.Render("[x]")
		}
		style := normalItemStyle
		if i == m.cursor {
			style = selectedItemStyle
		}

		line := fmt.Sprintf("%s %s", box, style.Render(opt.Label))
		if opt.Description != "" {
			line += " " + descriptionStyle.Render(opt.Description)
		}
		s.WriteString(line + "\n")
	}

	s.WriteString("\n" + helpStyle.Render(m.help))
	return s.String()
}

// Values 按选项顺序返回已勾选的值
func (m MultiSelectModel) Values() []string {
	var values []string
	for i, opt := range m.options {
		if m.checked[i] {
			values = append(values, opt.Value)
		}
	}
	return values
}

// Confirmed 是否按 Enter 确认
func (m MultiSelectModel) Confirmed() bool {
	return m.done && !m.cancelled
}
