package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Option 菜单中的一项
type Option struct {
	Value       string
	Label       string
	Description string
}

// SelectModel 单选菜单，↑/↓ 循环移动，Enter 确认，ESC 取消
type SelectModel struct {
	title     string
	help      string
	options   []Option
	cursor    int
	chosen    bool
	cancelled bool
}

// NewSelect 创建单选菜单，initial 为默认高亮项
func NewSelect(title, help string, options []Option, initial int) SelectModel {
	if initial < 0 || initial >= len(options) {
		initial = 0
	}
	return SelectModel{title: title, help: help, options: options, cursor: initial}
}

func (m SelectModel) Init() tea.Cmd { return nil }

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	case "enter":
		m.chosen = true
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SelectModel) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(m.title) + "\n\n")

	for i, opt := range m.options {
		marker := inactiveMarkerStyle.Render("○")
		style := normalItemStyle
		if i == m.cursor {
			marker = activeMarkerStyle.Render("●")
			style = selectedItemStyle
		}

		line := fmt.Sprintf("%s %s", marker, style.Render(opt.Label))
		if opt.Description != "" {
			line += " " + descriptionStyle.Render(opt.Description)
		}
		s.WriteString(line + "\n")
	}

	s.WriteString("\n" + helpStyle.Render(m.help))
	return s.String()
}

// Selected 返回确认的选项；取消或未确认时 ok 为 false
func (m SelectModel) Selected() (Option, bool) {
	if !m.chosen || m.cancelled || len(m.options) == 0 {
		return Option{}, false
	}
	return m.options[m.cursor], true
}
