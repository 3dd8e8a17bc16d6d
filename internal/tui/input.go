package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputModel 单行输入框；validate 返回错误时不允许提交
type InputModel struct {
	title     string
	help      string
	input     textinput.Model
	validate  func(string) error
	err       error
	done      bool
	cancelled bool
}

// NewInput 创建输入框
func NewInput(title, help, placeholder string, validate func(string) error) InputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	return InputModel{title: title, help: help, input: ti, validate: validate}
}

func (m InputModel) Init() tea.Cmd { return textinput.Blink }

func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if m.validate != nil {
				if err := m.validate(m.Value()); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

func (m InputModel) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(m.title) + "\n\n")
	s.WriteString(inputBoxStyle.Render(m.input.View()) + "\n")
	if m.err != nil {
		s.WriteString(errorMessageStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + helpStyle.Render(m.help))
	return s.String()
}

// Value 去除首尾空白后的输入
func (m InputModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Submitted 是否已通过校验并提交
func (m InputModel) Submitted() bool {
	return m.done && !m.cancelled
}
