package tui

import "github.com/charmbracelet/lipgloss"

var (
	// 颜色定义
	primaryColor   = lipgloss.Color("#007AFF")
	successColor   = lipgloss.Color("#34C759")
	dangerColor    = lipgloss.Color("#FF3B30")
	subtleColor    = lipgloss.Color("#8E8E93")
	mutedTextColor = lipgloss.Color("#6C6C70")
	onPrimaryColor = lipgloss.Color("#FFFFFF")

	// 标题样式
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	// 帮助文本样式
	helpStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Padding(0, 1)

	// 选中项样式
	selectedItemStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(onPrimaryColor).
				Bold(true).
				Padding(0, 1)

	// 普通项样式
	normalItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// 说明文字样式
	descriptionStyle = lipgloss.NewStyle().
				Foreground(mutedTextColor)

	// 勾选标记样式
	activeMarkerStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	inactiveMarkerStyle = lipgloss.NewStyle().
				Foreground(subtleColor)

	// 输入框样式
	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	// 错误消息样式
	errorMessageStyle = lipgloss.NewStyle().
				Foreground(dangerColor).
				Bold(true)
)
