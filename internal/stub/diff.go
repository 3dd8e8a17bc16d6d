package stub

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// NoDifferences 两段文本完全相同时 Diff 的返回值
const NoDifferences = "No differences found."

// diffContext 每段改动前后保留的相同行数
const diffContext = 3

// Diff 按行比较现有文件与新渲染的内容，输出带 -/+ 前缀的差异
func Diff(oldText, newText, oldLabel, newLabel string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	if len(diffs) == 0 || (len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual) {
		return NoDifferences
	}

	var result strings.Builder
	result.WriteString("--- " + oldLabel + "\n")
	result.WriteString("+++ " + newLabel + "\n")

	for i, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writePrefixed(&result, "-", chunk)
		case diffmatchpatch.DiffInsert:
			writePrefixed(&result, "+", chunk)
		default:
			head, tail := chunk, []string(nil)
			first, last := i == 0, i == len(diffs)-1
			switch {
			case first && len(chunk) > diffContext:
				head = nil
				tail = chunk[len(chunk)-diffContext:]
			case last && len(chunk) > diffContext:
				head = chunk[:diffContext]
			case !first && !last && len(chunk) > diffContext*2:
				head = chunk[:diffContext]
				tail = chunk[len(chunk)-diffContext:]
			}
			writePrefixed(&result, " ", head)
			if tail != nil {
				result.WriteString("@@\n")
				writePrefixed(&result, " ", tail)
			}
		}
	}

	return result.String()
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

func writePrefixed(b *strings.Builder, prefix string, lines []string) {
	for _, line := range lines {
		b.WriteString(prefix + line + "\n")
	}
}

// FormatDiff 为终端输出着色
func FormatDiff(diff string) string {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	var result strings.Builder
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			result.WriteString(bold(line))
		case strings.HasPrefix(line, "-"):
			result.WriteString(red(line))
		case strings.HasPrefix(line, "+"):
			result.WriteString(green(line))
		case strings.HasPrefix(line, "@@"):
			result.WriteString(cyan(line))
		default:
			result.WriteString(line)
		}
		result.WriteString("\n")
	}

	return result.String()
}
