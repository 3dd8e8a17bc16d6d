package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

var (
	// ErrEmptyName 名称为空
	ErrEmptyName = errors.New("feature name is required")
	// ErrInvalidName 名称无法转换为合法的类名
	ErrInvalidName = errors.New("invalid feature name")
)

var (
	inputPattern  = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)
	studlyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
)

// Name 功能名称及其全部派生形式
type Name struct {
	Input       string // 用户输入
	Model       string // TestUser
	Plural      string // TestUsers
	Singular    string // TestUser
	Kebab       string // test-users
	Table       string // test_users
	Variable    string // testUser
	Permission  string // test users
	SeederClass string // TestUsersPermissionSeeder
}

// Parse 从用户输入推导所有名称形式
func Parse(raw string) (Name, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Name{}, ErrEmptyName
	}

	if !inputPattern.MatchString(input) {
		return Name{}, fmt.Errorf("%w: %q", ErrInvalidName, raw)
	}

	model := Studly(input)
	if !studlyPattern.MatchString(model) {
		return Name{}, fmt.Errorf("%w: %q", ErrInvalidName, raw)
	}

	plural := PluralStudly(model)
	table := strcase.ToSnake(plural)

	return Name{
		Input:       input,
		Model:       model,
		Plural:      plural,
		Singular:    SingularStudly(model),
		Kebab:       strcase.ToKebab(plural),
		Table:       table,
		Variable:    strcase.ToLowerCamel(model),
		Permission:  strings.ReplaceAll(table, "_", " "),
		SeederClass: plural + "PermissionSeeder",
	}, nil
}

// Studly 转换为 StudlyCase（首字母大写的驼峰）
func Studly(s string) string {
	return strcase.ToCamel(strings.TrimSpace(s))
}

// PluralStudly 将最后一个单词变为复数
func PluralStudly(s string) string {
	return inflectLast(s, inflection.Plural)
}

// SingularStudly 将最后一个单词变为单数
func SingularStudly(s string) string {
	return inflectLast(s, inflection.Singular)
}

func inflectLast(s string, fn func(string) string) string {
	words := strings.Split(strcase.ToSnake(s), "_")
	last := len(words) - 1
	words[last] = fn(words[last])
	return strcase.ToCamel(strings.Join(words, "_"))
}

// Vars 返回所有模板共享的占位符
func (n Name) Vars() map[string]string {
	return map[string]string{
		"name":       n.Model,
		"model":      n.Model,
		"class":      n.Model,
		"plural":     n.Plural,
		"singular":   n.Singular,
		"kebab":      n.Kebab,
		"table":      n.Table,
		"snake":      n.Table,
		"variable":   n.Variable,
		"permission": n.Permission,
	}
}

// MigrationMarker 迁移文件名中用于识别本功能的子串
func (n Name) MigrationMarker() string {
	return "create_" + n.Table + "_table"
}
