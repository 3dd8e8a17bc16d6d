package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/YangQing-Lin/featgen/internal/utils"
)

// Languages 支持的界面语言
var Languages = []string{"en", "id"}

// AppSettings 用户级设置
type AppSettings struct {
	Language string `json:"language"` // 语言: "en" 或 "id"
	NoColor  bool   `json:"noColor"`  // 关闭彩色输出
}

// Manager 设置管理器
type Manager struct {
	settings     *AppSettings
	settingsPath string
}

// NewManager 创建设置管理器
func NewManager() (*Manager, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, fmt.Errorf("获取设置文件路径失败: %w", err)
	}

	manager := &Manager{
		settingsPath: settingsPath,
	}

	if err := manager.Load(); err != nil {
		return nil, err
	}

	return manager, nil
}

// GetSettingsPath 获取设置文件路径
func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("获取用户主目录失败: %w", err)
	}

	return filepath.Join(homeDir, ".featgen", "settings.json"), nil
}

// Load 加载设置文件，不存在时使用默认值（不落盘）
func (m *Manager) Load() error {
	if !utils.FileExists(m.settingsPath) {
		m.settings = &AppSettings{Language: "en"}
		return nil
	}

	data, err := os.ReadFile(m.settingsPath)
	if err != nil {
		return fmt.Errorf("读取设置文件失败: %w", err)
	}

	m.settings = &AppSettings{}
	if err := json.Unmarshal(data, m.settings); err != nil {
		return fmt.Errorf("解析设置文件失败: %w", err)
	}
	if !validLanguage(m.settings.Language) {
		m.settings.Language = "en"
	}

	return nil
}

// Save 保存设置文件
func (m *Manager) Save() error {
	dir := filepath.Dir(m.settingsPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建设置目录失败: %w", err)
	}

	return utils.WriteJSONFile(m.settingsPath, m.settings, 0600)
}

// GetLanguage 获取语言设置
func (m *Manager) GetLanguage() string {
	return m.settings.Language
}

// SetLanguage 设置语言
func (m *Manager) SetLanguage(language string) error {
	if !validLanguage(language) {
		return fmt.Errorf("不支持的语言: %s (支持: en, id)", language)
	}
	m.settings.Language = language
	return m.Save()
}

// Get 获取所有设置
func (m *Manager) Get() *AppSettings {
	return m.settings
}

// Keys 可通过 settings 命令读写的键
func Keys() []string {
	keys := []string{"language", "no_color"}
	sort.Strings(keys)
	return keys
}

// Value 按键读取设置
func (m *Manager) Value(key string) (string, error) {
	switch key {
	case "language":
		return m.settings.Language, nil
	case "no_color":
		return strconv.FormatBool(m.settings.NoColor), nil
	default:
		return "", fmt.Errorf("未知的设置项: %s", key)
	}
}

// SetValue 按键写入设置并保存
func (m *Manager) SetValue(key, value string) error {
	switch key {
	case "language":
		return m.SetLanguage(value)
	case "no_color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("no_color 必须是布尔值: %w", err)
		}
		m.settings.NoColor = b
		return m.Save()
	default:
		return fmt.Errorf("未知的设置项: %s", key)
	}
}

func validLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}
