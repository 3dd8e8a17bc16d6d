package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/YangQing-Lin/featgen/internal/utils"
)

// ErrInvalidConfig 项目配置取值不合法
var ErrInvalidConfig = errors.New("invalid project config")

const (
	DefaultStubsDir         = "stubs/laravel-module-generator"
	DefaultPagesDir         = "resources/js/pages"
	DefaultAPIControllerDir = "app/Http/Controllers/API"
)

// FileNames 按优先级排列的项目配置文件名
var FileNames = []string{"featgen.yaml", "featgen.yml", "featgen.toml"}

// Config 项目级配置（featgen.yaml / featgen.toml）
type Config struct {
	StubsDir         string   `yaml:"stubs_dir,omitempty" toml:"stubs_dir,omitempty"`
	PagesDir         string   `yaml:"pages_dir,omitempty" toml:"pages_dir,omitempty"`
	APIControllerDir string   `yaml:"api_controller_dir,omitempty" toml:"api_controller_dir,omitempty"`
	DefaultWith      []string `yaml:"default_with,omitempty" toml:"default_with,omitempty"`
	SkipInstall      bool     `yaml:"skip_install,omitempty" toml:"skip_install,omitempty"`

	// Source 实际加载的文件路径，使用默认值时为空
	Source string `yaml:"-" toml:"-"`
}

// Default 返回默认配置
func Default() Config {
	return Config{
		StubsDir:         DefaultStubsDir,
		PagesDir:         DefaultPagesDir,
		APIControllerDir: DefaultAPIControllerDir,
	}
}

// Load 读取项目根目录下的配置文件，不存在时返回默认配置
func Load(root string) (Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		if !utils.FileExists(path) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("读取配置文件失败: %w", err)
		}

		cfg, err := Parse(data, formatOf(name))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", name, err)
		}
		cfg.Source = path
		return cfg, nil
	}

	return Default(), nil
}

// Parse 解析 yaml 或 toml 格式的配置，未知字段视为错误
func Parse(data []byte, format string) (Config, error) {
	var cfg Config

	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("解析 YAML 失败: %w", err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("解析 TOML 失败: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("不支持的配置格式: %s", format)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal 按指定格式序列化配置
func Marshal(cfg Config, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("不支持的配置格式: %s", format)
	}
}

// Init 在项目根目录写入默认配置文件，已存在时返回错误
func Init(root, format string) (string, error) {
	for _, name := range FileNames {
		if utils.FileExists(filepath.Join(root, name)) {
			return "", fmt.Errorf("配置文件已存在: %s", name)
		}
	}

	name := "featgen." + format
	data, err := Marshal(Default(), format)
	if err != nil {
		return "", err
	}

	path := filepath.Join(root, name)
	if err := utils.AtomicWriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Validate 路径必须是项目内的相对路径
func (c Config) Validate() error {
	for key, value := range map[string]string{
		"stubs_dir":          c.StubsDir,
		"pages_dir":          c.PagesDir,
		"api_controller_dir": c.APIControllerDir,
	} {
		if filepath.IsAbs(value) || strings.HasPrefix(filepath.ToSlash(value), "/") {
			return fmt.Errorf("%w: %s 必须是相对路径", ErrInvalidConfig, key)
		}
		clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(value)))
		if clean == ".." || strings.HasPrefix(clean, "../") {
			return fmt.Errorf("%w: %s 不能指向项目之外", ErrInvalidConfig, key)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.StubsDir == "" {
		c.StubsDir = def.StubsDir
	}
	if c.PagesDir == "" {
		c.PagesDir = def.PagesDir
	}
	if c.APIControllerDir == "" {
		c.APIControllerDir = def.APIControllerDir
	}
}

func formatOf(name string) string {
	if strings.HasSuffix(name, ".toml") {
		return "toml"
	}
	return "yaml"
}
