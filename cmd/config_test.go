package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YangQing-Lin/featgen/internal/config"
	"github.com/YangQing-Lin/featgen/internal/testutil"
)

func TestConfigInit(t *testing.T) {
	tests := []struct {
		name   string
		format string
		file   string
		want   string
	}{
		{name: "yaml", format: "yaml", file: "featgen.yaml", want: "stubs_dir: " + config.DefaultStubsDir},
		{name: "toml", format: "toml", file: "featgen.toml", want: "stubs_dir = "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := setupCmdTest(t)

			out, err := execute(t, "config", "init", "--format", tt.format, "--dir", root)
			if err != nil {
				t.Fatalf("config init: %v\n%s", err, out)
			}
			if !strings.Contains(out, "Created "+tt.file) {
				t.Fatalf("unexpected output:\n%s", out)
			}

			data, err := os.ReadFile(filepath.Join(root, tt.file))
			if err != nil {
				t.Fatalf("config file not written: %v", err)
			}
			if !strings.Contains(string(data), tt.want) || !strings.Contains(string(data), config.DefaultStubsDir) {
				t.Fatalf("config missing %q:\n%s", tt.want, data)
			}

			// 已有配置文件时拒绝覆盖
			if _, err := execute(t, "config", "init", "--dir", root); err == nil {
				t.Fatal("expected error when a config file already exists")
			}
		})
	}
}

func TestConfigInitInvalidFormat(t *testing.T) {
	root := setupCmdTest(t)

	if _, err := execute(t, "config", "init", "--format", "json", "--dir", root); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	testutil.AssertFileNotExists(t, filepath.Join(root, "featgen.json"))
}

func TestConfigShow(t *testing.T) {
	root := setupCmdTest(t)

	out, err := execute(t, "config", "show", "--dir", root)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"No config file, using defaults", "stubs_dir: " + config.DefaultStubsDir, "pages_dir:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	testutil.CreateTempFile(t, root, "featgen.toml", "pages_dir = \"resources/js/Pages\"\ndefault_with = [\"policy\"]\n")
	out, err = execute(t, "config", "show", "--dir", root)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"Loaded from featgen.toml", "pages_dir: resources/js/Pages", "- policy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShowRejectsInvalidConfig(t *testing.T) {
	root := setupCmdTest(t)
	testutil.CreateTempFile(t, root, "featgen.yaml", "stubs_dir: ../outside\n")

	if _, err := execute(t, "config", "show", "--dir", root); err == nil {
		t.Fatal("expected error for config pointing outside the project")
	}
}
