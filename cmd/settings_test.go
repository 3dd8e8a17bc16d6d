package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YangQing-Lin/featgen/internal/i18n"
)

func TestSettingsList(t *testing.T) {
	setupCmdTest(t)

	out, err := execute(t, "settings")
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	for _, want := range []string{"Current settings:", "language", "en", "no_color", "false"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSettingsSetAndGet(t *testing.T) {
	home := withTempHome(t)
	t.Cleanup(func() { i18n.SetLanguage("en") })

	out, err := execute(t, "settings", "--set", "language=id")
	if err != nil {
		t.Fatalf("settings --set: %v", err)
	}
	// 保存后立即切换语言
	if !strings.Contains(out, "Pengaturan disimpan: language=id") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(home, ".featgen", "settings.json"))
	if err != nil {
		t.Fatalf("settings file not written: %v", err)
	}
	if !strings.Contains(string(data), `"language": "id"`) && !strings.Contains(string(data), `"language":"id"`) {
		t.Fatalf("language not persisted:\n%s", data)
	}

	out, err = execute(t, "settings", "--get", "language")
	if err != nil {
		t.Fatalf("settings --get: %v", err)
	}
	if strings.TrimSpace(out) != "id" {
		t.Fatalf("get language = %q, want id", out)
	}

	if _, err := execute(t, "settings", "--set", "no_color=true"); err != nil {
		t.Fatalf("set no_color: %v", err)
	}
	out, err = execute(t, "settings", "--get", "no_color")
	if err != nil {
		t.Fatalf("get no_color: %v", err)
	}
	if strings.TrimSpace(out) != "true" {
		t.Fatalf("get no_color = %q, want true", out)
	}
}

func TestSettingsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing equals", args: []string{"settings", "--set", "language"}},
		{name: "unknown key", args: []string{"settings", "--set", "theme=dark"}},
		{name: "unsupported language", args: []string{"settings", "--set", "language=fr"}},
		{name: "bad boolean", args: []string{"settings", "--set", "no_color=maybe"}},
		{name: "get without key", args: []string{"settings", "--get"}},
		{name: "get unknown key", args: []string{"settings", "--get", "theme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withTempHome(t)
			if _, err := execute(t, tt.args...); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
		})
	}
}
