package project

import (
	"path/filepath"
	"testing"

	"github.com/YangQing-Lin/featgen/internal/testutil"
)

func TestOpen(t *testing.T) {
	root := testutil.LaravelProject(t)
	file := filepath.Join(root, "artisan")

	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{name: "project root", dir: root},
		{name: "missing dir", dir: filepath.Join(root, "missing"), wantErr: true},
		{name: "file instead of dir", dir: file, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Open(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.Root != root {
				t.Fatalf("Root = %s, want %s", p.Root, root)
			}
			if !p.IsLaravel() {
				t.Fatalf("IsLaravel() = false")
			}
		})
	}
}

func TestOpenDefaultsToCWD(t *testing.T) {
	testutil.WithTempCWD(t, func(cwd string) {
		p, err := Open("")
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if p.Root != cwd {
			t.Fatalf("Root = %s, want %s", p.Root, cwd)
		}
		if p.IsLaravel() {
			t.Fatalf("空目录不应被识别为 Laravel 项目")
		}
	})
}

func TestPaths(t *testing.T) {
	p := &Project{Root: filepath.FromSlash("/srv/app")}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"app", p.AppPath("Models", "Product.php"), "/srv/app/app/Models/Product.php"},
		{"database", p.DatabasePath("migrations"), "/srv/app/database/migrations"},
		{"resources", p.ResourcePath("js/pages"), "/srv/app/resources/js/pages"},
		{"routes", p.RoutesPath("modules.php"), "/srv/app/routes/modules.php"},
		{"base", p.BasePath(), "/srv/app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != filepath.FromSlash(tt.want) {
				t.Fatalf("got %s, want %s", tt.got, tt.want)
			}
		})
	}

	if rel := p.Rel(p.AppPath("Models", "Product.php")); rel != "app/Models/Product.php" {
		t.Fatalf("Rel() = %s", rel)
	}
	outside := filepath.FromSlash("/etc/passwd")
	if rel := p.Rel(outside); rel != outside {
		t.Fatalf("Rel(outside) = %s", rel)
	}
	if !p.Contains(p.AppPath("x")) || p.Contains(p.Root) || p.Contains(outside) {
		t.Fatalf("Contains() 结果不正确")
	}
}
