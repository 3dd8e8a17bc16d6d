package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YangQing-Lin/featgen/internal/stub"
	"github.com/YangQing-Lin/featgen/internal/testutil"
)

func TestDetectLoaders(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		want   LoaderStatus
		target string
	}{
		{
			name:   "fresh project",
			files:  nil,
			want:   LoaderStatus{HasWebRoutes: true},
			target: "routes/web.php",
		},
		{
			name: "integrated in app.php and api.php",
			files: map[string]string{
				"routes/app.php":         "<?php\n" + WebRequire + "\n",
				"routes/api.php":         "<?php\nrequire_once __DIR__ . '/api-modules.php';\n",
				"routes/modules.php":     "<?php\n",
				"routes/api-modules.php": "<?php\n",
			},
			want: LoaderStatus{
				WebLoaderExists: true,
				APILoaderExists: true,
				WebIntegrated:   true,
				APIIntegrated:   true,
				HasAppRoutes:    true,
				HasWebRoutes:    true,
				HasAPIRoutes:    true,
			},
			target: "routes/app.php",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := testutil.LaravelProject(t)
			for rel, content := range tt.files {
				testutil.CreateTempFile(t, root, filepath.FromSlash(rel), content)
			}

			p := &Project{Root: root}
			got := p.DetectLoaders()
			if got != tt.want {
				t.Fatalf("DetectLoaders() = %+v, want %+v", got, tt.want)
			}
			if got.WebTarget() != tt.target {
				t.Fatalf("WebTarget() = %s, want %s", got.WebTarget(), tt.target)
			}
			if got.NeedsInstall() == (tt.want.WebIntegrated && tt.want.APIIntegrated) {
				t.Fatalf("NeedsInstall() 结果不正确")
			}
		})
	}
}

func TestWriteLoaders(t *testing.T) {
	root := testutil.LaravelProject(t)
	p := &Project{Root: root}
	r := stub.NewRenderer("")

	changes, err := p.WriteLoaders(r, false)
	if err != nil {
		t.Fatalf("WriteLoaders() error = %v", err)
	}
	assertKinds(t, changes, ChangeCreated, ChangeCreated)

	webStub, _ := stub.Builtin(WebLoaderStub)
	testutil.AssertFileContent(t, p.BasePath(WebLoaderFile), webStub)

	testutil.CreateTempFile(t, root, filepath.FromSlash(WebLoaderFile), "edited")
	changes, err = p.WriteLoaders(r, false)
	if err != nil {
		t.Fatalf("WriteLoaders() error = %v", err)
	}
	assertKinds(t, changes, ChangeExists, ChangeExists)
	testutil.AssertFileContent(t, p.BasePath(WebLoaderFile), "edited")

	changes, err = p.WriteLoaders(r, true)
	if err != nil {
		t.Fatalf("WriteLoaders(force) error = %v", err)
	}
	assertKinds(t, changes, ChangeOverwritten, ChangeOverwritten)
	testutil.AssertFileContent(t, p.BasePath(WebLoaderFile), webStub)
}

func TestWriteLoadersUnreadableStub(t *testing.T) {
	root := testutil.LaravelProject(t)
	p := &Project{Root: root}

	// 自定义目录中的同名目录会让读取失败，但不会触发 NotExist
	override := filepath.Join(root, "stubs")
	if err := os.MkdirAll(filepath.Join(override, WebLoaderStub), 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}

	_, err := p.WriteLoaders(stub.NewRenderer(override), false)
	if err == nil || errors.Is(err, stub.ErrNotFound) {
		t.Fatalf("WriteLoaders() error = %v, want read error", err)
	}
	testutil.AssertFileNotExists(t, p.BasePath(WebLoaderFile))
}

func TestWriteLoadersMissingStub(t *testing.T) {
	root := testutil.LaravelProject(t)
	p := &Project{Root: root}

	changes, err := p.WriteLoaders(&stub.Renderer{}, false)
	if !errors.Is(err, stub.ErrNotFound) {
		t.Fatalf("WriteLoaders() error = %v, want ErrNotFound", err)
	}
	if len(changes) != 0 {
		t.Fatalf("changes = %+v", changes)
	}
	testutil.AssertFileNotExists(t, p.BasePath(WebLoaderFile))
}

func TestInstallLoaders(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		opts       InstallOptions
		wantWeb    string
		wantAPI    ChangeKind
		webContent string
	}{
		{
			name:    "classic layout without api.php",
			wantWeb: "routes/web.php",
			wantAPI: ChangeMissing,
		},
		{
			name: "app.php preferred and api.php integrated",
			files: map[string]string{
				"routes/app.php": "<?php\n",
				"routes/api.php": "<?php\n\n",
			},
			wantWeb: "routes/app.php",
			wantAPI: ChangeIntegrated,
		},
		{
			name: "already integrated",
			files: map[string]string{
				"routes/web.php": "<?php\n" + WebRequire + "\n",
				"routes/api.php": "<?php\n" + APIRequire + "\n",
			},
			wantWeb: "routes/web.php",
			wantAPI: ChangeAlready,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := testutil.LaravelProject(t)
			for rel, content := range tt.files {
				testutil.CreateTempFile(t, root, filepath.FromSlash(rel), content)
			}
			p := &Project{Root: root}

			changes, err := p.InstallLoaders(stub.NewRenderer(""), tt.opts)
			if err != nil {
				t.Fatalf("InstallLoaders() error = %v", err)
			}
			if len(changes) != 4 {
				t.Fatalf("changes = %+v", changes)
			}
			if changes[2].Path != tt.wantWeb {
				t.Fatalf("web target = %s, want %s", changes[2].Path, tt.wantWeb)
			}
			if changes[3].Kind != tt.wantAPI {
				t.Fatalf("api change = %s, want %s", changes[3].Kind, tt.wantAPI)
			}

			status := p.DetectLoaders()
			if !status.WebIntegrated {
				t.Fatalf("web 加载器未集成")
			}
			if tt.wantAPI != ChangeMissing && !status.APIIntegrated {
				t.Fatalf("api 加载器未集成")
			}

			data, _ := os.ReadFile(p.BasePath(tt.wantWeb))
			if strings.Count(string(data), WebRequire) != 1 {
				t.Fatalf("require 语句数量不正确:\n%s", data)
			}

			// 再次安装保持幂等
			if _, err := p.InstallLoaders(stub.NewRenderer(""), tt.opts); err != nil {
				t.Fatalf("InstallLoaders() 第二次 error = %v", err)
			}
			again, _ := os.ReadFile(p.BasePath(tt.wantWeb))
			if string(again) != string(data) {
				t.Fatalf("重复安装修改了路由文件")
			}
		})
	}
}

func TestInstallLoadersConfirmation(t *testing.T) {
	tests := []struct {
		name    string
		confirm func(string) bool
		want    ChangeKind
	}{
		{name: "declined", confirm: func(string) bool { return false }, want: ChangeDeclined},
		{name: "no prompt", confirm: nil, want: ChangeDeclined},
		{name: "accepted", confirm: func(string) bool { return true }, want: ChangeIntegrated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := testutil.LaravelProject(t)
			testutil.CreateTempFile(t, root, filepath.Join("routes", "web.php"), "<?php\ninclude base_path('routes/modules.php');\n")
			p := &Project{Root: root}

			changes, err := p.InstallLoaders(stub.NewRenderer(""), InstallOptions{Confirm: tt.confirm})
			if err != nil {
				t.Fatalf("InstallLoaders() error = %v", err)
			}
			if changes[2].Kind != tt.want {
				t.Fatalf("web change = %s, want %s", changes[2].Kind, tt.want)
			}
		})
	}
}

func TestIsPristine(t *testing.T) {
	root := testutil.LaravelProject(t)
	p := &Project{Root: root}
	r := stub.NewRenderer("")

	if ok, err := p.IsPristine(r, WebLoaderFile, WebLoaderStub, nil); err != nil || ok {
		t.Fatalf("IsPristine(missing) = %v, %v", ok, err)
	}

	if _, err := p.WriteLoaders(r, false); err != nil {
		t.Fatalf("WriteLoaders() error = %v", err)
	}
	if ok, err := p.IsPristine(r, WebLoaderFile, WebLoaderStub, nil); err != nil || !ok {
		t.Fatalf("IsPristine(fresh) = %v, %v", ok, err)
	}

	testutil.CreateTempFile(t, root, filepath.FromSlash(WebLoaderFile), "edited")
	if ok, _ := p.IsPristine(r, WebLoaderFile, WebLoaderStub, nil); ok {
		t.Fatalf("IsPristine(edited) = true")
	}
}

func assertKinds(t *testing.T, changes []Change, kinds ...ChangeKind) {
	t.Helper()
	if len(changes) != len(kinds) {
		t.Fatalf("changes = %+v, want kinds %v", changes, kinds)
	}
	for i, kind := range kinds {
		if changes[i].Kind != kind {
			t.Fatalf("changes[%d] = %+v, want %s", i, changes[i], kind)
		}
	}
}
