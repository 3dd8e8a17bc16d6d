package stub

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		name string
		text string
		vars map[string]string
		want string
	}{
		{
			name: "single placeholder",
			text: "class {{ model }} {}",
			vars: map[string]string{"model": "Product"},
			want: "class Product {}",
		},
		{
			name: "repeated placeholders",
			text: "{{ model }}::find(${{ variable }}) // {{ model }}",
			vars: map[string]string{"model": "Product", "variable": "product"},
			want: "Product::find($product) // Product",
		},
		{
			name: "unknown placeholder untouched",
			text: "{{ unknown }} {{model}}",
			vars: map[string]string{"model": "Product"},
			want: "{{ unknown }} {{model}}",
		},
		{
			name: "no vars",
			text: "{{ model }}",
			want: "{{ model }}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Replace(tt.text, tt.vars); got != tt.want {
				t.Fatalf("Replace() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderLookupOrder(t *testing.T) {
	overrideDir := t.TempDir()
	custom := filepath.Join(overrideDir, "model.stub")
	if err := os.WriteFile(custom, []byte("custom {{ model }}"), 0644); err != nil {
		t.Fatalf("写入自定义模板失败: %v", err)
	}
	vars := map[string]string{"model": "Product", "plural": "Products", "table": "products"}

	tests := []struct {
		name       string
		renderer   *Renderer
		id         string
		wantSource Source
		contains   string
	}{
		{
			name:       "custom override wins",
			renderer:   NewRenderer(overrideDir),
			id:         "model.stub",
			wantSource: SourceCustom,
			contains:   "custom Product",
		},
		{
			name:       "builtin stub",
			renderer:   NewRenderer(overrideDir),
			id:         "routes.stub",
			wantSource: SourceBuiltin,
			contains:   "Route::resource('",
		},
		{
			name:       "builtin view",
			renderer:   NewRenderer(""),
			id:         "Index.vue.stub",
			wantSource: SourceBuiltin,
			contains:   "Products",
		},
		{
			name:       "nested builtin",
			renderer:   NewRenderer(""),
			id:         "tests/FeatureTest.stub",
			wantSource: SourceBuiltin,
			contains:   "Product",
		},
		{
			name:       "missing stub falls back",
			renderer:   &Renderer{},
			id:         "controller.stub",
			wantSource: SourceFallback,
			contains:   "class ProductController extends Controller",
		},
		{
			name:       "unknown stub marker",
			renderer:   NewRenderer(""),
			id:         "nope.stub",
			wantSource: SourceFallback,
			contains:   "<!-- Stub nope.stub not found -->",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.renderer.Render(tt.id, vars)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got.Source != tt.wantSource {
				t.Fatalf("Source = %s, want %s", got.Source, tt.wantSource)
			}
			if !strings.Contains(got.Content, tt.contains) {
				t.Fatalf("Content 缺少 %q:\n%s", tt.contains, got.Content)
			}
			if strings.Contains(got.Content, "{{ model }}") {
				t.Fatalf("占位符未替换:\n%s", got.Content)
			}
		})
	}
}

func TestRenderStrictMissing(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.RenderStrict("missing-loader.stub", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("RenderStrict() error = %v, want ErrNotFound", err)
	}
}

func TestLoadCustomReadError(t *testing.T) {
	overrideDir := t.TempDir()
	// 目录占据了模板路径，读取会失败但不是 NotExist
	if err := os.MkdirAll(filepath.Join(overrideDir, "model.stub"), 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}

	_, _, err := NewRenderer(overrideDir).Load("model.stub")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want read error", err)
	}
}

func TestBuiltinIDs(t *testing.T) {
	ids, err := BuiltinIDs()
	if err != nil {
		t.Fatalf("BuiltinIDs() error = %v", err)
	}

	want := []string{
		"model.stub",
		"migration.stub",
		"controller.api.stub",
		"controller.view.stub",
		"routes.api.stub",
		"seeder.permission.stub",
		"modules-loader.stub",
		"api-modules-loader.stub",
		"Index.vue.stub",
		"tests/FeatureTest.stub",
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	for _, id := range want {
		if !set[id] {
			t.Errorf("BuiltinIDs() 缺少 %s", id)
		}
	}

	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Fatalf("BuiltinIDs() 未排序: %v", ids)
		}
	}
}

func TestBasicStubsCoverKnownIDs(t *testing.T) {
	for _, id := range []string{
		"controller.stub", "controller.api.stub", "controller.view.stub",
		"request.store.stub", "request.update.stub",
		"routes.stub", "routes.api.stub", "routes.view.stub",
		"seeder.permission.stub",
	} {
		if !HasBasic(id) {
			t.Errorf("HasBasic(%s) = false", id)
		}
	}
	if HasBasic("model.stub") {
		t.Fatalf("model.stub 不应有内联模板")
	}
	if !strings.Contains(basicStub("request.update.stub"), "class Update{{ model }}Request") {
		t.Fatalf("request.update.stub 内联模板不正确")
	}
}

func TestBuiltin(t *testing.T) {
	text, err := Builtin("modules-loader.stub")
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	if !strings.Contains(text, "web.php") {
		t.Fatalf("loader stub 内容不正确: %s", text)
	}

	if _, err := Builtin("missing.stub"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Builtin(missing) error = %v", err)
	}
}
