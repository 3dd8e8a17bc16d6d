package remover

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/YangQing-Lin/featgen/internal/naming"
	"github.com/YangQing-Lin/featgen/internal/planner"
	"github.com/YangQing-Lin/featgen/internal/project"
	"github.com/YangQing-Lin/featgen/internal/stub"
	"github.com/YangQing-Lin/featgen/internal/testutil"
)

func setup(t *testing.T) (*project.Project, *planner.Planner, *Remover) {
	t.Helper()
	p := &project.Project{Root: testutil.LaravelProject(t)}
	r := stub.NewRenderer("")
	clock := func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return p, planner.New(p, r).WithClock(clock), New(p, r)
}

func mustName(t *testing.T, raw string) naming.Name {
	t.Helper()
	n, err := naming.Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", raw, err)
	}
	return n
}

func TestCreateThenDeleteRestoresTree(t *testing.T) {
	tests := []struct {
		name string
		mode planner.Mode
		with []planner.Component
		all  bool
	}{
		{name: "full stack", mode: planner.ModeFull},
		{name: "api only", mode: planner.ModeAPI},
		{name: "view only", mode: planner.ModeView},
		{name: "full with every component", mode: planner.ModeFull, with: planner.Components, all: true},
		{name: "api with observer", mode: planner.ModeAPI, with: []planner.Component{planner.ComponentObserver}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, pl, rm := setup(t)
			name := mustName(t, "test_user")
			before := testutil.Snapshot(t, p.Root)

			if _, err := pl.Generate(name, planner.Options{Mode: tt.mode, With: tt.with}); err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			opts := Options{Mode: tt.mode, With: tt.with, All: tt.all}
			if tt.mode == planner.ModeFull {
				opts.Mode = ""
			}
			result, err := rm.Delete(name, opts)
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if len(result.Deleted) == 0 {
				t.Fatalf("Delete() 未删除任何文件")
			}

			testutil.AssertSameTree(t, before, testutil.Snapshot(t, p.Root))
		})
	}
}

func TestDeleteKeepsSharedFilesWhileFeaturesRemain(t *testing.T) {
	p, pl, rm := setup(t)
	products := mustName(t, "Product")
	orders := mustName(t, "Order")

	for _, n := range []naming.Name{products, orders} {
		if _, err := pl.Generate(n, planner.Options{}); err != nil {
			t.Fatalf("Generate(%s) error = %v", n.Model, err)
		}
	}

	result, err := rm.Delete(products, Options{})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(result.SharedDeleted) != 0 {
		t.Fatalf("SharedDeleted = %v, want none", result.SharedDeleted)
	}
	for _, rel := range []string{"routes/modules.php", "routes/api-modules.php", "app/Traits/ApiResponser.php", "app/Models/Order.php"} {
		testutil.AssertFileExists(t, p.BasePath(rel))
	}
	testutil.AssertFileNotExists(t, p.BasePath("app/Models/Product.php"))
	testutil.AssertFileNotExists(t, p.BasePath("routes/Modules/Products"))

	dirs, err := FeatureDirs(p)
	if err != nil || !reflect.DeepEqual(dirs, []string{"Orders"}) {
		t.Fatalf("FeatureDirs() = %v, %v", dirs, err)
	}

	result, err = rm.Delete(orders, Options{})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(result.SharedDeleted) != 3 {
		t.Fatalf("SharedDeleted = %v, want 3 files", result.SharedDeleted)
	}
}

func TestDeleteKeepsModifiedSharedFiles(t *testing.T) {
	p, pl, rm := setup(t)
	name := mustName(t, "Product")

	if _, err := pl.Generate(name, planner.Options{}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	testutil.CreateTempFile(t, p.Root, filepath.FromSlash("routes/modules.php"), "<?php // customised\n")

	result, err := rm.Delete(name, Options{})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !reflect.DeepEqual(result.SharedKept, []string{"routes/modules.php"}) {
		t.Fatalf("SharedKept = %v", result.SharedKept)
	}
	testutil.AssertFileContent(t, p.BasePath("routes/modules.php"), "<?php // customised\n")
	testutil.AssertFileNotExists(t, p.BasePath("routes/api-modules.php"))
}

func TestDeleteNarrowedByMode(t *testing.T) {
	p, pl, rm := setup(t)
	name := mustName(t, "Product")

	if _, err := pl.Generate(name, planner.Options{}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := rm.Delete(name, Options{Mode: planner.ModeAPI}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	testutil.AssertFileNotExists(t, p.BasePath("app/Http/Controllers/API/ProductController.php"))
	testutil.AssertFileNotExists(t, p.BasePath("routes/Modules/Products/api.php"))
	testutil.AssertFileExists(t, p.BasePath("app/Http/Controllers/ProductController.php"))
	testutil.AssertFileExists(t, p.BasePath("routes/Modules/Products/web.php"))
	testutil.AssertFileExists(t, p.BasePath("resources/js/pages/Products/Index.vue"))
	testutil.AssertFileExists(t, p.BasePath("routes/modules.php"))
}

func TestCollectAndDryRun(t *testing.T) {
	p, pl, rm := setup(t)
	name := mustName(t, "Product")

	candidates, err := rm.Collect(name, Options{})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("Collect() on fresh project = %v", candidates)
	}

	if _, err := pl.Generate(name, planner.Options{Mode: planner.ModeAPI, With: []planner.Component{planner.ComponentEnum}}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// 手工多放一个同名迁移，也应被识别
	testutil.CreateTempFile(t, p.Root, filepath.FromSlash("database/migrations/2026_01_01_000000_create_products_table.php"), "<?php\n")

	candidates, err = rm.Collect(name, Options{})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	var paths []string
	for _, c := range candidates {
		paths = append(paths, c.Path)
	}
	want := []string{
		"app/Models/Product.php",
		"database/migrations/2025_01_02_030405_create_products_table.php",
		"database/migrations/2026_01_01_000000_create_products_table.php",
		"app/Http/Controllers/API/ProductController.php",
		"app/Http/Requests/StoreProductRequest.php",
		"app/Http/Requests/UpdateProductRequest.php",
		"routes/Modules/Products/api.php",
		"database/seeders/Permission/ProductsPermissionSeeder.php",
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("Collect() =\n%v\nwant\n%v", paths, want)
	}

	// 未指定 --with 时不删除可选组件
	withAll, _ := rm.Collect(name, Options{All: true})
	if len(withAll) != len(want)+1 {
		t.Fatalf("Collect(all) = %v", withAll)
	}

	before := testutil.Snapshot(t, p.Root)
	result, err := rm.Delete(name, Options{All: true, DryRun: true})
	if err != nil {
		t.Fatalf("Delete(dry run) error = %v", err)
	}
	if len(result.Deleted) != len(want)+1 {
		t.Fatalf("dry run Deleted = %v", result.Deleted)
	}
	testutil.AssertSameTree(t, before, testutil.Snapshot(t, p.Root))
}

func TestCleanupDirsStopsAtRoot(t *testing.T) {
	root := t.TempDir()
	p := &project.Project{Root: root}
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	testutil.CreateTempFile(t, root, filepath.Join("a", "keep.txt"), "x")

	removed, err := CleanupDirs(p, deep)
	if err != nil {
		t.Fatalf("CleanupDirs() error = %v", err)
	}
	if len(removed) != 2 {
		t.Fatalf("removed = %v", removed)
	}
	testutil.AssertFileExists(t, filepath.Join(root, "a"))

	if err := os.Remove(filepath.Join(root, "a", "keep.txt")); err != nil {
		t.Fatalf("删除文件失败: %v", err)
	}
	if _, err := CleanupDirs(p, filepath.Join(root, "a")); err != nil {
		t.Fatalf("CleanupDirs() error = %v", err)
	}
	testutil.AssertFileExists(t, root)
	testutil.AssertFileNotExists(t, filepath.Join(root, "a"))
}

func TestDeleteKeepsCoreMigration(t *testing.T) {
	p, pl, rm := setup(t)
	name := mustName(t, "User")
	core := "database/migrations/0001_01_01_000000_create_users_table.php"
	testutil.CreateTempFile(t, p.Root, filepath.FromSlash(core), "<?php // laravel users table\n")
	before := testutil.Snapshot(t, p.Root)

	if _, err := pl.Generate(name, planner.Options{Mode: planner.ModeAPI}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	candidates, err := rm.Collect(name, Options{})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	for _, c := range candidates {
		if c.Path == core {
			t.Fatalf("Collect() 不应包含 Laravel 自带迁移: %v", candidates)
		}
	}

	kept, err := rm.CoreMigrations(name)
	if err != nil {
		t.Fatalf("CoreMigrations() error = %v", err)
	}
	if !reflect.DeepEqual(kept, []string{core}) {
		t.Fatalf("CoreMigrations() = %v, want [%s]", kept, core)
	}

	if _, err := rm.Delete(name, Options{}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	testutil.AssertSameTree(t, before, testutil.Snapshot(t, p.Root))
}
