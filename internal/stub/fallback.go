package stub

// 内置模板被删除或自定义目录缺失时使用的最小模板
var basicStubs = map[string]string{
	"controller.stub": `<?php

namespace App\Http\Controllers;

use Illuminate\Http\Request;

class {{ model }}Controller extends Controller
{
    // Add your methods here
}
`,
	"controller.api.stub": `<?php

namespace App\Http\Controllers\API;

use App\Http\Controllers\Controller;
use App\Models\{{ model }};
use Illuminate\Http\Request;

class {{ model }}Controller extends Controller
{
    public function index() { return {{ model }}::paginate(10); }
    public function store(Request $request) { return {{ model }}::create($request->all()); }
    public function show({{ model }} ${{ variable }}) { return ${{ variable }}; }
    public function update(Request $request, {{ model }} ${{ variable }}) { ${{ variable }}->update($request->all()); return ${{ variable }}; }
    public function destroy({{ model }} ${{ variable }}) { ${{ variable }}->delete(); return response()->noContent(); }
}
`,
	"controller.view.stub": `<?php

namespace App\Http\Controllers;

use App\Models\{{ model }};
use Illuminate\Http\Request;
use Inertia\Inertia;

class {{ model }}Controller extends Controller
{
    public function index() { return Inertia::render('{{ plural }}/Index', ['{{ table }}' => {{ model }}::paginate(10)]); }
    public function create() { return Inertia::render('{{ plural }}/Create'); }
    public function store(Request $request) { {{ model }}::create($request->all()); return redirect()->route('{{ kebab }}.index'); }
    public function show({{ model }} ${{ variable }}) { return Inertia::render('{{ plural }}/Show', ['item' => ${{ variable }}]); }
    public function edit({{ model }} ${{ variable }}) { return Inertia::render('{{ plural }}/Edit', ['item' => ${{ variable }}]); }
    public function update(Request $request, {{ model }} ${{ variable }}) { ${{ variable }}->update($request->all()); return redirect()->route('{{ kebab }}.index'); }
    public function destroy({{ model }} ${{ variable }}) { ${{ variable }}->delete(); return redirect()->route('{{ kebab }}.index'); }
}
`,
	"request.store.stub":  requestStub("Store"),
	"request.update.stub": requestStub("Update"),
	"routes.stub": `<?php

use App\Http\Controllers\{{ model }}Controller;
use Illuminate\Support\Facades\Route;

Route::resource('{{ kebab }}', {{ model }}Controller::class);
`,
	"routes.api.stub": `<?php

use App\Http\Controllers\API\{{ model }}Controller;
use Illuminate\Support\Facades\Route;

Route::middleware(['auth:sanctum'])->group(function () {
    Route::apiResource('{{ kebab }}', {{ model }}Controller::class);
});
`,
	"routes.view.stub": `<?php

use App\Http\Controllers\{{ model }}Controller;
use Illuminate\Support\Facades\Route;

Route::middleware(['auth', 'verified'])->group(function () {
    Route::resource('{{ kebab }}', {{ model }}Controller::class);
});
`,
	"seeder.permission.stub": `<?php

namespace Database\Seeders\Permission;

use Illuminate\Database\Seeder;
use Spatie\Permission\Models\Permission;

class {{ class }} extends Seeder
{
    public function run(): void
    {
        $permissions = ['view', 'create', 'update', 'delete'];

        foreach ($permissions as $permission) {
            Permission::firstOrCreate([
                'name' => "{$permission} {{ permission }}",
                'guard_name' => 'web',
            ]);
        }
    }
}
`,
}

func requestStub(kind string) string {
	return `<?php

namespace App\Http\Requests;

use Illuminate\Foundation\Http\FormRequest;

class ` + kind + `{{ model }}Request extends FormRequest
{
    public function authorize(): bool
    {
        return true;
    }

    public function rules(): array
    {
        return [
            'name' => 'required|string|max:255',
        ];
    }
}
`
}

func basicStub(id string) string {
	if text, ok := basicStubs[id]; ok {
		return text
	}
	return "<!-- Stub " + id + " not found -->\n"
}

// HasBasic 判断 id 是否有内联基础模板
func HasBasic(id string) bool {
	_, ok := basicStubs[id]
	return ok
}
