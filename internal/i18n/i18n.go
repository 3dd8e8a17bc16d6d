package i18n

import (
	"fmt"

	"github.com/YangQing-Lin/featgen/internal/settings"
)

const defaultLanguage = "en"

var currentLanguage = defaultLanguage

// Message 多语言消息定义
var messages = map[string]map[string]string{
	"en": {
		// Common
		"success": "Success",
		"error":   "Error",
		"warning": "Warning",

		// Modes
		"mode.full":      "Full-stack",
		"mode.api":       "API only",
		"mode.view":      "View only",
		"mode.full_desc": "API + web controllers, requests, Vue pages and routes",
		"mode.api_desc":  "API controller, requests and API routes",
		"mode.view_desc": "Web controller, Vue pages and web routes",

		// Prompts
		"prompt.name":       "Feature name (e.g. Product)",
		"prompt.mode":       "Select generation mode",
		"prompt.components": "Select optional components",
		"prompt.help_menu":  "↑/↓: move • Enter: confirm • ESC: cancel",
		"prompt.help_multi": "↑/↓: move • Space: toggle • Enter: confirm • ESC: cancel",
		"prompt.help_input": "Enter: confirm • ESC: cancel",
		"prompt.cancelled":  "Cancelled",

		// Errors
		"error.conflicting_modes": "You cannot use --api and --view together. Pick one or neither.",
		"error.name_required":     "A feature name is required (pass it as an argument)",
		"error.not_laravel":       "%s does not look like a Laravel project (artisan not found)",

		// create
		"create.heading":      "Generating %s (%s)",
		"create.done":         "Feature %s generated: %d file(s) written",
		"create.dry_run_done": "Dry run: %d file(s) would be written, nothing was changed",
		"action.created":      "Created: %s",
		"action.overwritten":  "Overwritten: %s",
		"action.skipped":      "Skipped (already exists): %s",
		"action.planned":      "Would create: %s",
		"action.planned_over": "Would overwrite: %s",
		"action.missing_stub": "Stub %s not found, %s was not written",
		"warning.fallback":    "Stub %s not found, used a basic template for %s",
		"hint.force":          "Use --force to overwrite existing files",

		"warning.core_migration":      "%s ships with Laravel, reused as is (never overwritten)",
		"warning.core_migration_kept": "%s ships with Laravel, it will not be deleted",

		// Observer
		"observer.registered":       "Observer registered in %s",
		"observer.provider_missing": "%s not found, register the observer manually: %s",
		"observer.unregistered":     "Observer registration removed from %s",

		// Route loaders
		"loader.missing":         "Module routes are not loaded yet.",
		"loader.web_hint":        "Add to %s:",
		"loader.api_hint":        "Add to routes/api.php:",
		"loader.no_web_target":   "Neither routes/app.php nor routes/web.php exists",
		"loader.streamlined":     "Laravel %s detected: routes/api.php is not shipped by default, run `php artisan install:api` first",
		"loader.run_install":     "Or run: featgen modules install",
		"loader.confirm_install": "Install the module route loaders now? [y/N]: ",
		"loader.confirm_append":  "%s already mentions the module loader. Append the require line anyway? [y/N]: ",

		// modules
		"modules.created":     "Created loader: %s",
		"modules.overwritten": "Overwritten loader: %s",
		"modules.exists":      "Loader already exists (use --force to overwrite): %s",
		"modules.integrated":  "Added require line to %s",
		"modules.already":     "Already integrated: %s",
		"modules.declined":    "Left unchanged: %s",
		"modules.missing":     "%s not found, loader not integrated",
		"modules.installed":   "Module route loaders installed",
		"modules.setup_done":  "Loaders written. To integrate them:",

		// delete
		"delete.heading":       "Files to delete for %s:",
		"delete.nothing":       "Nothing to delete for %s",
		"delete.confirm":       "Delete these files? [y/N]: ",
		"delete.cancelled":     "Deletion cancelled",
		"delete.deleted":       "Deleted: %s",
		"delete.dir_removed":   "Removed empty directory: %s",
		"delete.shared_delete": "Removed shared file: %s",
		"delete.shared_kept":   "Kept shared file: %s",
		"delete.done":          "Feature %s deleted: %d file(s) removed",
		"delete.dry_run_done":  "Dry run: %d file(s) would be deleted, nothing was changed",

		// VCS
		"vcs.uncommitted": "These files have uncommitted changes:",

		// stubs
		"stubs.published":  "Published: %s",
		"stubs.kept":       "Kept (already exists): %s",
		"stubs.done":       "%d stub(s) published to %s",
		"stubs.overridden": "overridden",
		"stubs.builtin":    "builtin",

		// config
		"config.created": "Created %s",
		"config.source":  "Loaded from %s",
		"config.default": "No config file, using defaults",

		// settings
		"settings.saved":   "Settings saved",
		"settings.current": "Current settings:",

		// report
		"report.written": "Report written to %s",
	},
	"id": {
		"success": "Berhasil",
		"error":   "Kesalahan",
		"warning": "Peringatan",

		"mode.full":      "Full-stack",
		"mode.api":       "Hanya API",
		"mode.view":      "Hanya View",
		"mode.full_desc": "Controller API + web, request, halaman Vue dan route",
		"mode.api_desc":  "Controller API, request dan route API",
		"mode.view_desc": "Controller web, halaman Vue dan route web",

		"prompt.name":       "Nama fitur (mis. Product)",
		"prompt.mode":       "Pilih mode pembuatan",
		"prompt.components": "Pilih komponen opsional",
		"prompt.help_menu":  "↑/↓: pilih • Enter: konfirmasi • ESC: batal",
		"prompt.help_multi": "↑/↓: pilih • Spasi: tandai • Enter: konfirmasi • ESC: batal",
		"prompt.help_input": "Enter: konfirmasi • ESC: batal",
		"prompt.cancelled":  "Dibatalkan",

		"error.conflicting_modes": "Tidak bisa memakai --api dan --view bersamaan. Pilih salah satu atau tidak keduanya.",
		"error.name_required":     "Nama fitur wajib diisi (berikan sebagai argumen)",
		"error.not_laravel":       "%s bukan proyek Laravel (artisan tidak ditemukan)",

		"create.heading":      "Membuat %s (%s)",
		"create.done":         "Fitur %s dibuat: %d file ditulis",
		"create.dry_run_done": "Dry run: %d file akan ditulis, tidak ada yang diubah",
		"action.created":      "Dibuat: %s",
		"action.overwritten":  "Ditimpa: %s",
		"action.skipped":      "Dilewati (sudah ada): %s",
		"action.planned":      "Akan dibuat: %s",
		"action.planned_over": "Akan ditimpa: %s",
		"action.missing_stub": "Stub %s tidak ditemukan, %s tidak ditulis",
		"warning.fallback":    "Stub %s tidak ditemukan, memakai template dasar untuk %s",
		"hint.force":          "Gunakan --force untuk menimpa file yang sudah ada",

		"warning.core_migration":      "%s bawaan Laravel, dipakai apa adanya (tidak pernah ditimpa)",
		"warning.core_migration_kept": "%s bawaan Laravel, tidak akan dihapus",

		"observer.registered":       "Observer didaftarkan di %s",
		"observer.provider_missing": "%s tidak ditemukan, daftarkan observer secara manual: %s",
		"observer.unregistered":     "Pendaftaran observer dihapus dari %s",

		"loader.missing":         "Route modul belum dimuat.",
		"loader.web_hint":        "Tambahkan ke %s:",
		"loader.api_hint":        "Tambahkan ke routes/api.php:",
		"loader.no_web_target":   "routes/app.php maupun routes/web.php tidak ada",
		"loader.streamlined":     "Terdeteksi Laravel %s: routes/api.php tidak tersedia secara bawaan, jalankan `php artisan install:api` terlebih dahulu",
		"loader.run_install":     "Atau jalankan: featgen modules install",
		"loader.confirm_install": "Pasang loader route modul sekarang? [y/N]: ",
		"loader.confirm_append":  "%s sudah menyebut loader modul. Tetap tambahkan baris require? [y/N]: ",

		"modules.created":     "Loader dibuat: %s",
		"modules.overwritten": "Loader ditimpa: %s",
		"modules.exists":      "Loader sudah ada (gunakan --force untuk menimpa): %s",
		"modules.integrated":  "Baris require ditambahkan ke %s",
		"modules.already":     "Sudah terintegrasi: %s",
		"modules.declined":    "Tidak diubah: %s",
		"modules.missing":     "%s tidak ditemukan, loader tidak diintegrasikan",
		"modules.installed":   "Loader route modul terpasang",
		"modules.setup_done":  "Loader ditulis. Untuk mengintegrasikannya:",

		"delete.heading":       "File yang akan dihapus untuk %s:",
		"delete.nothing":       "Tidak ada yang perlu dihapus untuk %s",
		"delete.confirm":       "Hapus file-file ini? [y/N]: ",
		"delete.cancelled":     "Penghapusan dibatalkan",
		"delete.deleted":       "Dihapus: %s",
		"delete.dir_removed":   "Direktori kosong dihapus: %s",
		"delete.shared_delete": "File bersama dihapus: %s",
		"delete.shared_kept":   "File bersama dipertahankan: %s",
		"delete.done":          "Fitur %s dihapus: %d file",
		"delete.dry_run_done":  "Dry run: %d file akan dihapus, tidak ada yang diubah",

		"vcs.uncommitted": "File berikut memiliki perubahan yang belum di-commit:",

		"stubs.published":  "Dipublikasikan: %s",
		"stubs.kept":       "Dipertahankan (sudah ada): %s",
		"stubs.done":       "%d stub dipublikasikan ke %s",
		"stubs.overridden": "diganti",
		"stubs.builtin":    "bawaan",

		"config.created": "%s dibuat",
		"config.source":  "Dimuat dari %s",
		"config.default": "Tidak ada file konfigurasi, memakai nilai bawaan",

		"settings.saved":   "Pengaturan disimpan",
		"settings.current": "Pengaturan saat ini:",

		"report.written": "Laporan ditulis ke %s",
	},
}

// Init 从用户设置读取语言；读取失败时保持默认语言
func Init() error {
	manager, err := settings.NewManager()
	if err != nil {
		return nil
	}

	SetLanguage(manager.GetLanguage())
	return nil
}

// SetLanguage 设置当前语言，不支持的语言被忽略
func SetLanguage(lang string) {
	if _, ok := messages[lang]; ok {
		currentLanguage = lang
	}
}

// GetLanguage 获取当前语言
func GetLanguage() string {
	return currentLanguage
}

// T 翻译消息 (Translation)
func T(key string, args ...interface{}) string {
	langMessages, ok := messages[currentLanguage]
	if !ok {
		langMessages = messages[defaultLanguage]
	}

	msg, ok := langMessages[key]
	if !ok {
		return key // 找不到翻译时返回 key 本身
	}

	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}

	return msg
}
