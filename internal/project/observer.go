package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/YangQing-Lin/featgen/internal/utils"
)

// ProviderFile 注册 observer 的服务提供者
const ProviderFile = "app/Providers/AppServiceProvider.php"

const providerNamespace = `namespace App\Providers;`

// ErrNoProvider AppServiceProvider 不存在
var ErrNoProvider = errors.New("AppServiceProvider.php not found")

var bootPattern = regexp.MustCompile(`public function boot\(\)\s*:\s*void\s*\{`)

// ObserverRegistration 插入服务提供者的三行代码
type ObserverRegistration struct {
	ModelUse    string
	ObserverUse string
	ObserveLine string
}

// NewObserverRegistration 为模型构造注册代码
func NewObserverRegistration(model string) ObserverRegistration {
	return ObserverRegistration{
		ModelUse:    `use App\Models\` + model + ";",
		ObserverUse: `use App\Observers\` + model + "Observer;",
		ObserveLine: "        " + model + "::observe(" + model + "Observer::class);",
	}
}

func (o ObserverRegistration) useBlock() string {
	return "\n\n" + o.ModelUse + "\n" + o.ObserverUse
}

// RegisterObserver 在 AppServiceProvider 中注册 observer，已注册的部分不重复插入
// 返回 false 表示文件未发生变化
func (p *Project) RegisterObserver(model string) (bool, error) {
	path := p.BasePath(ProviderFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, ErrNoProvider
	}
	if err != nil {
		return false, fmt.Errorf("读取服务提供者失败: %w", err)
	}

	reg := NewObserverRegistration(model)
	content := string(data)
	original := content

	hasModel := strings.Contains(content, reg.ModelUse)
	hasObserver := strings.Contains(content, reg.ObserverUse)
	switch {
	case !hasModel && !hasObserver:
		content = strings.Replace(content, providerNamespace, providerNamespace+reg.useBlock(), 1)
	case hasModel && !hasObserver:
		content = strings.Replace(content, reg.ModelUse, reg.ModelUse+"\n"+reg.ObserverUse, 1)
	case !hasModel && hasObserver:
		content = strings.Replace(content, reg.ObserverUse, reg.ModelUse+"\n"+reg.ObserverUse, 1)
	}

	if !strings.Contains(content, reg.ObserveLine) {
		if loc := bootPattern.FindStringIndex(content); loc != nil {
			content = content[:loc[1]] + "\n" + reg.ObserveLine + content[loc[1]:]
		}
	}

	if content == original {
		return false, nil
	}
	if err := utils.AtomicWriteFile(path, []byte(content), 0); err != nil {
		return false, err
	}
	return true, nil
}

// UnregisterObserver 撤销 RegisterObserver 插入的内容
func (p *Project) UnregisterObserver(model string) (bool, error) {
	path := p.BasePath(ProviderFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("读取服务提供者失败: %w", err)
	}

	reg := NewObserverRegistration(model)
	content := string(data)
	original := content

	content = strings.Replace(content, "\n"+reg.ObserveLine, "", 1)
	content = strings.Replace(content, "\n"+reg.ObserverUse, "", 1)

	// 模型 use 只有在紧跟 namespace 且文件中不再引用该模型时才移除
	modelBlock := providerNamespace + "\n\n" + reg.ModelUse
	word := regexp.MustCompile(`\b` + regexp.QuoteMeta(model) + `\b`)
	if strings.Contains(content, modelBlock) && len(word.FindAllStringIndex(content, -1)) == 1 {
		content = strings.Replace(content, modelBlock, providerNamespace, 1)
	}

	if content == original {
		return false, nil
	}
	if err := utils.AtomicWriteFile(path, []byte(content), 0); err != nil {
		return false, err
	}
	return true, nil
}

// ObserverRegistered 服务提供者中是否已有 observe 调用
func (p *Project) ObserverRegistered(model string) bool {
	content, ok := p.readOptional(ProviderFile)
	return ok && strings.Contains(content, NewObserverRegistration(model).ObserveLine)
}
