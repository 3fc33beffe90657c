package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultScaffoldPattern matches the placeholder schema shipped with a fresh
// config tree.
const DefaultScaffoldPattern = "ebay/schema/cat_*TEMPLATE*.json"

var requiredFiles = []string{
	"paths.json",
	"naming_rules.json",
	"thresholds.json",
	"ebay/title_rules.json",
	"ebay/policies.json",
	"ebay/store_categories.json",
	"ebay/schema/index.json",
	"ebay/schema/global_defaults.json",
}

type Results struct {
	Errors   []string
	Warnings []string
}

func (r Results) OK() bool { return len(r.Errors) == 0 }

// Validator checks a marketplace config tree and collects every problem it
// finds instead of stopping at the first one.
type Validator struct {
	Root             string
	ScaffoldPatterns []string
	Results          Results

	loaded map[string]any
}

func New(root string, scaffoldPatterns []string) *Validator {
	if len(scaffoldPatterns) == 0 {
		scaffoldPatterns = []string{DefaultScaffoldPattern}
	}
	return &Validator{
		Root:             root,
		ScaffoldPatterns: scaffoldPatterns,
		loaded:           map[string]any{},
	}
}

func (v *Validator) Validate() Results {
	for _, rel := range requiredFiles {
		v.load(rel)
	}
	v.validateSchemaIndex()
	v.validatePolicies()
	v.validateTitleRules()
	v.validateRuntimeRoot()
	v.validateScaffolding()
	return v.Results
}

func (v *Validator) fail(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warn(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// load reads and decodes rel once. Failures are recorded on first read; a
// failed file reads back as an empty object.
func (v *Validator) load(rel string) map[string]any {
	if val, ok := v.loaded[rel]; ok {
		obj, _ := val.(map[string]any)
		return objectOrEmpty(obj)
	}
	val := v.read(rel)
	v.loaded[rel] = val
	obj, _ := val.(map[string]any)
	return objectOrEmpty(obj)
}

func (v *Validator) read(rel string) any {
	p := filepath.Join(v.Root, filepath.FromSlash(rel))
	raw, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			v.fail("缺少文件：%s", p)
		} else {
			v.fail("读取文件失败：%s：%v", p, err)
		}
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		v.fail("文件为空：%s", p)
		return nil
	}
	var val any
	if err := json.Unmarshal(raw, &val); err != nil {
		v.fail("JSON 格式错误：%s：%v", p, err)
		return nil
	}
	return val
}

func (v *Validator) validateSchemaIndex() {
	index := v.load("ebay/schema/index.json")
	cats, ok := index["categories"].(map[string]any)
	if !ok {
		v.fail("ebay/schema/index.json 缺少 categories 对象")
		return
	}
	ids := make([]string, 0, len(cats))
	for id := range cats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		entry, _ := cats[id].(map[string]any)
		file, _ := entry["file"].(string)
		if strings.TrimSpace(file) == "" {
			v.fail("类目 %s 未定义 file", id)
			continue
		}
		rel := "ebay/schema/" + file
		if _, err := os.Stat(filepath.Join(v.Root, filepath.FromSlash(rel))); err != nil {
			v.fail("类目 %s 引用的文件不存在：%s", id, file)
			continue
		}
		v.load(rel)
		enforced := filepath.Join(v.Root, "ebay", "enforced_requirements", "cat_"+id+".json")
		if _, err := os.Stat(enforced); err != nil {
			v.warn("类目 %s 没有强制规则文件：%s", id, enforced)
		}
	}
}

func (v *Validator) validatePolicies() {
	policies := v.load("ebay/policies.json")
	profiles, _ := policies["profiles"].(map[string]any)
	active, isString := policies["active_profile"].(string)
	if _, ok := profiles[active]; !ok || !isString {
		v.fail("policies.json 的 active_profile 不在 profiles 中")
	}
}

func (v *Validator) validateTitleRules() {
	rules := v.load("ebay/title_rules.json")
	if _, ok := rules["order"]; !ok {
		v.fail("title_rules.json 缺少 order")
	}
	if _, ok := rules["max_len"]; !ok {
		v.fail("title_rules.json 缺少 max_len")
	}
}

func (v *Validator) validateRuntimeRoot() {
	paths := v.load("paths.json")
	root, _ := paths["runtime_root"].(string)
	if strings.TrimSpace(root) == "" {
		v.fail("paths.json 缺少 runtime_root")
	}
}

func (v *Validator) validateScaffolding() {
	fsys := os.DirFS(v.Root)
	for _, pattern := range v.ScaffoldPatterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			v.fail("脚手架匹配模式无效：%s：%v", pattern, err)
			continue
		}
		for _, m := range matches {
			v.fail("存在脚手架文件：%s（请删除）", m)
		}
	}
}

func objectOrEmpty(obj map[string]any) map[string]any {
	if obj == nil {
		return map[string]any{}
	}
	return obj
}
