package services

import "testing"

func testSnapshot() *Snapshot {
	return &Snapshot{
		AppVersionNameID: 1,
		Version: map[string]interface{}{
			"id":               int64(1),
			"app_version_name": "v1.0.0",
			"location_name":    "cn",
		},
		Modules: map[string][]map[string]interface{}{
			ModuleBanners: {
				{"id": int64(1), "title": "横幅", "image": "banner.png"},
			},
			ModuleScenes: {
				{"id": int64(1), "name": "场景A", "image": "scene.png"},
			},
		},
	}
}

func hasError(errs ValidationErrors, module, field string) bool {
	for _, e := range errs {
		if e.Module == module && e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateSnapshotOK(t *testing.T) {
	snapshot := testSnapshot()
	if errs := ValidateSnapshot(snapshot, []string{ModuleVersionNames, ModuleBanners, ModuleScenes}); len(errs) != 0 {
		t.Fatalf("预期通过校验, got %v", errs)
	}
}

func TestValidateSnapshotVersionFieldsAlwaysRequired(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Version["location_name"] = ""

	// 无论筛选哪个模块都要报版本字段错误
	for _, modules := range [][]string{nil, {ModuleBanners}, {ModuleScenes}} {
		errs := ValidateSnapshot(snapshot, modules)
		if !hasError(errs, ModuleVersionNames, "location_name") {
			t.Errorf("modules=%v 未报 location_name 错误: %v", modules, errs)
		}
	}
}

func TestValidateSnapshotModuleScoped(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Modules[ModuleBanners][0]["image"] = ""

	if errs := ValidateSnapshot(snapshot, nil); !hasError(errs, ModuleBanners, "image") {
		t.Errorf("全量校验未报 banners.image 错误: %v", errs)
	}
	if errs := ValidateSnapshot(snapshot, []string{ModuleBanners}); !hasError(errs, ModuleBanners, "image") {
		t.Errorf("选中 banners 未报 image 错误: %v", errs)
	}
	// 未选中 banners 时该错误不应出现
	if errs := ValidateSnapshot(snapshot, []string{ModuleScenes}); hasError(errs, ModuleBanners, "image") {
		t.Errorf("未选中 banners 却报了 image 错误: %v", errs)
	}
}

func TestValidateSnapshotScenesMinRows(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Modules[ModuleScenes] = nil

	errs := ValidateSnapshot(snapshot, []string{ModuleScenes})
	if !hasError(errs, ModuleScenes, "rows") {
		t.Errorf("空场景列表未报错误: %v", errs)
	}
}

func TestValidateSnapshotSingleton(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Modules[ModuleAppUIFields] = []map[string]interface{}{
		{"id": int64(1), "home_title": "标题A"},
		{"id": int64(2), "home_title": "标题B"},
	}

	errs := ValidateSnapshot(snapshot, []string{ModuleAppUIFields})
	if !hasError(errs, ModuleAppUIFields, "rows") {
		t.Errorf("单例模块出现多行未报错误: %v", errs)
	}

	// 单行是合法状态
	snapshot.Modules[ModuleAppUIFields] = snapshot.Modules[ModuleAppUIFields][:1]
	if errs := ValidateSnapshot(snapshot, []string{ModuleAppUIFields}); hasError(errs, ModuleAppUIFields, "rows") {
		t.Errorf("单例模块单行不应报错误: %v", errs)
	}
}

func TestValidateSnapshotCollectsAllErrors(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Version["app_version_name"] = ""
	snapshot.Version["location_name"] = ""
	snapshot.Modules[ModuleBanners][0]["image"] = ""

	errs := ValidateSnapshot(snapshot, nil)
	if len(errs) < 3 {
		t.Errorf("错误应整批收集, got %v", errs)
	}
}

func TestValidateSnapshotUnknownModule(t *testing.T) {
	errs := ValidateSnapshot(testSnapshot(), []string{"nope"})
	if !hasError(errs, "nope", "module_key") {
		t.Errorf("未知模块未报错误: %v", errs)
	}
}

func TestValidateSnapshotExtraStepFields(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Modules[ModuleConfigExtraSteps] = []map[string]interface{}{
		{"id": int64(1), "step_index": int64(0), "field_name": "age", "label": "年龄"},
		{"id": int64(2), "step_index": int64(1), "field_name": "", "label": nil},
	}

	errs := ValidateSnapshot(snapshot, []string{ModuleConfigExtraSteps})
	if !hasError(errs, ModuleConfigExtraSteps, "field_name") || !hasError(errs, ModuleConfigExtraSteps, "label") {
		t.Errorf("附加步骤缺字段未全部报出: %v", errs)
	}
	// step_index 为 0 是合法取值
	if hasError(errs, ModuleConfigExtraSteps, "step_index") {
		t.Errorf("step_index=0 不应报错: %v", errs)
	}
}
