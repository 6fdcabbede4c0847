package services

import "github.com/liunian-zy/shushu-app-ui-dashboard-sub001/methods"

// 模块注册表：各内容模块差异全部收敛到描述符里，提交/校验/同步共用一套流程

const (
	ModuleVersionNames     = "version_names"
	ModuleAppUIFields      = "app_ui_fields"
	ModuleBanners          = "banners"
	ModuleIdentities       = "identities"
	ModuleScenes           = "scenes"
	ModuleClothesCategorys = "clothes_categories"
	ModulePhotoHobbies     = "photo_hobbies"
	ModuleConfigExtraSteps = "config_extra_steps"
)

type ModuleDescriptor struct {
	Key            string
	DraftTable     string
	ProdTable      string
	RequiredFields []string // 每行必填字段
	MinRows        int      // 至少需要的行数
	Singleton      bool     // 每版本至多一行
	NeedConfirm    bool     // 变更需要二次确认
	ProdDefaults   map[string]interface{}
}

var moduleRegistry = map[string]ModuleDescriptor{
	ModuleVersionNames: {
		Key:            ModuleVersionNames,
		DraftTable:     "app_version_names",
		ProdTable:      "prod_app_version_names",
		RequiredFields: []string{"app_version_name", "location_name"},
		Singleton:      true,
		NeedConfirm:    true,
		ProdDefaults:   map[string]interface{}{"status": 1},
	},
	ModuleAppUIFields: {
		Key:          ModuleAppUIFields,
		DraftTable:   "app_ui_fields",
		ProdTable:    "prod_app_ui_fields",
		Singleton:    true,
		NeedConfirm:  true,
		ProdDefaults: map[string]interface{}{"status": 1},
	},
	ModuleBanners: {
		Key:            ModuleBanners,
		DraftTable:     "banners",
		ProdTable:      "prod_banners",
		RequiredFields: []string{"image"},
		ProdDefaults:   map[string]interface{}{"status": 1, "sort": 0},
	},
	ModuleIdentities: {
		Key:            ModuleIdentities,
		DraftTable:     "identities",
		ProdTable:      "prod_identities",
		RequiredFields: []string{"name"},
		ProdDefaults:   map[string]interface{}{"status": 1, "sort": 0},
	},
	ModuleScenes: {
		Key:            ModuleScenes,
		DraftTable:     "scenes",
		ProdTable:      "prod_scenes",
		RequiredFields: []string{"name"},
		MinRows:        1,
		ProdDefaults:   map[string]interface{}{"status": 1, "sort": 0},
	},
	ModuleClothesCategorys: {
		Key:            ModuleClothesCategorys,
		DraftTable:     "clothes_categories",
		ProdTable:      "prod_clothes_categories",
		RequiredFields: []string{"name"},
		ProdDefaults:   map[string]interface{}{"status": 1, "sort": 0},
	},
	ModulePhotoHobbies: {
		Key:            ModulePhotoHobbies,
		DraftTable:     "photo_hobbies",
		ProdTable:      "prod_photo_hobbies",
		RequiredFields: []string{"name"},
		ProdDefaults:   map[string]interface{}{"status": 1, "sort": 0},
	},
	ModuleConfigExtraSteps: {
		Key:            ModuleConfigExtraSteps,
		DraftTable:     "config_extra_steps",
		ProdTable:      "prod_config_extra_steps",
		RequiredFields: []string{"step_index", "field_name", "label"},
		ProdDefaults:   map[string]interface{}{"status": 1, "sort": 0},
	},
}

// 同步时的固定模块顺序，版本行先行
var moduleOrder = []string{
	ModuleVersionNames,
	ModuleAppUIFields,
	ModuleBanners,
	ModuleIdentities,
	ModuleScenes,
	ModuleClothesCategorys,
	ModulePhotoHobbies,
	ModuleConfigExtraSteps,
}

func GetModule(key string) (ModuleDescriptor, bool) {
	desc, ok := moduleRegistry[key]
	return desc, ok
}

func AllModuleKeys() []string {
	keys := make([]string, len(moduleOrder))
	copy(keys, moduleOrder)
	return keys
}

// ResolveModules 空列表视为全部模块，未注册的key报校验错误
func ResolveModules(keys []string) ([]string, ValidationErrors) {
	if len(keys) == 0 {
		return AllModuleKeys(), nil
	}
	var errs ValidationErrors
	var out []string
	for _, key := range moduleOrder {
		if methods.IsStringInSlice(key, keys) {
			out = append(out, key)
		}
	}
	for _, key := range keys {
		if _, ok := moduleRegistry[key]; !ok {
			errs = append(errs, FieldError{Module: key, Field: "module_key", Message: "未知模块: " + key})
		}
	}
	return out, errs
}
