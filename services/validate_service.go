package services

import "fmt"

// Snapshot 一个草稿版本按模块组织的行快照，行统一用map承载
// version_names 模块的行即版本行本身
type Snapshot struct {
	AppVersionNameID int64
	Version          map[string]interface{}
	Modules          map[string][]map[string]interface{}
}

// Rows 取指定模块的行，version_names 返回版本行单行
func (s *Snapshot) Rows(moduleKey string) []map[string]interface{} {
	if moduleKey == ModuleVersionNames {
		if s.Version == nil {
			return nil
		}
		return []map[string]interface{}{s.Version}
	}
	return s.Modules[moduleKey]
}

// ValidateSnapshot 纯校验，不触库不短路，错误整批收集
// modules 为空表示全量校验；版本标识字段无论筛选与否都必查
func ValidateSnapshot(snapshot *Snapshot, modules []string) ValidationErrors {
	var errs ValidationErrors

	selected, moduleErrs := ResolveModules(modules)
	errs = append(errs, moduleErrs...)

	for _, field := range []string{"app_version_name", "location_name"} {
		if fieldEmpty(snapshot.Version, field) {
			errs = append(errs, FieldError{Module: ModuleVersionNames, Field: field, Message: field + " 不能为空"})
		}
	}

	for _, key := range selected {
		if key == ModuleVersionNames {
			continue // 版本字段已查
		}
		desc, _ := GetModule(key)
		rows := snapshot.Rows(key)
		if len(rows) < desc.MinRows {
			errs = append(errs, FieldError{Module: key, Field: "rows", Message: "至少需要一条记录"})
			continue
		}
		if desc.Singleton && len(rows) > 1 {
			errs = append(errs, FieldError{Module: key, Field: "rows", Message: "该模块每个版本至多一条记录"})
		}
		for i, row := range rows {
			for _, field := range desc.RequiredFields {
				if fieldEmpty(row, field) {
					errs = append(errs, FieldError{Module: key, Field: field, Message: fieldMessage(i, field)})
				}
			}
		}
	}
	return errs
}

// fieldEmpty 缺键、nil或空字符串都算空，数值0是合法取值
func fieldEmpty(row map[string]interface{}, field string) bool {
	if row == nil {
		return true
	}
	val, ok := row[field]
	if !ok || val == nil {
		return true
	}
	if s, ok := val.(string); ok && s == "" {
		return true
	}
	return false
}

func fieldMessage(index int, field string) string {
	return fmt.Sprintf("第%d行缺少必填字段 %s", index+1, field)
}
