package services

import (
	"errors"

	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/methods"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"gorm.io/gorm"
)

// 生产端推送接收：把配置后台推来的草稿快照落到本地草稿表，
// 再走同一个同步编排器，两种部署的校验与台账语义完全一致

type PushRequest struct {
	Version     map[string]interface{}              `json:"version"`
	Modules     map[string][]map[string]interface{} `json:"modules"`
	SyncModules []string                            `json:"sync_modules"`
	Overwrite   bool                                `json:"overwrite"`
	TriggeredBy string                              `json:"triggered_by"`
}

// ImportAndSync 按版本名对齐本地草稿版本，整模块替换草稿行后执行同步
// 推送方的行ID原样保留，对照台账在多次推送之间才能稳定命中
func (s *SyncService) ImportAndSync(req *PushRequest) (*SyncResult, error) {
	name, _ := req.Version["app_version_name"].(string)
	location, _ := req.Version["location_name"].(string)
	if name == "" || location == "" {
		return nil, ValidationErrors{
			{Module: ModuleVersionNames, Field: "app_version_name", Message: "推送快照缺少版本标识"},
		}
	}

	var versionID int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var version models.AppVersionName
		err := tx.Where("app_version_name = ? AND location_name = ?", name, location).First(&version).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			version = models.AppVersionName{
				AppVersionName: name,
				LocationName:   location,
			}
		} else if err != nil {
			return err
		}
		version.FeishuFieldNames = stringField(req.Version, "feishu_field_names")
		version.AiModal = stringField(req.Version, "ai_modal")
		if status, ok := req.Version["status"]; ok && status != nil {
			version.Status = int(methods.ToInt64(status))
		}
		if err := tx.Save(&version).Error; err != nil {
			return err
		}
		versionID = version.ID

		selected, moduleErrs := ResolveModules(req.SyncModules)
		if len(moduleErrs) > 0 {
			return moduleErrs
		}
		for _, key := range selected {
			if key == ModuleVersionNames {
				continue
			}
			desc, _ := GetModule(key)
			if err := tx.Table(desc.DraftTable).
				Where("app_version_name_id = ?", versionID).Delete(nil).Error; err != nil {
				return err
			}
			for _, row := range req.Modules[key] {
				draftRow := methods.CopyMap(row)
				methods.RemoveKeyFromMap(draftRow, "created_at", "updated_at")
				draftRow["app_version_name_id"] = versionID
				if err := tx.Table(desc.DraftTable).Create(draftRow).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			return nil, verrs
		}
		return nil, err
	}

	return s.Sync(&SyncRequest{
		AppVersionNameID: versionID,
		TriggeredBy:      req.TriggeredBy,
		Overwrite:        req.Overwrite,
		Modules:          req.SyncModules,
	})
}

// BuildPushPayload 配置后台导出当前草稿快照，作为推送请求体
func (s *SyncService) BuildPushPayload(versionID int64) (*PushRequest, error) {
	snapshot, err := s.LoadSnapshot(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "草稿版本不存在"}
		}
		return nil, err
	}
	return &PushRequest{
		Version: snapshot.Version,
		Modules: snapshot.Modules,
	}, nil
}

func stringField(row map[string]interface{}, key string) string {
	if s, ok := row[key].(string); ok {
		return s
	}
	return ""
}
