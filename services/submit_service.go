package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"gorm.io/gorm"
)

type SubmitService struct {
	db *gorm.DB
}

func NewSubmitService(db *gorm.DB) *SubmitService {
	return &SubmitService{db: db}
}

type SubmitRequest struct {
	AppVersionNameID int64                  `json:"draft_version_id"`
	ModuleKey        string                 `json:"module_key"`
	EntityTable      string                 `json:"entity_table"`
	EntityID         int64                  `json:"entity_id"`
	SubmitBy         string                 `json:"submit_by"`
	Payload          map[string]interface{} `json:"payload"`
}

type SubmitResult struct {
	SubmissionID  int64       `json:"submission_id"`
	SubmitVersion int64       `json:"submit_version"`
	Status        string      `json:"status"`
	NeedConfirm   bool        `json:"need_confirm"`
	Diff          []FieldDiff `json:"diff"`
}

// SubmissionStatus 提交状态由是否需要确认唯一决定
func SubmissionStatus(needConfirm bool) string {
	if needConfirm {
		return models.SubmissionStatusPendingConfirm
	}
	return models.SubmissionStatusSubmitted
}

// Submit 记录一次字段提交：分配版本内单调递增的submit_version，
// 与上一次记录状态比对生成diff，提交、字段流水、审计在一个事务内落库
func (s *SubmitService) Submit(req *SubmitRequest) (*SubmitResult, error) {
	desc, ok := GetModule(req.ModuleKey)
	if !ok {
		return nil, ValidationErrors{{Module: req.ModuleKey, Field: "module_key", Message: "未知模块: " + req.ModuleKey}}
	}
	if req.EntityTable != desc.DraftTable {
		return nil, ValidationErrors{{Module: req.ModuleKey, Field: "entity_table", Message: "实体表与模块不符: " + req.EntityTable}}
	}
	if req.Payload == nil {
		return nil, ValidationErrors{{Module: req.ModuleKey, Field: "payload", Message: "载荷不能为空"}}
	}

	var result *SubmitResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 原子加一保证并发提交者拿到互不相同且递增的submit_version
		res := tx.Model(&models.AppVersionName{}).
			Where("id = ?", req.AppVersionNameID).
			UpdateColumn("submit_version", gorm.Expr("submit_version + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Message: "草稿版本不存在"}
		}

		var version models.AppVersionName
		if err := tx.First(&version, req.AppVersionNameID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Table(req.EntityTable).Where("id = ?", req.EntityID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &NotFoundError{Message: "目标记录不存在"}
		}

		// 上一次记录状态来自同一实体最近一笔提交，首笔提交视为全新字段
		prevPayload := map[string]interface{}{}
		var prevID int64
		var prev models.Submission
		err := tx.Where("app_version_name_id = ? AND entity_table = ? AND entity_id = ?",
			req.AppVersionNameID, req.EntityTable, req.EntityID).
			Order("id DESC").First(&prev).Error
		if err == nil {
			prevID = prev.ID
			if len(prev.Payload) > 0 {
				if err := json.Unmarshal(prev.Payload, &prevPayload); err != nil {
					return err
				}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		diff := ComputeDiff(prevPayload, req.Payload)
		needConfirm := desc.NeedConfirm

		payloadJSON, err := json.Marshal(req.Payload)
		if err != nil {
			return err
		}
		diffJSON, err := json.Marshal(diff)
		if err != nil {
			return err
		}

		sub := models.Submission{
			AppVersionNameID: req.AppVersionNameID,
			SubmitVersion:    version.SubmitVersion,
			ModuleKey:        req.ModuleKey,
			EntityTable:      req.EntityTable,
			EntityID:         req.EntityID,
			Payload:          payloadJSON,
			Diff:             diffJSON,
			NeedConfirm:      needConfirm,
			Status:           SubmissionStatus(needConfirm),
			PrevID:           prevID,
			SubmitBy:         req.SubmitBy,
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}

		for _, entry := range diff {
			oldJSON, _ := json.Marshal(entry.Old)
			newJSON, _ := json.Marshal(entry.New)
			history := models.FieldHistory{
				SubmissionID:     sub.ID,
				AppVersionNameID: req.AppVersionNameID,
				ModuleKey:        req.ModuleKey,
				EntityTable:      req.EntityTable,
				EntityID:         req.EntityID,
				FieldName:        entry.Field,
				OldValue:         oldJSON,
				NewValue:         newJSON,
				SubmitBy:         req.SubmitBy,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.AppVersionName{}).Where("id = ?", req.AppVersionNameID).
			UpdateColumn("draft_status", models.DraftStatusSubmitted).Error; err != nil {
			return err
		}

		WriteAudit(tx, req.SubmitBy, models.AuditActionSubmit, req.ModuleKey, req.EntityTable, req.EntityID,
			map[string]interface{}{"submission_id": sub.ID, "submit_version": sub.SubmitVersion, "changed": len(diff)})

		result = &SubmitResult{
			SubmissionID:  sub.ID,
			SubmitVersion: sub.SubmitVersion,
			Status:        sub.Status,
			NeedConfirm:   needConfirm,
			Diff:          diff,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Confirm 待确认到已确认的单向闸门，重复确认必然失败
func (s *SubmitService) Confirm(submissionID int64, confirmedBy string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sub models.Submission
		if err := tx.First(&sub, submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Message: "提交记录不存在"}
			}
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Submission{}).
			Where("id = ? AND status = ?", submissionID, models.SubmissionStatusPendingConfirm).
			Updates(map[string]interface{}{
				"status":       models.SubmissionStatusConfirmed,
				"confirmed_by": confirmedBy,
				"confirmed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &ConflictError{Message: "提交记录当前不是待确认状态"}
		}

		WriteAudit(tx, confirmedBy, models.AuditActionConfirm, sub.ModuleKey, sub.EntityTable, sub.EntityID,
			map[string]interface{}{"submission_id": submissionID})
		return nil
	})
}

// SubmissionItem 列表项，提交人/确认人换成展示名
type SubmissionItem struct {
	models.Submission
	SubmitByName    string `json:"submit_by_name"`
	ConfirmedByName string `json:"confirmed_by_name"`
}

type SubmissionQuery struct {
	AppVersionNameID int64
	ModuleKey        string
	EntityTable      string
	EntityID         int64
}

func (s *SubmitService) ListSubmissions(q *SubmissionQuery) ([]SubmissionItem, error) {
	query := s.db.Model(&models.Submission{})
	if q.AppVersionNameID != 0 {
		query = query.Where("app_version_name_id = ?", q.AppVersionNameID)
	}
	if q.ModuleKey != "" {
		query = query.Where("module_key = ?", q.ModuleKey)
	}
	if q.EntityTable != "" {
		query = query.Where("entity_table = ?", q.EntityTable)
	}
	if q.EntityID != 0 {
		query = query.Where("entity_id = ?", q.EntityID)
	}

	var subs []models.Submission
	if err := query.Order("id DESC").Find(&subs).Error; err != nil {
		return nil, err
	}

	// 批量换取展示名，查不到的保留用户名原样
	nameSet := make(map[string]bool)
	for _, sub := range subs {
		nameSet[sub.SubmitBy] = true
		if sub.ConfirmedBy != "" {
			nameSet[sub.ConfirmedBy] = true
		}
	}
	usernames := make([]string, 0, len(nameSet))
	for name := range nameSet {
		usernames = append(usernames, name)
	}
	displayNames := make(map[string]string)
	if len(usernames) > 0 {
		var users []models.AdminUser
		if err := s.db.Where("username IN ?", usernames).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			displayNames[u.Username] = u.Name
		}
	}
	resolve := func(username string) string {
		if name, ok := displayNames[username]; ok && name != "" {
			return name
		}
		return username
	}

	items := make([]SubmissionItem, 0, len(subs))
	for _, sub := range subs {
		items = append(items, SubmissionItem{
			Submission:      sub,
			SubmitByName:    resolve(sub.SubmitBy),
			ConfirmedByName: resolve(sub.ConfirmedBy),
		})
	}
	return items, nil
}
