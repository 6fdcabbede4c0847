package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/methods"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"gorm.io/gorm"
)

// 版本行上仅存在于草稿侧的列，同步到生产表前剥掉
var draftOnlyVersionColumns = []string{
	"draft_status", "submit_version", "sync_status", "sync_message",
	"synced_at", "confirmed_by", "confirmed_at", "target_id",
	"created_at", "updated_at",
}

// 运行中任务超过此时长视为崩溃残留，可被后续同步接管
const staleSyncTimeout = 10 * time.Minute

type SyncService struct {
	db *gorm.DB
}

func NewSyncService(db *gorm.DB) *SyncService {
	return &SyncService{db: db}
}

type SyncRequest struct {
	AppVersionNameID int64    `json:"draft_version_id"`
	TriggeredBy      string   `json:"triggered_by"`
	Overwrite        bool     `json:"overwrite"`
	Modules          []string `json:"modules"`
}

// ModuleResult 单模块同步报告
type ModuleResult struct {
	ModuleKey string `json:"module_key"`
	Status    string `json:"status"`
	Inserted  int    `json:"inserted"`
	Updated   int    `json:"updated"`
	Deleted   int    `json:"deleted"`
	Error     string `json:"error,omitempty"`
}

// SyncResult 整次同步的结构化报告，业务性失败也走这个结构而非裸错误
type SyncResult struct {
	JobID     string         `json:"job_id"`
	Status    string         `json:"status"`
	PerModule []ModuleResult `json:"per_module"`
	Errors    []FieldError   `json:"errors,omitempty"`
}

// Sync 把一个草稿版本推入生产表
// 顺序：运行哨兵 -> 快照装载 -> 校验 -> 覆盖闸门 -> 逐模块对照台账增改删 -> 记账收尾
// 单模块失败只记失败不中断其余模块，重试依赖对照台账保持幂等
func (s *SyncService) Sync(req *SyncRequest) (*SyncResult, error) {
	var version models.AppVersionName
	if err := s.db.First(&version, req.AppVersionNameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "草稿版本不存在"}
		}
		return nil, err
	}

	selected, moduleErrs := ResolveModules(req.Modules)
	if len(moduleErrs) > 0 {
		return nil, moduleErrs
	}

	// 运行哨兵：CAS改写版本行的sync_status，抢不到说明已有同步在跑
	res := s.db.Model(&models.AppVersionName{}).
		Where("id = ? AND sync_status <> ?", req.AppVersionNameID, models.SyncJobStatusRunning).
		UpdateColumn("sync_status", models.SyncJobStatusRunning)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 && !s.reclaimStaleSentinel(req.AppVersionNameID) {
		return nil, &ConflictError{Message: "该版本已有同步任务在运行"}
	}

	job := models.SyncJob{
		JobID:            uuid.NewString(),
		AppVersionNameID: req.AppVersionNameID,
		Status:           models.SyncJobStatusRunning,
		TriggeredBy:      req.TriggeredBy,
		Overwrite:        req.Overwrite,
		StartedAt:        time.Now(),
	}
	if err := s.db.Create(&job).Error; err != nil {
		s.releaseSentinel(req.AppVersionNameID, models.SyncStatusFailed, "创建同步任务失败", 0)
		return nil, err
	}

	snapshot, err := s.LoadSnapshot(req.AppVersionNameID)
	if err != nil {
		s.finishJob(&job, models.SyncJobStatusFailed, "装载快照失败: "+err.Error())
		s.releaseSentinel(req.AppVersionNameID, models.SyncStatusFailed, "装载快照失败", 0)
		return nil, err
	}

	if errs := ValidateSnapshot(snapshot, selected); len(errs) > 0 {
		s.finishJob(&job, models.SyncJobStatusFailed, "校验未通过")
		s.releaseSentinel(req.AppVersionNameID, models.SyncStatusFailed, "校验未通过", 0)
		return &SyncResult{JobID: job.JobID, Status: models.SyncJobStatusFailed, Errors: errs}, nil
	}

	// 覆盖闸门：同名生产版本已存在且不属于本草稿时必须显式覆盖
	prodVersionID, claimed, err := s.lookupProdVersion(req.AppVersionNameID, snapshot)
	if err != nil {
		s.finishJob(&job, models.SyncJobStatusFailed, err.Error())
		s.releaseSentinel(req.AppVersionNameID, models.SyncStatusFailed, err.Error(), 0)
		return nil, err
	}
	if prodVersionID != 0 && !claimed && !req.Overwrite {
		msg := "同名生产版本已存在，需显式覆盖"
		s.finishJob(&job, models.SyncJobStatusFailed, msg)
		s.releaseSentinel(req.AppVersionNameID, models.SyncStatusFailed, msg, 0)
		return nil, &ConflictError{Message: msg}
	}

	result := &SyncResult{JobID: job.JobID}

	// 版本行先落生产表，子模块行要挂到生产版本ID上
	versionSelected := methods.IsStringInSlice(ModuleVersionNames, selected)
	prodVersionID, versionResult, err := s.syncVersionRow(&job, snapshot, prodVersionID, versionSelected)
	if err != nil {
		s.finishJob(&job, models.SyncJobStatusFailed, err.Error())
		s.releaseSentinel(req.AppVersionNameID, models.SyncStatusFailed, err.Error(), 0)
		if versionResult != nil {
			result.Status = models.SyncJobStatusFailed
			result.PerModule = append(result.PerModule, *versionResult)
			return result, nil
		}
		return nil, err
	}
	if versionResult != nil {
		result.PerModule = append(result.PerModule, *versionResult)
	}

	failedCount := 0
	for _, key := range selected {
		if key == ModuleVersionNames {
			continue
		}
		desc, _ := GetModule(key)
		moduleResult := s.syncModule(&job, desc, snapshot.Rows(key), prodVersionID)
		if moduleResult.Status == models.SyncJobStatusFailed {
			failedCount++
		}
		result.PerModule = append(result.PerModule, moduleResult)
	}

	// 汇总收尾：部分失败时保留已成模块的成果，等操作员重试
	var status, message string
	switch {
	case failedCount == 0:
		status = models.SyncStatusSuccess
		message = "同步完成"
	case failedCount == len(result.PerModule):
		status = models.SyncStatusFailed
		message = "同步失败"
	default:
		status = models.SyncStatusPartial
		message = fmt.Sprintf("部分模块同步失败(%d/%d)", failedCount, len(result.PerModule))
	}
	result.Status = status

	jobStatus := models.SyncJobStatusSuccess
	if failedCount > 0 {
		jobStatus = models.SyncJobStatusFailed
	}
	s.finishJob(&job, jobStatus, message)
	s.releaseSentinel(req.AppVersionNameID, status, message, prodVersionID)

	WriteAudit(s.db, req.TriggeredBy, models.AuditActionSync, "", "app_version_names", req.AppVersionNameID,
		map[string]interface{}{"job_id": job.JobID, "status": status, "modules": selected})
	return result, nil
}

// LoadSnapshot 装载版本行与各模块草稿行
func (s *SyncService) LoadSnapshot(versionID int64) (*Snapshot, error) {
	versionRow := map[string]interface{}{}
	if err := s.db.Table("app_version_names").Where("id = ?", versionID).Take(&versionRow).Error; err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		AppVersionNameID: versionID,
		Version:          versionRow,
		Modules:          make(map[string][]map[string]interface{}),
	}
	for _, key := range AllModuleKeys() {
		if key == ModuleVersionNames {
			continue
		}
		desc, _ := GetModule(key)
		var rows []map[string]interface{}
		if err := s.db.Table(desc.DraftTable).
			Where("app_version_name_id = ?", versionID).
			Order("id").Find(&rows).Error; err != nil {
			return nil, err
		}
		snapshot.Modules[key] = rows
	}
	return snapshot, nil
}

// lookupProdVersion 只读探测：返回同名生产版本ID及其是否已被本草稿的台账认领
func (s *SyncService) lookupProdVersion(versionID int64, snapshot *Snapshot) (int64, bool, error) {
	var mapping models.SyncIdMap
	err := s.db.Where("app_version_name_id = ? AND module_key = ? AND draft_row_id = ?",
		versionID, ModuleVersionNames, versionID).First(&mapping).Error
	if err == nil {
		return mapping.TargetRowID, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, err
	}

	name, _ := snapshot.Version["app_version_name"].(string)
	var prod models.ProdAppVersionName
	err = s.db.Where("app_version_name = ?", name).First(&prod).Error
	if err == nil {
		return prod.ID, false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	return 0, false, err
}

// syncVersionRow 版本行本身作为 version_names 模块同步
// 未选中该模块但生产版本尚不存在时，仍需建出生产版本行供子模块挂靠
func (s *SyncService) syncVersionRow(job *models.SyncJob, snapshot *Snapshot, prodVersionID int64, selected bool) (int64, *ModuleResult, error) {
	if !selected && prodVersionID != 0 {
		return prodVersionID, nil, nil
	}

	desc, _ := GetModule(ModuleVersionNames)
	var moduleJob *models.SyncModuleJob
	if selected {
		moduleJob = s.startModuleJob(job, desc.Key)
	}

	prodRow := methods.CopyMap(snapshot.Version)
	methods.RemoveKeyFromMap(prodRow, "id")
	methods.RemoveKeyFromMap(prodRow, draftOnlyVersionColumns...)

	inserted, updated := 0, 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if prodVersionID != 0 {
			if err := tx.Table(desc.ProdTable).Where("id = ?", prodVersionID).Updates(prodRow).Error; err != nil {
				return err
			}
			updated++
			// 覆盖接管的生产版本可能还没有台账记录
			return s.ensureMapping(tx, snapshot.AppVersionNameID, desc.Key, snapshot.AppVersionNameID, prodVersionID)
		}

		applyDefaults(prodRow, desc.ProdDefaults)
		name, _ := snapshot.Version["app_version_name"].(string)
		newID, err := s.insertProdRow(tx, desc.ProdTable, prodRow, "app_version_name = ?", name)
		if err != nil {
			return err
		}
		prodVersionID = newID
		inserted++
		return s.ensureMapping(tx, snapshot.AppVersionNameID, desc.Key, snapshot.AppVersionNameID, newID)
	})

	if moduleJob != nil {
		if err != nil {
			s.finishModuleJob(moduleJob, models.SyncJobStatusFailed, err.Error(), inserted, updated, 0)
		} else {
			s.finishModuleJob(moduleJob, models.SyncJobStatusSuccess, "", inserted, updated, 0)
		}
	}
	if err != nil {
		result := &ModuleResult{ModuleKey: desc.Key, Status: models.SyncJobStatusFailed, Error: err.Error()}
		if !selected {
			result = nil
		}
		return 0, result, err
	}

	var result *ModuleResult
	if selected {
		result = &ModuleResult{ModuleKey: desc.Key, Status: models.SyncJobStatusSuccess, Inserted: inserted, Updated: updated}
	}
	return prodVersionID, result, nil
}

// syncModule 单模块增改删，整模块一个事务，失败只影响本模块
func (s *SyncService) syncModule(job *models.SyncJob, desc ModuleDescriptor, rows []map[string]interface{}, prodVersionID int64) ModuleResult {
	moduleJob := s.startModuleJob(job, desc.Key)
	inserted, updated, deleted := 0, 0, 0

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var mappings []models.SyncIdMap
		if err := tx.Where("app_version_name_id = ? AND module_key = ?",
			job.AppVersionNameID, desc.Key).Find(&mappings).Error; err != nil {
			return err
		}
		targetByDraft := make(map[int64]models.SyncIdMap, len(mappings))
		for _, m := range mappings {
			targetByDraft[m.DraftRowID] = m
		}

		seen := make(map[int64]bool, len(rows))
		keep := make([]int64, 0, len(rows))
		for _, row := range rows {
			draftID := methods.ToInt64(row["id"])
			seen[draftID] = true

			prodRow := methods.CopyMap(row)
			methods.RemoveKeyFromMap(prodRow, "id", "created_at", "updated_at")
			prodRow["app_version_name_id"] = prodVersionID

			if m, ok := targetByDraft[draftID]; ok {
				if err := tx.Table(desc.ProdTable).Where("id = ?", m.TargetRowID).Updates(prodRow).Error; err != nil {
					return err
				}
				keep = append(keep, m.TargetRowID)
				updated++
				continue
			}

			applyDefaults(prodRow, desc.ProdDefaults)
			newID, err := s.insertProdRow(tx, desc.ProdTable, prodRow, "app_version_name_id = ?", prodVersionID)
			if err != nil {
				return err
			}
			if err := s.ensureMapping(tx, job.AppVersionNameID, desc.Key, draftID, newID); err != nil {
				return err
			}
			keep = append(keep, newID)
			inserted++
		}

		// 台账里还挂着但草稿里已不存在的行，连同生产行一起清掉
		// 同步语义是模块级整体替换而非只增合并
		for draftID, m := range targetByDraft {
			if seen[draftID] {
				continue
			}
			if err := tx.Table(desc.ProdTable).Where("id = ?", m.TargetRowID).Delete(nil).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.SyncIdMap{}, m.ID).Error; err != nil {
				return err
			}
			deleted++
		}

		// 接管的生产版本可能带着不在任何台账里的旧行，模块级替换连它们一起清掉
		sweep := tx.Table(desc.ProdTable).Where("app_version_name_id = ?", prodVersionID)
		if len(keep) > 0 {
			sweep = sweep.Where("id NOT IN ?", keep)
		}
		res := sweep.Delete(nil)
		if res.Error != nil {
			return res.Error
		}
		deleted += int(res.RowsAffected)
		return nil
	})

	if err != nil {
		log.Printf("模块 %s 同步失败: %v", desc.Key, err)
		s.finishModuleJob(moduleJob, models.SyncJobStatusFailed, err.Error(), inserted, updated, deleted)
		return ModuleResult{ModuleKey: desc.Key, Status: models.SyncJobStatusFailed, Error: err.Error()}
	}
	s.finishModuleJob(moduleJob, models.SyncJobStatusSuccess, "", inserted, updated, deleted)
	return ModuleResult{ModuleKey: desc.Key, Status: models.SyncJobStatusSuccess, Inserted: inserted, Updated: updated, Deleted: deleted}
}

// ensureMapping 台账行按复合键唯一，已有则指向新目标
func (s *SyncService) ensureMapping(tx *gorm.DB, versionID int64, moduleKey string, draftRowID, targetRowID int64) error {
	var existing models.SyncIdMap
	err := tx.Where("app_version_name_id = ? AND module_key = ? AND draft_row_id = ?",
		versionID, moduleKey, draftRowID).First(&existing).Error
	if err == nil {
		if existing.TargetRowID == targetRowID {
			return nil
		}
		return tx.Model(&existing).UpdateColumn("target_row_id", targetRowID).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(&models.SyncIdMap{
		AppVersionNameID: versionID,
		ModuleKey:        moduleKey,
		DraftRowID:       draftRowID,
		TargetRowID:      targetRowID,
	}).Error
}

// insertProdRow 生产行编号交给数据库自增
// 运行哨兵保证给定归属范围内没有并发写入，范围内MAX即刚插入的行
func (s *SyncService) insertProdRow(tx *gorm.DB, table string, row map[string]interface{}, scope string, args ...interface{}) (int64, error) {
	if err := tx.Table(table).Create(row).Error; err != nil {
		return 0, err
	}
	var id int64
	err := tx.Table(table).Select("COALESCE(MAX(id), 0)").Where(scope, args...).Scan(&id).Error
	return id, err
}

func applyDefaults(row map[string]interface{}, defaults map[string]interface{}) {
	for k, v := range defaults {
		if cur, ok := row[k]; !ok || cur == nil {
			row[k] = v
		}
	}
}

func (s *SyncService) startModuleJob(job *models.SyncJob, moduleKey string) *models.SyncModuleJob {
	moduleJob := &models.SyncModuleJob{
		SyncJobID:        job.ID,
		AppVersionNameID: job.AppVersionNameID,
		ModuleKey:        moduleKey,
		Status:           models.SyncJobStatusRunning,
		StartedAt:        time.Now(),
	}
	if err := s.db.Create(moduleJob).Error; err != nil {
		log.Printf("创建模块同步记录失败: %v", err)
	}
	return moduleJob
}

func (s *SyncService) finishModuleJob(moduleJob *models.SyncModuleJob, status, errorMessage string, inserted, updated, deleted int) {
	now := time.Now()
	if err := s.db.Model(moduleJob).Updates(map[string]interface{}{
		"status":        status,
		"error_message": errorMessage,
		"inserted":      inserted,
		"updated":       updated,
		"deleted":       deleted,
		"finished_at":   now,
	}).Error; err != nil {
		log.Printf("更新模块同步记录失败: %v", err)
	}
}

func (s *SyncService) finishJob(job *models.SyncJob, status, errorMessage string) {
	now := time.Now()
	if err := s.db.Model(job).Updates(map[string]interface{}{
		"status":        status,
		"error_message": errorMessage,
		"finished_at":   now,
	}).Error; err != nil {
		log.Printf("更新同步任务失败: %v", err)
	}
}

// reclaimStaleSentinel 崩溃残留的运行哨兵按超时接管
// 正常运行中的任务不受影响；接管成功把残留任务记为失败
func (s *SyncService) reclaimStaleSentinel(versionID int64) bool {
	var job models.SyncJob
	err := s.db.Where("app_version_name_id = ? AND status = ?", versionID, models.SyncJobStatusRunning).
		Order("id DESC").First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 哨兵还挂着但没有运行中的任务，属于残留
		return true
	}
	if err != nil || time.Since(job.StartedAt) < staleSyncTimeout {
		return false
	}

	// 条件改写决出唯一接管者
	res := s.db.Model(&models.SyncJob{}).
		Where("id = ? AND status = ?", job.ID, models.SyncJobStatusRunning).
		Updates(map[string]interface{}{
			"status":        models.SyncJobStatusFailed,
			"error_message": "同步任务超时，被后续同步接管",
			"finished_at":   time.Now(),
		})
	return res.Error == nil && res.RowsAffected == 1
}

// releaseSentinel 收尾时写回版本行的同步状态，释放运行哨兵
func (s *SyncService) releaseSentinel(versionID int64, status, message string, prodVersionID int64) {
	updates := map[string]interface{}{
		"sync_status":  status,
		"sync_message": message,
	}
	if status == models.SyncStatusSuccess || status == models.SyncStatusPartial {
		updates["synced_at"] = time.Now()
	}
	if prodVersionID != 0 {
		updates["target_id"] = prodVersionID
	}
	if err := s.db.Model(&models.AppVersionName{}).Where("id = ?", versionID).Updates(updates).Error; err != nil {
		log.Printf("更新版本同步状态失败: %v", err)
	}
}

// ListModuleJobs 某版本的模块同步记录，新的在前
func (s *SyncService) ListModuleJobs(versionID int64) ([]models.SyncModuleJob, error) {
	var jobs []models.SyncModuleJob
	err := s.db.Where("app_version_name_id = ?", versionID).Order("id DESC").Find(&jobs).Error
	return jobs, err
}

// GetJob 按JobID取整任务与其模块记录
func (s *SyncService) GetJob(jobID string) (*models.SyncJob, []models.SyncModuleJob, error) {
	var job models.SyncJob
	if err := s.db.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &NotFoundError{Message: "同步任务不存在"}
		}
		return nil, nil, err
	}
	var moduleJobs []models.SyncModuleJob
	if err := s.db.Where("sync_job_id = ?", job.ID).Order("id").Find(&moduleJobs).Error; err != nil {
		return nil, nil, err
	}
	return &job, moduleJobs, nil
}
