package models

import "time"

// 同步任务状态
const (
	SyncJobStatusRunning = "running"
	SyncJobStatusSuccess = "success"
	SyncJobStatusFailed  = "failed"
)

// SyncIdMap 草稿行到生产行的对照台账
// (app_version_name_id, module_key, draft_row_id) 唯一，重复同步据此改走UPDATE
type SyncIdMap struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64     `gorm:"uniqueIndex:idx_map_key" json:"app_version_name_id"`
	ModuleKey        string    `gorm:"type:varchar(100);uniqueIndex:idx_map_key" json:"module_key"`
	DraftRowID       int64     `gorm:"uniqueIndex:idx_map_key" json:"draft_row_id"`
	TargetRowID      int64     `json:"target_row_id"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SyncIdMap) TableName() string {
	return "sync_id_maps"
}

// SyncJob 整版同步的执行记录，创建后仅允许改写结束字段
type SyncJob struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID            string     `gorm:"type:varchar(64);uniqueIndex" json:"job_id"`
	AppVersionNameID int64      `gorm:"index" json:"app_version_name_id"`
	Status           string     `gorm:"type:varchar(50);index" json:"status"`
	TriggeredBy      string     `gorm:"type:varchar(255)" json:"triggered_by"`
	Overwrite        bool       `gorm:"default:false" json:"overwrite"`
	ErrorMessage     string     `gorm:"type:varchar(1000)" json:"error_message"`
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at"`
}

func (SyncJob) TableName() string {
	return "sync_jobs"
}

// SyncModuleJob 单模块粒度的执行记录
type SyncModuleJob struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	SyncJobID        int64      `gorm:"index" json:"sync_job_id"`
	AppVersionNameID int64      `gorm:"index" json:"app_version_name_id"`
	ModuleKey        string     `gorm:"type:varchar(100)" json:"module_key"`
	Status           string     `gorm:"type:varchar(50)" json:"status"`
	Inserted         int        `gorm:"default:0" json:"inserted"`
	Updated          int        `gorm:"default:0" json:"updated"`
	Deleted          int        `gorm:"default:0" json:"deleted"`
	ErrorMessage     string     `gorm:"type:varchar(1000)" json:"error_message"`
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at"`
}

func (SyncModuleJob) TableName() string {
	return "sync_module_jobs"
}
