package models

import "gorm.io/datatypes"

// 各内容模块的草稿表，统一以 app_version_name_id 归属到草稿版本
// 生产表为同构的 prod_ 前缀表，由同步引擎写入，行编号独立，
// app_version_name_id 指向生产版本行

type Banner struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64  `gorm:"index" json:"app_version_name_id"`
	Title            string `gorm:"type:varchar(255)" json:"title"`
	Image            string `gorm:"type:varchar(500)" json:"image"`
	JumpUrl          string `gorm:"type:varchar(500)" json:"jump_url"`
	Sort             int    `gorm:"default:0" json:"sort"`
	Status           int    `gorm:"default:1" json:"status"`
}

func (Banner) TableName() string { return "banners" }

type ProdBanner struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64  `gorm:"index" json:"app_version_name_id"`
	Title            string `gorm:"type:varchar(255)" json:"title"`
	Image            string `gorm:"type:varchar(500)" json:"image"`
	JumpUrl          string `gorm:"type:varchar(500)" json:"jump_url"`
	Sort             int    `gorm:"default:0" json:"sort"`
	Status           int    `gorm:"default:1" json:"status"`
}

func (ProdBanner) TableName() string { return "prod_banners" }

type Identity struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64  `gorm:"index" json:"app_version_name_id"`
	Name             string `gorm:"type:varchar(255)" json:"name"`
	Icon             string `gorm:"type:varchar(500)" json:"icon"`
	Prompt           string `gorm:"type:text" json:"prompt"`
	Sort             int    `gorm:"default:0" json:"sort"`
	Status           int    `gorm:"default:1" json:"status"`
}

func (Identity) TableName() string { return "identities" }

type ProdIdentity struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64  `gorm:"index" json:"app_version_name_id"`
	Name             string `gorm:"type:varchar(255)" json:"name"`
	Icon             string `gorm:"type:varchar(500)" json:"icon"`
	Prompt           string `gorm:"type:text" json:"prompt"`
	Sort             int    `gorm:"default:0" json:"sort"`
	Status           int    `gorm:"default:1" json:"status"`
}

func (ProdIdentity) TableName() string { return "prod_identities" }

type Scene struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64  `gorm:"index" json:"app_version_name_id"`
	Name             string `gorm:"type:varchar(255)" json:"name"`
	Image            string `gorm:"type:varchar(500)" json:"image"`
	Prompt           string `gorm:"type:text" json:"prompt"`
	Sort             int    `gorm:"default:0" json:"sort"`
	Status           int    `gorm:"default:1" json:"status"`
}

func (Scene) TableName() string { return "scenes" }

type ProdScene struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64  `gorm:"index" json:"app_version_name_id"`
	Name             string `gorm:"type:varchar(255)" json:"name"`
	Image            string `gorm:"type:varchar(500)" json:"image"`
	Prompt           string `gorm:"type:text" json:"prompt"`
	Sort             int    `gorm:"default:0" json:"sort"`
	Status           int    `gorm:"default:1" json:"status"`
}

func (ProdScene) TableName() string { return "prod_scenes" }

type ClothesCategory struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64  `gorm:"index" json:"app_version_name_id"`
	Name             string `gorm:"type:varchar(255)" json:"name"`
	Icon             string `gorm:"type:varchar(500)" json:"icon"`
	Sort             int    `gorm:"default:0" json:"sort"`
	Status           int    `gorm:"default:1" json:"status"`
}

func (ClothesCategory) TableName() string { return "clothes_categories" }

type ProdClothesCategory struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64  `gorm:"index" json:"app_version_name_id"`
	Name             string `gorm:"type:varchar(255)" json:"name"`
	Icon             string `gorm:"type:varchar(500)" json:"icon"`
	Sort             int    `gorm:"default:0" json:"sort"`
	Status           int    `gorm:"default:1" json:"status"`
}

func (ProdClothesCategory) TableName() string { return "prod_clothes_categories" }

type PhotoHobby struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64  `gorm:"index" json:"app_version_name_id"`
	Name             string `gorm:"type:varchar(255)" json:"name"`
	Icon             string `gorm:"type:varchar(500)" json:"icon"`
	Sort             int    `gorm:"default:0" json:"sort"`
	Status           int    `gorm:"default:1" json:"status"`
}

func (PhotoHobby) TableName() string { return "photo_hobbies" }

type ProdPhotoHobby struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64  `gorm:"index" json:"app_version_name_id"`
	Name             string `gorm:"type:varchar(255)" json:"name"`
	Icon             string `gorm:"type:varchar(500)" json:"icon"`
	Sort             int    `gorm:"default:0" json:"sort"`
	Status           int    `gorm:"default:1" json:"status"`
}

func (ProdPhotoHobby) TableName() string { return "prod_photo_hobbies" }

// ConfigExtraStep 引导流程的附加配置步骤
type ConfigExtraStep struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64          `gorm:"index" json:"app_version_name_id"`
	StepIndex        int            `gorm:"default:0" json:"step_index"`
	FieldName        string         `gorm:"type:varchar(255)" json:"field_name"`
	Label            string         `gorm:"type:varchar(255)" json:"label"`
	Placeholder      string         `gorm:"type:varchar(255)" json:"placeholder"`
	Options          datatypes.JSON `gorm:"type:json" json:"options"`
	Sort             int            `gorm:"default:0" json:"sort"`
	Status           int            `gorm:"default:1" json:"status"`
}

func (ConfigExtraStep) TableName() string { return "config_extra_steps" }

type ProdConfigExtraStep struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64          `gorm:"index" json:"app_version_name_id"`
	StepIndex        int            `gorm:"default:0" json:"step_index"`
	FieldName        string         `gorm:"type:varchar(255)" json:"field_name"`
	Label            string         `gorm:"type:varchar(255)" json:"label"`
	Placeholder      string         `gorm:"type:varchar(255)" json:"placeholder"`
	Options          datatypes.JSON `gorm:"type:json" json:"options"`
	Sort             int            `gorm:"default:0" json:"sort"`
	Status           int            `gorm:"default:1" json:"status"`
}

func (ProdConfigExtraStep) TableName() string { return "prod_config_extra_steps" }

// AppUIFields App界面文案单例，每个版本至多一条
type AppUIFields struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64          `gorm:"uniqueIndex" json:"app_version_name_id"`
	HomeTitle        string         `gorm:"type:varchar(255)" json:"home_title"`
	HomeSubtitle     string         `gorm:"type:varchar(255)" json:"home_subtitle"`
	ConfirmText      string         `gorm:"type:varchar(255)" json:"confirm_text"`
	LoadingText      string         `gorm:"type:varchar(255)" json:"loading_text"`
	Extra            datatypes.JSON `gorm:"type:json" json:"extra"`
}

func (AppUIFields) TableName() string { return "app_ui_fields" }

type ProdAppUIFields struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64          `gorm:"index" json:"app_version_name_id"`
	HomeTitle        string         `gorm:"type:varchar(255)" json:"home_title"`
	HomeSubtitle     string         `gorm:"type:varchar(255)" json:"home_subtitle"`
	ConfirmText      string         `gorm:"type:varchar(255)" json:"confirm_text"`
	LoadingText      string         `gorm:"type:varchar(255)" json:"loading_text"`
	Extra            datatypes.JSON `gorm:"type:json" json:"extra"`
	Status           int            `gorm:"default:1" json:"status"`
}

func (ProdAppUIFields) TableName() string { return "prod_app_ui_fields" }
