package models

import (
	"log"

	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDatabase 按配置选择驱动并完成建表迁移
func InitDatabase() error {
	var dialector gorm.Dialector
	switch config.DBType {
	case "postgres":
		dialector = postgres.Open(config.DSN)
	case "sqlite":
		dialector = sqlite.Open(config.DSN)
	default:
		dialector = mysql.Open(config.DSN)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Printf("连接数据库失败: %v", err)
		return err
	}

	if err := AutoMigrateAll(DB); err != nil {
		log.Printf("数据库迁移失败: %v", err)
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// AutoMigrateAll 草稿表、生产表与同步引擎私有表
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&AppVersionName{},
		&Banner{},
		&Identity{},
		&Scene{},
		&ClothesCategory{},
		&PhotoHobby{},
		&ConfigExtraStep{},
		&AppUIFields{},
		&ProdAppVersionName{},
		&ProdBanner{},
		&ProdIdentity{},
		&ProdScene{},
		&ProdClothesCategory{},
		&ProdPhotoHobby{},
		&ProdConfigExtraStep{},
		&ProdAppUIFields{},
		&Submission{},
		&FieldHistory{},
		&SyncIdMap{},
		&SyncJob{},
		&SyncModuleJob{},
		&AuditLog{},
		&AdminUser{},
	)
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return DB
}
