package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB 每个用例独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := models.AutoMigrateAll(db); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

func newTestVersion(t *testing.T, db *gorm.DB) *models.AppVersionName {
	t.Helper()
	version := models.AppVersionName{
		AppVersionName: "v1.0.0",
		LocationName:   "cn",
		AiModal:        "modal-a",
	}
	if err := db.Create(&version).Error; err != nil {
		t.Fatalf("创建测试版本失败: %v", err)
	}
	return &version
}

func newTestBanner(t *testing.T, db *gorm.DB, versionID int64, image string) *models.Banner {
	t.Helper()
	banner := models.Banner{
		AppVersionNameID: versionID,
		Title:            "首页横幅",
		Image:            image,
		Sort:             1,
	}
	if err := db.Create(&banner).Error; err != nil {
		t.Fatalf("创建测试横幅失败: %v", err)
	}
	return &banner
}

func newTestScene(t *testing.T, db *gorm.DB, versionID int64, name string) *models.Scene {
	t.Helper()
	scene := models.Scene{
		AppVersionNameID: versionID,
		Name:             name,
		Image:            "scene.png",
		Prompt:           "studio portrait",
	}
	if err := db.Create(&scene).Error; err != nil {
		t.Fatalf("创建测试场景失败: %v", err)
	}
	return &scene
}

func mustCount(t *testing.T, db *gorm.DB, table string, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	tx := db.Table(table)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Count(&count).Error; err != nil {
		t.Fatalf("统计 %s 失败: %v", table, err)
	}
	return count
}
