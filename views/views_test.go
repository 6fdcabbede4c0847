package views_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/config"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/routers"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func setupAdmin(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:viewtest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := models.AutoMigrateAll(db); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	models.DB = db

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	if err := db.Create(&models.AdminUser{
		Username: "alice", Password: string(hash), Name: "张三", Status: 1,
	}).Error; err != nil {
		t.Fatalf("创建操作员失败: %v", err)
	}

	r := gin.New()
	routers.AdminRouters(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("编码请求体失败: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/user/login", "", gin.H{"username": "alice", "password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("登录失败: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析登录响应失败: %v", err)
	}
	return resp.Data.Token
}

func TestLoginAndSessionAuth(t *testing.T) {
	r := setupAdmin(t)

	// 未登录拒绝
	w := doJSON(t, r, http.MethodGet, "/version/list", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("无令牌应401, got %d", w.Code)
	}

	// 错口令拒绝
	w = doJSON(t, r, http.MethodPost, "/user/login", "", gin.H{"username": "alice", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("错口令应401, got %d", w.Code)
	}

	token := login(t, r)
	w = doJSON(t, r, http.MethodGet, "/version/list", token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("有令牌应放行, got %d %s", w.Code, w.Body.String())
	}
}

func TestSubmitConfirmSyncFlow(t *testing.T) {
	r := setupAdmin(t)
	token := login(t, r)

	// 建版本
	w := doJSON(t, r, http.MethodPost, "/version/add", token, gin.H{
		"app_version_name": "v1.0.0", "location_name": "cn",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("建版本失败: %d %s", w.Code, w.Body.String())
	}
	var versionResp struct {
		Data models.AppVersionName `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &versionResp); err != nil {
		t.Fatalf("解析版本响应失败: %v", err)
	}
	versionID := versionResp.Data.ID

	scene := models.Scene{AppVersionNameID: versionID, Name: "场景A", Image: "s.png"}
	if err := models.DB.Create(&scene).Error; err != nil {
		t.Fatalf("创建草稿场景失败: %v", err)
	}

	// 提交场景字段变更
	w = doJSON(t, r, http.MethodPost, "/draft/submit", token, gin.H{
		"draft_version_id": versionID,
		"module_key":       "scenes",
		"entity_table":     "scenes",
		"entity_id":        scene.ID,
		"payload":          gin.H{"name": "场景A", "image": "s.png"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("提交失败: %d %s", w.Code, w.Body.String())
	}

	// 查提交记录，提交人已换展示名
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/draft/submissions?draft_version_id=%d", versionID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("查提交记录失败: %d", w.Code)
	}
	var listResp struct {
		Data []struct {
			SubmissionID int64  `json:"id"`
			SubmitByName string `json:"submit_by_name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("解析提交列表失败: %v", err)
	}
	if len(listResp.Data) != 1 || listResp.Data[0].SubmitByName != "张三" {
		t.Errorf("提交列表异常: %s", w.Body.String())
	}

	// 提交版本信息变更并确认
	w = doJSON(t, r, http.MethodPost, "/draft/submit", token, gin.H{
		"draft_version_id": versionID,
		"module_key":       "version_names",
		"entity_table":     "app_version_names",
		"entity_id":        versionID,
		"payload":          gin.H{"ai_modal": "modal-b"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("提交版本变更失败: %d %s", w.Code, w.Body.String())
	}
	var submitResp struct {
		Data struct {
			SubmissionID int64 `json:"submission_id"`
			NeedConfirm  bool  `json:"need_confirm"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &submitResp); err != nil {
		t.Fatalf("解析提交响应失败: %v", err)
	}
	if !submitResp.Data.NeedConfirm {
		t.Errorf("版本模块应需要确认: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/draft/confirm", token, gin.H{"submission_id": submitResp.Data.SubmissionID})
	if w.Code != http.StatusOK {
		t.Fatalf("确认失败: %d %s", w.Code, w.Body.String())
	}
	// 重复确认报冲突
	w = doJSON(t, r, http.MethodPost, "/draft/confirm", token, gin.H{"submission_id": submitResp.Data.SubmissionID})
	if w.Code != http.StatusConflict {
		t.Errorf("重复确认应409, got %d %s", w.Code, w.Body.String())
	}

	// 触发同步并查任务
	w = doJSON(t, r, http.MethodPost, "/sync", token, gin.H{"draft_version_id": versionID})
	if w.Code != http.StatusOK {
		t.Fatalf("同步失败: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sync/jobs?draft_version_id=%d", versionID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("查同步任务失败: %d", w.Code)
	}
	var jobsResp struct {
		Data []models.SyncModuleJob `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &jobsResp); err != nil {
		t.Fatalf("解析任务列表失败: %v", err)
	}
	if len(jobsResp.Data) == 0 {
		t.Errorf("任务列表为空")
	}

	// 导出推送快照，即 /sync/push 的请求体
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sync/push_payload?draft_version_id=%d", versionID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("导出推送快照失败: %d %s", w.Code, w.Body.String())
	}
	var payloadResp struct {
		Data struct {
			Version map[string]interface{}              `json:"version"`
			Modules map[string][]map[string]interface{} `json:"modules"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payloadResp); err != nil {
		t.Fatalf("解析推送快照失败: %v", err)
	}
	if payloadResp.Data.Version["app_version_name"] != "v1.0.0" || len(payloadResp.Data.Modules["scenes"]) != 1 {
		t.Errorf("推送快照内容异常: %s", w.Body.String())
	}
}

func TestReceiverApiKey(t *testing.T) {
	r := setupReceiver(t)

	body := gin.H{
		"version": gin.H{"app_version_name": "v3.0.0", "location_name": "cn"},
		"modules": gin.H{
			"scenes": []gin.H{{"id": 1, "name": "场景A", "image": "s.png"}},
		},
	}

	w := doJSON(t, r, http.MethodPost, "/sync/push", "", body)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("无密钥应401, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/sync/push", bytes.NewReader(mustMarshal(t, body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", "test-key")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("推送失败: %d %s", w.Code, w.Body.String())
	}

	var count int64
	models.DB.Table("prod_scenes").Count(&count)
	if count != 1 {
		t.Errorf("生产场景行数 = %d, want 1", count)
	}
}

func setupReceiver(t *testing.T) *gin.Engine {
	t.Helper()
	r := setupAdmin(t) // 复用库初始化
	config.ApiKey = "test-key"
	r = gin.New()
	routers.ReceiverRouters(r)
	return r
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("编码失败: %v", err)
	}
	return data
}
