package views

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/response"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type jobMessage struct {
	Job     *models.SyncJob        `json:"job"`
	Modules []models.SyncModuleJob `json:"modules"`
}

// SyncJobWebSocket 同步任务状态推送，任务进入终态后发完最后一帧关闭
func (uc *UserController) SyncJobWebSocket(c *gin.Context) {
	jobID := c.Param("jobId")
	service := services.NewSyncService(models.DB)

	if _, _, err := service.GetJob(jobID); err != nil {
		renderServiceError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		response.InternalError(c, "WebSocket升级失败")
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		job, moduleJobs, err := service.GetJob(jobID)
		if err != nil {
			log.Printf("查询同步任务失败: %v", err)
			return
		}
		if err := conn.WriteJSON(jobMessage{Job: job, Modules: moduleJobs}); err != nil {
			return
		}
		if job.Status != models.SyncJobStatusRunning {
			return
		}
		<-ticker.C
	}
}
