package routers

import (
	"github.com/gin-gonic/gin"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/views"
)

// AdminRouters 配置后台部署：完整编辑、提交、确认、同步入口
func AdminRouters(r *gin.Engine) {
	UserController := &views.UserController{}
	r.POST("/user/login", UserController.Login)

	versionRouter := r.Group("/version", views.SessionAuth())
	{
		versionRouter.POST("/add", UserController.AddVersion)
		versionRouter.GET("/list", UserController.GetVersionList)
	}
	draftRouter := r.Group("/draft", views.SessionAuth())
	{
		draftRouter.POST("/submit", UserController.Submit)
		draftRouter.POST("/confirm", UserController.Confirm)
		draftRouter.GET("/submissions", UserController.GetSubmissions)
	}
	syncRouter := r.Group("/sync", views.SessionAuth())
	{
		syncRouter.POST("", UserController.StartSync)
		syncRouter.GET("/jobs", UserController.GetSyncJobs)
		syncRouter.GET("/push_payload", UserController.GetPushPayload)
		syncRouter.GET("/ws/:jobId", UserController.SyncJobWebSocket)
	}
}

// ReceiverRouters 生产端部署：只暴露静态密钥保护的推送接收
func ReceiverRouters(r *gin.Engine) {
	UserController := &views.UserController{}
	syncRouter := r.Group("/sync", views.ApiKeyAuth())
	{
		syncRouter.POST("/push", UserController.SyncPush)
	}
}
