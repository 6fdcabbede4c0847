package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/config"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/routers"
)

func main() {
	if err := models.InitDatabase(); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	r := gin.Default()
	switch config.Mode {
	case "receiver":
		routers.ReceiverRouters(r)
	default:
		routers.AdminRouters(r)
	}

	log.Printf("服务启动: %s 模式 %s", config.MainRouter, config.Mode)
	if err := r.Run(config.MainRouter); err != nil {
		log.Fatalf("服务启动失败: %v", err)
	}
}
