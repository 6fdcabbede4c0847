package views

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/config"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/response"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginData struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 校验口令换发令牌，令牌直接存在操作员记录上
func (uc *UserController) Login(c *gin.Context) {
	var data LoginData
	if err := c.ShouldBindJSON(&data); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	DB := models.DB
	var user models.AdminUser
	if err := DB.Where("username = ? AND status = 1", data.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Unauthorized(c, "用户名或密码错误")
			return
		}
		response.InternalError(c, err.Error())
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.Password)) != nil {
		response.Unauthorized(c, "用户名或密码错误")
		return
	}

	token := uuid.NewString()
	if err := DB.Model(&user).UpdateColumn("token", token).Error; err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"token": token, "username": user.Username, "name": user.Name})
}

// SessionAuth 配置后台接口的令牌校验，通过后把操作员放进上下文
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			response.Unauthorized(c, "未登录")
			c.Abort()
			return
		}
		var user models.AdminUser
		if err := models.DB.Where("token = ? AND status = 1", token).First(&user).Error; err != nil {
			response.Unauthorized(c, "登录已失效")
			c.Abort()
			return
		}
		c.Set("username", user.Username)
		c.Next()
	}
}

// ApiKeyAuth 推送接收端的静态密钥校验，支持请求头或查询参数
func ApiKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Api-Key")
		if key == "" {
			key = c.Query("api_key")
		}
		if config.ApiKey == "" || key != config.ApiKey {
			response.Unauthorized(c, "密钥无效")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUsername(c *gin.Context) string {
	if name, ok := c.Get("username"); ok {
		if s, ok := name.(string); ok {
			return s
		}
	}
	return ""
}
