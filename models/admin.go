package models

// AdminUser 后台操作员，Token 为当前登录令牌
type AdminUser struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"type:varchar(255);uniqueIndex" json:"username"`
	Password string `gorm:"type:varchar(255)" json:"-"` // bcrypt散列
	Name     string `gorm:"type:varchar(255)" json:"name"`
	Token    string `gorm:"type:varchar(255);index" json:"-"`
	Status   int    `gorm:"default:1" json:"status"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
