package model

import "time"

type UserRole string

const (
	Admin    UserRole = "admin"
	Marketer UserRole = "marketer"
)

// AdminUser 后台账号（查看响应、导出数据），问卷本身匿名无账号
// swagger:model AdminUser
type AdminUser struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('admin','marketer');default:'marketer'" json:"role"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
