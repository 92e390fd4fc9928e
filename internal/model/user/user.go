package user

import "time"

// User 用户模型(映射到认证服务的 auth_users 表,只读)
type User struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id" bson:"_id"`
	Username  string    `gorm:"column:username" json:"username" bson:"username"`
	Email     string    `gorm:"column:email" json:"email" bson:"email"`
	Role      string    `gorm:"column:role" json:"role" bson:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at" bson:"created_at"`
}

func (User) TableName() string {
	return "auth_users"
}
