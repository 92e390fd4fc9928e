package model

import (
	"gorm.io/gorm"

	"terminal-terrace/discussion-board/internal/model/discussion"
	"terminal-terrace/discussion-board/internal/model/user"
)

func InitTable(db *gorm.DB) error {
	// 自动迁移数据库表结构
	return db.AutoMigrate(
		// 用户模型（由认证服务写入，迁移仅保证本地开发可用）
		&user.User{},
		// 讨论区
		&discussion.Discussion{},
		&discussion.Comment{},
	)
}
