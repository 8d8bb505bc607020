// Package model 包含了应用的数据模型定义。
package model

import "time"

// User 代表一个注册用户。聊天记录与保存内容均以用户 ID 为键隔离。
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password  string    `gorm:"size:128;not null" json:"-"`
	Email     string    `gorm:"size:128" json:"email"`
	AvatarURL string    `gorm:"size:256" json:"avatarUrl"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
