package models

import "strings"

type LocalUser struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserName    string `gorm:"column:user_name;size:150;not null" json:"userName"`
	UserNameKey string `gorm:"column:user_name_key;size:150;not null;uniqueIndex" json:"-"`
	Name        string `gorm:"size:255" json:"name"`
	Password    string `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	Role        string `gorm:"size:50" json:"role"`
}

func NormalizeUserName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
