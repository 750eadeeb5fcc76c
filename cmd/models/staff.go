package models

import (
	"gorm.io/gorm"
)

// StaffAccount is an operator of the administrative API.
type StaffAccount struct {
	gorm.Model
	FullName     string `gorm:"column:full_name;size:100;not null" json:"full_name"`
	Email        string `gorm:"column:email;size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role         string `gorm:"column:role;size:50;not null;default:admin" json:"role"`
}

func (StaffAccount) TableName() string {
	return "staff_accounts"
}
