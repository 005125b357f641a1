package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin     = "admin"
	RoleDoctor    = "doctor"
	RoleReception = "reception"
)

var RoleNames = []interface{}{RoleAdmin, RoleDoctor, RoleReception}

// Role represents a user role
type Role struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"size:50;not null;unique;index;column:name" json:"name"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"createdAt"`
}

func (Role) TableName() string {
	return "roles"
}

// SeedRoles inserts initial roles into the database
func SeedRoles(db *gorm.DB) error {
	initialRoles := []Role{
		{Name: RoleAdmin, Description: "Manages users, services, expenses and reports"},
		{Name: RoleDoctor, Description: "Records findings and works the assigned patients"},
		{Name: RoleReception, Description: "Registers patients, books appointments and takes payments"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, role := range initialRoles {
			if err := tx.FirstOrCreate(&role, Role{Name: role.Name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// User represents a clinic user
type User struct {
	ID        string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	Username  string    `gorm:"size:100;not null;unique;index;column:username" json:"username"`
	Phone     string    `gorm:"size:30;not null;unique;column:phone" json:"phone"`
	Password  string    `gorm:"size:255;not null;column:password" json:"-"`
	RoleID    int64     `gorm:"index;not null;column:role_id" json:"-"`
	Role      Role      `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"role"`
	Image     string    `gorm:"column:image" json:"image"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// RoleCount is the number of users holding one role.
type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}
