package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleName string

const (
	// RoleOwner tek başına fabrika ayarlarına dönüş yapabilen en yetkili rol
	RoleOwner RoleName = "OWNER"
	RoleAdmin RoleName = "ADMIN"
	RoleStaff RoleName = "STAFF"
)

type User struct {
	ID           string  `gorm:"primaryKey;size:36"`
	BranchID     *string `gorm:"size:36;index"`
	Branch       *Branch `gorm:"constraint:OnDelete:SET NULL"`
	Name         string  `gorm:"size:100;not null"`
	Email        string  `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string  `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Role struct {
	ID        string   `gorm:"primaryKey;size:36"`
	Name      RoleName `gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// UserRole: users <-> roles bağlantı tablosu
type UserRole struct {
	UserID string `gorm:"primaryKey;size:36"`
	User   User   `gorm:"foreignKey:UserID"`
	RoleID string `gorm:"primaryKey;size:36"`
	Role   Role   `gorm:"foreignKey:RoleID"`
}

type RolePermission struct {
	RoleID     string `gorm:"primaryKey;size:36"`
	Role       Role   `gorm:"foreignKey:RoleID"`
	Permission string `gorm:"primaryKey;size:100"`
}

type Session struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;index;not null"`
	User      User      `gorm:"foreignKey:UserID"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Invite struct {
	ID         string  `gorm:"primaryKey;size:36"`
	Email      string  `gorm:"size:100;not null"`
	RoleID     *string `gorm:"size:36"`
	Role       *Role   `gorm:"foreignKey:RoleID"`
	Token      string  `gorm:"size:100;uniqueIndex;not null"`
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	CreatedAt  time.Time
}
