package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	UserStatusBlocked    = "blocked"
	UserStatusActivated  = "activated"
	UserStatusUnverified = "unverified"
)

const (
	UserRoleManager  = "manager"
	UserRoleEmployee = "employee"
)

const (
	UserGenderMale   = "male"
	UserGenderFemale = "female"
	UserGenderOther  = "other"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	EmployeeCode string     `gorm:"uniqueIndex;size:255" json:"employee_code"`
	FullName     string     `gorm:"not null" json:"fullname"`
	BirthDate    *time.Time `gorm:"type:date" json:"birth_date"`
	Gender       string     `gorm:"size:20;default:other" json:"gender"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string     `gorm:"size:15" json:"phone"`
	Password     string     `gorm:"not null" json:"-"` // bcrypt hash
	Status       string     `gorm:"size:20;default:unverified;index" json:"status"`
	Role         string     `gorm:"size:20;default:employee" json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Orders       []Order    `gorm:"foreignKey:EmployeeID" json:"orders,omitempty"`
}

// AfterCreate assigns the employee code from the generated id.
func (u *User) AfterCreate(tx *gorm.DB) error {
	if u.EmployeeCode != "" {
		return nil
	}
	u.EmployeeCode = fmt.Sprintf("NV%05d", u.ID)
	return tx.Model(u).UpdateColumn("employee_code", u.EmployeeCode).Error
}
