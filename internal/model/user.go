package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles known to the system. Employees send GPS pings, admins watch the
// employees assigned to them, the superadmin sees everything.
const (
	RoleSuperAdmin = "SUPERADMIN"
	RoleAdmin      = "ADMIN"
	RoleEmployee   = "EMPLOYEE"
)

type User struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	Role      string    `json:"role" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`

	Profile *EmployeeProfile `json:"profile,omitempty"`
	Devices []DeviceToken    `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Division struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
}

// EmployeeProfile links an employee to the admin responsible for them and
// to the division used for live-map and broadcast scoping.
type EmployeeProfile struct {
	gorm.Model
	UserID      string  `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	AdminID     *string `json:"admin_id" gorm:"type:char(36)"`
	DivisionID  *uint   `json:"division_id"`
	Designation string  `json:"designation"`
	JoiningDate string  `json:"joining_date"` // YYYY-MM-DD

	Division *Division `json:"division,omitempty" gorm:"foreignKey:DivisionID"`
}

// DeviceToken is an FCM registration token for push notifications.
// A user may have several (one per signed-in device).
type DeviceToken struct {
	gorm.Model
	UserID     string `json:"user_id" gorm:"type:char(36);index;not null"`
	Token      string `json:"token" gorm:"unique;not null"`
	DeviceType string `json:"device_type"` // android / ios
}
