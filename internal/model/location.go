package model

import (
	"time"

	"gorm.io/gorm"
)

// LocationLog is one raw GPS ping. Immutable once stored; attendance and
// geofence state are derived from it but never written back into it.
type LocationLog struct {
	gorm.Model
	UserID     string     `json:"user_id" gorm:"type:char(36);index;not null"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	RecordedAt *time.Time `json:"recorded_at"` // client clock, optional
}

// Office is the geofence center. The evaluator uses the first configured
// office system-wide.
type Office struct {
	gorm.Model
	Name          string  `json:"name"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	RadiusMeters  float64 `json:"radius_meters" gorm:"default:100"`
	WorkStartTime string  `json:"work_start_time" gorm:"default:'09:30'"` // HH:MM
	WorkEndTime   string  `json:"work_end_time" gorm:"default:'18:00'"`
}

// Attendance is one row per user per calendar date. CheckIn is set by the
// first sample inside the geofence, CheckOut by the first sample outside
// after a check-in. WasInside is the last persisted geofence state and is
// what ENTER/EXIT transitions are computed against.
type Attendance struct {
	gorm.Model
	UserID    string     `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_attendance_user_date"`
	Date      string     `json:"date" gorm:"type:varchar(10);not null;uniqueIndex:idx_attendance_user_date"` // YYYY-MM-DD
	OfficeID  uint       `json:"office_id"`
	CheckIn   *time.Time `json:"check_in"`
	CheckOut  *time.Time `json:"check_out"`
	WasInside bool       `json:"was_inside"`
}

// GeofenceEvent is an append-only log of geofence membership transitions.
type GeofenceEvent struct {
	gorm.Model
	UserID     string    `json:"user_id" gorm:"type:char(36);index;not null"`
	OfficeID   uint      `json:"office_id"`
	Event      string    `json:"event"` // ENTER / EXIT
	OccurredAt time.Time `json:"occurred_at"`
}
