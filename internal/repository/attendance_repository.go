package repository

import (
	"fieldtrack-backend/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	GetOrCreate(userID, date string, officeID uint) (*model.Attendance, error)
	SaveWithEvents(day *model.Attendance, events []model.GeofenceEvent) error
	History(userID string) ([]model.Attendance, error)
	GetByMonth(userID, year, month string) ([]model.Attendance, error)
	GetByDate(date string) ([]model.Attendance, error)
	GetByDateForAdmin(date, adminID string) ([]model.Attendance, error)
	EventsByUser(userID string) ([]model.GeofenceEvent, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

// GetOrCreate loads the row for (user, date), creating a fresh one on the
// first sample of the day. A unique index on (user_id, date) backs this up
// across processes.
func (r *attendanceRepository) GetOrCreate(userID, date string, officeID uint) (*model.Attendance, error) {
	var day model.Attendance
	err := r.db.
		Where(model.Attendance{UserID: userID, Date: date}).
		Attrs(model.Attendance{OfficeID: officeID}).
		FirstOrCreate(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// SaveWithEvents persists the mutated attendance row and appends its
// geofence events in one transaction, so a transition is never recorded
// without its event (or the other way around).
func (r *attendanceRepository) SaveWithEvents(day *model.Attendance, events []model.GeofenceEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(day).Error; err != nil {
			return err
		}
		if len(events) > 0 {
			if err := tx.Create(&events).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *attendanceRepository) History(userID string) ([]model.Attendance, error) {
	var days []model.Attendance
	err := r.db.Where("user_id = ?", userID).Order("date desc").Find(&days).Error
	return days, err
}

func (r *attendanceRepository) GetByMonth(userID, year, month string) ([]model.Attendance, error) {
	var days []model.Attendance
	err := r.db.
		Where("user_id = ? AND date LIKE ?", userID, year+"-"+month+"-%").
		Order("date asc").
		Find(&days).Error
	return days, err
}

func (r *attendanceRepository) GetByDate(date string) ([]model.Attendance, error) {
	var days []model.Attendance
	err := r.db.Where("date = ?", date).Find(&days).Error
	return days, err
}

// GetByDateForAdmin narrows a day's rows to employees assigned to the admin.
func (r *attendanceRepository) GetByDateForAdmin(date, adminID string) ([]model.Attendance, error) {
	var days []model.Attendance
	err := r.db.
		Joins("JOIN employee_profiles ON employee_profiles.user_id = attendances.user_id").
		Where("attendances.date = ? AND employee_profiles.admin_id = ?", date, adminID).
		Find(&days).Error
	return days, err
}

func (r *attendanceRepository) EventsByUser(userID string) ([]model.GeofenceEvent, error) {
	var events []model.GeofenceEvent
	err := r.db.Where("user_id = ?", userID).Order("occurred_at asc, id asc").Find(&events).Error
	return events, err
}
