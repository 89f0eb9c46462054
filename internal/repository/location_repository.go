package repository

import (
	"time"

	"fieldtrack-backend/internal/model"

	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(log *model.LocationLog) error
	HistoryByUser(userID string, start, end *time.Time) ([]model.LocationLog, error)
	Latest(userID string) (*model.LocationLog, error)
	Route(userID string) ([]model.LocationLog, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db}
}

func (r *locationRepository) Create(log *model.LocationLog) error {
	return r.db.Create(log).Error
}

func (r *locationRepository) HistoryByUser(userID string, start, end *time.Time) ([]model.LocationLog, error) {
	var logs []model.LocationLog
	query := r.db.Where("user_id = ?", userID)

	if start != nil {
		query = query.Where("recorded_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("recorded_at <= ?", *end)
	}

	err := query.Order("recorded_at desc, id desc").Find(&logs).Error
	return logs, err
}

func (r *locationRepository) Latest(userID string) (*model.LocationLog, error) {
	var log model.LocationLog
	err := r.db.Where("user_id = ?", userID).Order("recorded_at desc, id desc").First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// Route returns the user's pings oldest first, for polyline rendering.
func (r *locationRepository) Route(userID string) ([]model.LocationLog, error) {
	var logs []model.LocationLog
	err := r.db.Where("user_id = ?", userID).Order("recorded_at asc, id asc").Find(&logs).Error
	return logs, err
}
