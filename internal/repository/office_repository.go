package repository

import (
	"fieldtrack-backend/internal/model"

	"gorm.io/gorm"
)

type OfficeRepository interface {
	First() (*model.Office, error)
	FindByID(id uint) (*model.Office, error)
	Create(office *model.Office) error
	Update(office *model.Office) error
	GetAll() ([]model.Office, error)
}

type officeRepository struct {
	db *gorm.DB
}

func NewOfficeRepository(db *gorm.DB) OfficeRepository {
	return &officeRepository{db}
}

// First returns the primary office. The evaluator treats the first
// configured office as the geofence for everyone.
func (r *officeRepository) First() (*model.Office, error) {
	var office model.Office
	err := r.db.Order("id").First(&office).Error
	if err != nil {
		return nil, err
	}
	return &office, nil
}

func (r *officeRepository) FindByID(id uint) (*model.Office, error) {
	var office model.Office
	err := r.db.First(&office, id).Error
	if err != nil {
		return nil, err
	}
	return &office, nil
}

func (r *officeRepository) Create(office *model.Office) error {
	return r.db.Create(office).Error
}

func (r *officeRepository) Update(office *model.Office) error {
	return r.db.Save(office).Error
}

func (r *officeRepository) GetAll() ([]model.Office, error) {
	var offices []model.Office
	err := r.db.Order("id").Find(&offices).Error
	return offices, err
}
