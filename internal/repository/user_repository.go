package repository

import (
	"fieldtrack-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	CreateProfile(profile *model.EmployeeProfile) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id string) (*model.User, error)
	Update(user *model.User) error
	Delete(id string) error
	GetAll(search string) ([]model.User, error)
	IsAssignedTo(employeeID, adminID string) (bool, error)
	GetDivisions() ([]model.Division, error)
	FindDivision(id uint) (*model.Division, error)
	GetDivisionEmployees(divisionID uint, adminID string) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) CreateProfile(profile *model.EmployeeProfile) error {
	return r.db.Create(profile).Error
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Profile.Division").Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Profile.Division").Where("id = ?", id).First(&user).Error
	return &user, err
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.User{}).Error
}

func (r *userRepository) GetAll(search string) ([]model.User, error) {
	var users []model.User
	query := r.db.Preload("Profile.Division")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	err := query.Find(&users).Error
	return users, err
}

// IsAssignedTo reports whether the employee's profile names this admin.
// Admins may only look at employees assigned to them.
func (r *userRepository) IsAssignedTo(employeeID, adminID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.EmployeeProfile{}).
		Where("user_id = ? AND admin_id = ?", employeeID, adminID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) GetDivisions() ([]model.Division, error) {
	var divisions []model.Division
	err := r.db.Order("name").Find(&divisions).Error
	return divisions, err
}

func (r *userRepository) FindDivision(id uint) (*model.Division, error) {
	var division model.Division
	err := r.db.First(&division, id).Error
	return &division, err
}

// GetDivisionEmployees lists the employees of a division. When adminID is
// non-empty only employees assigned to that admin are returned.
func (r *userRepository) GetDivisionEmployees(divisionID uint, adminID string) ([]model.User, error) {
	var users []model.User
	query := r.db.Preload("Profile.Division").
		Joins("JOIN employee_profiles ON employee_profiles.user_id = users.id").
		Where("employee_profiles.division_id = ? AND users.role = ?", divisionID, model.RoleEmployee)

	if adminID != "" {
		query = query.Where("employee_profiles.admin_id = ?", adminID)
	}

	err := query.Find(&users).Error
	return users, err
}
