package repository

import (
	"fieldtrack-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceRepository interface {
	Register(token *model.DeviceToken) error
	TokensForUsers(userIDs []string) ([]string, error)
}

type deviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db}
}

// Register stores an FCM token. Tokens are unique; re-registering one (same
// device, possibly a different signed-in user) re-points it instead of
// failing.
func (r *deviceRepository) Register(token *model.DeviceToken) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "device_type", "updated_at"}),
	}).Create(token).Error
}

func (r *deviceRepository) TokensForUsers(userIDs []string) ([]string, error) {
	var tokens []string
	if len(userIDs) == 0 {
		return tokens, nil
	}
	err := r.db.Model(&model.DeviceToken{}).
		Where("user_id IN ?", userIDs).
		Pluck("token", &tokens).Error
	return tokens, err
}
