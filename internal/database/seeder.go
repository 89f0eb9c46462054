package database

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fieldtrack-backend/config"
	"fieldtrack-backend/internal/model"
)

// SeedAll creates the minimum data a fresh deployment needs: a superadmin
// account, the primary office and a few divisions. Idempotent.
func SeedAll(db *gorm.DB) {
	// 1. Superadmin account
	email := config.GetEnv("SEED_ADMIN_EMAIL", "admin@fieldtrack.local")
	password := config.GetEnv("SEED_ADMIN_PASSWORD", "changeme123")

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("seeder: hashing admin password failed")
	}

	admin := model.User{
		Email:    email,
		Name:     "Super Admin",
		Password: string(hashed),
		Role:     model.RoleSuperAdmin,
		IsActive: true,
	}
	db.Where(model.User{Email: email}).FirstOrCreate(&admin)

	// 2. Primary office (the geofence everyone is evaluated against)
	office := model.Office{
		Name:          config.GetEnv("SEED_OFFICE_NAME", "Head Office"),
		Latitude:      23.8103,
		Longitude:     90.4125,
		RadiusMeters:  100,
		WorkStartTime: "09:30",
		WorkEndTime:   "18:00",
	}
	db.Where(model.Office{Name: office.Name}).FirstOrCreate(&office)

	// 3. Divisions
	for _, name := range []string{"Field Operations", "Sales", "Logistics"} {
		division := model.Division{Name: name}
		db.Where(model.Division{Name: name}).FirstOrCreate(&division)
	}

	log.Info().Str("admin", email).Msg("seeding complete")
}
