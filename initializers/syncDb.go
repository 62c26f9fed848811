package initializers

import (
	"errors"
	"fmt"

	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Models lists every table managed by AutoMigrate.
var Models = []any{
	&models.User{},
	&models.Restaurant{},
	&models.FoodItem{},
	&models.CustomerAddress{},
	&models.CartItem{},
	&models.Order{},
	&models.OrderLine{},
	&models.SupportQuery{},
}

func SyncDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info().Msg("database synced successfully")
	return nil
}

// SeedManagement creates the management account once. Empty credentials skip seeding.
func SeedManagement(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		log.Warn().Msg("management credentials not configured, skipping seed")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup management user: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	user := models.User{Fullname: "Management", Email: email, Password: hash, Role: models.RoleManagement}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("seed management user: %w", err)
	}
	log.Info().Str("email", email).Msg("management account seeded")
	return nil
}
