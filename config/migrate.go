package config

import (
	"github.com/bertogassin/OMNIXIUS/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.UserBalance{},
		&models.Report{},
		&models.Ban{},
	)
	if err != nil {
		log.Error("database migration failed", zap.Error(err))
		return err
	}

	log.Info("database migrations completed")
	return nil
}
