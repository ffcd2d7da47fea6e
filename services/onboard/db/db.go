package db

import (
	"gorm.io/gorm"

	"github.com/Fasscorp/Fassimo/services/onboard/model"
)

type Database struct {
	Orm *gorm.DB
}

func (db Database) Initialize() error {
	err := db.Orm.AutoMigrate(
		&model.Thread{},
		&model.Task{},
		&model.Customer{},
		&model.Branding{},
	)
	if err != nil {
		return err
	}

	return nil
}
