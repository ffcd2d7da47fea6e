package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/Fasscorp/Fassimo/services/onboard/db"
	"github.com/Fasscorp/Fassimo/services/onboard/model"
)

type Customer interface {
	// Upsert inserts the customer record or merges it into the existing row
	// with the same email. Optional fields are only overwritten when set.
	Upsert(context.Context, model.Customer) error
}

type CustomerSQL struct {
	db db.Database
}

func NewCustomerSQL(db db.Database) Customer {
	return CustomerSQL{
		db: db,
	}
}

func (s CustomerSQL) Upsert(ctx context.Context, c model.Customer) error {
	cols := []string{"name", "project_needs", "thread_id", "updated_at"}
	if c.CompanyName != "" {
		cols = append(cols, "company_name")
	}
	if c.Timeline != "" {
		cols = append(cols, "timeline")
	}
	if c.Budget != "" {
		cols = append(cols, "budget")
	}

	tx := s.db.Orm.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns(cols),
		}).
		Create(&c)

	return tx.Error
}
