package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/Fasscorp/Fassimo/services/onboard/db"
	"github.com/Fasscorp/Fassimo/services/onboard/model"
)

type Branding interface {
	// Upsert inserts or merges the branding record for a thread. Fields left
	// blank by the caller never overwrite previously collected values.
	Upsert(context.Context, model.Branding) error
}

type BrandingSQL struct {
	db db.Database
}

func NewBrandingSQL(db db.Database) Branding {
	return BrandingSQL{
		db: db,
	}
}

func (s BrandingSQL) Upsert(ctx context.Context, b model.Branding) error {
	cols := []string{"updated_at"}
	if b.LogoLink != "" {
		cols = append(cols, "logo_link")
	}
	if b.PrimaryBrandColor != "" {
		cols = append(cols, "primary_brand_color")
	}

	tx := s.db.Orm.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "thread_id"}},
			DoUpdates: clause.AssignmentColumns(cols),
		}).
		Create(&b)

	return tx.Error
}
