package repository

import (
	"context"
	"errors"

	"gorm.io/gorm/clause"

	"github.com/Fasscorp/Fassimo/services/onboard/db"
	"github.com/Fasscorp/Fassimo/services/onboard/model"
)

var (
	ErrDuplicateThread = errors.New("didn't create thread due to id conflict")
)

type Thread interface {
	Create(context.Context, model.Thread) error
}

type ThreadSQL struct {
	db db.Database
}

func NewThreadSQL(db db.Database) Thread {
	return ThreadSQL{
		db: db,
	}
}

func (s ThreadSQL) Create(ctx context.Context, t model.Thread) error {
	tx := s.db.Orm.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&t)

	if tx.Error != nil {
		return tx.Error
	} else if tx.RowsAffected != 1 {
		return ErrDuplicateThread
	}

	return nil
}
