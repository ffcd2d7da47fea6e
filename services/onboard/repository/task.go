package repository

import (
	"context"
	"errors"

	"gorm.io/gorm/clause"

	"github.com/Fasscorp/Fassimo/services/onboard/db"
	"github.com/Fasscorp/Fassimo/services/onboard/model"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

type Task interface {
	List(context.Context) ([]model.Task, error)
	Create(context.Context, *model.Task) error
	// Update applies the given column updates to the task and returns the
	// updated row. ErrTaskNotFound when no row matches.
	Update(ctx context.Context, id string, updates map[string]any) (*model.Task, error)
	Delete(ctx context.Context, id string) error
	// CreateFollowUpOnce inserts the follow-up task unless an identical open one
	// already exists for its thread. Reports whether a row was inserted.
	CreateFollowUpOnce(ctx context.Context, t *model.Task) (bool, error)
}

type TaskSQL struct {
	db db.Database
}

func NewTaskSQL(db db.Database) Task {
	return TaskSQL{
		db: db,
	}
}

func (s TaskSQL) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task

	tx := s.db.Orm.WithContext(ctx).
		Order("created_at desc").
		Find(&tasks)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return tasks, nil
}

func (s TaskSQL) Create(ctx context.Context, t *model.Task) error {
	tx := s.db.Orm.WithContext(ctx).Create(t)
	if tx.Error != nil {
		return tx.Error
	}

	return nil
}

func (s TaskSQL) Update(ctx context.Context, id string, updates map[string]any) (*model.Task, error) {
	tx := s.db.Orm.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrTaskNotFound
	}

	var task model.Task
	tx = s.db.Orm.WithContext(ctx).First(&task, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &task, nil
}

func (s TaskSQL) Delete(ctx context.Context, id string) error {
	tx := s.db.Orm.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// CreateFollowUpOnce is a single conditional insert against the open-follow-up
// unique index, so concurrent tool calls for the same thread cannot race a
// read-then-create into duplicates.
func (s TaskSQL) CreateFollowUpOnce(ctx context.Context, t *model.Task) (bool, error) {
	tx := s.db.Orm.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "thread_id"}, {Name: "name"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "completed = false"}}},
			DoNothing:   true,
		}).
		Create(t)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}
