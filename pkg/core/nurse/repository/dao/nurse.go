package dao

import (
	"context"

	"nurse-directory/pkg/core/nurse/model"
)

// NurseRepository is the record store contract shared by every backend.
// Implementations return the sentinels from pkg/common/errors: ErrNurseNotFound,
// ErrDuplicateUser, and ErrStoreInternal (wrapped) for storage failures.
type NurseRepository interface {
	Insert(ctx context.Context, nurse model.Nurse) (model.Nurse, error)
	QueryByID(ctx context.Context, id int64) (model.Nurse, error)
	QueryByUser(ctx context.Context, user string) (model.Nurse, error)
	ListAll(ctx context.Context) ([]model.Nurse, error)
	ListFiltered(ctx context.Context, filter model.Filter) ([]model.Nurse, error)
	Update(ctx context.Context, id int64, patch model.NursePatch) (model.Nurse, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
