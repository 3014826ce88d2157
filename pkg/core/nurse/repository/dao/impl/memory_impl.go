package dao

import (
	"context"
	"fmt"
	"sort"
	"sync"

	apperrors "nurse-directory/pkg/common/errors"
	"nurse-directory/pkg/core/nurse/model"
	"nurse-directory/pkg/core/nurse/repository/dao"
)

var _ dao.NurseRepository = (*MemoryNurseRepository)(nil)

type MemoryNurseRepository struct {
	mu     sync.RWMutex
	nurses map[int64]model.Nurse
	lastID int64
}

func NewMemoryNurseRepository() *MemoryNurseRepository {
	return &MemoryNurseRepository{
		nurses: make(map[int64]model.Nurse),
	}
}

func (r *MemoryNurseRepository) Insert(ctx context.Context, nurse model.Nurse) (model.Nurse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkCtx(ctx); err != nil {
		return model.Nurse{}, err
	}
	for _, n := range r.nurses {
		if n.User == nurse.User {
			return model.Nurse{}, apperrors.ErrDuplicateUser
		}
	}
	r.lastID++
	nurse.ID = r.lastID
	r.nurses[nurse.ID] = cloneNurse(nurse)
	return nurse, nil
}

func (r *MemoryNurseRepository) QueryByID(ctx context.Context, id int64) (model.Nurse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := checkCtx(ctx); err != nil {
		return model.Nurse{}, err
	}
	n, ok := r.nurses[id]
	if !ok {
		return model.Nurse{}, apperrors.ErrNurseNotFound
	}
	return cloneNurse(n), nil
}

func (r *MemoryNurseRepository) QueryByUser(ctx context.Context, user string) (model.Nurse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := checkCtx(ctx); err != nil {
		return model.Nurse{}, err
	}
	for _, n := range r.nurses {
		if n.User == user {
			return cloneNurse(n), nil
		}
	}
	return model.Nurse{}, apperrors.ErrNurseNotFound
}

func (r *MemoryNurseRepository) ListAll(ctx context.Context) ([]model.Nurse, error) {
	return r.ListFiltered(ctx, model.Filter{})
}

func (r *MemoryNurseRepository) ListFiltered(ctx context.Context, filter model.Filter) ([]model.Nurse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	all := make([]model.Nurse, 0, len(r.nurses))
	for _, n := range r.nurses {
		all = append(all, n)
	}
	return matchSorted(all, filter), nil
}

func (r *MemoryNurseRepository) Update(ctx context.Context, id int64, patch model.NursePatch) (model.Nurse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkCtx(ctx); err != nil {
		return model.Nurse{}, err
	}
	n, ok := r.nurses[id]
	if !ok {
		return model.Nurse{}, apperrors.ErrNurseNotFound
	}
	n = cloneNurse(n)
	patch.Apply(&n)
	r.nurses[id] = n
	return cloneNurse(n), nil
}

func (r *MemoryNurseRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkCtx(ctx); err != nil {
		return err
	}
	if _, ok := r.nurses[id]; !ok {
		return apperrors.ErrNurseNotFound
	}
	delete(r.nurses, id)
	return nil
}

func (r *MemoryNurseRepository) Ping(ctx context.Context) error {
	return checkCtx(ctx)
}

// checkCtx 请求已取消或超时时不再读写存储
func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreInternal, err)
	}
	return nil
}

// matchSorted keeps the records accepted by filter, ordered by id.
// The returned records do not share pointers with the input.
func matchSorted(nurses []model.Nurse, filter model.Filter) []model.Nurse {
	out := make([]model.Nurse, 0, len(nurses))
	for _, n := range nurses {
		if filter.Match(n) {
			out = append(out, cloneNurse(n))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func cloneNurse(n model.Nurse) model.Nurse {
	n.Title = cloneString(n.Title)
	n.Specialty = cloneString(n.Specialty)
	n.Description = cloneString(n.Description)
	n.Location = cloneString(n.Location)
	n.Availability = cloneString(n.Availability)
	n.Image = cloneString(n.Image)
	return n
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
