package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	apperrors "nurse-directory/pkg/common/errors"
	"nurse-directory/pkg/core/nurse/model"
	"nurse-directory/pkg/core/nurse/repository/dao"
)

var _ dao.NurseRepository = (*FileNurseRepository)(nil)

// FileNurseRepository keeps every record in one JSON array file. Each call
// reads the whole file; mutations rewrite it under mu. The highest id ever
// issued lives next to it in <path>.seq so deleted ids are not handed out again.
type FileNurseRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileNurseRepository(path string) (*FileNurseRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create data directory: %v", apperrors.ErrStoreInternal, err)
		}
	}
	return &FileNurseRepository{path: path}, nil
}

func (r *FileNurseRepository) Insert(ctx context.Context, nurse model.Nurse) (model.Nurse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkCtx(ctx); err != nil {
		return model.Nurse{}, err
	}

	nurses, err := r.load()
	if err != nil {
		return model.Nurse{}, err
	}
	for _, n := range nurses {
		if n.User == nurse.User {
			return model.Nurse{}, apperrors.ErrDuplicateUser
		}
	}

	lastID, err := r.loadSeq()
	if err != nil {
		return model.Nurse{}, err
	}
	for _, n := range nurses {
		if n.ID > lastID {
			lastID = n.ID
		}
	}
	nurse.ID = lastID + 1

	// seq first: a crash between the writes burns an id instead of reusing one
	if err := r.saveSeq(nurse.ID); err != nil {
		return model.Nurse{}, err
	}
	if err := r.save(append(nurses, nurse)); err != nil {
		return model.Nurse{}, err
	}
	return nurse, nil
}

func (r *FileNurseRepository) QueryByID(ctx context.Context, id int64) (model.Nurse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkCtx(ctx); err != nil {
		return model.Nurse{}, err
	}
	nurses, err := r.load()
	if err != nil {
		return model.Nurse{}, err
	}
	if i := indexByID(nurses, id); i >= 0 {
		return nurses[i], nil
	}
	return model.Nurse{}, apperrors.ErrNurseNotFound
}

func (r *FileNurseRepository) QueryByUser(ctx context.Context, user string) (model.Nurse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkCtx(ctx); err != nil {
		return model.Nurse{}, err
	}
	nurses, err := r.load()
	if err != nil {
		return model.Nurse{}, err
	}
	for _, n := range nurses {
		if n.User == user {
			return n, nil
		}
	}
	return model.Nurse{}, apperrors.ErrNurseNotFound
}

func (r *FileNurseRepository) ListAll(ctx context.Context) ([]model.Nurse, error) {
	return r.ListFiltered(ctx, model.Filter{})
}

func (r *FileNurseRepository) ListFiltered(ctx context.Context, filter model.Filter) ([]model.Nurse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	nurses, err := r.load()
	if err != nil {
		return nil, err
	}
	return matchSorted(nurses, filter), nil
}

func (r *FileNurseRepository) Update(ctx context.Context, id int64, patch model.NursePatch) (model.Nurse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkCtx(ctx); err != nil {
		return model.Nurse{}, err
	}
	nurses, err := r.load()
	if err != nil {
		return model.Nurse{}, err
	}
	i := indexByID(nurses, id)
	if i < 0 {
		return model.Nurse{}, apperrors.ErrNurseNotFound
	}
	if patch.IsEmpty() {
		return nurses[i], nil
	}
	patch.Apply(&nurses[i])
	if err := r.save(nurses); err != nil {
		return model.Nurse{}, err
	}
	return nurses[i], nil
}

func (r *FileNurseRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkCtx(ctx); err != nil {
		return err
	}
	nurses, err := r.load()
	if err != nil {
		return err
	}
	i := indexByID(nurses, id)
	if i < 0 {
		return apperrors.ErrNurseNotFound
	}
	return r.save(append(nurses[:i], nurses[i+1:]...))
}

// Ping checks that the data file is readable and well-formed.
func (r *FileNurseRepository) Ping(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := checkCtx(ctx); err != nil {
		return err
	}
	_, err := r.load()
	return err
}

func (r *FileNurseRepository) load() ([]model.Nurse, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []model.Nurse{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", apperrors.ErrStoreInternal, r.path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []model.Nurse{}, nil
	}
	var nurses []model.Nurse
	if err := json.Unmarshal(data, &nurses); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", apperrors.ErrStoreInternal, r.path, err)
	}
	return nurses, nil
}

func (r *FileNurseRepository) save(nurses []model.Nurse) error {
	if nurses == nil {
		nurses = []model.Nurse{}
	}
	data, err := json.MarshalIndent(nurses, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode nurses: %v", apperrors.ErrStoreInternal, err)
	}
	return writeFileAtomic(r.path, append(data, '\n'))
}

func (r *FileNurseRepository) seqPath() string {
	return r.path + ".seq"
}

func (r *FileNurseRepository) loadSeq() (int64, error) {
	data, err := os.ReadFile(r.seqPath())
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %v", apperrors.ErrStoreInternal, r.seqPath(), err)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %s: %v", apperrors.ErrStoreInternal, r.seqPath(), err)
	}
	return id, nil
}

func (r *FileNurseRepository) saveSeq(id int64) error {
	return writeFileAtomic(r.seqPath(), []byte(strconv.FormatInt(id, 10)+"\n"))
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", apperrors.ErrStoreInternal, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", apperrors.ErrStoreInternal, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", apperrors.ErrStoreInternal, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", apperrors.ErrStoreInternal, path, err)
	}
	return nil
}

func indexByID(nurses []model.Nurse, id int64) int {
	for i, n := range nurses {
		if n.ID == id {
			return i
		}
	}
	return -1
}
