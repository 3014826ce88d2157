package service

import (
	"context"
	"fmt"

	apperrors "nurse-directory/pkg/common/errors"
	"nurse-directory/pkg/core/nurse/model"
	"nurse-directory/pkg/core/nurse/repository/dao"
)

// CreateInput carries a create request. Nil means the key was absent.
type CreateInput struct {
	User         *string
	Pw           *string
	Name         *string
	Title        *string
	Specialty    *string
	Description  *string
	Location     *string
	Availability *string
	Image        *string
}

type NurseService interface {
	Create(ctx context.Context, in CreateInput) (model.Nurse, error)
	List(ctx context.Context, filter model.Filter) ([]model.Nurse, error)
	FindByUser(ctx context.Context, user string) (model.Nurse, error)
	FindByID(ctx context.Context, id int64) (model.Nurse, error)
	Update(ctx context.Context, id int64, patch model.NursePatch) (model.Nurse, error)
	Delete(ctx context.Context, id int64) error
	Login(ctx context.Context, user, pw string) (model.Nurse, error)
	Ping(ctx context.Context) error
}

type nurseService struct {
	repo dao.NurseRepository
}

func NewNurseService(repo dao.NurseRepository) NurseService {
	return &nurseService{repo: repo}
}

func (s *nurseService) Create(ctx context.Context, in CreateInput) (model.Nurse, error) {
	if in.User == nil || *in.User == "" || in.Pw == nil || *in.Pw == "" {
		return model.Nurse{}, fmt.Errorf("%w: user and pw are required", apperrors.ErrInvalidRequest)
	}

	// 先查重，存储层仍会兜底唯一约束
	if _, err := s.repo.QueryByUser(ctx, *in.User); err == nil {
		return model.Nurse{}, apperrors.ErrDuplicateUser
	} else if !apperrors.IsNotFound(err) {
		return model.Nurse{}, err
	}

	nurse := model.Nurse{
		User:         *in.User,
		Name:         *in.User,
		Pw:           *in.Pw,
		Title:        in.Title,
		Specialty:    in.Specialty,
		Description:  in.Description,
		Location:     in.Location,
		Availability: in.Availability,
		Image:        in.Image,
	}
	if in.Name != nil && *in.Name != "" {
		nurse.Name = *in.Name
	}
	return s.repo.Insert(ctx, nurse)
}

func (s *nurseService) List(ctx context.Context, filter model.Filter) ([]model.Nurse, error) {
	if filter.IsEmpty() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListFiltered(ctx, filter)
}

func (s *nurseService) FindByUser(ctx context.Context, user string) (model.Nurse, error) {
	return s.repo.QueryByUser(ctx, user)
}

func (s *nurseService) FindByID(ctx context.Context, id int64) (model.Nurse, error) {
	return s.repo.QueryByID(ctx, id)
}

func (s *nurseService) Update(ctx context.Context, id int64, patch model.NursePatch) (model.Nurse, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *nurseService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Login matches user and pw exactly. An unknown user and a wrong pw are
// indistinguishable to the caller.
func (s *nurseService) Login(ctx context.Context, user, pw string) (model.Nurse, error) {
	if user == "" || pw == "" {
		return model.Nurse{}, fmt.Errorf("%w: missing credentials", apperrors.ErrInvalidRequest)
	}
	nurse, err := s.repo.QueryByUser(ctx, user)
	switch {
	case apperrors.IsNotFound(err):
		return model.Nurse{}, apperrors.ErrInvalidCredentials
	case err != nil:
		return model.Nurse{}, err
	case nurse.Pw != pw:
		return model.Nurse{}, apperrors.ErrInvalidCredentials
	}
	return nurse, nil
}

func (s *nurseService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
