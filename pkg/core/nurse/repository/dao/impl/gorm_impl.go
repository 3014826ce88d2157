package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "nurse-directory/pkg/common/errors"
	"nurse-directory/pkg/core/nurse/model"
	"nurse-directory/pkg/core/nurse/repository/dao"
)

var _ dao.NurseRepository = (*GormNurseRepository)(nil)

type GormNurseRepository struct {
	db *gorm.DB
}

func NewGormNurseRepository(db *gorm.DB) *GormNurseRepository {
	return &GormNurseRepository{db: db}
}

// Insert with existence check and create in one transaction
func (r *GormNurseRepository) Insert(ctx context.Context, nurse model.Nurse) (model.Nurse, error) {
	nurse.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Nurse{}).
			Where(clause.Eq{Column: clause.Column{Name: "user"}, Value: nurse.User}).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check user: %w", apperrors.WrapGormError(err))
		}
		if count > 0 {
			return apperrors.ErrDuplicateUser
		}

		if err := tx.Create(&nurse).Error; err != nil {
			if apperrors.IsDuplicateError(err) {
				return apperrors.ErrDuplicateUser
			}
			return fmt.Errorf("nurse creation failed: %w", apperrors.WrapGormError(err))
		}
		return nil
	})
	if err != nil {
		return model.Nurse{}, err
	}
	return nurse, nil
}

func (r *GormNurseRepository) QueryByID(ctx context.Context, id int64) (model.Nurse, error) {
	var nurse model.Nurse
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&nurse).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.Nurse{}, apperrors.ErrNurseNotFound
	case err != nil:
		return model.Nurse{}, fmt.Errorf("nurse query failed: %w", apperrors.WrapGormError(err))
	default:
		return nurse, nil
	}
}

// QueryByUser exact match on the login handle
func (r *GormNurseRepository) QueryByUser(ctx context.Context, user string) (model.Nurse, error) {
	var nurse model.Nurse
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "user"}, Value: user}).
		First(&nurse).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.Nurse{}, apperrors.ErrNurseNotFound
	case err != nil:
		return model.Nurse{}, fmt.Errorf("nurse lookup failed: %w", apperrors.WrapGormError(err))
	default:
		return nurse, nil
	}
}

func (r *GormNurseRepository) ListAll(ctx context.Context) ([]model.Nurse, error) {
	return r.ListFiltered(ctx, model.Filter{})
}

func (r *GormNurseRepository) ListFiltered(ctx context.Context, filter model.Filter) ([]model.Nurse, error) {
	nurses := make([]model.Nurse, 0)
	err := r.db.WithContext(ctx).
		Scopes(filterScope(filter)).
		Order("id").
		Find(&nurses).Error
	if err != nil {
		return nil, fmt.Errorf("nurse listing failed: %w", apperrors.WrapGormError(err))
	}
	return nurses, nil
}

// Update with row lock where the dialect supports it
func (r *GormNurseRepository) Update(ctx context.Context, id int64, patch model.NursePatch) (model.Nurse, error) {
	var nurse model.Nurse
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() != "sqlite" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Where("id = ?", id).First(&nurse).Error; err != nil {
			return apperrors.WrapGormError(err)
		}

		cols := patch.Columns()
		if len(cols) == 0 {
			return nil
		}

		// RowsAffected is not checked: MySQL reports 0 when the values are unchanged.
		if err := tx.Model(&model.Nurse{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return fmt.Errorf("nurse update failed: %w", apperrors.WrapGormError(err))
		}
		patch.Apply(&nurse)
		return nil
	})
	if err != nil {
		return model.Nurse{}, err
	}
	return nurse, nil
}

func (r *GormNurseRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Nurse{})
		if result.Error != nil {
			return fmt.Errorf("nurse deletion failed: %w", apperrors.WrapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNurseNotFound
		}
		return nil
	})
}

func (r *GormNurseRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreInternal, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreInternal, err)
	}
	return nil
}

// filterScope compiles a Filter into WHERE clauses. Columns are passed as
// clause.Column so "user" is quoted for every dialect.
func filterScope(filter model.Filter) func(*gorm.DB) *gorm.DB {
	f := filter.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		if f.Name != "" {
			pattern := containsPattern(f.Name)
			db = db.Where(clause.Or(likeExpr("name", pattern), likeExpr("user", pattern)))
		}
		if f.Specialty != "" {
			db = db.Where(clause.Eq{Column: clause.Column{Name: "specialty"}, Value: f.Specialty})
		}
		if f.Location != "" {
			db = db.Where(likeExpr("location", containsPattern(f.Location)))
		}
		if f.Availability != "" {
			db = db.Where(clause.Eq{Column: clause.Column{Name: "availability"}, Value: f.Availability})
		}
		return db
	}
}

// '!' is the escape character: a backslash would need different quoting per dialect.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func likeExpr(column, pattern string) clause.Expression {
	return clause.Expr{
		SQL:  "? LIKE ? ESCAPE '!'",
		Vars: []interface{}{clause.Column{Name: column}, pattern},
	}
}
