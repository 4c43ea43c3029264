package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/model"
)

// FacultyRepository is the instructor data-access interface.
type FacultyRepository interface {
	Create(ctx context.Context, fac *model.Faculty) error
	Update(ctx context.Context, fac *model.Faculty) error
	GetByKoreanName(ctx context.Context, name string) (*model.Faculty, error)
	// FindByName matches korean_name or english_name case-insensitively.
	FindByName(ctx context.Context, name string) ([]model.Faculty, error)
	// ListKoreanNames returns every korean_name ordered by id, for the
	// fuzzy-search candidate pool.
	ListKoreanNames(ctx context.Context) ([]string, error)
}

type facultyRepo struct {
	db *gorm.DB
}

// NewFacultyRepo builds the GORM-backed FacultyRepository.
func NewFacultyRepo(db *gorm.DB) FacultyRepository {
	return &facultyRepo{db: db}
}

func (r *facultyRepo) Create(ctx context.Context, fac *model.Faculty) error {
	return r.db.WithContext(ctx).Create(fac).Error
}

func (r *facultyRepo) Update(ctx context.Context, fac *model.Faculty) error {
	return r.db.WithContext(ctx).Save(fac).Error
}

func (r *facultyRepo) GetByKoreanName(ctx context.Context, name string) (*model.Faculty, error) {
	var fac model.Faculty
	err := r.db.WithContext(ctx).
		Where("korean_name = ?", name).
		First(&fac).Error
	if err != nil {
		return nil, err
	}
	return &fac, nil
}

func (r *facultyRepo) FindByName(ctx context.Context, name string) ([]model.Faculty, error) {
	var facs []model.Faculty
	err := r.db.WithContext(ctx).
		Where("LOWER(korean_name) = LOWER(?) OR LOWER(english_name) = LOWER(?)", name, name).
		Order("id ASC").
		Find(&facs).Error
	return facs, err
}

func (r *facultyRepo) ListKoreanNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.Faculty{}).
		Order("id ASC").
		Pluck("korean_name", &names).Error
	return names, err
}
