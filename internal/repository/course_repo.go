package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/model"
)

// CourseRepository is the course-modality data-access interface.
type CourseRepository interface {
	Create(ctx context.Context, course *model.CourseModality) error
	// Update persists the whole record; GORM's single-row save keeps the
	// read-modify-write atomic per record.
	Update(ctx context.Context, course *model.CourseModality) error
	GetByID(ctx context.Context, id uint) (*model.CourseModality, error)
	// GetByKoreanName returns the first record under the merge key, oldest
	// id first.
	GetByKoreanName(ctx context.Context, name string) (*model.CourseModality, error)
	// FindByName matches korean_name or english_name case-insensitively.
	FindByName(ctx context.Context, name string) ([]model.CourseModality, error)
	// ListNamePool returns korean names followed by non-blank english
	// names, ordered by id, as the fuzzy-search candidate pool.
	ListNamePool(ctx context.Context) ([]string, error)
	// ListAll returns every record ordered by primary key ascending.
	ListAll(ctx context.Context) ([]model.CourseModality, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo builds the GORM-backed CourseRepository.
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.CourseModality) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) Update(ctx context.Context, course *model.CourseModality) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id uint) (*model.CourseModality, error) {
	var course model.CourseModality
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByKoreanName(ctx context.Context, name string) (*model.CourseModality, error) {
	var course model.CourseModality
	err := r.db.WithContext(ctx).
		Where("korean_name = ?", name).
		Order("id ASC").
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) FindByName(ctx context.Context, name string) ([]model.CourseModality, error) {
	var courses []model.CourseModality
	err := r.db.WithContext(ctx).
		Where("LOWER(korean_name) = LOWER(?) OR LOWER(english_name) = LOWER(?)", name, name).
		Order("id ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListNamePool(ctx context.Context) ([]string, error) {
	var korean []string
	err := r.db.WithContext(ctx).
		Model(&model.CourseModality{}).
		Order("id ASC").
		Pluck("korean_name", &korean).Error
	if err != nil {
		return nil, err
	}

	var english []string
	err = r.db.WithContext(ctx).
		Model(&model.CourseModality{}).
		Where("english_name <> ''").
		Order("id ASC").
		Pluck("english_name", &english).Error
	if err != nil {
		return nil, err
	}

	return append(korean, english...), nil
}

func (r *courseRepo) ListAll(ctx context.Context) ([]model.CourseModality, error) {
	var courses []model.CourseModality
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&courses).Error
	return courses, err
}
