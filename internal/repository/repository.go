package repository

import "gorm.io/gorm"

// Repository aggregates all repositories.
type Repository struct {
	Faculty FacultyRepository
	Course  CourseRepository
}

// NewRepository builds the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Faculty: NewFacultyRepo(db),
		Course:  NewCourseRepo(db),
	}
}
