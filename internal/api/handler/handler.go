package handler

import "github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Faculty *FacultyHandler
	Course  *CourseHandler
}

// NewHandler builds the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Faculty: NewFacultyHandler(svc.Faculty),
		Course:  NewCourseHandler(svc.Course, svc.Export),
	}
}
