package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/config"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/repository"
)

// ExportService serializes the course-modality store into a workbook.
//
// The export is built into a bytes.Buffer; the handler layer sets the HTTP
// headers and streams it.
type ExportService interface {
	ExportCourses(ctx context.Context, adminPIN string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService builds the ExportService.
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// Fixed column layout. The instructor Name column is excluded by policy.
var exportHeader = []string{
	"No",
	"Korean_name",
	"English_name",
	"Year",
	"Semester",
	"Language",
	"Course Title",
	"Time Slot",
	"Day",
	"Time",
	"Frequency(Week)",
	"Course format",
	"Apply this semester(Online 70)",
	"Reason for Applying",
	"Modified Date",
	"password",
}

func (s *exportService) ExportCourses(ctx context.Context, adminPIN string) (*bytes.Buffer, string, error) {
	if !adminPINMatches(s.cfg, adminPIN) {
		return nil, "", ErrBadAdminPIN
	}

	courses, err := s.repo.Course.ListAll(ctx)
	if err != nil {
		s.logger.Error("list courses for export failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)

	for col, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for i := range courses {
		c := &courses[i]

		applied := "No"
		if c.ApplyThisSemester {
			applied = "Yes"
		}
		modified := ""
		if c.ModifiedDate != nil {
			modified = c.ModifiedDate.Format(time.RFC3339)
		}

		values := []interface{}{
			i + 1,
			c.KoreanName,
			c.EnglishName,
			c.Year,
			c.Semester,
			c.Language,
			c.CourseTitle,
			c.TimeSlot,
			c.Day,
			c.Time,
			c.FrequencyWeek,
			c.CourseFormat,
			applied,
			c.ReasonForApplying,
			modified,
			c.Password,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write export workbook failed", zap.Error(err))
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	return buf, "course_modality_export.xlsx", nil
}
