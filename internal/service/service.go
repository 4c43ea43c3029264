package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/config"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/repository"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/sheet"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/pkg/redis"
)

// ── Shared business errors ──

var (
	// ErrBadAdminPIN rejects upload/export calls whose admin secret does
	// not match the configured PIN.
	ErrBadAdminPIN = errors.New("invalid admin PIN")
	// ErrBadWorkbook is returned when an uploaded file cannot be parsed
	// as an xlsx workbook.
	ErrBadWorkbook = errors.New("could not parse spreadsheet")
	// ErrTooManyRows bounds a single upload.
	ErrTooManyRows = errors.New("spreadsheet exceeds the row limit")
)

// Service aggregates all services.
type Service struct {
	Faculty FacultyService
	Course  CourseService
	Export  ExportService
}

// NewService builds the service aggregate. rdb may be nil; services then
// skip caching and rate limiting.
func NewService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Faculty: NewFacultyService(cfg, repo, rdb, logger),
		Course:  NewCourseService(cfg, repo, rdb, logger),
		Export:  NewExportService(cfg, repo, logger),
	}
}

// adminPINMatches implements the shared-PIN check: trimmed string equality.
// Plaintext comparison is deliberate; the upstream process owns this
// weak-authentication model.
func adminPINMatches(cfg *config.Config, pin string) bool {
	return strings.TrimSpace(pin) == strings.TrimSpace(cfg.Admin.PIN)
}

// secretMatches implements the per-record shared-secret check.
func secretMatches(stored, submitted string) bool {
	return strings.TrimSpace(stored) == strings.TrimSpace(submitted)
}

// resolveMergeKey resolves the Korean-name merge key of an uploaded row.
// Korean-name variants run through every resolver stage before the plain
// Name header is consulted, so a filled instructor-name column can never
// shadow a Korean-name column that differs only in casing or spacing.
func resolveMergeKey(row sheet.Row) string {
	if key := row.Resolve(mergeKeyColumns...); key != "" {
		return key
	}
	return row.Resolve(mergeKeyFallbackColumns...)
}
