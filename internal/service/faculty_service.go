package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/config"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/dto"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/model"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/repository"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/sheet"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/textmatch"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/pkg/redis"
)

// ── Faculty module business errors ──

var (
	ErrFacultyNotFound  = errors.New("faculty record not found")
	ErrMissingKeyColumn = errors.New("spreadsheet is missing the Korean_name column")
)

const facultyNamePool = "faculty"

// FacultyService covers instructor uploads, the enrich workbook, and search.
type FacultyService interface {
	Upload(ctx context.Context, file io.Reader, adminPIN string) (*dto.UploadResponse, error)
	// Enrich reads a sheet whose only required column is the Korean name
	// and returns a workbook augmented with the stored english
	// name/category/email, blank where no record exists.
	Enrich(ctx context.Context, file io.Reader) (*bytes.Buffer, string, error)
	Search(ctx context.Context, name string) ([]dto.FacultyResponse, error)
}

type facultyService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewFacultyService builds the FacultyService.
func NewFacultyService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) FacultyService {
	return &facultyService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── Upload ──────────────────────

func (s *facultyService) Upload(ctx context.Context, file io.Reader, adminPIN string) (*dto.UploadResponse, error) {
	if !adminPINMatches(s.cfg, adminPIN) {
		return nil, ErrBadAdminPIN
	}

	_, rows, err := sheet.ReadRows(file)
	if err != nil {
		if errors.Is(err, sheet.ErrNoData) {
			return nil, err
		}
		return nil, ErrBadWorkbook
	}
	if s.cfg.Upload.MaxRows > 0 && len(rows) > s.cfg.Upload.MaxRows {
		return nil, ErrTooManyRows
	}

	resp := &dto.UploadResponse{Total: len(rows)}
	for i, row := range rows {
		created, changed, merged, err := s.mergeRow(ctx, row)
		if err != nil {
			s.logger.Warn("faculty row merge failed",
				zap.Int("row", i+2),
				zap.Error(err),
			)
			resp.Skipped++
			continue
		}
		switch {
		case !merged:
			resp.Skipped++
		case created:
			resp.Created++
		case changed:
			resp.Updated++
		}
	}

	if s.rdb != nil {
		if err := s.rdb.InvalidateNamePool(ctx, facultyNamePool); err != nil {
			s.logger.Warn("invalidate search candidates failed", zap.Error(err))
		}
	}

	s.logger.Info("faculty upload merged",
		zap.Int("total", resp.Total),
		zap.Int("created", resp.Created),
		zap.Int("updated", resp.Updated),
		zap.Int("skipped", resp.Skipped),
	)
	return resp, nil
}

func (s *facultyService) mergeRow(ctx context.Context, row sheet.Row) (created, changed, merged bool, err error) {
	koreanName := resolveMergeKey(row)
	if koreanName == "" {
		return false, false, false, nil
	}

	englishName := row.Resolve(facultyEnglishColumns...)
	category := row.Resolve(facultyCategoryColumns...)
	email := row.Resolve(facultyEmailColumns...)

	existing, err := s.repo.Faculty.GetByKoreanName(ctx, koreanName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, false, false, err
		}
		fac := &model.Faculty{
			KoreanName:  koreanName,
			EnglishName: englishName,
			Category:    category,
			Email:       email,
		}
		if err := s.repo.Faculty.Create(ctx, fac); err != nil {
			return false, false, false, err
		}
		return true, true, true, nil
	}

	rowChanged := false
	overwrite := func(field *string, value string) {
		if value != "" && *field != value {
			*field = value
			rowChanged = true
		}
	}
	overwrite(&existing.EnglishName, englishName)
	overwrite(&existing.Category, category)
	overwrite(&existing.Email, email)

	if rowChanged {
		if err := s.repo.Faculty.Update(ctx, existing); err != nil {
			return false, false, false, err
		}
	}
	return false, rowChanged, true, nil
}

// ────────────────────── Enrich ──────────────────────

// Fixed output layout of the enrich workbook.
var enrichHeader = []string{"No", "Korean_name", "English_name", "Category", "Email"}

func (s *facultyService) Enrich(ctx context.Context, file io.Reader) (*bytes.Buffer, string, error) {
	headers, rows, err := sheet.ReadRows(file)
	if err != nil {
		if errors.Is(err, sheet.ErrNoData) {
			return nil, "", err
		}
		return nil, "", ErrBadWorkbook
	}
	if !sheet.HasHeader(headers, mergeKeyColumns...) && !sheet.HasHeader(headers, mergeKeyFallbackColumns...) {
		return nil, "", ErrMissingKeyColumn
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)

	for col, h := range enrichHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for i, row := range rows {
		out := []interface{}{i + 1, "", "", "", ""}

		if koreanName := resolveMergeKey(row); koreanName != "" {
			out[1] = koreanName
			fac, err := s.repo.Faculty.GetByKoreanName(ctx, koreanName)
			switch {
			case err == nil:
				out[2] = fac.EnglishName
				out[3] = fac.Category
				out[4] = fac.Email
			case errors.Is(err, gorm.ErrRecordNotFound):
				// Unknown instructor: key echoed back, rest left blank.
			default:
				s.logger.Error("enrich lookup failed", zap.String("korean_name", koreanName), zap.Error(err))
				return nil, "", err
			}
		}

		for col, v := range out {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}
	return buf, "faculty_enriched.xlsx", nil
}

// ────────────────────── Search ──────────────────────

func (s *facultyService) Search(ctx context.Context, name string) ([]dto.FacultyResponse, error) {
	name = strings.TrimSpace(name)
	// A blank query must not reach FindByName: it would equality-match every
	// record whose english name is empty.
	if name == "" {
		return []dto.FacultyResponse{}, nil
	}

	facs, err := s.repo.Faculty.FindByName(ctx, name)
	if err != nil {
		s.logger.Error("faculty search failed", zap.Error(err))
		return nil, err
	}

	if len(facs) == 0 {
		pool, err := s.namePool(ctx)
		if err != nil {
			s.logger.Error("load search candidates failed", zap.Error(err))
			return nil, err
		}
		if match, score, ok := textmatch.BestMatch(name, pool); ok && score >= textmatch.AcceptThreshold {
			facs, err = s.repo.Faculty.FindByName(ctx, match)
			if err != nil {
				return nil, err
			}
		}
	}

	result := make([]dto.FacultyResponse, 0, len(facs))
	for i := range facs {
		result = append(result, dto.FacultyResponse{
			ID:          facs[i].ID,
			KoreanName:  facs[i].KoreanName,
			EnglishName: facs[i].EnglishName,
			Category:    facs[i].Category,
			Email:       facs[i].Email,
		})
	}
	return result, nil
}

func (s *facultyService) namePool(ctx context.Context) ([]string, error) {
	if s.rdb != nil {
		if names, ok, err := s.rdb.GetNamePool(ctx, facultyNamePool); err == nil && ok {
			return names, nil
		}
	}

	names, err := s.repo.Faculty.ListKoreanNames(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.CacheNamePool(ctx, facultyNamePool, names, 10*time.Minute); err != nil {
			s.logger.Warn("cache search candidates failed", zap.Error(err))
		}
	}
	return names, nil
}
