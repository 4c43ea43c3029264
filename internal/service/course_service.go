package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

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

// ── Course module business errors ──

var (
	ErrCourseNotFound = errors.New("course record not found")
	ErrWrongPassword  = errors.New("wrong record password")
	ErrMissingReason  = errors.New("reason text is required to apply")
)

const courseNamePool = "courses"

// CourseService covers course-modality uploads, search, and the
// password-gated apply/lookup workflow.
type CourseService interface {
	// Upload merges every spreadsheet row into the store. Rows are
	// independent; a failed row never rolls back earlier rows.
	Upload(ctx context.Context, file io.Reader, adminPIN string) (*dto.UploadResponse, error)
	// Search returns exact case-insensitive name matches, falling back to
	// the fuzzy matcher when none exist.
	Search(ctx context.Context, name string) ([]dto.CourseResponse, error)
	// Lookup reveals a record's fields after a successful secret check.
	// It never mutates the record.
	Lookup(ctx context.Context, id uint, password string) (*dto.CourseResponse, error)
	// Apply runs the apply workflow: secret check, then an optional save
	// or cancel action. The unlocked state lives only for this call.
	Apply(ctx context.Context, id uint, req *dto.ApplyRequest) (*dto.ApplyResponse, error)
}

type courseService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewCourseService builds the CourseService.
func NewCourseService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) CourseService {
	return &courseService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── Upload ──────────────────────

func (s *courseService) Upload(ctx context.Context, file io.Reader, adminPIN string) (*dto.UploadResponse, error) {
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
			// Row independence: log and move on.
			s.logger.Warn("course row merge failed",
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

	s.invalidateNamePool(ctx)

	s.logger.Info("course upload merged",
		zap.Int("total", resp.Total),
		zap.Int("created", resp.Created),
		zap.Int("updated", resp.Updated),
		zap.Int("skipped", resp.Skipped),
	)
	return resp, nil
}

// mergeRow applies the field-level merge policy for one uploaded row.
// merged is false when the row has no resolvable merge key.
func (s *courseService) mergeRow(ctx context.Context, row sheet.Row) (created, changed, merged bool, err error) {
	koreanName := resolveMergeKey(row)
	if koreanName == "" {
		return false, false, false, nil
	}

	defaults := courseDefaults{
		Name:          row.Resolve(courseNameColumns...),
		EnglishName:   row.Resolve(courseEnglishColumns...),
		Year:          row.Resolve(courseYearColumns...),
		Semester:      row.Resolve(courseSemesterColumns...),
		Language:      row.Resolve(courseLanguageColumns...),
		CourseTitle:   row.Resolve(courseTitleColumns...),
		TimeSlot:      row.Resolve(courseTimeSlotColumns...),
		Day:           row.Resolve(courseDayColumns...),
		Time:          row.Resolve(courseTimeColumns...),
		FrequencyWeek: row.Resolve(courseFrequencyColumns...),
		CourseFormat:  row.Resolve(courseFormatColumns...),
	}
	password := row.Resolve(coursePasswordColumns...)
	reason := row.Resolve(courseReasonColumns...)
	applyFlag := row.ResolveBool(courseApplyFlagColumns...)

	existing, err := s.repo.Course.GetByKoreanName(ctx, koreanName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, false, false, err
		}

		course := &model.CourseModality{
			KoreanName:    koreanName,
			Name:          defaults.Name,
			EnglishName:   defaults.EnglishName,
			Year:          defaults.Year,
			Semester:      defaults.Semester,
			Language:      defaults.Language,
			CourseTitle:   defaults.CourseTitle,
			TimeSlot:      defaults.TimeSlot,
			Day:           defaults.Day,
			Time:          defaults.Time,
			FrequencyWeek: defaults.FrequencyWeek,
			CourseFormat:  defaults.CourseFormat,
			Password:      password,
		}
		if reason != "" || applyFlag != sheet.Unknown {
			if reason != "" {
				course.ReasonForApplying = reason
			}
			if applyFlag != sheet.Unknown {
				course.ApplyThisSemester = applyFlag == sheet.True
			}
			now := time.Now()
			course.ModifiedDate = &now
		}
		if err := s.repo.Course.Create(ctx, course); err != nil {
			return false, false, false, err
		}
		return true, true, true, nil
	}

	// Existing record: overwrite a plain field only when the incoming
	// value is non-blank and differs from what is stored.
	rowChanged := false
	overwrite := func(field *string, value string) {
		if value != "" && *field != value {
			*field = value
			rowChanged = true
		}
	}
	overwrite(&existing.Name, defaults.Name)
	overwrite(&existing.EnglishName, defaults.EnglishName)
	overwrite(&existing.Year, defaults.Year)
	overwrite(&existing.Semester, defaults.Semester)
	overwrite(&existing.Language, defaults.Language)
	overwrite(&existing.CourseTitle, defaults.CourseTitle)
	overwrite(&existing.TimeSlot, defaults.TimeSlot)
	overwrite(&existing.Day, defaults.Day)
	overwrite(&existing.Time, defaults.Time)
	overwrite(&existing.FrequencyWeek, defaults.FrequencyWeek)
	overwrite(&existing.CourseFormat, defaults.CourseFormat)

	// A non-blank reason always lands, identical value or not, and
	// stamps the modification time.
	if reason != "" {
		existing.ReasonForApplying = reason
		now := time.Now()
		existing.ModifiedDate = &now
		rowChanged = true
	}

	// A resolved flag always lands; Unknown means the upload carried no
	// information and must not touch the stored flag.
	if applyFlag != sheet.Unknown {
		existing.ApplyThisSemester = applyFlag == sheet.True
		now := time.Now()
		existing.ModifiedDate = &now
		rowChanged = true
	}

	// A stored password never regresses to blank.
	if password != "" && strings.TrimSpace(existing.Password) != strings.TrimSpace(password) {
		existing.Password = password
		rowChanged = true
	}

	if rowChanged {
		if err := s.repo.Course.Update(ctx, existing); err != nil {
			return false, false, false, err
		}
	}
	return false, rowChanged, true, nil
}

// courseDefaults carries the plain resolved fields of one row.
type courseDefaults struct {
	Name          string
	EnglishName   string
	Year          string
	Semester      string
	Language      string
	CourseTitle   string
	TimeSlot      string
	Day           string
	Time          string
	FrequencyWeek string
	CourseFormat  string
}

// ────────────────────── Search ──────────────────────

func (s *courseService) Search(ctx context.Context, name string) ([]dto.CourseResponse, error) {
	name = strings.TrimSpace(name)
	// A blank query must not reach FindByName: it would equality-match every
	// record whose english name is empty.
	if name == "" {
		return []dto.CourseResponse{}, nil
	}

	courses, err := s.repo.Course.FindByName(ctx, name)
	if err != nil {
		s.logger.Error("course search failed", zap.Error(err))
		return nil, err
	}

	if len(courses) == 0 {
		pool, err := s.namePool(ctx)
		if err != nil {
			s.logger.Error("load search candidates failed", zap.Error(err))
			return nil, err
		}
		if match, score, ok := textmatch.BestMatch(name, pool); ok && score >= textmatch.AcceptThreshold {
			courses, err = s.repo.Course.FindByName(ctx, match)
			if err != nil {
				return nil, err
			}
		}
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i], false))
	}
	return result, nil
}

// namePool loads the fuzzy candidate names, via Redis when available.
func (s *courseService) namePool(ctx context.Context) ([]string, error) {
	if s.rdb != nil {
		if names, ok, err := s.rdb.GetNamePool(ctx, courseNamePool); err == nil && ok {
			return names, nil
		}
	}

	names, err := s.repo.Course.ListNamePool(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.CacheNamePool(ctx, courseNamePool, names, 10*time.Minute); err != nil {
			s.logger.Warn("cache search candidates failed", zap.Error(err))
		}
	}
	return names, nil
}

func (s *courseService) invalidateNamePool(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.InvalidateNamePool(ctx, courseNamePool); err != nil {
		s.logger.Warn("invalidate search candidates failed", zap.Error(err))
	}
}

// ────────────────────── Lookup ──────────────────────

func (s *courseService) Lookup(ctx context.Context, id uint, password string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !secretMatches(course.Password, password) {
		return nil, ErrWrongPassword
	}

	resp := toCourseResponse(course, true)
	return &resp, nil
}

// ────────────────────── Apply ──────────────────────

func (s *courseService) Apply(ctx context.Context, id uint, req *dto.ApplyRequest) (*dto.ApplyResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !secretMatches(course.Password, req.Password) {
		return nil, ErrWrongPassword
	}

	changed := false
	switch req.Action {
	case "save":
		reason := strings.TrimSpace(req.Reason)
		if reason == "" {
			return nil, ErrMissingReason
		}
		now := time.Now()
		course.ApplyThisSemester = true
		course.ReasonForApplying = reason
		course.ModifiedDate = &now
		if err := s.repo.Course.Update(ctx, course); err != nil {
			s.logger.Error("save apply state failed", zap.Uint("id", id), zap.Error(err))
			return nil, err
		}
		changed = true
	case "cancel":
		// Cancel clears the flag but leaves the reason text in place.
		now := time.Now()
		course.ApplyThisSemester = false
		course.ModifiedDate = &now
		if err := s.repo.Course.Update(ctx, course); err != nil {
			s.logger.Error("cancel apply state failed", zap.Uint("id", id), zap.Error(err))
			return nil, err
		}
		changed = true
	default:
		// Correct secret without an action: report unlocked, change nothing.
	}

	resp := toCourseResponse(course, true)
	return &dto.ApplyResponse{Unlocked: true, Changed: changed, Course: &resp}, nil
}

func (s *courseService) getCourse(ctx context.Context, id uint) (*model.CourseModality, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("load course failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

// toCourseResponse maps a record to its API shape. The password rides along
// only on the password-gated flows.
func toCourseResponse(course *model.CourseModality, revealPassword bool) dto.CourseResponse {
	resp := dto.CourseResponse{
		ID:                course.ID,
		KoreanName:        course.KoreanName,
		Name:              course.Name,
		EnglishName:       course.EnglishName,
		Year:              course.Year,
		Semester:          course.Semester,
		Language:          course.Language,
		CourseTitle:       course.CourseTitle,
		TimeSlot:          course.TimeSlot,
		Day:               course.Day,
		Time:              course.Time,
		FrequencyWeek:     course.FrequencyWeek,
		CourseFormat:      course.CourseFormat,
		ApplyThisSemester: course.ApplyThisSemester,
		ReasonForApplying: course.ReasonForApplying,
	}
	if course.ModifiedDate != nil {
		resp.ModifiedDate = course.ModifiedDate.Format(time.RFC3339)
	}
	if revealPassword {
		resp.Password = course.Password
	}
	return resp
}
