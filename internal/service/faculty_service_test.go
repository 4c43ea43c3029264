package service

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/model"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/repository"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/sheet"
)

func newFacultyFixture() (FacultyService, *mockFacultyRepo) {
	faculty := newMockFacultyRepo()
	repo := &repository.Repository{Faculty: faculty, Course: newMockCourseRepo()}
	svc := NewFacultyService(newTestConfig(), repo, nil, zap.NewNop())
	return svc, faculty
}

// readSheet parses a produced workbook back into rows for assertions.
func readSheet(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open produced workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("read produced workbook: %v", err)
	}
	return rows
}

// ────────────────────── Upload ──────────────────────

func TestFacultyUpload_CreateAndMerge(t *testing.T) {
	svc, faculty := newFacultyFixture()

	wb := buildWorkbook(t, [][]interface{}{
		{"Korean_name", "English_name", "Category", "Email"},
		{"홍길동", "Hong Gildong", "Full-time", "hong@kdis.ac.kr"},
	})
	resp, err := svc.Upload(context.Background(), wb, "1205")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if resp.Created != 1 {
		t.Fatalf("Created = %d, want 1", resp.Created)
	}

	// Second sheet updates the email and leaves the blank category alone.
	wb = buildWorkbook(t, [][]interface{}{
		{"Korean_name", "Category", "Email"},
		{"홍길동", "", "gildong@kdis.ac.kr"},
	})
	resp, err = svc.Upload(context.Background(), wb, "1205")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if resp.Updated != 1 {
		t.Fatalf("Updated = %d, want 1", resp.Updated)
	}

	stored, err := faculty.GetByKoreanName(context.Background(), "홍길동")
	if err != nil {
		t.Fatalf("GetByKoreanName() error = %v", err)
	}
	if stored.Email != "gildong@kdis.ac.kr" {
		t.Errorf("Email = %q, want the updated value", stored.Email)
	}
	if stored.Category != "Full-time" {
		t.Errorf("Category = %q, blank cell must not clear it", stored.Category)
	}
}

func TestFacultyUpload_BadAdminPIN(t *testing.T) {
	svc, _ := newFacultyFixture()

	wb := buildWorkbook(t, [][]interface{}{
		{"Korean_name"},
		{"홍길동"},
	})
	if _, err := svc.Upload(context.Background(), wb, "9999"); !errors.Is(err, ErrBadAdminPIN) {
		t.Errorf("Upload() error = %v, want ErrBadAdminPIN", err)
	}
}

func TestFacultyUpload_HeaderOnlySheet(t *testing.T) {
	svc, _ := newFacultyFixture()

	wb := buildWorkbook(t, [][]interface{}{
		{"Korean_name", "English_name"},
	})
	resp, err := svc.Upload(context.Background(), wb, "1205")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if resp.Total != 0 || resp.Created != 0 || resp.Updated != 0 || resp.Skipped != 0 {
		t.Errorf("Upload() counts = %+v, want all zero", resp)
	}
}

func TestFacultyUpload_EmptyWorksheet(t *testing.T) {
	svc, _ := newFacultyFixture()

	if _, err := svc.Upload(context.Background(), buildWorkbook(t, nil), "1205"); !errors.Is(err, sheet.ErrNoData) {
		t.Errorf("Upload() error = %v, want sheet.ErrNoData", err)
	}
}

// ────────────────────── Enrich ──────────────────────

func TestFacultyEnrich(t *testing.T) {
	svc, faculty := newFacultyFixture()
	faculty.Create(context.Background(), &model.Faculty{
		KoreanName:  "홍길동",
		EnglishName: "Hong Gildong",
		Category:    "Full-time",
		Email:       "hong@kdis.ac.kr",
	})

	wb := buildWorkbook(t, [][]interface{}{
		{"Korean_name", "Course Title"},
		{"홍길동", "Public Policy"},
		{"김철수", "Microeconomics"},
	})
	buf, filename, err := svc.Enrich(context.Background(), wb)
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if filename != "faculty_enriched.xlsx" {
		t.Errorf("filename = %q", filename)
	}

	rows := readSheet(t, buf)
	if len(rows) != 3 {
		t.Fatalf("enriched rows = %d, want header + 2", len(rows))
	}
	if !reflect.DeepEqual(rows[0], enrichHeader) {
		t.Errorf("header = %v, want %v", rows[0], enrichHeader)
	}
	want := []string{"1", "홍길동", "Hong Gildong", "Full-time", "hong@kdis.ac.kr"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("known instructor row = %v, want %v", rows[1], want)
	}
	// Unknown instructor: the key echoes back, the rest stays blank.
	if rows[2][1] != "김철수" {
		t.Errorf("unknown instructor key = %q, want 김철수", rows[2][1])
	}
	for col := 2; col < len(rows[2]); col++ {
		if rows[2][col] != "" {
			t.Errorf("unknown instructor column %d = %q, want blank", col, rows[2][col])
		}
	}
}

func TestFacultyEnrich_MissingKeyColumn(t *testing.T) {
	svc, _ := newFacultyFixture()

	wb := buildWorkbook(t, [][]interface{}{
		{"Course Title", "Email"},
		{"Public Policy", "hong@kdis.ac.kr"},
	})
	if _, _, err := svc.Enrich(context.Background(), wb); !errors.Is(err, ErrMissingKeyColumn) {
		t.Errorf("Enrich() error = %v, want ErrMissingKeyColumn", err)
	}
}

// ────────────────────── Search ──────────────────────

func TestFacultySearch_FuzzyFallback(t *testing.T) {
	svc, faculty := newFacultyFixture()
	faculty.Create(context.Background(), &model.Faculty{KoreanName: "홍길동", EnglishName: "Hong Gildong"})
	faculty.Create(context.Background(), &model.Faculty{KoreanName: "김철수"})

	result, err := svc.Search(context.Background(), "홍길둥")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result) != 1 || result[0].KoreanName != "홍길동" {
		t.Errorf("Search() = %+v, want the close-typo match", result)
	}

	result, err = svc.Search(context.Background(), "Hong Gildong")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result) != 1 {
		t.Errorf("english-name search = %+v, want 1 match", result)
	}
}

func TestFacultySearch_BlankQuery(t *testing.T) {
	svc, faculty := newFacultyFixture()
	faculty.Create(context.Background(), &model.Faculty{KoreanName: "홍길동"})
	faculty.Create(context.Background(), &model.Faculty{KoreanName: "김철수"})

	result, err := svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result) != 0 {
		t.Errorf("blank query matched %d records, want 0", len(result))
	}
}
