package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/model"
)

// ── Mock FacultyRepository ──

type mockFacultyRepo struct {
	items  []*model.Faculty
	nextID uint
}

func newMockFacultyRepo() *mockFacultyRepo {
	return &mockFacultyRepo{}
}

func (m *mockFacultyRepo) Create(_ context.Context, fac *model.Faculty) error {
	m.nextID++
	fac.ID = m.nextID
	cp := *fac
	m.items = append(m.items, &cp)
	return nil
}

func (m *mockFacultyRepo) Update(_ context.Context, fac *model.Faculty) error {
	for i, it := range m.items {
		if it.ID == fac.ID {
			cp := *fac
			m.items[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) GetByKoreanName(_ context.Context, name string) (*model.Faculty, error) {
	for _, it := range m.items {
		if it.KoreanName == name {
			cp := *it
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) FindByName(_ context.Context, name string) ([]model.Faculty, error) {
	var out []model.Faculty
	for _, it := range m.items {
		if strings.EqualFold(it.KoreanName, name) || strings.EqualFold(it.EnglishName, name) {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *mockFacultyRepo) ListKoreanNames(_ context.Context) ([]string, error) {
	var names []string
	for _, it := range m.items {
		names = append(names, it.KoreanName)
	}
	return names, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	items  []*model.CourseModality
	nextID uint
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.CourseModality) error {
	m.nextID++
	course.ID = m.nextID
	cp := *course
	m.items = append(m.items, &cp)
	return nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.CourseModality) error {
	for i, it := range m.items {
		if it.ID == course.ID {
			cp := *course
			m.items[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByID(_ context.Context, id uint) (*model.CourseModality, error) {
	for _, it := range m.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByKoreanName(_ context.Context, name string) (*model.CourseModality, error) {
	for _, it := range m.items {
		if it.KoreanName == name {
			cp := *it
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) FindByName(_ context.Context, name string) ([]model.CourseModality, error) {
	var out []model.CourseModality
	for _, it := range m.items {
		if strings.EqualFold(it.KoreanName, name) || strings.EqualFold(it.EnglishName, name) {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) ListNamePool(_ context.Context) ([]string, error) {
	var names []string
	for _, it := range m.items {
		names = append(names, it.KoreanName)
	}
	for _, it := range m.items {
		if it.EnglishName != "" {
			names = append(names, it.EnglishName)
		}
	}
	return names, nil
}

func (m *mockCourseRepo) ListAll(_ context.Context) ([]model.CourseModality, error) {
	out := make([]model.CourseModality, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, *it)
	}
	return out, nil
}

// ── Test workbook builder ──

func buildWorkbook(t *testing.T, lines [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)

	for r, line := range lines {
		for c, v := range line {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}
