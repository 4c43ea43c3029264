package model

import "time"

// CourseModality is one course's delivery-mode record. korean_name is the
// merge key for spreadsheet uploads but is not unique: the same instructor
// may carry several courses.
//
// Invariants enforced by the merge and apply flows:
//   - a non-blank password is never overwritten by a blank incoming value
//   - any change to ApplyThisSemester or ReasonForApplying stamps ModifiedDate
type CourseModality struct {
	ID                uint       `gorm:"primaryKey"                             json:"id"`
	KoreanName        string     `gorm:"type:varchar(200);index;not null"       json:"korean_name"`
	Name              string     `gorm:"type:varchar(200);not null;default:''"  json:"name"`
	EnglishName       string     `gorm:"type:varchar(200);index;not null;default:''" json:"english_name"`
	Year              string     `gorm:"type:varchar(20);not null;default:''"   json:"year"`
	Semester          string     `gorm:"type:varchar(50);not null;default:''"   json:"semester"`
	Language          string     `gorm:"type:varchar(50);not null;default:''"   json:"language"`
	CourseTitle       string     `gorm:"type:varchar(500);not null;default:''"  json:"course_title"`
	TimeSlot          string     `gorm:"type:varchar(200);not null;default:''"  json:"time_slot"`
	Day               string     `gorm:"type:varchar(50);not null;default:''"   json:"day"`
	Time              string     `gorm:"type:varchar(100);not null;default:''"  json:"time"`
	FrequencyWeek     string     `gorm:"type:varchar(50);not null;default:''"   json:"frequency_week"`
	CourseFormat      string     `gorm:"type:varchar(200);not null;default:''"  json:"course_format"`
	ApplyThisSemester bool       `gorm:"not null;default:false"                 json:"apply_this_semester"`
	ReasonForApplying string     `gorm:"type:text;not null;default:''"          json:"reason_for_applying"`
	ModifiedDate      *time.Time `json:"modified_date,omitempty"`
	Password          string     `gorm:"type:varchar(10);not null;default:''"   json:"-"`
}

// TableName maps the model to the course_modalities table.
func (CourseModality) TableName() string { return "course_modalities" }
