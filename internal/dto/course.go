package dto

// CourseResponse is one course-modality record. Search results omit the
// password; the password-gated lookup and apply flows fill every field.
type CourseResponse struct {
	ID                uint   `json:"id"`
	KoreanName        string `json:"korean_name"`
	Name              string `json:"name"`
	EnglishName       string `json:"english_name"`
	Year              string `json:"year"`
	Semester          string `json:"semester"`
	Language          string `json:"language"`
	CourseTitle       string `json:"course_title"`
	TimeSlot          string `json:"time_slot"`
	Day               string `json:"day"`
	Time              string `json:"time"`
	FrequencyWeek     string `json:"frequency_week"`
	CourseFormat      string `json:"course_format"`
	ApplyThisSemester bool   `json:"apply_this_semester"`
	ReasonForApplying string `json:"reason_for_applying"`
	ModifiedDate      string `json:"modified_date,omitempty"`
	Password          string `json:"password,omitempty"`
}

// LookupRequest carries the per-record shared secret for a read-only reveal.
type LookupRequest struct {
	Password string `json:"password" binding:"required,max=10"`
}

// ApplyRequest drives the apply workflow for one course record. An empty
// Action with a correct password reports the unlocked state without
// mutating the record.
type ApplyRequest struct {
	Password string `json:"password" binding:"required,max=10"`
	Action   string `json:"action" binding:"omitempty,oneof=save cancel"`
	Reason   string `json:"reason"`
}

// ApplyResponse reports the outcome of an apply submission.
type ApplyResponse struct {
	Unlocked bool            `json:"unlocked"`
	Changed  bool            `json:"changed"`
	Course   *CourseResponse `json:"course,omitempty"`
}
