package dto

// FacultyResponse is one instructor record as returned by search.
type FacultyResponse struct {
	ID          uint   `json:"id"`
	KoreanName  string `json:"korean_name"`
	EnglishName string `json:"english_name"`
	Category    string `json:"category"`
	Email       string `json:"email"`
}
