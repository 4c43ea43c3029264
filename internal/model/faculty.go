package model

// Faculty is one instructor record, keyed by Korean name.
type Faculty struct {
	ID          uint   `gorm:"primaryKey"                           json:"id"`
	KoreanName  string `gorm:"type:varchar(200);uniqueIndex;not null" json:"korean_name"`
	EnglishName string `gorm:"type:varchar(200);not null;default:''" json:"english_name"`
	Category    string `gorm:"type:varchar(100);not null;default:''" json:"category"`
	Email       string `gorm:"type:varchar(254);not null;default:''" json:"email"`
}

// TableName maps the model to the faculties table.
func (Faculty) TableName() string { return "faculties" }
