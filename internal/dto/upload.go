package dto

// UploadResponse reports what a spreadsheet merge did. Skipped counts rows
// without a resolvable merge key; they are part of Total but never touch
// the store.
type UploadResponse struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
