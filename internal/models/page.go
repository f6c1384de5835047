package models

// AccountPage is one page of the admin dashboard listing.
type AccountPage struct {
	Accounts   []Account `json:"accounts"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
	TotalCount int64     `json:"total_count"`
	HasOther   bool      `json:"has_other_pages"`
}
