package models

// User is a staff account for the admin panel. There is no public
// registration; accounts are provisioned directly.
type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex" json:"username"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"`
	IsStaff      bool   `gorm:"default:false" json:"is_staff"`
}
