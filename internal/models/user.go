package models

// User represents a registered account and its profile fields.
//
// Passwords are stored verbatim. The service this replaces never hashed
// credentials, and the login contract depends on exact comparison, so the
// gap is kept rather than silently fixed.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"type:varchar(100)" validate:"required"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required"`
	Password string `json:"-" gorm:"type:varchar(255)" validate:"required"` // No json tag value for security
	Name     string `json:"name,omitempty" gorm:"type:varchar(100)"`
	Phone    string `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Photo    string `json:"photo,omitempty" gorm:"type:varchar(255)"`
	IsPublic bool   `json:"isPublic"`
}
