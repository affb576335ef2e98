package models

// User is the root of ownership for all journal data. The password digest
// never leaves the service layer; API responses use SlimUser.
type User struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Hash  string `gorm:"size:255;not null" json:"-"`
}

// SlimUser is the sanitized projection of a User returned by the API.
type SlimUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// Slim returns the sanitized projection of the user.
func (u User) Slim() SlimUser {
	return SlimUser{ID: u.ID, Email: u.Email}
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
