package models

import "time"

// Entry is one journal record: a mood at a point in time, with an optional
// description. Activities and images hang off it via child tables. Entries
// are immutable once created.
type Entry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	MoodID    uint      `gorm:"not null" json:"mood_id"`
	Desc      *string   `gorm:"type:text" json:"desc"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// EntryActivity links an Entry to one Activity performed during it.
// Rows are created atomically with the parent Entry and never mutated.
type EntryActivity struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	EntryID    uint `gorm:"not null;index" json:"entry_id"`
	ActivityID uint `gorm:"not null" json:"activity_id"`
}

// EntryImage is an image URL attached to an Entry at creation time.
type EntryImage struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	EntryID  uint   `gorm:"not null;index" json:"entry_id"`
	ImageURL string `gorm:"size:2048;not null" json:"image_url"`
}

// BigEntry is the denormalized read model returned to clients: an Entry with
// its Mood and Activities inlined. Not persisted.
type BigEntry struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	Mood       Mood       `json:"mood"`
	Desc       *string    `json:"desc"`
	CreatedAt  time.Time  `json:"created_at"`
	Activities []Activity `json:"activities"`
	Images     []string   `json:"images"`
}

// TableName overrides the table name for Entry
func (Entry) TableName() string {
	return "entrys"
}

// TableName overrides the table name for EntryActivity
func (EntryActivity) TableName() string {
	return "entry_activities"
}

// TableName overrides the table name for EntryImage
func (EntryImage) TableName() string {
	return "entry_images"
}
