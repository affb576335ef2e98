package models

// Mood is a user-defined mood reference. Value is the ordinal rank used to
// sort moods best-to-worst.
type Mood struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"size:255;not null" json:"name"`
	Icon   string `gorm:"size:64" json:"icon"`
	Value  int    `gorm:"not null" json:"value"`
}

// Activity is a user-defined activity reference.
type Activity struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"size:255;not null" json:"name"`
	Icon   string `gorm:"size:64" json:"icon"`
}

// TableName overrides the table name for Mood
func (Mood) TableName() string {
	return "moods"
}

// TableName overrides the table name for Activity
func (Activity) TableName() string {
	return "activities"
}
