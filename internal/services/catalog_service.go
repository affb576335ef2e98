package services

import (
	"context"
	"strings"

	"github.com/moodlog/api/internal/models"
	"github.com/moodlog/api/internal/types"
	"gorm.io/gorm"
)

// CreateMood inserts a mood scoped to userID and returns the persisted row.
func CreateMood(ctx context.Context, db *gorm.DB, userID uint, name, icon string, value int) (*models.Mood, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.NewValidation("mood name is required")
	}

	mood := models.Mood{UserID: userID, Name: name, Icon: icon, Value: value}
	if err := db.WithContext(ctx).Create(&mood).Error; err != nil {
		return nil, storageError(err)
	}
	return &mood, nil
}

// ListMoods returns all moods owned by userID ordered by value descending,
// insertion order breaking ties.
func ListMoods(ctx context.Context, db *gorm.DB, userID uint) ([]models.Mood, error) {
	moods := []models.Mood{}
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("value DESC, id ASC").
		Find(&moods).Error
	if err != nil {
		return nil, storageError(err)
	}
	return moods, nil
}

// CreateActivity inserts an activity scoped to userID and returns the
// persisted row.
func CreateActivity(ctx context.Context, db *gorm.DB, userID uint, name, icon string) (*models.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.NewValidation("activity name is required")
	}

	activity := models.Activity{UserID: userID, Name: name, Icon: icon}
	if err := db.WithContext(ctx).Create(&activity).Error; err != nil {
		return nil, storageError(err)
	}
	return &activity, nil
}

// ListActivities returns all activities owned by userID in insertion order.
func ListActivities(ctx context.Context, db *gorm.DB, userID uint) ([]models.Activity, error) {
	activities := []models.Activity{}
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&activities).Error
	if err != nil {
		return nil, storageError(err)
	}
	return activities, nil
}
