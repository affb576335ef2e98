package services

import (
	"errors"

	"github.com/moodlog/api/internal/models"
	"github.com/moodlog/api/internal/types"
	"gorm.io/gorm"
)

// Every fetch below filters by user_id. An entity that exists but belongs to
// another user is reported exactly like one that does not exist.

// requireOwnedMood fetches a mood owned by userID or fails with NotFound.
func requireOwnedMood(tx *gorm.DB, userID, moodID uint) (*models.Mood, error) {
	var mood models.Mood
	err := tx.Where("id = ? AND user_id = ?", moodID, userID).First(&mood).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFound("mood not found")
		}
		return nil, storageError(err)
	}
	return &mood, nil
}

// requireOwnedActivities fetches the activities for the given ids, all owned
// by userID, preserving the order of ids. Fails with NotFound if any id is
// absent or owned by another user.
func requireOwnedActivities(tx *gorm.DB, userID uint, ids []uint) ([]models.Activity, error) {
	if len(ids) == 0 {
		return []models.Activity{}, nil
	}

	var activities []models.Activity
	if err := tx.Where("user_id = ? AND id IN ?", userID, ids).Find(&activities).Error; err != nil {
		return nil, storageError(err)
	}

	byID := make(map[uint]models.Activity, len(activities))
	for _, a := range activities {
		byID[a.ID] = a
	}

	ordered := make([]models.Activity, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, types.NewNotFound("activity not found")
		}
		ordered = append(ordered, a)
	}
	return ordered, nil
}

// dedupeIDs removes duplicate ids preserving first occurrence.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
