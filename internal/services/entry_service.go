package services

import (
	"context"
	"errors"
	"time"

	"github.com/moodlog/api/internal/models"
	"github.com/moodlog/api/internal/types"
	"gorm.io/gorm"
)

// EntryInput carries the fields for creating an entry. CreatedAt defaults to
// server time when nil. Duplicate activity ids are collapsed to the first
// occurrence.
type EntryInput struct {
	MoodID      uint
	Desc        *string
	CreatedAt   *time.Time
	ActivityIDs []uint
	ImageURLs   []string
}

// CreateEntry persists an entry together with its activity links and image
// rows as one transaction. The mood and every activity must already exist
// and belong to userID, otherwise the create fails with NotFound before
// anything is written.
func CreateEntry(ctx context.Context, db *gorm.DB, userID uint, in EntryInput) (*models.BigEntry, error) {
	if in.MoodID == 0 {
		return nil, types.NewValidation("mood_id is required")
	}

	createdAt := time.Now().UTC()
	if in.CreatedAt != nil {
		createdAt = *in.CreatedAt
	}

	activityIDs := dedupeIDs(in.ActivityIDs)

	var (
		entry      models.Entry
		mood       *models.Mood
		activities []models.Activity
	)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		mood, err = requireOwnedMood(tx, userID, in.MoodID)
		if err != nil {
			return err
		}

		activities, err = requireOwnedActivities(tx, userID, activityIDs)
		if err != nil {
			return err
		}

		entry = models.Entry{
			UserID:    userID,
			MoodID:    mood.ID,
			Desc:      in.Desc,
			CreatedAt: createdAt,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		for _, activityID := range activityIDs {
			link := models.EntryActivity{EntryID: entry.ID, ActivityID: activityID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		for _, url := range in.ImageURLs {
			image := models.EntryImage{UserID: userID, EntryID: entry.ID, ImageURL: url}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		var ce *types.CustomError
		if errors.As(err, &ce) {
			return nil, ce
		}
		return nil, storageError(err)
	}

	images := in.ImageURLs
	if images == nil {
		images = []string{}
	}

	return &models.BigEntry{
		ID:         entry.ID,
		UserID:     entry.UserID,
		Mood:       *mood,
		Desc:       entry.Desc,
		CreatedAt:  entry.CreatedAt,
		Activities: activities,
		Images:     images,
	}, nil
}

// ListEntries returns all of userID's entries, newest first, each with its
// mood, activities, and images inlined. Child rows for the whole page are
// batch-loaded in one query per table rather than per entry.
func ListEntries(ctx context.Context, db *gorm.DB, userID uint) ([]models.BigEntry, error) {
	var entries []models.Entry
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, storageError(err)
	}

	return assembleBigEntries(ctx, db, userID, entries)
}

// GetEntryByID returns a single entry owned by userID with its children
// inlined, or NotFound when the id is absent or owned by another user.
func GetEntryByID(ctx context.Context, db *gorm.DB, userID, entryID uint) (*models.BigEntry, error) {
	var entry models.Entry
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFound("entry not found")
		}
		return nil, storageError(err)
	}

	big, err := assembleBigEntries(ctx, db, userID, []models.Entry{entry})
	if err != nil {
		return nil, err
	}
	return &big[0], nil
}

// assembleBigEntries inlines moods, activities, and images for a page of
// entries, preserving the page order.
func assembleBigEntries(ctx context.Context, db *gorm.DB, userID uint, entries []models.Entry) ([]models.BigEntry, error) {
	result := make([]models.BigEntry, 0, len(entries))
	if len(entries) == 0 {
		return result, nil
	}

	entryIDs := make([]uint, 0, len(entries))
	moodIDs := make([]uint, 0, len(entries))
	for _, e := range entries {
		entryIDs = append(entryIDs, e.ID)
		moodIDs = append(moodIDs, e.MoodID)
	}

	var moods []models.Mood
	if err := db.WithContext(ctx).Where("id IN ?", dedupeIDs(moodIDs)).Find(&moods).Error; err != nil {
		return nil, storageError(err)
	}
	moodByID := make(map[uint]models.Mood, len(moods))
	for _, m := range moods {
		moodByID[m.ID] = m
	}

	var links []models.EntryActivity
	if err := db.WithContext(ctx).
		Where("entry_id IN ?", entryIDs).
		Order("id ASC").
		Find(&links).Error; err != nil {
		return nil, storageError(err)
	}

	activityIDs := make([]uint, 0, len(links))
	for _, l := range links {
		activityIDs = append(activityIDs, l.ActivityID)
	}
	var activities []models.Activity
	if len(activityIDs) > 0 {
		if err := db.WithContext(ctx).Where("id IN ?", dedupeIDs(activityIDs)).Find(&activities).Error; err != nil {
			return nil, storageError(err)
		}
	}
	activityByID := make(map[uint]models.Activity, len(activities))
	for _, a := range activities {
		activityByID[a.ID] = a
	}

	linksByEntry := make(map[uint][]models.EntryActivity, len(entries))
	for _, l := range links {
		linksByEntry[l.EntryID] = append(linksByEntry[l.EntryID], l)
	}

	var images []models.EntryImage
	if err := db.WithContext(ctx).
		Where("entry_id IN ?", entryIDs).
		Order("id ASC").
		Find(&images).Error; err != nil {
		return nil, storageError(err)
	}
	imagesByEntry := make(map[uint][]string, len(entries))
	for _, img := range images {
		imagesByEntry[img.EntryID] = append(imagesByEntry[img.EntryID], img.ImageURL)
	}

	for _, e := range entries {
		mood, ok := moodByID[e.MoodID]
		if !ok {
			return nil, types.NewInternal("entry references missing mood")
		}

		entryActivities := []models.Activity{}
		for _, l := range linksByEntry[e.ID] {
			if a, ok := activityByID[l.ActivityID]; ok {
				entryActivities = append(entryActivities, a)
			}
		}

		entryImages := imagesByEntry[e.ID]
		if entryImages == nil {
			entryImages = []string{}
		}

		result = append(result, models.BigEntry{
			ID:         e.ID,
			UserID:     e.UserID,
			Mood:       mood,
			Desc:       e.Desc,
			CreatedAt:  e.CreatedAt,
			Activities: entryActivities,
			Images:     entryImages,
		})
	}

	return result, nil
}
