package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/moodlog/api/internal/middleware"
	"github.com/moodlog/api/internal/services"
	"github.com/moodlog/api/internal/types"
	"github.com/moodlog/api/internal/utils"
	"gorm.io/gorm"
)

// EntryHandler handles the journal entry routes.
type EntryHandler struct {
	DB *gorm.DB
}

type entryRequest struct {
	MoodID      types.FlexID                 `json:"mood_id"`
	Desc        *string                      `json:"desc"`
	CreatedAt   *time.Time                   `json:"created_at"`
	ActivityIDs types.FlexList[types.FlexID] `json:"activity_ids"`
	ImageURLs   types.FlexList[string]       `json:"image_urls"`
}

// CreateEntry handles POST /api/entry
// @Summary Create a journal entry
// @Description Create an entry with its activity links and images in one unit
// @Tags Entry
// @Accept json
// @Produce json
// @Param body body entryRequest true "Entry"
// @Success 200 {object} models.BigEntry
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /entry [post]
func (h *EntryHandler) CreateEntry(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return types.NewUnauthenticated("missing session")
	}

	var body entryRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation")
	}

	activityIDs := make([]uint, 0, len(body.ActivityIDs))
	for _, id := range body.ActivityIDs {
		activityIDs = append(activityIDs, id.Uint())
	}

	entry, err := services.CreateEntry(c.UserContext(), h.DB, userID, services.EntryInput{
		MoodID:      body.MoodID.Uint(),
		Desc:        body.Desc,
		CreatedAt:   body.CreatedAt,
		ActivityIDs: activityIDs,
		ImageURLs:   body.ImageURLs.Slice(),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(entry)
}

// ListEntries handles GET /api/entry
// @Summary List journal entries
// @Description List the caller's entries newest first, moods and activities inlined
// @Tags Entry
// @Produce json
// @Success 200 {array} models.BigEntry
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /entry [get]
func (h *EntryHandler) ListEntries(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return types.NewUnauthenticated("missing session")
	}

	entries, err := services.ListEntries(c.UserContext(), h.DB, userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}

// GetEntryByID handles GET /api/entry/:id
// @Summary Get one journal entry
// @Tags Entry
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} models.BigEntry
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /entry/{id} [get]
func (h *EntryHandler) GetEntryByID(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return types.NewUnauthenticated("missing session")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ErrorResponse(c, "Invalid entry id", fiber.StatusBadRequest, "validation")
	}

	entry, err := services.GetEntryByID(c.UserContext(), h.DB, userID, uint(id))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(entry)
}
