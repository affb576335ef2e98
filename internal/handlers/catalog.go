package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moodlog/api/internal/middleware"
	"github.com/moodlog/api/internal/services"
	"github.com/moodlog/api/internal/types"
	"github.com/moodlog/api/internal/utils"
	"gorm.io/gorm"
)

// CatalogHandler handles the per-user mood and activity reference routes.
type CatalogHandler struct {
	DB *gorm.DB
}

type moodRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Value int    `json:"value"`
}

type activityRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CreateMood handles POST /api/mood
// @Summary Create a mood
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body moodRequest true "Mood"
// @Success 200 {object} models.Mood
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /mood [post]
func (h *CatalogHandler) CreateMood(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return types.NewUnauthenticated("missing session")
	}

	var body moodRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation")
	}

	mood, err := services.CreateMood(c.UserContext(), h.DB, userID, body.Name, body.Icon, body.Value)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(mood)
}

// ListMoods handles GET /api/mood
// @Summary List moods
// @Description List the caller's moods ordered by value descending
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.Mood
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /mood [get]
func (h *CatalogHandler) ListMoods(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return types.NewUnauthenticated("missing session")
	}

	moods, err := services.ListMoods(c.UserContext(), h.DB, userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(moods)
}

// CreateActivity handles POST /api/activity
// @Summary Create an activity
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body activityRequest true "Activity"
// @Success 200 {object} models.Activity
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /activity [post]
func (h *CatalogHandler) CreateActivity(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return types.NewUnauthenticated("missing session")
	}

	var body activityRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation")
	}

	activity, err := services.CreateActivity(c.UserContext(), h.DB, userID, body.Name, body.Icon)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(activity)
}

// ListActivities handles GET /api/activity
// @Summary List activities
// @Description List the caller's activities in creation order
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.Activity
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /activity [get]
func (h *CatalogHandler) ListActivities(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return types.NewUnauthenticated("missing session")
	}

	activities, err := services.ListActivities(c.UserContext(), h.DB, userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(activities)
}
