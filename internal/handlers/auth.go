package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moodlog/api/internal/config"
	"github.com/moodlog/api/internal/middleware"
	"github.com/moodlog/api/internal/services"
	"github.com/moodlog/api/internal/types"
	"github.com/moodlog/api/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login, logout, and identity routes.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// anonymousMarker is returned by GET /api/auth for requests without a valid
// session.
var anonymousMarker = fiber.Map{"anonymous": true}

// Register handles POST /api/register
// @Summary Register a new account
// @Description Create an account from an email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsRequest true "Credentials"
// @Success 200 {object} models.SlimUser
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body credentialsRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation")
	}

	user, err := services.Register(c.UserContext(), h.DB, body.Email, body.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// Login handles POST /api/auth
// @Summary Log in
// @Description Verify credentials and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsRequest true "Credentials"
// @Success 200 {object} models.SlimUser
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body credentialsRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation")
	}

	user, err := services.VerifyCredentials(c.UserContext(), h.DB, body.Email, body.Password)
	if err != nil {
		return err
	}

	token, err := services.IssueToken(user.ID)
	if err != nil {
		return types.NewInternal("failed to issue session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.Cfg.SessionDomain,
		MaxAge:   int(services.SessionTTL.Seconds()),
		Secure:   h.Cfg.SessionSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(user)
}

// Logout handles DELETE /api/auth
// @Summary Log out
// @Description Instruct the client to discard its session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /auth [delete]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Stateless tokens: revocation is telling the client to drop the cookie.
	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.Cfg.SessionDomain,
		MaxAge:   -1,
		Secure:   h.Cfg.SessionSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// Me handles GET /api/auth
// @Summary Current identity
// @Description Return the logged-in user, or an anonymous marker
// @Tags Auth
// @Produce json
// @Success 200 {object} models.SlimUser
// @Router /auth [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusOK).JSON(anonymousMarker)
	}

	user, err := services.GetUser(c.UserContext(), h.DB, userID)
	if err != nil {
		// The id came from a validly signed token; a missing row means the
		// account is gone, so the session no longer grants identity.
		return c.Status(fiber.StatusOK).JSON(anonymousMarker)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
