package middleware

import (
	"errors"

	"github.com/agrolime/limeportal/internal/logging"
	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/agrolime/limeportal/internal/types"
	"github.com/agrolime/limeportal/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCookie is the Authorizer session cookie name
const SessionCookie = "cookie_session"

const (
	localsUser    = "user"
	localsProfile = "profile"
)

// AuthUser requires a valid session. The caller's profile is created on first sight.
func AuthUser(validator services.SessionValidator, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := authenticate(c, validator, db, services.EnsureProfile); err != nil {
			return err
		}
		return c.Next()
	}
}

// AuthAdmin requires a valid session whose profile has the admin role.
// It rejects the request before any handler runs and never creates a profile.
func AuthAdmin(validator services.SessionValidator, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := authenticate(c, validator, db, loadProfile)
		if err != nil {
			return err
		}
		if profile == nil || !profile.IsAdmin() {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: utils.Message(c, utils.MsgForbidden),
				Type:    types.ErrTypeAdmin,
			}
		}
		return c.Next()
	}
}

// profileLoader resolves the profile for an authenticated session user
type profileLoader func(db *gorm.DB, user *services.SessionUser) (*models.Profile, error)

// loadProfile reads an existing profile; a user without one has no profile yet
func loadProfile(db *gorm.DB, user *services.SessionUser) (*models.Profile, error) {
	profile, err := services.GetProfile(db, user.ID)
	if errors.Is(err, services.ErrNotFound) {
		return nil, nil
	}
	return profile, err
}

// authenticate validates the session cookie and loads the caller's profile
func authenticate(c *fiber.Ctx, validator services.SessionValidator, db *gorm.DB, load profileLoader) (*models.Profile, error) {
	session := c.Cookies(SessionCookie)
	if session == "" {
		return nil, &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: utils.Message(c, utils.MsgUnauthorized),
			Type:    types.ErrTypeSession,
		}
	}

	user, err := validator.ValidateSession(session)
	if err != nil {
		logging.L().Debug("session rejected", zap.String("url", c.OriginalURL()), zap.Error(err))
		return nil, &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: utils.Message(c, utils.MsgUnauthorized),
			Type:    types.ErrTypeSession,
		}
	}

	profile, err := load(db.WithContext(c.UserContext()), user)
	if err != nil {
		logging.L().Error("failed to load profile", zap.String("user", user.ID), zap.Error(err))
		return nil, &types.CustomError{
			Code:    fiber.StatusInternalServerError,
			Message: utils.Message(c, utils.MsgServerError),
			Type:    types.ErrTypeServer,
		}
	}

	c.Locals(localsUser, user)
	c.Locals(localsProfile, profile)
	return profile, nil
}

// CurrentUser returns the session user set by AuthUser or AuthAdmin
func CurrentUser(c *fiber.Ctx) *services.SessionUser {
	user, _ := c.Locals(localsUser).(*services.SessionUser)
	return user
}

// CurrentProfile returns the caller's profile set by AuthUser or AuthAdmin
func CurrentProfile(c *fiber.Ctx) *models.Profile {
	profile, _ := c.Locals(localsProfile).(*models.Profile)
	return profile
}
