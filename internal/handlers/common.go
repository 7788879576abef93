// common.go
//
// Liming and fertilization consultancy portal with customer self-service and calculators
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of limeportal.
// limeportal is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// limeportal is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with limeportal.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"
	"strconv"

	"github.com/agrolime/limeportal/internal/agronomy"
	"github.com/agrolime/limeportal/internal/logging"
	"github.com/agrolime/limeportal/internal/middleware"
	"github.com/agrolime/limeportal/internal/services"
	"github.com/agrolime/limeportal/internal/types"
	"github.com/agrolime/limeportal/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// dbFor binds the pool to the request context
func dbFor(c *fiber.Ctx, db *gorm.DB) *gorm.DB {
	return db.WithContext(c.UserContext())
}

// userID returns the id of the authenticated caller
func userID(c *fiber.Ctx) string {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}

// invalidBody answers a request whose body could not be decoded
func invalidBody(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, utils.Message(c, utils.MsgInvalidBody), fiber.StatusBadRequest, types.ErrTypeInput)
}

// serviceError maps service and calculator errors onto the error envelope.
// Anything unexpected is logged and answered with the generic localized message.
func serviceError(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, utils.Message(c, utils.MsgNotFound))
	case errors.Is(err, services.ErrInvalidTransition):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, types.ErrTypeStatus)
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrSelfDemotion):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, types.ErrTypeInput)
	case errors.Is(err, agronomy.ErrInvalidInput), errors.Is(err, agronomy.ErrUnsupportedConversion):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, types.ErrTypeCalculator)
	}

	logging.L().Error("request failed",
		zap.String("op", op),
		zap.String("method", c.Method()),
		zap.String("url", c.OriginalURL()),
		zap.Error(err))
	return utils.ErrorResponse(c, utils.Message(c, utils.MsgServerError), fiber.StatusInternalServerError, types.ErrTypeServer)
}

// queryInt reads an integer query parameter, falling back to def
func queryInt(c *fiber.Ctx, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
