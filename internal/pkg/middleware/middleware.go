package middleware

import (
	"travel-booking-service/internal/pkg/errors"
	"travel-booking-service/internal/pkg/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type Middleware struct {
	Log *otelzap.Logger
}

// RequireSession pins a shopper session id to the request. The id is an
// opaque client-supplied string; holds and payment initiation are scoped to
// it, so a request without one cannot proceed.
func (m *Middleware) RequireSession(ctx *fiber.Ctx) error {
	sessionID := ctx.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = ctx.Query("session_id")
	}
	if sessionID == "" {
		// POST bodies carry the session under either alias.
		var body struct {
			SessionID  string `json:"session_id"`
			SessionID2 string `json:"sessionId"`
		}
		if err := ctx.BodyParser(&body); err == nil {
			sessionID = body.SessionID
			if sessionID == "" {
				sessionID = body.SessionID2
			}
		}
	}
	if sessionID == "" {
		m.Log.Ctx(ctx.UserContext()).Error("error get session id from request")
		return helpers.RespError(ctx, m.Log, errors.BadRequest("missing session id"))
	}

	ctx.Locals("session_id", sessionID)

	return ctx.Next()
}
