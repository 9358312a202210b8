package middleware

import (
	"github.com/labstack/echo/v4"
)

// ActorKey is the echo context key holding the current actor's user id.
const ActorKey = "actorID"

// FixedActorMiddleware attributes every request to the same user. There is
// no authentication in front of the feed store.
func FixedActorMiddleware(actorID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ActorKey, actorID)
			return next(c)
		}
	}
}

// ActorID returns the actor stored by FixedActorMiddleware, or "" if none.
func ActorID(c echo.Context) string {
	id, _ := c.Get(ActorKey).(string)
	return id
}
