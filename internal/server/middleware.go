package server

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arikankainen/consequat-server/internal/auth"
	"github.com/arikankainen/consequat-server/internal/gql"
	"github.com/arikankainen/consequat-server/internal/metrics"
	"github.com/arikankainen/consequat-server/internal/service"
)

// Authenticate resolves the bearer token into a user and stores it in the
// request locals. A missing, malformed or expired token is not an error; the
// request continues anonymously and the resolvers decide what anonymous
// callers may do.
func Authenticate(codec *auth.TokenCodec, svc *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}
		claims, err := codec.Verify(raw)
		if err != nil {
			return c.Next()
		}
		user, err := svc.Users.ByID(c.Context(), claims.ID)
		if err != nil || user == nil {
			return c.Next()
		}
		c.Locals(gql.CurrentUserKey, user)
		return c.Next()
	}
}

func requestLogger(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := uuid.NewString()
		c.Set("X-Request-Id", id)

		err := c.Next()

		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		path := c.Path()
		metrics.RequestsTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
		log.Infow("request",
			"id", id,
			"method", c.Method(),
			"path", path,
			"status", status,
			"duration", elapsed,
		)
		return err
	}
}
