package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middleware instruments requests by route pattern, not raw path, so ids do
// not explode label cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		ObserveHTTPRequest(c.Method(), route, strconv.Itoa(status), time.Since(start))
		return err
	}
}

// Handler exposes the default Prometheus registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
