package httpapi

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weather-dashboard/internal/observability"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	errLocationRequired = "Zipcode or search query is required"
	unknownLocation     = "Unknown City"
)

var validate = validator.New()

// ProbeReporter exposes upstream status probe results.
type ProbeReporter interface {
	Results() map[string]store.ProbeResult
	History(provider string) ([]store.ProbeResult, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. probes may be nil.
func RegisterRoutes(app *fiber.App, service *weather.Service, probes ProbeReporter, logger *slog.Logger) {
	app.Use(requestContext)

	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
			"mode":    service.Mode(),
		}
		if probes != nil {
			body["probes"] = probes.Results()
		}
		return c.JSON(body)
	})

	if probes != nil {
		app.Get("/health/probes/:provider", probeHistoryHandler(probes))
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/api/forecast", forecastHandler(service, logger))
}

// forecastQuery holds the location parameters; at least one is required and
// Query wins when both are set.
type forecastQuery struct {
	Zipcode string `validate:"required_without=Query"`
	Query   string `validate:"required_without=Zipcode"`
}

func (q forecastQuery) location() string {
	if q.Query != "" {
		return q.Query
	}
	return q.Zipcode
}

func forecastHandler(service *weather.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		q := forecastQuery{
			Zipcode: c.Query("zipcode"),
			Query:   c.Query("query"),
		}

		location := q.location()
		if location == "" {
			location = unknownLocation
		}

		// Whatever goes wrong past this point, the dashboard still gets data.
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(c.UserContext(), "forecast handler panicked, returning mock data",
					"location", location, "panic", r)
				err = c.Status(fiber.StatusOK).JSON(service.Fallback(location))
			}
		}()

		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, errLocationRequired)
		}

		return c.JSON(service.GetForecast(c.UserContext(), location))
	}
}

func probeHistoryHandler(probes ProbeReporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provider := c.Params("provider")
		history, err := probes.History(provider)
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no probe results for "+provider)
		}
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"provider": provider, "results": history})
	}
}

// ErrorHandler renders errors as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// requestContext copies the request id set by the requestid middleware into
// the user context so service-level logs carry it.
func requestContext(c *fiber.Ctx) error {
	if id, ok := c.Locals("requestid").(string); ok && id != "" {
		c.SetUserContext(observability.WithRequestID(c.UserContext(), id))
	}
	return c.Next()
}
