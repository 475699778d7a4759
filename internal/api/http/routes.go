package httpapi

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pfjus/Weather-Chatbot/internal/assistant"
	"github.com/pfjus/Weather-Chatbot/internal/session"
	"github.com/pfjus/Weather-Chatbot/internal/weather"
)

var validate = validator.New()

// Dialogue is the assistant capability the chat endpoint needs.
type Dialogue interface {
	Process(ctx context.Context, utterance, lastCity string) assistant.Result
}

// WeatherSource is the gateway capability the direct weather endpoints need.
type WeatherSource interface {
	Current(ctx context.Context, city string) (weather.Snapshot, error)
	Tomorrow(ctx context.Context, city string) (weather.ForecastEntry, bool, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, bot Dialogue, source WeatherSource, sessions *session.Manager) {
	v1 := app.Group("/api/v1")

	v1.Post("/chat", func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sid, lastCity := sessions.Resolve(req.SessionID)
		result := bot.Process(c.Context(), req.Message, lastCity)

		// Only a non-empty resolved city may overwrite session memory.
		sessions.Remember(sid, result.City)

		return c.JSON(chatResponse{
			SessionID: sid,
			Reply:     result.Reply,
			City:      result.City,
		})
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := source.Current(c.Context(), city)
		if err != nil {
			return gatewayStatus(err)
		}

		return c.JSON(fiber.Map{
			"snapshot": snapshot,
			"advice":   weather.Advise(snapshot.TemperatureC, snapshot.Description),
		})
	})

	v1.Get("/weather/tomorrow", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entry, ok, err := source.Tomorrow(c.Context(), city)
		if err != nil {
			return gatewayStatus(err)
		}
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no forecast available for tomorrow")
		}

		return c.JSON(fiber.Map{
			"city":  weather.NormalizeCity(city),
			"entry": entry,
		})
	})
}

// chatRequest is one user turn. session_id may be empty on the first turn;
// the response carries the ID to use for follow-ups.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	City      string `json:"city,omitempty"`
}

// cityQuery holds the query parameter for the direct weather endpoints.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (string, error) {
	q := cityQuery{City: c.Query("city")}
	if err := validate.Struct(q); err != nil {
		return "", err
	}
	return q.City, nil
}

// gatewayStatus maps gateway error kinds to HTTP responses without leaking
// transport detail.
func gatewayStatus(err error) *fiber.Error {
	switch weather.KindOf(err) {
	case weather.KindNotFound:
		return fiber.NewError(fiber.StatusNotFound, "no weather data for requested city")
	case weather.KindMalformed:
		return fiber.NewError(fiber.StatusBadGateway, "weather provider returned malformed data")
	default:
		return fiber.NewError(fiber.StatusBadGateway, "failed to reach weather provider")
	}
}
