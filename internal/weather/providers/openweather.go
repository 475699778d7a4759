package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pfjus/Weather-Chatbot/internal/weather"
	"github.com/sony/gobreaker"
)

const dtTxtLayout = "2006-01-02 15:04:05"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name        string
	apiKey      string
	lang        string
	currentURL  string
	forecastURL string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates a provider that queries OpenWeatherMap in
// metric units with descriptions in the given language ("en" when empty).
func NewOpenWeatherProvider(client *http.Client, apiKey, lang string) *OpenWeatherProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	if lang == "" {
		lang = "en"
	}

	return &OpenWeatherProvider{
		name:        "openweathermap",
		apiKey:      apiKey,
		lang:        lang,
		currentURL:  "https://api.openweathermap.org/data/2.5/weather",
		forecastURL: "https://api.openweathermap.org/data/2.5/forecast",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     3 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Current fetches current conditions for a city.
func (p *OpenWeatherProvider) Current(ctx context.Context, city string) (weather.Snapshot, error) {
	if p.apiKey == "" {
		return weather.Snapshot{}, &weather.GatewayError{
			Kind: weather.KindNetwork,
			City: city,
			Err:  fmt.Errorf("openweather api key is not configured"),
		}
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, p.requestBuilder(p.currentURL, city))
	if err != nil {
		return weather.Snapshot{}, p.classify(city, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Cod  any    `json:"cod"`
		Name string `json:"name"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, &weather.GatewayError{Kind: weather.KindMalformed, City: city, Err: err}
	}

	if !successCode(payload.Cod) {
		return weather.Snapshot{}, &weather.GatewayError{
			Kind: weather.KindNotFound,
			City: city,
			Err:  fmt.Errorf("provider cod %v", payload.Cod),
		}
	}

	if len(payload.Weather) == 0 || payload.Weather[0].Description == "" {
		return weather.Snapshot{}, &weather.GatewayError{
			Kind: weather.KindMalformed,
			City: city,
			Err:  fmt.Errorf("response missing weather description"),
		}
	}

	name := payload.Name
	if name == "" {
		name = city
	}

	return weather.Snapshot{
		City:         weather.NormalizeCity(name),
		TemperatureC: payload.Main.Temp,
		Description:  payload.Weather[0].Description,
		HumidityPct:  payload.Main.Humidity,
		WindMPS:      payload.Wind.Speed,
	}, nil
}

// Forecast fetches the multi-point forecast list for a city.
// Entries with an unparsable timestamp are skipped.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, city string) ([]weather.ForecastEntry, error) {
	if p.apiKey == "" {
		return nil, &weather.GatewayError{
			Kind: weather.KindNetwork,
			City: city,
			Err:  fmt.Errorf("openweather api key is not configured"),
		}
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, p.requestBuilder(p.forecastURL, city))
	if err != nil {
		return nil, p.classify(city, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Cod  any `json:"cod"`
		List []struct {
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp     float64 `json:"temp"`
				Humidity int     `json:"humidity"`
			} `json:"main"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &weather.GatewayError{Kind: weather.KindMalformed, City: city, Err: err}
	}

	if !successCode(payload.Cod) {
		return nil, &weather.GatewayError{
			Kind: weather.KindNotFound,
			City: city,
			Err:  fmt.Errorf("provider cod %v", payload.Cod),
		}
	}

	if payload.List == nil {
		return nil, &weather.GatewayError{
			Kind: weather.KindMalformed,
			City: city,
			Err:  fmt.Errorf("response missing forecast list"),
		}
	}

	entries := make([]weather.ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		ts, err := time.ParseInLocation(dtTxtLayout, item.DtTxt, time.UTC)
		if err != nil {
			continue
		}

		desc := ""
		if len(item.Weather) > 0 {
			desc = item.Weather[0].Description
		}

		entries = append(entries, weather.ForecastEntry{
			Timestamp:    ts,
			TemperatureC: item.Main.Temp,
			Description:  desc,
			HumidityPct:  item.Main.Humidity,
			WindMPS:      item.Wind.Speed,
		})
	}

	return entries, nil
}

func (p *OpenWeatherProvider) requestBuilder(baseURL, city string) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("lang", p.lang)
		values.Set("q", city)

		u := fmt.Sprintf("%s?%s", baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}
}

// classify maps transport-layer failures to gateway error kinds.
func (p *OpenWeatherProvider) classify(city string, err error) *weather.GatewayError {
	kind := weather.KindNetwork
	if errors.Is(err, errNotFound) {
		kind = weather.KindNotFound
	}
	return &weather.GatewayError{Kind: kind, City: city, Err: err}
}

// successCode reports whether the provider's cod field signals success.
// OpenWeather encodes it as a number on /weather and a string on /forecast.
func successCode(cod any) bool {
	if cod == nil {
		return true
	}
	return fmt.Sprint(cod) == "200"
}
