package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pfjus/Weather-Chatbot/internal/weather"
)

type fakeWeather struct {
	snap   weather.Snapshot
	curErr error

	entry       weather.ForecastEntry
	hasTomorrow bool
	fcErr       error

	currentCities  []string
	tomorrowCities []string
}

func (f *fakeWeather) Current(ctx context.Context, city string) (weather.Snapshot, error) {
	f.currentCities = append(f.currentCities, city)
	if f.curErr != nil {
		return weather.Snapshot{}, f.curErr
	}
	return f.snap, nil
}

func (f *fakeWeather) Tomorrow(ctx context.Context, city string) (weather.ForecastEntry, bool, error) {
	f.tomorrowCities = append(f.tomorrowCities, city)
	if f.fcErr != nil {
		return weather.ForecastEntry{}, false, f.fcErr
	}
	return f.entry, f.hasTomorrow, nil
}

type fakeGenerator struct {
	reply   string
	ok      bool
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, bool) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.ok
}

func madridWeather() *fakeWeather {
	return &fakeWeather{
		snap: weather.Snapshot{
			City:         "Madrid",
			TemperatureC: 21,
			Description:  "clear sky",
			HumidityPct:  40,
			WindMPS:      2.5,
		},
		entry: weather.ForecastEntry{
			TemperatureC: 17,
			Description:  "light rain",
			HumidityPct:  70,
			WindMPS:      4.0,
		},
		hasTomorrow: true,
	}
}

func TestCurrentWeatherForExplicitCity(t *testing.T) {
	ws := madridWeather()
	a := New(ws, nil)

	res := a.Process(context.Background(), "what's the weather in Madrid?", "")

	assert.Equal(t, "Madrid", res.City)
	assert.Contains(t, res.Reply, "Madrid")
	assert.Contains(t, res.Reply, "clear sky")
	assert.Contains(t, res.Reply, "comfortable clothing")
	assert.Equal(t, []string{"Madrid"}, ws.currentCities)
}

func TestRememberedCityCarriesToTomorrow(t *testing.T) {
	ws := madridWeather()
	a := New(ws, nil)

	res := a.Process(context.Background(), "what about tomorrow?", "Madrid")

	assert.Equal(t, "Madrid", res.City, "remembered city must be adopted")
	assert.Contains(t, res.Reply, "Tomorrow")
	assert.Contains(t, res.Reply, "light rain")
	assert.Equal(t, []string{"Madrid"}, ws.currentCities)
	assert.Equal(t, []string{"Madrid"}, ws.tomorrowCities)
}

func TestRememberedCityCarriesToNow(t *testing.T) {
	ws := madridWeather()
	a := New(ws, nil)

	res := a.Process(context.Background(), "and how is it there now?", "Madrid")

	assert.Equal(t, "Madrid", res.City)
	assert.Contains(t, res.Reply, "clear sky")
}

func TestCurrentWeatherFallsBackToRememberedCity(t *testing.T) {
	ws := madridWeather()
	a := New(ws, nil)

	// No temporal marker and no explicit mention: the remembered city still
	// serves a plain weather question.
	res := a.Process(context.Background(), "how is the weather?", "Madrid")

	assert.Equal(t, "Madrid", res.City)
	assert.Contains(t, res.Reply, "clear sky")
	assert.Equal(t, []string{"Madrid"}, ws.currentCities)
}

func TestExplicitCityBeatsRememberedCity(t *testing.T) {
	ws := madridWeather()
	ws.snap = weather.Snapshot{City: "Lima", TemperatureC: 18, Description: "mist", HumidityPct: 80, WindMPS: 1.5}
	a := New(ws, nil)

	res := a.Process(context.Background(), "what's the weather in Lima?", "Madrid")

	assert.Equal(t, "Lima", res.City)
	assert.Equal(t, []string{"Lima"}, ws.currentCities)
}

func TestChitchatLeavesMemoryUntouched(t *testing.T) {
	ws := madridWeather()
	a := New(ws, nil)

	res := a.Process(context.Background(), "what time is it?", "")

	assert.Empty(t, res.City, "no city resolved means no memory update")
	assert.Equal(t, askCityReply, res.Reply)
	assert.Empty(t, ws.currentCities, "no fetch for chit-chat")
}

func TestGreetingFallsBackWhenGeneratorDown(t *testing.T) {
	a := New(madridWeather(), nil)

	res := a.Process(context.Background(), "hello!", "")

	assert.Empty(t, res.City)
	assert.Equal(t, greetingFallback, res.Reply)
}

func TestGreetingUsesGenerator(t *testing.T) {
	gen := &fakeGenerator{reply: "Hi! Lovely to hear from you.", ok: true}
	a := New(madridWeather(), gen)

	res := a.Process(context.Background(), "good morning", "")

	assert.Empty(t, res.City)
	assert.Equal(t, "Hi! Lovely to hear from you.", res.Reply)
	assert.Len(t, gen.prompts, 1)
}

func TestTomorrowWithoutCityAsksForOne(t *testing.T) {
	ws := madridWeather()
	a := New(ws, nil)

	res := a.Process(context.Background(), "what about tomorrow?", "")

	assert.Empty(t, res.City)
	assert.Equal(t, askCityTomorrowReply, res.Reply)
	assert.Empty(t, ws.tomorrowCities)
}

func TestFetchFailureStillReportsCity(t *testing.T) {
	ws := madridWeather()
	ws.curErr = &weather.GatewayError{Kind: weather.KindNotFound, City: "Atlantis"}
	a := New(ws, nil)

	res := a.Process(context.Background(), "weather in Atlantis", "")

	assert.Equal(t, "Atlantis", res.City, "city was identified even though the fetch failed")
	assert.Contains(t, res.Reply, "Atlantis")
	assert.Contains(t, res.Reply, "Sorry")
}

func TestNetworkFailureApologizesWithoutDetail(t *testing.T) {
	ws := madridWeather()
	ws.curErr = &weather.GatewayError{Kind: weather.KindNetwork, City: "Madrid"}
	a := New(ws, nil)

	res := a.Process(context.Background(), "weather in Madrid", "")

	assert.Equal(t, "Madrid", res.City)
	assert.Contains(t, res.Reply, "Madrid")
	assert.NotContains(t, res.Reply, "network")
}

func TestTomorrowDegradesWhenForecastFails(t *testing.T) {
	ws := madridWeather()
	ws.fcErr = &weather.GatewayError{Kind: weather.KindNetwork, City: "Madrid"}
	a := New(ws, nil)

	res := a.Process(context.Background(), "will it rain tomorrow in Madrid?", "")

	assert.Equal(t, "Madrid", res.City)
	assert.Contains(t, res.Reply, "clear sky", "current conditions still make it into the reply")
	assert.Contains(t, res.Reply, "couldn't get tomorrow's forecast")
}

func TestTomorrowHandlesEmptyForecastWindow(t *testing.T) {
	ws := madridWeather()
	ws.hasTomorrow = false
	a := New(ws, nil)

	res := a.Process(context.Background(), "will it rain tomorrow in Madrid?", "")

	assert.Equal(t, "Madrid", res.City)
	assert.Contains(t, res.Reply, "No forecast is available for tomorrow")
}

func TestTomorrowApologizesWhenEverythingFails(t *testing.T) {
	ws := madridWeather()
	ws.curErr = &weather.GatewayError{Kind: weather.KindNetwork, City: "Madrid"}
	ws.fcErr = &weather.GatewayError{Kind: weather.KindNetwork, City: "Madrid"}
	a := New(ws, nil)

	res := a.Process(context.Background(), "will it rain tomorrow in Madrid?", "")

	assert.Equal(t, "Madrid", res.City)
	assert.Contains(t, res.Reply, "Sorry")
}

func TestGeneratorRefinesWeatherReply(t *testing.T) {
	gen := &fakeGenerator{reply: "It's a lovely clear evening in Madrid at 21°C.", ok: true}
	a := New(madridWeather(), gen)

	res := a.Process(context.Background(), "weather in Madrid", "")

	assert.Equal(t, "Madrid", res.City)
	assert.Equal(t, gen.reply, res.Reply)
	assert.Contains(t, gen.prompts[0], "clear sky", "prompt carries the local summary")
}
