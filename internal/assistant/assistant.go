// Package assistant holds the dialogue orchestrator: it resolves the target
// city from the utterance or conversational memory, picks a branch, calls
// the weather gateway, and always produces a reply even when collaborators
// are down.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pfjus/Weather-Chatbot/internal/generate"
	"github.com/pfjus/Weather-Chatbot/internal/nlp"
	"github.com/pfjus/Weather-Chatbot/internal/weather"
)

// WeatherService is the slice of the weather gateway the assistant needs.
type WeatherService interface {
	Current(ctx context.Context, city string) (weather.Snapshot, error)
	Tomorrow(ctx context.Context, city string) (weather.ForecastEntry, bool, error)
}

// Result is the externally visible output of one dialogue turn.
// City is empty when no city was resolved; the session host must only
// overwrite its memory with a non-empty City, never erase it.
type Result struct {
	Reply string `json:"reply"`
	City  string `json:"city,omitempty"`
}

// Fixed replies used when the turn cannot proceed or the generator is down.
const (
	askCityReply         = "Which city's weather do you want?"
	askCityTomorrowReply = "Which city do you want tomorrow's forecast for?"
	greetingFallback     = "Hello! Which city's weather would you like?"
)

// Assistant orchestrates one dialogue turn at a time.
type Assistant struct {
	weather WeatherService
	gen     generate.Generator
}

// New creates an Assistant. A nil generator degrades to local replies.
func New(ws WeatherService, gen generate.Generator) *Assistant {
	if gen == nil {
		gen = generate.Unavailable{}
	}
	return &Assistant{weather: ws, gen: gen}
}

// Process handles a single user utterance given the remembered city from
// earlier turns ("" for none). Branch order is the core design decision:
// the intent signals are non-exclusive, so the first applicable branch wins.
// It never returns an error; every failure degrades to a reply string.
func (a *Assistant) Process(ctx context.Context, utterance, lastCity string) Result {
	text := strings.TrimSpace(utterance)

	// 1) Explicit city mention beats everything else.
	city, hasCity := nlp.ExtractCity(text)

	// 2) Carry the remembered city over when the turn refers to a time
	// rather than a place ("what about tomorrow?", "and now?").
	if !hasCity && lastCity != "" && (nlp.MentionsFuture(text) || nlp.MentionsImmediate(text)) {
		city, hasCity = lastCity, true
	}

	// 3) Not a weather question and no city in sight: chit-chat. A greeting
	// gets a warm reply; anything else falls through to the clarifying
	// question below. Memory stays untouched either way.
	if !nlp.IsWeatherQuery(text) && !hasCity {
		if nlp.IsGreeting(text) {
			if reply, ok := a.gen.Generate(ctx, greetingPrompt(text)); ok {
				return Result{Reply: reply}
			}
			return Result{Reply: greetingFallback}
		}
	}

	// 4) Explicit future reference: tomorrow's forecast plus current
	// conditions, fetched concurrently. Working city is explicit-or-remembered.
	if nlp.MentionsFuture(text) {
		if !hasCity && lastCity != "" {
			city, hasCity = lastCity, true
		}
		if !hasCity {
			return Result{Reply: askCityTomorrowReply}
		}
		return a.tomorrowTurn(ctx, text, city)
	}

	// 5) Default branch: current conditions for the explicit-or-remembered city.
	if !hasCity && lastCity != "" {
		city, hasCity = lastCity, true
	}
	if !hasCity {
		return Result{Reply: askCityReply}
	}
	return a.currentTurn(ctx, text, city)
}

func (a *Assistant) currentTurn(ctx context.Context, text, city string) Result {
	snap, err := a.weather.Current(ctx, city)
	if err != nil {
		// The city was identified even though the fetch failed; reporting it
		// keeps it remembered for follow-up turns.
		return Result{Reply: apology(city, err), City: city}
	}

	summary := currentSummary(snap)
	if reply, ok := a.gen.Generate(ctx, currentPrompt(text, summary)); ok {
		return Result{Reply: reply, City: city}
	}
	return Result{Reply: summary, City: city}
}

func (a *Assistant) tomorrowTurn(ctx context.Context, text, city string) Result {
	var (
		wg sync.WaitGroup

		snap   weather.Snapshot
		curErr error

		entry       weather.ForecastEntry
		hasTomorrow bool
		fcErr       error
	)

	// Current and forecast are independent; issue both and join before
	// composing. A timed-out call degrades to its fallback text below.
	wg.Add(2)
	go func() {
		defer wg.Done()
		snap, curErr = a.weather.Current(ctx, city)
	}()
	go func() {
		defer wg.Done()
		entry, hasTomorrow, fcErr = a.weather.Tomorrow(ctx, city)
	}()
	wg.Wait()

	if curErr != nil && fcErr != nil {
		return Result{Reply: apology(city, curErr), City: city}
	}

	currentPart := ""
	if curErr != nil {
		currentPart = fmt.Sprintf("I couldn't get the current conditions for %s right now.", city)
	} else {
		currentPart = currentSummary(snap)
	}

	tomorrowPart := ""
	switch {
	case fcErr != nil:
		tomorrowPart = fmt.Sprintf("I couldn't get tomorrow's forecast for %s right now.", city)
	case !hasTomorrow:
		tomorrowPart = "No forecast is available for tomorrow yet."
	default:
		tomorrowPart = tomorrowSummary(entry)
	}

	if reply, ok := a.gen.Generate(ctx, tomorrowPrompt(text, city, currentPart, tomorrowPart)); ok {
		return Result{Reply: reply, City: city}
	}
	return Result{Reply: strings.TrimSpace(currentPart + " " + tomorrowPart), City: city}
}

// currentSummary builds the deterministic local reply for current conditions.
func currentSummary(snap weather.Snapshot) string {
	return fmt.Sprintf("%s: %.1f°C, %s, humidity %d%%, wind %.1f m/s. %s",
		snap.City, snap.TemperatureC, snap.Description, snap.HumidityPct, snap.WindMPS,
		weather.Advise(snap.TemperatureC, snap.Description))
}

// tomorrowSummary builds the deterministic local reply for the forecast entry.
func tomorrowSummary(entry weather.ForecastEntry) string {
	return fmt.Sprintf("Tomorrow: %.1f°C, %s, humidity %d%%, wind %.1f m/s.",
		entry.TemperatureC, entry.Description, entry.HumidityPct, entry.WindMPS)
}

// apology converts a gateway error into a polite reply naming the city.
// No technical detail leaks to the user.
func apology(city string, err error) string {
	switch weather.KindOf(err) {
	case weather.KindNotFound:
		return fmt.Sprintf("Sorry, I couldn't find weather information for %s.", city)
	case weather.KindMalformed:
		return fmt.Sprintf("Sorry, the weather service sent me something I couldn't read for %s. Please try again.", city)
	default:
		return fmt.Sprintf("Sorry, I couldn't reach the weather service for %s right now. Please try again in a moment.", city)
	}
}

func greetingPrompt(text string) string {
	return fmt.Sprintf("You are Avir, a friendly weather assistant. Reply briefly and naturally to this greeting: %q", text)
}

func currentPrompt(text, summary string) string {
	return fmt.Sprintf("You are a weather assistant. The user asked: %q.\nCurrent conditions: %s\nReply briefly and in a friendly tone.", text, summary)
}

func tomorrowPrompt(text, city, currentPart, tomorrowPart string) string {
	return fmt.Sprintf("You are a weather assistant. The user asked: %q.\nCity: %s\nCurrent conditions: %s\nTomorrow's forecast: %s\nReply naturally and helpfully, explaining the difference between now and tomorrow.",
		text, city, currentPart, tomorrowPart)
}
