package nlp

import "regexp"

// Intent probes are independent boolean signals, not a partition: a message
// can look like a greeting and mention weather vocabulary at the same time.
// The dialogue layer resolves ambiguity by applying them in a fixed order.
var (
	greetingPattern = regexp.MustCompile(`(?i)\b(hello|hi|hey|good morning|good afternoon|good evening|how's it going|how are you|what's up)\b`)
	weatherPattern  = regexp.MustCompile(`(?i)\b(weather|temperature|forecast|rain|rainy|raining|snow|snowing|wind|windy|sunny|cloudy|cold|hot|humid|today|tomorrow)\b`)
	futurePattern   = regexp.MustCompile(`(?i)\b(tomorrow|day after tomorrow|next|week)\b`)
	imminentPattern = regexp.MustCompile(`(?i)\b(now|today|there)\b`)
)

// IsGreeting reports whether the text looks like a greeting.
func IsGreeting(text string) bool {
	return greetingPattern.MatchString(text)
}

// IsWeatherQuery reports whether the text uses weather-domain vocabulary.
func IsWeatherQuery(text string) bool {
	return weatherPattern.MatchString(text)
}

// MentionsFuture reports whether the text carries an explicit future marker.
func MentionsFuture(text string) bool {
	return futurePattern.MatchString(text)
}

// MentionsImmediate reports whether the text refers to the here-and-now,
// which lets a remembered city carry over to this turn.
func MentionsImmediate(text string) bool {
	return imminentPattern.MatchString(text)
}
