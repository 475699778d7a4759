package weather

import (
	"strings"

	"github.com/pfjus/Weather-Chatbot/internal/common"
)

// Advise maps temperature and condition description to clothing suggestions.
// Temperature bands use inclusive upper bounds; condition add-ons are
// independently additive, matched as substrings of the lowercased
// description in the provider's description language.
func Advise(tempC float64, description string) string {
	var tips []string

	switch {
	case tempC <= 10:
		tips = append(tips, "Bundle up, it's cold out there.")
	case tempC <= 20:
		tips = append(tips, "A light jacket should do.")
	case tempC <= 25:
		tips = append(tips, "Light comfortable clothing is perfect.")
	default:
		tips = append(tips, "It's hot, wear cool clothing.")
	}

	desc := strings.ToLower(description)
	if common.HasAny(desc, "rain", "drizzle", "shower") {
		tips = append(tips, "Don't forget an umbrella.")
	}
	if common.HasAny(desc, "snow", "sleet") {
		tips = append(tips, "Wear a proper coat and boots.")
	}
	if common.HasAny(desc, "wind", "breez") {
		tips = append(tips, "A windbreaker might help.")
	}

	return strings.Join(tips, " ")
}
