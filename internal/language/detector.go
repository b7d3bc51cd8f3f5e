package language

import (
	"strings"
	"unicode"

	"balimatch/server/internal/models"
)

// Domain keyword lists per language. Hits are worth one point each; the
// script bonus below breaks near-ties for short messages.
var (
	russianKeywords = []string{
		"вилла", "вилл", "квартир", "апартамент", "дом", "участок",
		"бассейн", "спальн", "аренда", "купить", "снять", "цена",
		"море", "пляж", "район", "убуд", "чангу", "семиньяк", "букит",
	}

	englishKeywords = []string{
		"villa", "apartment", "house", "land", "pool", "bedroom",
		"rent", "buy", "price", "beach", "ocean", "view", "for sale",
		"property", "near", "cheap",
	}

	indonesianKeywords = []string{
		"rumah", "tanah", "sewa", "beli", "harga", "kolam renang",
		"kamar tidur", "pantai", "dekat", "murah", "properti", "jual",
		"disewakan", "dijual",
	}
)

// Detect scores the text against per-language keyword sets and script
// ratios and returns one of ru, en, id. Pure function: same input, same
// output.
func Detect(text string) models.Locale {
	lower := strings.ToLower(text)

	ruScore := countHits(lower, russianKeywords)
	enScore := countHits(lower, englishKeywords)
	idScore := countHits(lower, indonesianKeywords)

	var cyrillic, latin int
	for _, r := range lower {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case r >= 'a' && r <= 'z':
			latin++
		}
	}

	ruScore += capInt(cyrillic/3, 5)
	// en and id share the Latin script; keyword hits decide between them
	latinBonus := capInt(latin/10, 3)
	enScore += latinBonus
	idScore += latinBonus

	switch {
	case ruScore > enScore && ruScore > idScore:
		return models.LocaleRU
	case enScore > idScore:
		return models.LocaleEN
	case idScore > 0:
		return models.LocaleID
	default:
		return models.LocaleRU
	}
}

func countHits(lower string, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}

func capInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}
