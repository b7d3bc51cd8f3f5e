package criteria

import (
	"regexp"
	"strconv"
	"strings"

	"balimatch/server/internal/models"
)

// Rule-based extraction: deterministic, side-effect-free, best-effort.
// Absence of a field is never an error.

var (
	// "from X [unit] to Y [unit]", ru or en, units independent per side
	rePriceRange = regexp.MustCompile(
		`(?:от|from)\s*(\d+(?:[.,]\d+)?)\s*(тыс|млн|thousand|million|k|m)?\.?\s*(?:до|to)\s*(\d+(?:[.,]\d+)?)\s*(тыс|млн|thousand|million|k|m)?`)

	// standalone "от/до N [unit]" occurrences
	rePriceSingle = regexp.MustCompile(
		`(от|до|from|to)\s*(\d+(?:[.,]\d+)?)\s*(тыс|млн|thousand|million|k|m)?`)

	reBedrooms = regexp.MustCompile(`(\d+)\s*(?:спаль|спал|bedroom|bed|кроват|kamar)`)

	reArea = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:кв\.?\s*м|м2|м²|sqm|sq\.?\s*m|m2|m²|square)`)
)

// typeTriggers is scanned in order; first hit wins.
var typeTriggers = []struct {
	fragment  string
	canonical string
}{
	{"вилл", "Villa"},
	{"villa", "Villa"},
	{"апарт", "Apartment"},
	{"квартир", "Apartment"},
	{"apartment", "Apartment"},
	{"apart", "Apartment"},
	{"дом", "House"},
	{"house", "House"},
	{"коммер", "Commercial"},
	{"commercial", "Commercial"},
	{"участок", "Land"},
	{"land", "Land"},
}

// districtTriggers maps literal text fragments to canonical English district
// names. Multi-word fragments come before overlapping single words.
var districtTriggers = []struct {
	fragment  string
	canonical string
}{
	{"нуса дуа", "Nusa Dua"},
	{"нуса-дуа", "Nusa Dua"},
	{"nusa dua", "Nusa Dua"},
	{"убуд", "Ubud"},
	{"ubud", "Ubud"},
	{"чангу", "Canggu"},
	{"canggu", "Canggu"},
	{"семиньяк", "Seminyak"},
	{"seminyak", "Seminyak"},
	{"улувату", "Uluwatu"},
	{"uluwatu", "Uluwatu"},
	{"джимбаран", "Jimbaran"},
	{"jimbaran", "Jimbaran"},
	{"унгасан", "Ungasan"},
	{"ungasan", "Ungasan"},
	{"печату", "Pecatu"},
	{"pecatu", "Pecatu"},
	{"бингин", "Bingin"},
	{"bingin", "Bingin"},
	{"баланган", "Balangan"},
	{"balangan", "Balangan"},
	{"беноа", "Benoa"},
	{"benoa", "Benoa"},
	{"берава", "Berawa"},
	{"berawa", "Berawa"},
	{"умалас", "Umalas"},
	{"umalas", "Umalas"},
	{"легиан", "Legian"},
	{"legian", "Legian"},
	{"кута", "Kuta"},
	{"kuta", "Kuta"},
	{"тегаллаланг", "Tegallalang"},
	{"tegallalang", "Tegallalang"},
	{"пелиатан", "Peliatan"},
	{"peliatan", "Peliatan"},
	{"санур", "Sanur"},
	{"sanur", "Sanur"},
	{"чандидаса", "Candidasa"},
	{"candidasa", "Candidasa"},
	{"амед", "Amed"},
	{"amed", "Amed"},
}

var poolTriggers = []string{"бассейн", "pool", "kolam"}

var statusTriggers = []struct {
	fragment string
	status   string
}{
	{"готов", "ready"},
	{"сдан", "ready"},
	{"ready", "ready"},
	{"строит", "construction"},
	{"construction", "construction"},
	{"офф-план", "construction"},
	{"off-plan", "construction"},
}

// ExtractRules parses structured search criteria out of raw text in any
// supported locale.
func ExtractRules(text string) *models.SearchCriteria {
	lower := strings.ToLower(text)
	c := &models.SearchCriteria{}

	for _, t := range typeTriggers {
		if strings.Contains(lower, t.fragment) {
			c.PropertyType = t.canonical
			break
		}
	}

	for _, d := range districtTriggers {
		if strings.Contains(lower, d.fragment) {
			c.District = d.canonical
			break
		}
	}

	extractPrices(lower, c)

	if m := reBedrooms.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			c.Bedrooms = &n
		}
	}

	if m := reArea.FindStringSubmatch(lower); m != nil {
		if v, err := parseNumber(m[1]); err == nil {
			c.MinArea = &v
		}
	}

	for _, p := range poolTriggers {
		if strings.Contains(lower, p) {
			yes := true
			c.HasPool = &yes
			break
		}
	}

	for _, s := range statusTriggers {
		if strings.Contains(lower, s.fragment) {
			c.Status = s.status
			break
		}
	}

	return c
}

func extractPrices(lower string, c *models.SearchCriteria) {
	if m := rePriceRange.FindStringSubmatch(lower); m != nil {
		// Each side's multiplier is independent: a unit tag on the max
		// side does not scale the min side. Pinned by tests; do not
		// "fix" without a product decision.
		if v, err := parseNumber(m[1]); err == nil {
			v *= unitMultiplier(m[2])
			c.MinPrice = &v
		}
		if v, err := parseNumber(m[3]); err == nil {
			v *= unitMultiplier(m[4])
			c.MaxPrice = &v
		}
		return
	}

	for _, m := range rePriceSingle.FindAllStringSubmatch(lower, -1) {
		v, err := parseNumber(m[2])
		if err != nil {
			continue
		}
		v *= unitMultiplier(m[3])
		switch m[1] {
		case "от", "from":
			if c.MinPrice == nil {
				c.MinPrice = &v
			}
		case "до", "to":
			if c.MaxPrice == nil {
				c.MaxPrice = &v
			}
		}
	}
}

func unitMultiplier(unit string) float64 {
	switch unit {
	case "тыс", "thousand", "k":
		return 1000
	case "млн", "million", "m":
		return 1000000
	default:
		return 1
	}
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
