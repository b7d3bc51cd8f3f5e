package i18n

import (
	"fmt"
	"strings"

	"balimatch/server/internal/models"
)

// String tables for the three supported reply languages. Keys not present
// for a locale fall back to English.

type messageKey string

const (
	keyFoundHeader     messageKey = "found_header"
	keyRegionHeader    messageKey = "region_header"
	keyNoResults       messageKey = "no_results"
	keySuggestPrompt   messageKey = "suggest_prompt"
	keyConfirmYes      messageKey = "confirm_yes"
	keyConfirmNo       messageKey = "confirm_no"
	keyGenericError    messageKey = "generic_error"
	keyBedroomsShort   messageKey = "bedrooms_short"
	keyPoolLabel       messageKey = "pool_label"
	keyStatusReady     messageKey = "status_ready"
	keyStatusBuilding  messageKey = "status_building"
	keySearchDismissed messageKey = "search_dismissed"
)

var messages = map[models.Locale]map[messageKey]string{
	models.LocaleRU: {
		keyFoundHeader:     "Нашёл %d вариантов:",
		keyRegionHeader:    "Подобрал варианты по региону %s (районы: %s):",
		keyNoResults:       "По вашему запросу ничего не нашлось. Попробуйте смягчить условия.",
		keySuggestPrompt:   "В районе %s подходящих объектов нет. Посмотреть соседние районы: %s?",
		keyConfirmYes:      "Да, показать",
		keyConfirmNo:       "Нет, спасибо",
		keyGenericError:    "Что-то пошло не так. Попробуйте переформулировать запрос.",
		keyBedroomsShort:   "сп.",
		keyPoolLabel:       "бассейн",
		keyStatusReady:     "готов",
		keyStatusBuilding:  "строится",
		keySearchDismissed: "Хорошо, ищем дальше в выбранном районе.",
	},
	models.LocaleEN: {
		keyFoundHeader:     "Found %d matching properties:",
		keyRegionHeader:    "Here is what the %s region has (districts: %s):",
		keyNoResults:       "Nothing matched your request. Try relaxing the criteria.",
		keySuggestPrompt:   "No matches in %s. Check the neighboring districts: %s?",
		keyConfirmYes:      "Yes, show them",
		keyConfirmNo:       "No, thanks",
		keyGenericError:    "Something went wrong. Please try rephrasing your request.",
		keyBedroomsShort:   "bd",
		keyPoolLabel:       "pool",
		keyStatusReady:     "ready",
		keyStatusBuilding:  "under construction",
		keySearchDismissed: "Okay, staying with the chosen district.",
	},
	models.LocaleID: {
		keyFoundHeader:     "Menemukan %d properti yang cocok:",
		keyRegionHeader:    "Pilihan di wilayah %s (distrik: %s):",
		keyNoResults:       "Tidak ada yang cocok dengan permintaan Anda. Coba longgarkan kriterianya.",
		keySuggestPrompt:   "Tidak ada yang cocok di %s. Lihat distrik tetangga: %s?",
		keyConfirmYes:      "Ya, tampilkan",
		keyConfirmNo:       "Tidak, terima kasih",
		keyGenericError:    "Terjadi kesalahan. Silakan coba ulangi permintaan Anda.",
		keyBedroomsShort:   "kt",
		keyPoolLabel:       "kolam renang",
		keyStatusReady:     "siap huni",
		keyStatusBuilding:  "dalam pembangunan",
		keySearchDismissed: "Baik, tetap di distrik yang dipilih.",
	},
}

func msg(locale models.Locale, key messageKey) string {
	if m, ok := messages[locale]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return messages[models.LocaleEN][key]
}

// RenderOutcome turns a search outcome into the reply text for the detected
// locale.
func RenderOutcome(locale models.Locale, o *models.SearchOutcome) string {
	switch o.Kind {
	case models.OutcomeSuggestNeighbors:
		return fmt.Sprintf(msg(locale, keySuggestPrompt),
			o.OriginalDistrict, strings.Join(o.SuggestedDistricts, ", "))

	case models.OutcomeRegion:
		if len(o.Listings) == 0 {
			return msg(locale, keyNoResults)
		}
		header := fmt.Sprintf(msg(locale, keyRegionHeader),
			o.RegionLabel, strings.Join(o.DistrictLabels, ", "))
		return header + "\n\n" + renderListings(locale, o.Listings)

	case models.OutcomeAI:
		if len(o.Listings) == 0 {
			return msg(locale, keyNoResults)
		}
		var parts []string
		if o.Reasoning != "" {
			parts = append(parts, o.Reasoning)
		}
		parts = append(parts,
			fmt.Sprintf(msg(locale, keyFoundHeader), len(o.Listings)),
			renderListings(locale, o.Listings))
		return strings.Join(parts, "\n\n")

	default:
		if len(o.Listings) == 0 {
			return msg(locale, keyNoResults)
		}
		header := fmt.Sprintf(msg(locale, keyFoundHeader), len(o.Listings))
		return header + "\n\n" + renderListings(locale, o.Listings)
	}
}

func renderListings(locale models.Locale, listings []models.Listing) string {
	var b strings.Builder
	for i, l := range listings {
		fmt.Fprintf(&b, "%d. %s — %s", i+1, strings.TrimSpace(l.Type+" "+l.District), priceLabel(&l))
		if l.Bedrooms != "" {
			fmt.Fprintf(&b, ", %s %s", l.Bedrooms, msg(locale, keyBedroomsShort))
		}
		if l.Area != "" {
			fmt.Fprintf(&b, ", %s m²", l.Area)
		}
		if l.HasPool() {
			fmt.Fprintf(&b, ", %s", msg(locale, keyPoolLabel))
		}
		if label := statusLabel(locale, l.Status); label != "" {
			fmt.Fprintf(&b, ", %s", label)
		}
		if l.URL != "" {
			fmt.Fprintf(&b, "\n   %s", l.URL)
		}
		if i < len(listings)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func priceLabel(l *models.Listing) string {
	if v := l.PriceValue(); v > 0 {
		return fmt.Sprintf("$%.0f", v)
	}
	if l.Price != "" {
		return l.Price
	}
	return "—"
}

func statusLabel(locale models.Locale, status string) string {
	switch strings.ToLower(status) {
	case "ready":
		return msg(locale, keyStatusReady)
	case "construction":
		return msg(locale, keyStatusBuilding)
	default:
		return ""
	}
}

// ConfirmLabels returns the confirm/decline button captions.
func ConfirmLabels(locale models.Locale) (yes, no string) {
	return msg(locale, keyConfirmYes), msg(locale, keyConfirmNo)
}

// GenericError is the friendly fallback message; raw errors never reach the
// user.
func GenericError(locale models.Locale) string {
	return msg(locale, keyGenericError)
}

// SearchDismissed acknowledges a declined neighbor suggestion.
func SearchDismissed(locale models.Locale) string {
	return msg(locale, keySearchDismissed)
}
