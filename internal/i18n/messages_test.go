package i18n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"balimatch/server/internal/models"
)

func sampleListings() []models.Listing {
	return []models.Listing{
		{
			ID: "a", Type: "Villa", District: "Ubud", Price: "250000",
			Bedrooms: "3", Area: "180", Pool: "private", Status: "ready",
			URL: "https://example.com/a",
		},
		{
			ID: "b", Type: "Villa", District: "Ubud", Price: "contact us",
		},
	}
}

func TestRenderOutcome_Normal(t *testing.T) {
	text := RenderOutcome(models.LocaleRU, &models.SearchOutcome{
		Kind:     models.OutcomeNormal,
		Listings: sampleListings(),
	})

	assert.True(t, strings.HasPrefix(text, "Нашёл 2 вариантов:"), text)
	assert.Contains(t, text, "1. Villa Ubud — $250000, 3 сп., 180 m², бассейн, готов")
	assert.Contains(t, text, "https://example.com/a")
	// Unparseable prices render verbatim instead of $0.
	assert.Contains(t, text, "2. Villa Ubud — contact us")
}

func TestRenderOutcome_NoResults(t *testing.T) {
	tests := []struct {
		locale   models.Locale
		expected string
	}{
		{models.LocaleRU, "По вашему запросу ничего не нашлось. Попробуйте смягчить условия."},
		{models.LocaleEN, "Nothing matched your request. Try relaxing the criteria."},
		{models.LocaleID, "Tidak ada yang cocok dengan permintaan Anda. Coba longgarkan kriterianya."},
	}

	for _, tt := range tests {
		t.Run(string(tt.locale), func(t *testing.T) {
			text := RenderOutcome(tt.locale, &models.SearchOutcome{Kind: models.OutcomeNormal})
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestRenderOutcome_SuggestNeighbors(t *testing.T) {
	o := &models.SearchOutcome{
		Kind:               models.OutcomeSuggestNeighbors,
		OriginalDistrict:   "Uluwatu",
		SuggestedDistricts: []string{"Pecatu", "Jimbaran"},
	}

	ru := RenderOutcome(models.LocaleRU, o)
	assert.Equal(t, "В районе Uluwatu подходящих объектов нет. Посмотреть соседние районы: Pecatu, Jimbaran?", ru)

	en := RenderOutcome(models.LocaleEN, o)
	assert.Equal(t, "No matches in Uluwatu. Check the neighboring districts: Pecatu, Jimbaran?", en)
}

func TestRenderOutcome_Region(t *testing.T) {
	text := RenderOutcome(models.LocaleRU, &models.SearchOutcome{
		Kind:           models.OutcomeRegion,
		RegionLabel:    "Букит",
		DistrictLabels: []string{"Улувату", "Джимбаран"},
		Listings:       sampleListings()[:1],
	})

	assert.True(t, strings.HasPrefix(text, "Подобрал варианты по региону Букит (районы: Улувату, Джимбаран):"), text)
	assert.Contains(t, text, "Villa Ubud")
}

func TestRenderOutcome_AI(t *testing.T) {
	text := RenderOutcome(models.LocaleEN, &models.SearchOutcome{
		Kind:      models.OutcomeAI,
		Reasoning: "These two match the surf request best.",
		Listings:  sampleListings(),
	})

	assert.True(t, strings.HasPrefix(text, "These two match the surf request best."), text)
	assert.Contains(t, text, "Found 2 matching properties:")
}

func TestRenderOutcome_AIEmptyFallsBackToNoResults(t *testing.T) {
	text := RenderOutcome(models.LocaleEN, &models.SearchOutcome{Kind: models.OutcomeAI})
	assert.Equal(t, "Nothing matched your request. Try relaxing the criteria.", text)
}

// Locales without a translation fall back to English rather than empty
// strings.
func TestUnknownLocaleFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, GenericError(models.LocaleEN), GenericError(models.Locale("fr")))

	yes, no := ConfirmLabels(models.Locale("fr"))
	assert.Equal(t, "Yes, show them", yes)
	assert.Equal(t, "No, thanks", no)
}

func TestConfirmLabels(t *testing.T) {
	yes, no := ConfirmLabels(models.LocaleRU)
	assert.Equal(t, "Да, показать", yes)
	assert.Equal(t, "Нет, спасибо", no)
}

func TestSearchDismissed(t *testing.T) {
	assert.Equal(t, "Хорошо, ищем дальше в выбранном районе.", SearchDismissed(models.LocaleRU))
	assert.Equal(t, "Okay, staying with the chosen district.", SearchDismissed(models.LocaleEN))
}
