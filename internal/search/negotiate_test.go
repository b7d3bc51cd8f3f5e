package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"balimatch/server/internal/geography"
	"balimatch/server/internal/models"
)

func newNegotiator(repo *fakeRepo) *Negotiator {
	logger := quietLogger()
	resolver := NewResolver(repo, logger, 0, 0)
	return NewNegotiator(geography.NewBaliGraph(), resolver, repo, logger)
}

func TestResolve_DirectDistrictHit(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "u1", Type: "Villa", District: "Ubud", Price: "150000", Pool: "private"},
	}}
	n := newNegotiator(repo)

	outcome, err := n.Resolve(context.Background(), "вилла в Убуде с бассейном",
		&models.SearchCriteria{PropertyType: "Villa", District: "Ubud", HasPool: boolPtr(true)},
		models.LocaleRU)

	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeNormal, outcome.Kind)
	if assert.Len(t, outcome.Listings, 1) {
		assert.Equal(t, "u1", outcome.Listings[0].ID)
	}
}

// An empty district with stocked neighbors becomes a suggestion, not an
// empty result.
func TestResolve_EmptyDistrictSuggestsNeighbors(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "p1", Type: "Villa", District: "Pecatu", Price: "180000"},
		{ID: "j1", Type: "Villa", District: "Jimbaran", Price: "220000"},
	}}
	n := newNegotiator(repo)
	crit := &models.SearchCriteria{PropertyType: "Villa", District: "Uluwatu"}

	outcome, err := n.Resolve(context.Background(), "вилла в Улувату", crit, models.LocaleRU)

	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeSuggestNeighbors, outcome.Kind)
	assert.Equal(t, "Uluwatu", outcome.OriginalDistrict)
	// Stocked neighbors only, nearest first.
	assert.Equal(t, []string{"Pecatu", "Jimbaran"}, outcome.SuggestedDistricts)
	assert.Same(t, crit, outcome.OriginalCriteria)
	assert.Empty(t, outcome.Listings)
}

func TestResolve_EmptyDistrictNoStockedNeighbors(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "far", Type: "Villa", District: "Amed", Price: "90000"},
	}}
	n := newNegotiator(repo)

	outcome, err := n.Resolve(context.Background(), "вилла в Улувату",
		&models.SearchCriteria{District: "Uluwatu"}, models.LocaleRU)

	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeNormal, outcome.Kind)
	assert.Empty(t, outcome.Listings)
}

func TestResolve_RegionExpandsToStockedDistricts(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "j1", Type: "Villa", District: "Jimbaran", Price: "220000"},
		{ID: "u1", Type: "Villa", District: "Uluwatu", Price: "480000"},
		{ID: "c1", Type: "Villa", District: "Canggu", Price: "150000"},
	}}
	n := newNegotiator(repo)

	outcome, err := n.Resolve(context.Background(), "что есть на Буките?",
		&models.SearchCriteria{}, models.LocaleRU)

	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeRegion, outcome.Kind)
	assert.Equal(t, "Букит", outcome.RegionLabel)
	// Region member order, localized, only districts with data.
	assert.Equal(t, []string{"Улувату", "Джимбаран"}, outcome.DistrictLabels)
	ids := make([]string, len(outcome.Listings))
	for i, l := range outcome.Listings {
		ids[i] = l.ID
	}
	// Canggu is outside the region and must not leak in.
	assert.Equal(t, []string{"j1", "u1"}, ids)
}

// Region wins over a district mentioned in the same message.
func TestResolve_RegionWinsOverDistrict(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "j1", Type: "Villa", District: "Jimbaran", Price: "220000"},
	}}
	n := newNegotiator(repo)

	outcome, err := n.Resolve(context.Background(), "букит или джимбаран",
		&models.SearchCriteria{}, models.LocaleRU)

	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeRegion, outcome.Kind)
}

// A named region with no stocked member districts falls through to the
// ordinary search path instead of returning an empty region reply.
func TestResolve_EmptyRegionFallsThrough(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "c1", Type: "Villa", District: "Canggu", Price: "150000"},
	}}
	n := newNegotiator(repo)

	outcome, err := n.Resolve(context.Background(), "вилла на буките",
		&models.SearchCriteria{}, models.LocaleRU)

	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeNormal, outcome.Kind)
}

func TestResolve_DistrictPickedUpFromText(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "c1", Type: "Villa", District: "Canggu", Price: "150000"},
		{ID: "u1", Type: "Villa", District: "Ubud", Price: "150000"},
	}}
	n := newNegotiator(repo)
	crit := &models.SearchCriteria{PropertyType: "Villa"}

	outcome, err := n.Resolve(context.Background(), "villa in canggu", crit, models.LocaleEN)

	assert.NoError(t, err)
	assert.Equal(t, "Canggu", crit.District)
	if assert.Len(t, outcome.Listings, 1) {
		assert.Equal(t, "c1", outcome.Listings[0].ID)
	}
}

func TestResolve_MultiDistrictCriteria(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "c1", Type: "Villa", District: "Canggu", Price: "250000"},
		{ID: "b1", Type: "Villa", District: "Berawa", Price: "150000"},
		{ID: "u1", Type: "Villa", District: "Ubud", Price: "100000"},
	}}
	n := newNegotiator(repo)

	outcome, err := n.Resolve(context.Background(), "surf villa",
		&models.SearchCriteria{Districts: []string{"Canggu", "Berawa"}}, models.LocaleEN)

	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeNormal, outcome.Kind)
	ids := make([]string, len(outcome.Listings))
	for i, l := range outcome.Listings {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"b1", "c1"}, ids)
}

func TestContinuation_RoundTrip(t *testing.T) {
	cont := &models.NeighborContinuation{
		Districts: []string{"Pecatu", "Jimbaran"},
		Criteria: &models.SearchCriteria{
			PropertyType: "Villa",
			MaxPrice:     floatPtr(300000),
			Bedrooms:     intPtr(3),
			HasPool:      boolPtr(true),
			Status:       "ready",
		},
		Locale: models.LocaleRU,
	}

	payload, err := EncodeContinuation(cont)
	assert.NoError(t, err)
	assert.Equal(t, "pct,jmb|tV,u300000,b3,p1,sr|ru", payload)

	decoded, err := DecodeContinuation(payload)
	assert.NoError(t, err)
	assert.Equal(t, []string{"pecatu", "jimbaran"}, decoded.Districts)
	assert.Equal(t, cont.Locale, decoded.Locale)
	if assert.NotNil(t, decoded.Criteria) {
		assert.Equal(t, "Villa", decoded.Criteria.PropertyType)
		if assert.NotNil(t, decoded.Criteria.MaxPrice) {
			assert.Equal(t, 300000.0, *decoded.Criteria.MaxPrice)
		}
		if assert.NotNil(t, decoded.Criteria.Bedrooms) {
			assert.Equal(t, 3, *decoded.Criteria.Bedrooms)
		}
		if assert.NotNil(t, decoded.Criteria.HasPool) {
			assert.True(t, *decoded.Criteria.HasPool)
		}
		assert.Equal(t, "ready", decoded.Criteria.Status)
	}
}

func TestEncodeContinuation_UnknownDistrict(t *testing.T) {
	_, err := EncodeContinuation(&models.NeighborContinuation{
		Districts: []string{"Atlantis"},
	})
	assert.Error(t, err)
}

func TestDecodeContinuation_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"No sections", "garbage!!!"},
		{"Wrong section count", "pct|tV"},
		{"Unknown district code", "zzz||ru"},
		{"Empty district list", "||ru"},
		{"Bad criteria token", "pct|q|ru"},
		{"Unknown type code", "pct|tZ|ru"},
		{"Bad number", "pct|uabc|ru"},
		{"Unknown locale", "pct||xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeContinuation(tt.payload)
			assert.ErrorIs(t, err, ErrBadContinuation)
		})
	}
}

func mustEncode(t *testing.T, cont *models.NeighborContinuation) string {
	t.Helper()
	payload, err := EncodeContinuation(cont)
	assert.NoError(t, err)
	return payload
}

func TestConfirmNeighbors(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "p1", Type: "Villa", District: "Pecatu", Price: "180000", Pool: "private"},
		{ID: "j1", Type: "Villa", District: "Jimbaran", Price: "220000", Pool: "none"},
	}}
	n := newNegotiator(repo)

	payload := mustEncode(t, &models.NeighborContinuation{
		Districts: []string{"Pecatu", "Jimbaran"},
		Criteria:  &models.SearchCriteria{PropertyType: "Villa", District: "Uluwatu", HasPool: boolPtr(true)},
		Locale:    models.LocaleRU,
	})

	outcome, locale, err := n.ConfirmNeighbors(context.Background(), payload)

	assert.NoError(t, err)
	assert.Equal(t, models.LocaleRU, locale)
	assert.Equal(t, models.OutcomeNormal, outcome.Kind)
	// The original district is replaced by the confirmed set; the rest of
	// the criteria still applies.
	if assert.Len(t, outcome.Listings, 1) {
		assert.Equal(t, "p1", outcome.Listings[0].ID)
	}
}

func TestConfirmNeighbors_BadPayload(t *testing.T) {
	n := newNegotiator(&fakeRepo{})

	_, _, err := n.ConfirmNeighbors(context.Background(), "garbage!!!")

	assert.ErrorIs(t, err, ErrBadContinuation)
}
