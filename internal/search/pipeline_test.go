package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"balimatch/server/internal/ai"
	"balimatch/server/internal/criteria"
	"balimatch/server/internal/geography"
	"balimatch/server/internal/i18n"
	"balimatch/server/internal/models"
)

func newTestPipeline(repo *fakeRepo, extractorAI, selectorAI ai.Completer) *Pipeline {
	logger := quietLogger()
	graph := geography.NewBaliGraph()
	resolver := NewResolver(repo, logger, 0, 0)
	negotiator := NewNegotiator(graph, resolver, repo, logger)
	extractor := criteria.NewExtractor(extractorAI, graph, logger)
	selector := NewSelector(selectorAI, logger, 0)
	return NewPipeline(extractor, negotiator, selector, logger)
}

func TestHandle_RuleBasedEndToEnd(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "u1", Type: "Villa", District: "Ubud", Price: "250000", Pool: "private"},
		{ID: "u2", Type: "Villa", District: "Ubud", Price: "550000", Pool: "private"},
		{ID: "c1", Type: "Villa", District: "Canggu", Price: "250000", Pool: "private"},
	}}
	p := newTestPipeline(repo, nil, nil)

	reply := p.Handle(context.Background(), "Вилла в Убуде от 100 тыс до 300 тыс с бассейном")

	assert.Equal(t, models.LocaleRU, reply.Locale)
	assert.Nil(t, reply.Confirm)
	if assert.Len(t, reply.Listings, 1) {
		assert.Equal(t, "u1", reply.Listings[0].ID)
	}
	assert.True(t, strings.HasPrefix(reply.Text, "Нашёл 1"), reply.Text)
}

// A language-service outage must be invisible: the reply comes from the
// rule-based path and is never an error message.
func TestHandle_AIOutageFallsBackToRules(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "u1", Type: "Villa", District: "Ubud", Price: "250000", Pool: "private"},
	}}
	down := &stubCompleter{err: errors.New("upstream timeout")}
	p := newTestPipeline(repo, down, down)

	reply := p.Handle(context.Background(), "Вилла в Убуде от 100 тыс до 300 тыс с бассейном")

	assert.Equal(t, models.LocaleRU, reply.Locale)
	assert.NotEqual(t, i18n.GenericError(models.LocaleRU), reply.Text)
	if assert.Len(t, reply.Listings, 1) {
		assert.Equal(t, "u1", reply.Listings[0].ID)
	}
}

func TestHandle_RepositoryFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("database is locked")}
	p := newTestPipeline(repo, nil, nil)

	reply := p.Handle(context.Background(), "Вилла в Убуде")

	assert.Equal(t, models.LocaleRU, reply.Locale)
	assert.Empty(t, reply.Listings)
	assert.Equal(t, i18n.GenericError(models.LocaleRU), reply.Text)
}

func TestHandle_SuggestAndConfirmFlow(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "j1", Type: "Villa", District: "Jimbaran", Price: "220000"},
	}}
	p := newTestPipeline(repo, nil, nil)

	reply := p.Handle(context.Background(), "Вилла в Улувату")

	assert.Equal(t, models.LocaleRU, reply.Locale)
	assert.Empty(t, reply.Listings)
	if !assert.NotNil(t, reply.Confirm) {
		return
	}
	yes, no := i18n.ConfirmLabels(models.LocaleRU)
	assert.Equal(t, yes, reply.Confirm.AcceptLabel)
	assert.Equal(t, no, reply.Confirm.DeclineLabel)

	cont, err := DecodeContinuation(reply.Confirm.Payload)
	assert.NoError(t, err)
	assert.Equal(t, []string{"jimbaran"}, cont.Districts)
	assert.Equal(t, models.LocaleRU, cont.Locale)

	// The user taps "yes": the stored payload alone resumes the search.
	confirmed := p.HandleCallback(context.Background(), reply.Confirm.Payload)
	assert.Equal(t, models.LocaleRU, confirmed.Locale)
	if assert.Len(t, confirmed.Listings, 1) {
		assert.Equal(t, "j1", confirmed.Listings[0].ID)
	}
}

func TestHandle_SelectorRefinesResults(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "cheap", Type: "Villa", District: "Ubud", Price: "150000"},
		{ID: "better", Type: "Villa", District: "Ubud", Price: "250000"},
	}}
	selectorAI := &stubCompleter{
		response: `{"selectedPropertyIds":[2],"responseText":"Этот вариант ближе всего к запросу"}`,
	}
	p := newTestPipeline(repo, nil, selectorAI)

	reply := p.Handle(context.Background(), "вилла в убуде")

	if assert.Len(t, reply.Listings, 1) {
		assert.Equal(t, "better", reply.Listings[0].ID)
	}
	assert.Contains(t, reply.Text, "Этот вариант ближе всего к запросу")
}

func TestHandleCallback_BadPayload(t *testing.T) {
	p := newTestPipeline(&fakeRepo{}, nil, nil)

	reply := p.HandleCallback(context.Background(), "not-a-payload")

	assert.Equal(t, models.LocaleRU, reply.Locale)
	assert.Equal(t, i18n.GenericError(models.LocaleRU), reply.Text)
}

func TestResolveQuery(t *testing.T) {
	repo := &fakeRepo{listings: []models.Listing{
		{ID: "u1", Type: "Villa", District: "Ubud", Price: "250000"},
	}}
	p := newTestPipeline(repo, nil, nil)

	text, listings, locale := p.ResolveQuery(context.Background(), "villa in ubud with pool")

	assert.Equal(t, models.LocaleEN, locale)
	assert.NotEmpty(t, text)
	assert.Empty(t, listings, "the only Ubud villa has no pool")
}

func TestDismissReply(t *testing.T) {
	p := newTestPipeline(&fakeRepo{}, nil, nil)

	reply := p.DismissReply(models.LocaleEN)

	assert.Equal(t, models.LocaleEN, reply.Locale)
	assert.Equal(t, i18n.SearchDismissed(models.LocaleEN), reply.Text)
}
