package search

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"balimatch/server/internal/criteria"
	"balimatch/server/internal/i18n"
	"balimatch/server/internal/language"
	"balimatch/server/internal/models"
)

// ConfirmPrompt carries the inline-button parameters for a neighbor
// suggestion. Payload is the serialized continuation.
type ConfirmPrompt struct {
	Payload      string
	AcceptLabel  string
	DeclineLabel string
}

// Reply is what transports render back to the user.
type Reply struct {
	Text     string
	Listings []models.Listing
	Locale   models.Locale
	Confirm  *ConfirmPrompt
}

// Pipeline is the single entry point transports call per inbound message
// and per inbound callback. Handlers are stateless; concurrent requests
// share nothing but the read-only geography graph.
type Pipeline struct {
	extractor  *criteria.Extractor
	negotiator *Negotiator
	selector   *Selector
	logger     *logrus.Logger
}

func NewPipeline(extractor *criteria.Extractor, negotiator *Negotiator, selector *Selector, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		negotiator: negotiator,
		selector:   selector,
		logger:     logger,
	}
}

// Handle runs the full pipeline for one free-text message. It always
// produces a reply: extraction degradation falls back to rules, and a
// repository failure re-runs the deterministic path end-to-end before
// giving up with a localized error message.
func (p *Pipeline) Handle(ctx context.Context, text string) *Reply {
	log := p.logger.WithField("request_id", uuid.NewString())

	locale := language.Detect(text)
	crit := p.extractor.Extract(ctx, text)

	outcome, err := p.negotiator.Resolve(ctx, text, crit, locale)
	if err != nil {
		log.WithError(err).Error("Search failed, retrying with rule-based criteria")
		crit = criteria.ExtractRules(text)
		outcome, err = p.negotiator.Resolve(ctx, text, crit, locale)
	}
	if err != nil {
		log.WithError(err).Error("Deterministic retry failed")
		return &Reply{Text: i18n.GenericError(locale), Locale: locale}
	}

	if outcome.Kind == models.OutcomeNormal && len(outcome.Listings) > 0 && p.selector != nil {
		if selected, reasoning, ok := p.selector.Refine(ctx, text, outcome.Listings); ok {
			outcome = &models.SearchOutcome{
				Kind:      models.OutcomeAI,
				Listings:  selected,
				Reasoning: reasoning,
			}
		}
	}

	reply := &Reply{
		Text:     i18n.RenderOutcome(locale, outcome),
		Listings: outcome.Listings,
		Locale:   locale,
	}

	if outcome.Kind == models.OutcomeSuggestNeighbors {
		payload, err := EncodeContinuation(&models.NeighborContinuation{
			Districts: outcome.SuggestedDistricts,
			Criteria:  outcome.OriginalCriteria,
			Locale:    locale,
		})
		if err != nil {
			log.WithError(err).Error("Failed to encode continuation")
			reply.Text = i18n.GenericError(locale)
			return reply
		}
		yes, no := i18n.ConfirmLabels(locale)
		reply.Confirm = &ConfirmPrompt{
			Payload:      payload,
			AcceptLabel:  yes,
			DeclineLabel: no,
		}
	}

	return reply
}

// ResolveQuery is the plain-text surface used by HTTP callers.
func (p *Pipeline) ResolveQuery(ctx context.Context, text string) (string, []models.Listing, models.Locale) {
	reply := p.Handle(ctx, text)
	return reply.Text, reply.Listings, reply.Locale
}

// HandleCallback resumes a neighbor suggestion from its serialized payload.
// Malformed payloads produce a friendly localized error, never a crash.
func (p *Pipeline) HandleCallback(ctx context.Context, payload string) *Reply {
	log := p.logger.WithField("request_id", uuid.NewString())

	outcome, locale, err := p.negotiator.ConfirmNeighbors(ctx, payload)
	if locale == "" {
		locale = models.LocaleRU
	}
	if err != nil {
		log.WithError(err).Warn("Neighbor confirmation failed")
		return &Reply{Text: i18n.GenericError(locale), Locale: locale}
	}

	return &Reply{
		Text:     i18n.RenderOutcome(locale, outcome),
		Listings: outcome.Listings,
		Locale:   locale,
	}
}

// DismissReply acknowledges a declined suggestion.
func (p *Pipeline) DismissReply(locale models.Locale) *Reply {
	return &Reply{Text: i18n.SearchDismissed(locale), Locale: locale}
}
