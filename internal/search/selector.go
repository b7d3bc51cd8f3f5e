package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"balimatch/server/internal/ai"
	"balimatch/server/internal/models"
)

// Selector asks the language service to pick the listings that best match
// the user's wording. Strictly additive: on any failure the caller keeps
// the pre-selector candidate list unchanged.
type Selector struct {
	completer ai.Completer
	logger    *logrus.Logger
	limit     int
}

func NewSelector(completer ai.Completer, logger *logrus.Logger, limit int) *Selector {
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	return &Selector{
		completer: completer,
		logger:    logger,
		limit:     limit,
	}
}

type selectorResponse struct {
	SelectedPropertyIDs []int  `json:"selectedPropertyIds"`
	ResponseText        string `json:"responseText"`
}

// Refine returns (selected, responseText, true) on success. The boolean is
// false whenever the result should be ignored.
func (s *Selector) Refine(ctx context.Context, userText string, candidates []models.Listing) ([]models.Listing, string, bool) {
	if s.completer == nil || len(candidates) == 0 {
		return nil, "", false
	}

	raw, err := s.completer.Complete(ctx, s.systemPrompt(candidates), userText, 0.2, 700)
	if err != nil {
		s.logger.WithError(err).Warn("AI selection failed, keeping candidates")
		return nil, "", false
	}

	obj, ok := ai.FirstJSONObject(raw)
	if !ok {
		s.logger.Warn("AI selection returned no JSON, keeping candidates")
		return nil, "", false
	}

	var resp selectorResponse
	if err := json.Unmarshal([]byte(obj), &resp); err != nil {
		s.logger.WithError(err).Warn("AI selection JSON malformed, keeping candidates")
		return nil, "", false
	}

	// Indices are 1-based and only valid for this call. Anything outside
	// the tabulated set is a hallucination and is silently dropped.
	var selected []models.Listing
	seen := make(map[int]bool)
	for _, idx := range resp.SelectedPropertyIDs {
		if idx < 1 || idx > len(candidates) || seen[idx] {
			continue
		}
		seen[idx] = true
		selected = append(selected, candidates[idx-1])
		if len(selected) == s.limit {
			break
		}
	}

	if len(selected) == 0 {
		return nil, "", false
	}
	return selected, resp.ResponseText, true
}

func (s *Selector) systemPrompt(candidates []models.Listing) string {
	var b strings.Builder
	b.WriteString("You are a Bali real-estate assistant. The user's message follows; ")
	b.WriteString("pick the listings from the table below that best match it.\n\n")
	b.WriteString("index | type | district | price | bedrooms | area | status | pool | description\n")
	for i, l := range candidates {
		fmt.Fprintf(&b, "%d | %s | %s | %s | %s | %s | %s | %s | %s\n",
			i+1, l.Type, l.District, l.Price, l.Bedrooms, l.Area, l.Status, l.Pool,
			truncateText(l.Description, 80))
	}
	b.WriteString(`
Respond with a single JSON object and nothing else:
{"selectedPropertyIds": [indices from the table], "responseText": "short reply to the user in their language"}
Only use indices that appear in the table.`)
	return b.String()
}

func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
