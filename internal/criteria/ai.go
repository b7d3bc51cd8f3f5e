package criteria

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"balimatch/server/internal/ai"
	"balimatch/server/internal/geography"
	"balimatch/server/internal/models"
)

// Extractor turns free text into SearchCriteria. When a language service is
// configured it is asked first, with a strict JSON contract; any failure
// falls back silently to the rule-based extractor. The fallback is never
// surfaced to the user, only logged.
type Extractor struct {
	completer ai.Completer
	graph     *geography.Graph
	logger    *logrus.Logger
}

func NewExtractor(completer ai.Completer, graph *geography.Graph, logger *logrus.Logger) *Extractor {
	return &Extractor{
		completer: completer,
		graph:     graph,
		logger:    logger,
	}
}

// aiCriteria is the exact response contract. Pointer fields keep explicit
// falsy values (hasPool: false) distinguishable from absent keys.
type aiCriteria struct {
	Districts    []string `json:"districts"`
	PropertyType string   `json:"propertyType"`
	MinPrice     *float64 `json:"minPrice"`
	MaxPrice     *float64 `json:"maxPrice"`
	Bedrooms     *int     `json:"bedrooms"`
	MinArea      *float64 `json:"minArea"`
	HasPool      *bool    `json:"hasPool"`
	Status       string   `json:"status"`
	Reasoning    string   `json:"reasoning"`
}

// Extract returns criteria for the message. It never returns an error:
// extraction degradation is recovered locally.
func (e *Extractor) Extract(ctx context.Context, text string) *models.SearchCriteria {
	if e.completer == nil {
		return ExtractRules(text)
	}

	raw, err := e.completer.Complete(ctx, e.systemPrompt(), text, 0.1, 600)
	if err != nil {
		e.logger.WithError(err).Warn("AI criteria extraction failed, using rules")
		return ExtractRules(text)
	}

	parsed, err := parseAICriteria(raw)
	if err != nil {
		e.logger.WithError(err).Warn("AI criteria response unusable, using rules")
		return ExtractRules(text)
	}

	c := &models.SearchCriteria{
		PropertyType: parsed.PropertyType,
		Districts:    parsed.Districts,
		MinPrice:     parsed.MinPrice,
		MaxPrice:     parsed.MaxPrice,
		Bedrooms:     parsed.Bedrooms,
		MinArea:      parsed.MinArea,
		HasPool:      parsed.HasPool,
		Status:       parsed.Status,
		Reasoning:    parsed.Reasoning,
	}
	if len(c.Districts) == 1 {
		c.District = c.Districts[0]
		c.Districts = nil
	}
	return c
}

func parseAICriteria(raw string) (*aiCriteria, error) {
	obj, ok := ai.FirstJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object in response")
	}
	var parsed aiCriteria
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil, fmt.Errorf("malformed criteria JSON: %w", err)
	}
	return &parsed, nil
}

func (e *Extractor) systemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a Bali real-estate search assistant. ")
	b.WriteString("Extract structured search criteria from the user's message.\n\n")

	b.WriteString("GEOGRAPHY:\n")
	for _, rid := range e.graph.Regions() {
		r := e.graph.Region(rid)
		var names []string
		for _, did := range r.Districts {
			names = append(names, e.graph.District(did).Name)
		}
		fmt.Fprintf(&b, "- %s (%s): districts %s\n",
			r.Names[models.LocaleEN], strings.Join(r.Characteristics, ", "), strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "Coastline districts: %s\n", strings.Join(e.graph.CoastlineDistricts(), ", "))
	fmt.Fprintf(&b, "Inland districts: %s\n", strings.Join(e.graph.InlandDistricts(), ", "))
	fmt.Fprintf(&b, "Budget districts: %s\n", strings.Join(e.graph.DistrictsInTier(1), ", "))
	fmt.Fprintf(&b, "Premium districts: %s\n\n", strings.Join(e.graph.DistrictsInTier(3), ", "))

	b.WriteString(`Respond with a single JSON object and nothing else:
{
  "districts": ["..."],
  "propertyType": "Villa|Apartment|House|Commercial|Land or empty",
  "minPrice": number or null,
  "maxPrice": number or null,
  "bedrooms": number or null,
  "minArea": number or null,
  "hasPool": boolean or null,
  "status": "ready|construction or empty",
  "reasoning": "one sentence on how you read the request"
}
Use canonical English district names. Omit nothing you are sure about; use null for anything absent.`)
	return b.String()
}
