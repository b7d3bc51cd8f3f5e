package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"balimatch/server/internal/criteria"
	"balimatch/server/internal/geography"
	"balimatch/server/internal/models"
)

// ErrBadContinuation marks a tampered or truncated confirmation payload.
var ErrBadContinuation = errors.New("malformed neighbor continuation payload")

// Negotiator decides between a region-wide search, a direct district search,
// or the neighbor-suggestion branch. It holds no per-user state: the
// pending confirmation travels inside the button payload.
type Negotiator struct {
	graph    *geography.Graph
	resolver *Resolver
	repo     Repository
	logger   *logrus.Logger
}

func NewNegotiator(graph *geography.Graph, resolver *Resolver, repo Repository, logger *logrus.Logger) *Negotiator {
	return &Negotiator{
		graph:    graph,
		resolver: resolver,
		repo:     repo,
		logger:   logger,
	}
}

// Resolve routes one query. Region wins over district when both match.
func (n *Negotiator) Resolve(ctx context.Context, text string, c *models.SearchCriteria, locale models.Locale) (*models.SearchOutcome, error) {
	if regionID, ok := n.graph.ResolveAlias(text, locale); ok {
		outcome, err := n.regionSearch(ctx, regionID, c, locale)
		if err != nil {
			return nil, err
		}
		if outcome != nil {
			return outcome, nil
		}
		// Region named but no member district has data; fall through.
	}

	if c.District == "" && len(c.Districts) == 0 {
		if did, ok := n.graph.ResolveDistrictMention(text); ok {
			c.District = n.graph.District(did).Name
		}
	}

	if districts := c.DistrictSet(); len(districts) == 1 {
		return n.districtSearch(ctx, districts[0], c, locale)
	}

	// Multi-district criteria (AI extractor) or fully unscoped search.
	if len(c.Districts) > 1 {
		listings, err := n.resolver.SearchAcrossDistricts(ctx, c, c.Districts)
		if err != nil {
			return nil, err
		}
		return &models.SearchOutcome{Kind: models.OutcomeNormal, Listings: listings}, nil
	}

	listings, err := n.resolver.Search(ctx, c)
	if err != nil {
		return nil, err
	}
	return &models.SearchOutcome{Kind: models.OutcomeNormal, Listings: listings}, nil
}

func (n *Negotiator) regionSearch(ctx context.Context, regionID geography.RegionID, c *models.SearchCriteria, locale models.Locale) (*models.SearchOutcome, error) {
	members := n.graph.DistrictsInRegion(regionID)
	withData, err := n.districtsWithData(ctx, members)
	if err != nil {
		return nil, err
	}
	if len(withData) == 0 {
		return nil, nil
	}

	names := make([]string, len(withData))
	labels := make([]string, len(withData))
	for i, did := range withData {
		names[i] = n.graph.District(did).Name
		labels[i] = n.graph.DistrictLabel(did, locale)
	}

	listings, err := n.resolver.SearchAcrossDistricts(ctx, c, names)
	if err != nil {
		return nil, err
	}

	return &models.SearchOutcome{
		Kind:           models.OutcomeRegion,
		Listings:       listings,
		RegionLabel:    n.graph.RegionLabel(regionID, locale),
		DistrictLabels: labels,
	}, nil
}

func (n *Negotiator) districtSearch(ctx context.Context, district string, c *models.SearchCriteria, locale models.Locale) (*models.SearchOutcome, error) {
	listings, err := n.resolver.Search(ctx, c)
	if err != nil {
		return nil, err
	}
	if len(listings) > 0 {
		return &models.SearchOutcome{Kind: models.OutcomeNormal, Listings: listings}, nil
	}

	did, ok := n.graph.ResolveDistrictMention(district)
	if !ok {
		return &models.SearchOutcome{Kind: models.OutcomeNormal}, nil
	}

	neighbors, err := n.districtsWithData(ctx, n.graph.NeighborsOf(did))
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return &models.SearchOutcome{Kind: models.OutcomeNormal}, nil
	}

	suggested := make([]string, len(neighbors))
	for i, id := range neighbors {
		suggested[i] = n.graph.District(id).Name
	}

	return &models.SearchOutcome{
		Kind:               models.OutcomeSuggestNeighbors,
		OriginalDistrict:   n.graph.District(did).Name,
		SuggestedDistricts: suggested,
		OriginalCriteria:   c,
	}, nil
}

// districtsWithData probes every candidate district with a limit-1 existence
// query. Probes are independent; they run concurrently and the result keeps
// the input order.
func (n *Negotiator) districtsWithData(ctx context.Context, ids []geography.DistrictID) ([]geography.DistrictID, error) {
	has := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			exists, err := n.repo.ExistsInDistrict(gctx, n.graph.District(id).Name)
			if err != nil {
				return err
			}
			has[i] = exists
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []geography.DistrictID
	for i, id := range ids {
		if has[i] {
			out = append(out, id)
		}
	}
	return out, nil
}

// ConfirmNeighbors resumes a suggestion once the user taps the confirm
// button. Stale payloads are accepted as given; there is no expiry.
func (n *Negotiator) ConfirmNeighbors(ctx context.Context, payload string) (*models.SearchOutcome, models.Locale, error) {
	cont, err := DecodeContinuation(payload)
	if err != nil {
		return nil, "", err
	}

	c := cont.Criteria
	if c == nil {
		c = &models.SearchCriteria{}
	}
	c.District = ""
	c.Districts = cont.Districts

	listings, err := n.resolver.SearchAcrossDistricts(ctx, c, cont.Districts)
	if err != nil {
		return nil, cont.Locale, err
	}
	return &models.SearchOutcome{Kind: models.OutcomeNormal, Listings: listings}, cont.Locale, nil
}

// Continuation wire format: "<district codes>|<criteria tokens>|<locale>",
// e.g. "pct,jmb|tV,u300000,p1|ru". Telegram caps callback data at 64 bytes,
// so the payload is terse positional tokens, not JSON. Reasoning is advisory
// and is not carried across the round-trip.

var typeCodes = map[string]string{
	"Villa":       "V",
	"Apartment":   "A",
	"Apart-villa": "W",
	"House":       "H",
	"Commercial":  "C",
	"Land":        "L",
}

var typeNames = map[string]string{}

func init() {
	for name, code := range typeCodes {
		typeNames[code] = name
	}
}

// EncodeContinuation serializes the pending suggestion for the button
// payload.
func EncodeContinuation(cont *models.NeighborContinuation) (string, error) {
	codes := make([]string, len(cont.Districts))
	for i, d := range cont.Districts {
		code, ok := criteria.DistrictCode(d)
		if !ok {
			return "", fmt.Errorf("no short code for district %q", d)
		}
		codes[i] = code
	}
	return strings.Join(codes, ",") + "|" + encodeCriteria(cont.Criteria) + "|" + string(cont.Locale), nil
}

func encodeCriteria(c *models.SearchCriteria) string {
	if c == nil {
		return ""
	}
	var tokens []string
	if code, ok := typeCodes[criteria.CanonicalType(c.PropertyType)]; ok {
		tokens = append(tokens, "t"+code)
	}
	if c.MinPrice != nil {
		tokens = append(tokens, "l"+formatNum(*c.MinPrice))
	}
	if c.MaxPrice != nil {
		tokens = append(tokens, "u"+formatNum(*c.MaxPrice))
	}
	if c.Bedrooms != nil {
		tokens = append(tokens, "b"+strconv.Itoa(*c.Bedrooms))
	}
	if c.MinArea != nil {
		tokens = append(tokens, "a"+formatNum(*c.MinArea))
	}
	if c.MaxArea != nil {
		tokens = append(tokens, "A"+formatNum(*c.MaxArea))
	}
	if c.HasPool != nil {
		if *c.HasPool {
			tokens = append(tokens, "p1")
		} else {
			tokens = append(tokens, "p0")
		}
	}
	switch c.Status {
	case "ready":
		tokens = append(tokens, "sr")
	case "construction":
		tokens = append(tokens, "sc")
	}
	return strings.Join(tokens, ",")
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DecodeContinuation parses a payload back. Anything unparseable maps to
// ErrBadContinuation so callers can answer with a friendly message instead
// of crashing.
func DecodeContinuation(payload string) (*models.NeighborContinuation, error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: want 3 sections, got %d", ErrBadContinuation, len(parts))
	}

	var districts []string
	for _, code := range strings.Split(parts[0], ",") {
		if code == "" {
			continue
		}
		name, ok := criteria.DistrictFromCode(code)
		if !ok {
			return nil, fmt.Errorf("%w: unknown district code %q", ErrBadContinuation, code)
		}
		districts = append(districts, name)
	}
	if len(districts) == 0 {
		return nil, fmt.Errorf("%w: empty district list", ErrBadContinuation)
	}

	c, err := decodeCriteria(parts[1])
	if err != nil {
		return nil, err
	}

	locale := models.Locale(parts[2])
	switch locale {
	case models.LocaleRU, models.LocaleEN, models.LocaleID, "":
	default:
		return nil, fmt.Errorf("%w: unknown locale %q", ErrBadContinuation, parts[2])
	}

	return &models.NeighborContinuation{
		Districts: districts,
		Criteria:  c,
		Locale:    locale,
	}, nil
}

func decodeCriteria(s string) (*models.SearchCriteria, error) {
	c := &models.SearchCriteria{}
	if s == "" {
		return c, nil
	}
	for _, tok := range strings.Split(s, ",") {
		if len(tok) < 2 {
			return nil, fmt.Errorf("%w: bad criteria token %q", ErrBadContinuation, tok)
		}
		val := tok[1:]
		switch tok[0] {
		case 't':
			name, ok := typeNames[val]
			if !ok {
				return nil, fmt.Errorf("%w: unknown type code %q", ErrBadContinuation, val)
			}
			c.PropertyType = name
		case 'l':
			v, err := parseNum(val)
			if err != nil {
				return nil, err
			}
			c.MinPrice = &v
		case 'u':
			v, err := parseNum(val)
			if err != nil {
				return nil, err
			}
			c.MaxPrice = &v
		case 'b':
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("%w: bad bedroom count %q", ErrBadContinuation, val)
			}
			c.Bedrooms = &n
		case 'a':
			v, err := parseNum(val)
			if err != nil {
				return nil, err
			}
			c.MinArea = &v
		case 'A':
			v, err := parseNum(val)
			if err != nil {
				return nil, err
			}
			c.MaxArea = &v
		case 'p':
			switch val {
			case "1":
				yes := true
				c.HasPool = &yes
			case "0":
				no := false
				c.HasPool = &no
			default:
				return nil, fmt.Errorf("%w: bad pool flag %q", ErrBadContinuation, val)
			}
		case 's':
			switch val {
			case "r":
				c.Status = "ready"
			case "c":
				c.Status = "construction"
			default:
				return nil, fmt.Errorf("%w: bad status code %q", ErrBadContinuation, val)
			}
		default:
			return nil, fmt.Errorf("%w: unknown criteria token %q", ErrBadContinuation, tok)
		}
	}
	return c, nil
}

func parseNum(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrBadContinuation, s)
	}
	return v, nil
}
