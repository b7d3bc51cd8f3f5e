package search

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"balimatch/server/internal/criteria"
	"balimatch/server/internal/models"
)

// Repository is the read surface of the listings store consumed by the
// search core.
type Repository interface {
	FindByFields(ctx context.Context, fields map[string]string, limit int) ([]models.Listing, error)
	ExistsInDistrict(ctx context.Context, district string) (bool, error)
}

const (
	DefaultCandidateLimit = 100
	DefaultResultLimit    = 10
)

// Resolver retrieves candidates and applies local canonical matching.
type Resolver struct {
	repo           Repository
	logger         *logrus.Logger
	candidateLimit int
	resultLimit    int
}

func NewResolver(repo Repository, logger *logrus.Logger, candidateLimit, resultLimit int) *Resolver {
	if candidateLimit <= 0 {
		candidateLimit = DefaultCandidateLimit
	}
	if resultLimit <= 0 {
		resultLimit = DefaultResultLimit
	}
	return &Resolver{
		repo:           repo,
		logger:         logger,
		candidateLimit: candidateLimit,
		resultLimit:    resultLimit,
	}
}

// Search returns matching listings sorted by ascending price, capped at the
// result limit. Listings with unparseable prices coerce to 0 and sort
// first; that ordering is a documented contract, not an accident.
func (r *Resolver) Search(ctx context.Context, c *models.SearchCriteria) ([]models.Listing, error) {
	// Only exact-match fields that are cheap server-side are pushed down;
	// everything else is filtered locally against canonical keys.
	fields := map[string]string{}
	if c.PropertyType != "" {
		fields["type"] = criteria.CanonicalType(c.PropertyType)
	}
	if c.Status != "" {
		fields["status"] = c.Status
	}

	candidates, err := r.repo.FindByFields(ctx, fields, r.candidateLimit)
	if err != nil {
		return nil, err
	}

	var matched []models.Listing
	for _, l := range candidates {
		if matchesCriteria(&l, c) {
			matched = append(matched, l)
		}
	}

	sortByPrice(matched)
	return truncate(matched, r.resultLimit), nil
}

// SearchAcrossDistricts runs Search once per district concurrently, unions
// the results, dedups by id (first occurrence wins), re-sorts and
// re-truncates. Callers must keep the district list small: this is
// O(districts x candidate cap) repository reads.
func (r *Resolver) SearchAcrossDistricts(ctx context.Context, c *models.SearchCriteria, districts []string) ([]models.Listing, error) {
	results := make([][]models.Listing, len(districts))

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range districts {
		i, d := i, d
		g.Go(func() error {
			scoped := *c
			scoped.District = d
			scoped.Districts = nil
			found, err := r.Search(gctx, &scoped)
			if err != nil {
				return err
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in input-district order so dedup is independent of goroutine
	// completion order.
	seen := make(map[string]bool)
	var merged []models.Listing
	for _, part := range results {
		for _, l := range part {
			if seen[l.ID] {
				continue
			}
			seen[l.ID] = true
			merged = append(merged, l)
		}
	}

	sortByPrice(merged)
	return truncate(merged, r.resultLimit), nil
}

func matchesCriteria(l *models.Listing, c *models.SearchCriteria) bool {
	if c.PropertyType != "" &&
		criteria.CanonicalType(l.Type) != criteria.CanonicalType(c.PropertyType) {
		return false
	}

	if districts := c.DistrictSet(); len(districts) > 0 {
		key := criteria.CanonicalDistrict(l.District)
		found := false
		for _, d := range districts {
			if key == criteria.CanonicalDistrict(d) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Absent numeric fields coerce to 0 and can legitimately fail a min
	// bound.
	price := l.PriceValue()
	if c.MinPrice != nil && price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && price > *c.MaxPrice {
		return false
	}

	area := l.AreaValue()
	if c.MinArea != nil && area < *c.MinArea {
		return false
	}
	if c.MaxArea != nil && area > *c.MaxArea {
		return false
	}

	if c.Bedrooms != nil {
		// Non-numeric bedroom values are skipped, not excluded.
		if n, ok := l.BedroomsValue(); ok && n < *c.Bedrooms {
			return false
		}
	}

	if c.HasPool != nil && l.HasPool() != *c.HasPool {
		return false
	}

	if c.Status != "" && !strings.EqualFold(l.Status, c.Status) {
		return false
	}

	return true
}

func sortByPrice(listings []models.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].PriceValue() < listings[j].PriceValue()
	})
}

func truncate(listings []models.Listing, limit int) []models.Listing {
	if len(listings) > limit {
		return listings[:limit]
	}
	return listings
}
