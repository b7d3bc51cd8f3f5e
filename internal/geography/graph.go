package geography

import (
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"balimatch/server/internal/models"
)

type RegionID string

type DistrictID string

// Region groups districts that share atmosphere and price characteristics.
type Region struct {
	ID              RegionID
	Names           map[models.Locale]string
	Districts       []DistrictID
	Characteristics []string
}

// District is the finest-grained location unit used for matching.
type District struct {
	ID        DistrictID
	Name      string // canonical English display name
	Names     map[models.Locale]string
	Coastline bool
	PriceTier int // 1 = budget, 3 = premium
	Neighbors []DistrictID
	Center    orb.Point // lon, lat
}

type aliasKind int

const (
	aliasRegion aliasKind = iota
	aliasDistrict
	aliasConcept
)

// alias maps a lowercase free-text token to a region, district or abstract
// concept tag. Table order is a contract: longer tokens must come before
// shorter overlapping ones because resolution is substring containment.
type alias struct {
	token    string
	kind     aliasKind
	region   RegionID
	district DistrictID
	concept  string
}

// Graph is the immutable geography knowledge base. Built once at process
// start; safe for unlimited concurrent readers.
type Graph struct {
	regions       map[RegionID]*Region
	regionOrder   []RegionID
	districts     map[DistrictID]*District
	districtOrder []DistrictID
	aliases       []alias
}

func newGraph(regions []*Region, districts []*District, aliases []alias) *Graph {
	g := &Graph{
		regions:   make(map[RegionID]*Region, len(regions)),
		districts: make(map[DistrictID]*District, len(districts)),
		aliases:   aliases,
	}
	for _, r := range regions {
		g.regions[r.ID] = r
		g.regionOrder = append(g.regionOrder, r.ID)
	}
	for _, d := range districts {
		g.districts[d.ID] = d
		g.districtOrder = append(g.districtOrder, d.ID)
	}

	// Order neighbor lists nearest-first so suggestions lead with the
	// closest alternative.
	for _, d := range districts {
		center := d.Center
		sort.SliceStable(d.Neighbors, func(i, j int) bool {
			ni, iOK := g.districts[d.Neighbors[i]]
			nj, jOK := g.districts[d.Neighbors[j]]
			if !iOK || !jOK {
				return iOK
			}
			return geo.Distance(center, ni.Center) < geo.Distance(center, nj.Center)
		})
	}
	return g
}

// Region returns a region node by id.
func (g *Graph) Region(id RegionID) *Region {
	return g.regions[id]
}

// District returns a district node by id.
func (g *Graph) District(id DistrictID) *District {
	return g.districts[id]
}

// Districts returns all district ids in insertion order.
func (g *Graph) Districts() []DistrictID {
	return g.districtOrder
}

// ResolveAlias finds a region mentioned in free text. It scans the alias
// table in insertion order looking for substring containment, then falls
// back to region display names in the given locale.
func (g *Graph) ResolveAlias(text string, locale models.Locale) (RegionID, bool) {
	lower := strings.ToLower(text)
	for _, a := range g.aliases {
		if a.kind == aliasRegion && strings.Contains(lower, a.token) {
			return a.region, true
		}
	}
	for _, id := range g.regionOrder {
		name := g.regions[id].Names[locale]
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			return id, true
		}
	}
	return "", false
}

// ResolveDistrictMention finds a district mentioned in free text. Region and
// concept aliases are explicitly skipped: a region token must never resolve
// where a district is expected. Falls back to canonical district names and
// their translations.
func (g *Graph) ResolveDistrictMention(text string) (DistrictID, bool) {
	lower := strings.ToLower(text)
	for _, a := range g.aliases {
		if a.kind != aliasDistrict {
			continue
		}
		if strings.Contains(lower, a.token) {
			return a.district, true
		}
	}
	for _, id := range g.districtOrder {
		d := g.districts[id]
		if strings.Contains(lower, strings.ToLower(d.Name)) {
			return id, true
		}
		for _, name := range d.Names {
			if name != "" && strings.Contains(lower, strings.ToLower(name)) {
				return id, true
			}
		}
	}
	return "", false
}

// DistrictsInRegion returns the member district ids of a region.
func (g *Graph) DistrictsInRegion(id RegionID) []DistrictID {
	r := g.regions[id]
	if r == nil {
		return nil
	}
	return r.Districts
}

// NeighborsOf returns a district's neighbors, nearest first.
func (g *Graph) NeighborsOf(id DistrictID) []DistrictID {
	d := g.districts[id]
	if d == nil {
		return nil
	}
	return d.Neighbors
}

// RegionLabel returns a region display name for a locale, falling back to
// English.
func (g *Graph) RegionLabel(id RegionID, locale models.Locale) string {
	r := g.regions[id]
	if r == nil {
		return string(id)
	}
	if name := r.Names[locale]; name != "" {
		return name
	}
	return r.Names[models.LocaleEN]
}

// DistrictLabel returns a district display name for a locale, falling back
// to the canonical English name.
func (g *Graph) DistrictLabel(id DistrictID, locale models.Locale) string {
	d := g.districts[id]
	if d == nil {
		return string(id)
	}
	if name := d.Names[locale]; name != "" {
		return name
	}
	return d.Name
}

// CoastlineDistricts returns the canonical names of districts on the coast,
// in insertion order. Used to build the AI geography brief.
func (g *Graph) CoastlineDistricts() []string {
	var names []string
	for _, id := range g.districtOrder {
		if g.districts[id].Coastline {
			names = append(names, g.districts[id].Name)
		}
	}
	return names
}

// DistrictsInTier returns the canonical names of districts in a price tier,
// in insertion order. Used to build the AI geography brief.
func (g *Graph) DistrictsInTier(tier int) []string {
	var names []string
	for _, id := range g.districtOrder {
		if g.districts[id].PriceTier == tier {
			names = append(names, g.districts[id].Name)
		}
	}
	return names
}

// InlandDistricts is the complement of CoastlineDistricts.
func (g *Graph) InlandDistricts() []string {
	var names []string
	for _, id := range g.districtOrder {
		if !g.districts[id].Coastline {
			names = append(names, g.districts[id].Name)
		}
	}
	return names
}

// Regions returns region ids in insertion order.
func (g *Graph) Regions() []RegionID {
	return g.regionOrder
}
