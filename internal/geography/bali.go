package geography

import (
	"github.com/paulmach/orb"

	"balimatch/server/internal/models"
)

// NewBaliGraph builds the static Bali knowledge base. The data is
// hand-curated; nothing mutates it after this call.
func NewBaliGraph() *Graph {
	regions := []*Region{
		{
			ID: "bukit",
			Names: map[models.Locale]string{
				models.LocaleRU: "Букит",
				models.LocaleEN: "Bukit Peninsula",
				models.LocaleID: "Semenanjung Bukit",
			},
			Districts: []DistrictID{
				"uluwatu", "pecatu", "bingin", "balangan",
				"ungasan", "jimbaran", "nusa-dua", "benoa",
			},
			Characteristics: []string{"cliffs", "surf", "beaches", "upscale"},
		},
		{
			ID: "south",
			Names: map[models.Locale]string{
				models.LocaleRU: "Южный Бали",
				models.LocaleEN: "South Bali",
				models.LocaleID: "Bali Selatan",
			},
			Districts: []DistrictID{
				"seminyak", "canggu", "berawa", "umalas", "legian", "kuta",
			},
			Characteristics: []string{"nightlife", "surf", "trendy", "busy"},
		},
		{
			ID: "central",
			Names: map[models.Locale]string{
				models.LocaleRU: "Центральный Бали",
				models.LocaleEN: "Central Bali",
				models.LocaleID: "Bali Tengah",
			},
			Districts: []DistrictID{"ubud", "tegallalang", "peliatan", "mas"},
			Characteristics: []string{"jungle", "rice-terraces", "art", "quiet"},
		},
		{
			ID: "east",
			Names: map[models.Locale]string{
				models.LocaleRU: "Восточный Бали",
				models.LocaleEN: "East Bali",
				models.LocaleID: "Bali Timur",
			},
			Districts: []DistrictID{"sanur", "candidasa", "amed"},
			Characteristics: []string{"diving", "quiet", "local"},
		},
	}

	districts := []*District{
		{
			ID: "uluwatu", Name: "Uluwatu",
			Names:     map[models.Locale]string{models.LocaleRU: "Улувату"},
			Coastline: true, PriceTier: 3,
			Neighbors: []DistrictID{"pecatu", "bingin", "ungasan", "jimbaran"},
			Center:    orb.Point{115.0849, -8.8291},
		},
		{
			ID: "pecatu", Name: "Pecatu",
			Names:     map[models.Locale]string{models.LocaleRU: "Печату"},
			Coastline: true, PriceTier: 2,
			Neighbors: []DistrictID{"uluwatu", "bingin", "balangan", "ungasan"},
			Center:    orb.Point{115.1113, -8.8364},
		},
		{
			ID: "bingin", Name: "Bingin",
			Names:     map[models.Locale]string{models.LocaleRU: "Бингин"},
			Coastline: true, PriceTier: 2,
			Neighbors: []DistrictID{"pecatu", "uluwatu", "balangan"},
			Center:    orb.Point{115.1120, -8.8065},
		},
		{
			ID: "balangan", Name: "Balangan",
			Names:     map[models.Locale]string{models.LocaleRU: "Баланган"},
			Coastline: true, PriceTier: 2,
			Neighbors: []DistrictID{"bingin", "pecatu", "jimbaran"},
			Center:    orb.Point{115.1235, -8.7918},
		},
		{
			ID: "ungasan", Name: "Ungasan",
			Names:     map[models.Locale]string{models.LocaleRU: "Унгасан"},
			Coastline: false, PriceTier: 2,
			Neighbors: []DistrictID{"uluwatu", "pecatu", "nusa-dua", "jimbaran"},
			Center:    orb.Point{115.1650, -8.8170},
		},
		{
			ID: "jimbaran", Name: "Jimbaran",
			Names:     map[models.Locale]string{models.LocaleRU: "Джимбаран"},
			Coastline: true, PriceTier: 2,
			Neighbors: []DistrictID{"uluwatu", "ungasan", "balangan", "nusa-dua", "kuta"},
			Center:    orb.Point{115.1600, -8.7905},
		},
		{
			ID: "nusa-dua", Name: "Nusa Dua",
			Names:     map[models.Locale]string{models.LocaleRU: "Нуса Дуа"},
			Coastline: true, PriceTier: 3,
			Neighbors: []DistrictID{"benoa", "ungasan", "jimbaran"},
			Center:    orb.Point{115.2312, -8.8034},
		},
		{
			ID: "benoa", Name: "Benoa",
			Names:     map[models.Locale]string{models.LocaleRU: "Беноа"},
			Coastline: true, PriceTier: 2,
			Neighbors: []DistrictID{"nusa-dua", "jimbaran"},
			Center:    orb.Point{115.2210, -8.7570},
		},
		{
			ID: "seminyak", Name: "Seminyak",
			Names:     map[models.Locale]string{models.LocaleRU: "Семиньяк"},
			Coastline: true, PriceTier: 3,
			Neighbors: []DistrictID{"legian", "umalas", "berawa"},
			Center:    orb.Point{115.1682, -8.6913},
		},
		{
			ID: "canggu", Name: "Canggu",
			Names:     map[models.Locale]string{models.LocaleRU: "Чангу"},
			Coastline: true, PriceTier: 2,
			Neighbors: []DistrictID{"berawa", "umalas"},
			Center:    orb.Point{115.1385, -8.6478},
		},
		{
			ID: "berawa", Name: "Berawa",
			Names:     map[models.Locale]string{models.LocaleRU: "Берава"},
			Coastline: true, PriceTier: 2,
			Neighbors: []DistrictID{"canggu", "seminyak", "umalas"},
			Center:    orb.Point{115.1480, -8.6620},
		},
		{
			ID: "umalas", Name: "Umalas",
			Names:     map[models.Locale]string{models.LocaleRU: "Умалас"},
			Coastline: false, PriceTier: 2,
			Neighbors: []DistrictID{"seminyak", "berawa", "canggu", "legian"},
			Center:    orb.Point{115.1560, -8.6680},
		},
		{
			ID: "legian", Name: "Legian",
			Names:     map[models.Locale]string{models.LocaleRU: "Легиан"},
			Coastline: true, PriceTier: 2,
			Neighbors: []DistrictID{"seminyak", "kuta"},
			Center:    orb.Point{115.1700, -8.7050},
		},
		{
			ID: "kuta", Name: "Kuta",
			Names:     map[models.Locale]string{models.LocaleRU: "Кута"},
			Coastline: true, PriceTier: 1,
			Neighbors: []DistrictID{"legian", "jimbaran"},
			Center:    orb.Point{115.1720, -8.7230},
		},
		{
			ID: "ubud", Name: "Ubud",
			Names:     map[models.Locale]string{models.LocaleRU: "Убуд"},
			Coastline: false, PriceTier: 2,
			Neighbors: []DistrictID{"tegallalang", "peliatan", "mas"},
			Center:    orb.Point{115.2625, -8.5069},
		},
		{
			ID: "tegallalang", Name: "Tegallalang",
			Names:     map[models.Locale]string{models.LocaleRU: "Тегаллаланг"},
			Coastline: false, PriceTier: 1,
			Neighbors: []DistrictID{"ubud", "peliatan"},
			Center:    orb.Point{115.2777, -8.4437},
		},
		{
			ID: "peliatan", Name: "Peliatan",
			Names:     map[models.Locale]string{models.LocaleRU: "Пелиатан"},
			Coastline: false, PriceTier: 1,
			Neighbors: []DistrictID{"ubud", "mas"},
			Center:    orb.Point{115.2720, -8.5230},
		},
		{
			ID: "mas", Name: "Mas",
			Names:     map[models.Locale]string{models.LocaleRU: "Мас"},
			Coastline: false, PriceTier: 1,
			Neighbors: []DistrictID{"peliatan", "ubud"},
			Center:    orb.Point{115.2650, -8.5440},
		},
		{
			ID: "sanur", Name: "Sanur",
			Names:     map[models.Locale]string{models.LocaleRU: "Санур"},
			Coastline: true, PriceTier: 2,
			Neighbors: []DistrictID{"benoa"},
			Center:    orb.Point{115.2625, -8.6937},
		},
		{
			ID: "candidasa", Name: "Candidasa",
			Names:     map[models.Locale]string{models.LocaleRU: "Чандидаса"},
			Coastline: true, PriceTier: 1,
			Neighbors: []DistrictID{"amed", "sanur"},
			Center:    orb.Point{115.5684, -8.5103},
		},
		{
			ID: "amed", Name: "Amed",
			Names:     map[models.Locale]string{models.LocaleRU: "Амед"},
			Coastline: true, PriceTier: 1,
			Neighbors: []DistrictID{"candidasa"},
			Center:    orb.Point{115.6655, -8.3366},
		},
	}

	// Longer aliases before shorter overlapping ones: resolution is
	// substring containment in table order.
	aliases := []alias{
		{token: "полуостров букит", kind: aliasRegion, region: "bukit"},
		{token: "букит", kind: aliasRegion, region: "bukit"},
		{token: "bukit", kind: aliasRegion, region: "bukit"},
		{token: "южный бали", kind: aliasRegion, region: "south"},
		{token: "юг бали", kind: aliasRegion, region: "south"},
		{token: "south bali", kind: aliasRegion, region: "south"},
		{token: "центральный бали", kind: aliasRegion, region: "central"},
		{token: "central bali", kind: aliasRegion, region: "central"},
		{token: "восточный бали", kind: aliasRegion, region: "east"},
		{token: "east bali", kind: aliasRegion, region: "east"},

		{token: "нуса дуа", kind: aliasDistrict, district: "nusa-dua"},
		{token: "нуса-дуа", kind: aliasDistrict, district: "nusa-dua"},
		{token: "nusa dua", kind: aliasDistrict, district: "nusa-dua"},
		{token: "улувату", kind: aliasDistrict, district: "uluwatu"},
		{token: "uluwatu", kind: aliasDistrict, district: "uluwatu"},
		{token: "джимбаран", kind: aliasDistrict, district: "jimbaran"},
		{token: "jimbaran", kind: aliasDistrict, district: "jimbaran"},
		{token: "унгасан", kind: aliasDistrict, district: "ungasan"},
		{token: "ungasan", kind: aliasDistrict, district: "ungasan"},
		{token: "печату", kind: aliasDistrict, district: "pecatu"},
		{token: "pecatu", kind: aliasDistrict, district: "pecatu"},
		{token: "бингин", kind: aliasDistrict, district: "bingin"},
		{token: "bingin", kind: aliasDistrict, district: "bingin"},
		{token: "баланган", kind: aliasDistrict, district: "balangan"},
		{token: "balangan", kind: aliasDistrict, district: "balangan"},
		{token: "беноа", kind: aliasDistrict, district: "benoa"},
		{token: "benoa", kind: aliasDistrict, district: "benoa"},
		{token: "семиньяк", kind: aliasDistrict, district: "seminyak"},
		{token: "seminyak", kind: aliasDistrict, district: "seminyak"},
		{token: "чангу", kind: aliasDistrict, district: "canggu"},
		{token: "canggu", kind: aliasDistrict, district: "canggu"},
		{token: "берава", kind: aliasDistrict, district: "berawa"},
		{token: "berawa", kind: aliasDistrict, district: "berawa"},
		{token: "умалас", kind: aliasDistrict, district: "umalas"},
		{token: "umalas", kind: aliasDistrict, district: "umalas"},
		{token: "легиан", kind: aliasDistrict, district: "legian"},
		{token: "legian", kind: aliasDistrict, district: "legian"},
		{token: "кута", kind: aliasDistrict, district: "kuta"},
		{token: "kuta", kind: aliasDistrict, district: "kuta"},
		{token: "убуд", kind: aliasDistrict, district: "ubud"},
		{token: "ubud", kind: aliasDistrict, district: "ubud"},
		{token: "тегаллаланг", kind: aliasDistrict, district: "tegallalang"},
		{token: "tegallalang", kind: aliasDistrict, district: "tegallalang"},
		{token: "пелиатан", kind: aliasDistrict, district: "peliatan"},
		{token: "peliatan", kind: aliasDistrict, district: "peliatan"},
		{token: "санур", kind: aliasDistrict, district: "sanur"},
		{token: "sanur", kind: aliasDistrict, district: "sanur"},
		{token: "чандидаса", kind: aliasDistrict, district: "candidasa"},
		{token: "candidasa", kind: aliasDistrict, district: "candidasa"},
		{token: "амед", kind: aliasDistrict, district: "amed"},
		{token: "amed", kind: aliasDistrict, district: "amed"},

		{token: "рядом с морем", kind: aliasConcept, concept: "beachfront"},
		{token: "near the beach", kind: aliasConcept, concept: "beachfront"},
		{token: "dekat pantai", kind: aliasConcept, concept: "beachfront"},
		{token: "у моря", kind: aliasConcept, concept: "beachfront"},
		{token: "у пляжа", kind: aliasConcept, concept: "beachfront"},
		{token: "тихое место", kind: aliasConcept, concept: "quiet"},
		{token: "quiet area", kind: aliasConcept, concept: "quiet"},
	}

	return newGraph(regions, districts, aliases)
}
