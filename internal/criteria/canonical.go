package criteria

import "strings"

// Canonical keys are what the resolver compares; raw string equality is
// never used for type or district matching.

// CanonicalType collapses loose spelling and language variants of a property
// type onto one label. Unrecognized input passes through unchanged, which
// makes the function idempotent.
func CanonicalType(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lower, "apart-villa") || strings.Contains(lower, "апарт-вилл"):
		return "Apart-villa"
	case strings.Contains(lower, "вилл") || strings.Contains(lower, "villa"):
		return "Villa"
	case strings.Contains(lower, "апарт") || strings.Contains(lower, "квартир") || strings.Contains(lower, "apart"):
		return "Apartment"
	case strings.Contains(lower, "дом") || strings.Contains(lower, "house"):
		return "House"
	case strings.Contains(lower, "коммер") || strings.Contains(lower, "commercial"):
		return "Commercial"
	case strings.Contains(lower, "участок") || strings.Contains(lower, "land"):
		return "Land"
	default:
		return raw
	}
}

// districtKeys maps known name variants (ru/en, with or without diacritics
// or hyphens) to a stable composite short-code:name key.
var districtKeys = map[string]string{
	"ubud":        "ubd:ubud",
	"убуд":        "ubd:ubud",
	"canggu":      "cgu:canggu",
	"чангу":       "cgu:canggu",
	"seminyak":    "smk:seminyak",
	"семиньяк":    "smk:seminyak",
	"uluwatu":     "ulw:uluwatu",
	"улувату":     "ulw:uluwatu",
	"jimbaran":    "jmb:jimbaran",
	"джимбаран":   "jmb:jimbaran",
	"nusa dua":    "nsd:nusa dua",
	"nusa-dua":    "nsd:nusa dua",
	"нуса дуа":    "nsd:nusa dua",
	"нуса-дуа":    "nsd:nusa dua",
	"ungasan":     "ung:ungasan",
	"унгасан":     "ung:ungasan",
	"pecatu":      "pct:pecatu",
	"печату":      "pct:pecatu",
	"bingin":      "bgn:bingin",
	"бингин":      "bgn:bingin",
	"balangan":    "blg:balangan",
	"баланган":    "blg:balangan",
	"benoa":       "bno:benoa",
	"беноа":       "bno:benoa",
	"berawa":      "brw:berawa",
	"берава":      "brw:berawa",
	"umalas":      "uml:umalas",
	"умалас":      "uml:umalas",
	"legian":      "lgn:legian",
	"легиан":      "lgn:legian",
	"kuta":        "kta:kuta",
	"кута":        "kta:kuta",
	"tegallalang": "tgl:tegallalang",
	"тегаллаланг": "tgl:tegallalang",
	"peliatan":    "plt:peliatan",
	"пелиатан":    "plt:peliatan",
	"mas":         "mas:mas",
	"мас":         "mas:mas",
	"sanur":       "snr:sanur",
	"санур":       "snr:sanur",
	"candidasa":   "cnd:candidasa",
	"чандидаса":   "cnd:candidasa",
	"amed":        "amd:amed",
	"амед":        "amd:amed",
}

// CanonicalDistrict maps a district name variant to its composite key.
// Unknown input is lowercased and returned as-is: two differently spelled
// unknown districts will not canonicalize to the same key.
func CanonicalDistrict(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if key, ok := districtKeys[lower]; ok {
		return key
	}
	return lower
}

// districtCodes is the reverse lookup: short code -> canonical name.
var districtCodes = map[string]string{}

func init() {
	for _, key := range districtKeys {
		i := strings.IndexByte(key, ':')
		districtCodes[key[:i]] = key[i+1:]
	}
}

// DistrictCode returns the stable three-letter code for a known district
// name variant. Codes are the compact wire form of a district in size-capped
// payloads.
func DistrictCode(raw string) (string, bool) {
	key, ok := districtKeys[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", false
	}
	return key[:strings.IndexByte(key, ':')], true
}

// DistrictFromCode resolves a short code back to the canonical district
// name.
func DistrictFromCode(code string) (string, bool) {
	name, ok := districtCodes[code]
	return name, ok
}
