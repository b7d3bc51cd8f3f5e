package models

import "time"

// Locale is the language a reply is rendered in.
type Locale string

const (
	LocaleRU Locale = "ru"
	LocaleEN Locale = "en"
	LocaleID Locale = "id"
)

// Listing is a property record as stored in the listings table. Numeric-ish
// fields are kept as free-form strings because upstream feeds are messy;
// accessor methods below do the coercion.
type Listing struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id"`
	Type        string    `json:"type" gorm:"column:type"`
	District    string    `json:"district" gorm:"column:district"`
	Price       string    `json:"price" gorm:"column:price"`
	Bedrooms    string    `json:"bedrooms" gorm:"column:bedrooms"`
	Area        string    `json:"area" gorm:"column:area"`
	Pool        string    `json:"pool" gorm:"column:pool"`
	Status      string    `json:"status" gorm:"column:status"`
	Description string    `json:"description" gorm:"column:description"`
	URL         string    `json:"url" gorm:"column:url"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

// PriceValue parses the price field, stripping separators and currency noise.
// Unparseable prices coerce to 0 and therefore sort first; callers rely on
// that ordering.
func (l *Listing) PriceValue() float64 {
	return parseLooseNumber(l.Price)
}

// AreaValue parses the area field the same way.
func (l *Listing) AreaValue() float64 {
	return parseLooseNumber(l.Area)
}

// BedroomsValue returns the count parsed from the field's leading digits,
// so "3+1" yields 3. ok=false when no leading digits exist (studio, empty).
func (l *Listing) BedroomsValue() (int, bool) {
	n := 0
	seen := false
	for _, r := range l.Bedrooms {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			seen = true
			continue
		}
		if r == ' ' && !seen {
			continue
		}
		if !seen {
			return 0, false
		}
		break
	}
	return n, seen
}

// HasPool reports whether the listing has a usable pool field.
func (l *Listing) HasPool() bool {
	switch l.Pool {
	case "", "none", "no", "-":
		return false
	}
	return true
}

func parseLooseNumber(s string) float64 {
	var whole, frac float64
	var fracDigits int
	inFrac := false
	seen := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seen = true
			if inFrac {
				frac = frac*10 + float64(r-'0')
				fracDigits++
			} else {
				whole = whole*10 + float64(r-'0')
			}
		case r == '.' && seen && !inFrac:
			inFrac = true
		case r == ',' || r == ' ' || r == ' ':
			// thousands separators inside a number are ignored
		default:
			if seen {
				// trailing currency/unit text ends the number
				return finishNumber(whole, frac, fracDigits)
			}
		}
	}
	if !seen {
		return 0
	}
	return finishNumber(whole, frac, fracDigits)
}

func finishNumber(whole, frac float64, fracDigits int) float64 {
	for i := 0; i < fracDigits; i++ {
		frac /= 10
	}
	return whole + frac
}
