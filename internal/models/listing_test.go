package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceValue(t *testing.T) {
	tests := []struct {
		price    string
		expected float64
	}{
		{"250000", 250000},
		{"250,000", 250000},
		{"250 000", 250000},
		{"$1,250,000 USD", 1250000},
		{"1.5", 1.5},
		{"IDR 2,500,000,000", 2500000000},
		{"contact us", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			l := Listing{Price: tt.price}
			assert.Equal(t, tt.expected, l.PriceValue())
		})
	}
}

func TestBedroomsValue(t *testing.T) {
	tests := []struct {
		bedrooms string
		expected int
		ok       bool
	}{
		{"3", 3, true},
		{" 4", 4, true},
		{"3+1", 3, true},
		{"2 bedrooms", 2, true},
		{"studio", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.bedrooms, func(t *testing.T) {
			l := Listing{Bedrooms: tt.bedrooms}
			n, ok := l.BedroomsValue()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestHasPool(t *testing.T) {
	tests := []struct {
		pool     string
		expected bool
	}{
		{"private", true},
		{"shared", true},
		{"yes", true},
		{"", false},
		{"none", false},
		{"no", false},
		{"-", false},
	}

	for _, tt := range tests {
		t.Run(tt.pool, func(t *testing.T) {
			l := Listing{Pool: tt.pool}
			assert.Equal(t, tt.expected, l.HasPool())
		})
	}
}

func TestDistrictSet(t *testing.T) {
	c := &SearchCriteria{District: "Ubud"}
	assert.Equal(t, []string{"Ubud"}, c.DistrictSet())

	// The explicit list wins over the single field.
	c.Districts = []string{"Canggu", "Berawa"}
	assert.Equal(t, []string{"Canggu", "Berawa"}, c.DistrictSet())

	assert.Nil(t, (&SearchCriteria{}).DistrictSet())
}
