package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expected    Category
		wantMatched bool
	}{
		{
			name:        "exact match",
			raw:         "Price Inquiry",
			expected:    CategoryPrice,
			wantMatched: true,
		},
		{
			name:        "surrounding whitespace",
			raw:         "  Availability Check \n",
			expected:    CategoryAvailability,
			wantMatched: true,
		},
		{
			name:        "case insensitive",
			raw:         "schedule visit",
			expected:    CategoryVisit,
			wantMatched: true,
		},
		{
			name:        "trailing period",
			raw:         "Neighborhood Info.",
			expected:    CategoryNeighborhood,
			wantMatched: true,
		},
		{
			name:        "trailing colon and whitespace",
			raw:         "Financing Question: ",
			expected:    CategoryFinancing,
			wantMatched: true,
		},
		{
			name:        "general inquiry",
			raw:         "General Inquiry",
			expected:    CategoryGeneral,
			wantMatched: true,
		},
		{
			name:        "free text falls back",
			raw:         "This is probably a question about pricing",
			expected:    CategoryGeneral,
			wantMatched: false,
		},
		{
			name:        "empty output falls back",
			raw:         "",
			expected:    CategoryGeneral,
			wantMatched: false,
		},
		{
			name:        "unknown sentinel is not parseable",
			raw:         "Unknown",
			expected:    CategoryGeneral,
			wantMatched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, matched := ParseCategory(tt.raw)
			assert.Equal(t, tt.expected, category)
			assert.Equal(t, tt.wantMatched, matched)
		})
	}
}

func TestInquiryValidate(t *testing.T) {
	valid := Inquiry{
		ListingID: "LST-1",
		Name:      "Dana",
		Email:     "dana@example.com",
		Message:   "Is this available?",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Inquiry)
	}{
		{"missing listing id", func(i *Inquiry) { i.ListingID = " " }},
		{"missing email", func(i *Inquiry) { i.Email = "" }},
		{"email without at sign", func(i *Inquiry) { i.Email = "not-an-email" }},
		{"missing message", func(i *Inquiry) { i.Message = "\t" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inquiry := valid
			tt.mutate(&inquiry)
			err := inquiry.Validate()
			assert.ErrorIs(t, err, ErrInvalidInquiry)
		})
	}
}
