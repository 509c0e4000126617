package models

import "strings"

// Listing is one property row from the listings source used to build the
// vector index.
// @Description Property listing used for retrieval context
type Listing struct {
	ListingID     string  `json:"listing_id" example:"LST-1042"`
	Title         string  `json:"title" example:"Bright 3BR Craftsman"`
	Address       string  `json:"address" example:"118 Maple Ave"`
	City          string  `json:"city" example:"Seattle"`
	State         string  `json:"state" example:"WA"`
	Zip           string  `json:"zip" example:"98103"`
	Price         float64 `json:"price" example:"475000"`
	Bedrooms      int     `json:"bedrooms" example:"3"`
	Bathrooms     int     `json:"bathrooms" example:"2"`
	SquareFootage int     `json:"square_footage" example:"1750"`
	Amenities     string  `json:"amenities" example:"garage, garden"`
}

// ListingSnippet is one retrieved text snippet with its listing metadata.
type ListingSnippet struct {
	Text      string  `json:"text"`
	ListingID string  `json:"listing_id"`
	City      string  `json:"city"`
	Price     float64 `json:"price"`
	Bedrooms  int     `json:"bedrooms"`
	Bathrooms int     `json:"bathrooms"`
}

// RetrievedContext is the ordered snippet sequence returned by the
// retrieval provider for one expanded query. Ephemeral: it lives only
// within a single pipeline invocation.
type RetrievedContext []ListingSnippet

// Text joins the snippets into the context block handed to the answer
// prompt, most similar first.
func (rc RetrievedContext) Text() string {
	if len(rc) == 0 {
		return "No matching listings found."
	}
	parts := make([]string, len(rc))
	for i, s := range rc {
		parts[i] = s.Text
	}
	return strings.Join(parts, "\n\n")
}
