package models

import "strings"

// Category is the classified intent of an inquiry. The set is closed:
// template selection switches over these values exhaustively.
type Category string

const (
	CategoryPrice        Category = "Price Inquiry"
	CategoryAvailability Category = "Availability Check"
	CategoryVisit        Category = "Schedule Visit"
	CategoryNeighborhood Category = "Neighborhood Info"
	CategoryFinancing    Category = "Financing Question"
	CategoryGeneral      Category = "General Inquiry"

	// CategoryUnknown is the error sentinel used when the pipeline's outer
	// guard trips. It is never produced by categorization itself.
	CategoryUnknown Category = "Unknown"
)

// Categories lists the canonical categories a model classification may
// resolve to, in the order they appear in the categorization prompt.
var Categories = []Category{
	CategoryPrice,
	CategoryAvailability,
	CategoryVisit,
	CategoryNeighborhood,
	CategoryFinancing,
	CategoryGeneral,
}

// ParseCategory canonicalizes raw model output into a Category.
// Matching is case-insensitive after trimming whitespace and trailing
// punctuation the model tends to append. Anything that does not match one
// of the six canonical names maps to General Inquiry; the second return
// value reports whether the input matched exactly so callers can log
// unexpected output.
func ParseCategory(raw string) (Category, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimRight(cleaned, ".:!")
	cleaned = strings.TrimSpace(cleaned)

	for _, c := range Categories {
		if strings.EqualFold(cleaned, string(c)) {
			return c, true
		}
	}
	return CategoryGeneral, false
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}
