package llm

import (
	"testing"

	"realassist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("expand substitutes message", func(t *testing.T) {
		out, err := Render(TemplateExpand, map[string]string{"message": "2BR near downtown"})
		require.NoError(t, err)
		assert.Contains(t, out, `Original inquiry: "2BR near downtown"`)
		assert.NotContains(t, out, "{message}")
	})

	t.Run("answer substitutes context and question", func(t *testing.T) {
		out, err := Render(TemplatePriceInquiry, map[string]string{
			"context":  "Listing LST-1: $475,000",
			"question": "how much is it",
		})
		require.NoError(t, err)
		assert.Contains(t, out, "Listing LST-1: $475,000")
		assert.Contains(t, out, "Customer inquiry: how much is it")
	})

	t.Run("categorize lists all six categories", func(t *testing.T) {
		out, err := Render(TemplateCategorize, map[string]string{"message": "hello"})
		require.NoError(t, err)
		for _, c := range models.Categories {
			assert.Contains(t, out, c.String())
		}
	})

	t.Run("missing variable renders literally", func(t *testing.T) {
		out, err := Render(TemplateExpand, nil)
		require.NoError(t, err)
		assert.Contains(t, out, "{message}")
	})

	t.Run("unknown template id errors", func(t *testing.T) {
		_, err := Render(TemplateID(999), nil)
		assert.Error(t, err)
	})
}

func TestTemplateForCategory(t *testing.T) {
	tests := []struct {
		category models.Category
		expected TemplateID
	}{
		{models.CategoryPrice, TemplatePriceInquiry},
		{models.CategoryAvailability, TemplateAvailabilityCheck},
		{models.CategoryVisit, TemplateScheduleVisit},
		{models.CategoryNeighborhood, TemplateNeighborhoodInfo},
		{models.CategoryFinancing, TemplateFinancingQuestion},
		{models.CategoryGeneral, TemplateGeneralInquiry},
		// Fallback arm: anything outside the closed set takes the
		// General Inquiry template.
		{models.CategoryUnknown, TemplateGeneralInquiry},
		{models.Category("Bogus"), TemplateGeneralInquiry},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, TemplateForCategory(tt.category))
		})
	}
}
