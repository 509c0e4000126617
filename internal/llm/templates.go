package llm

import (
	"fmt"
	"strings"

	"realassist/internal/models"
)

// TemplateID identifies a prompt template. The set is closed; Render and
// TemplateForCategory switch over it exhaustively.
type TemplateID int

const (
	TemplateExpand TemplateID = iota
	TemplateCategorize
	TemplatePriceInquiry
	TemplateAvailabilityCheck
	TemplateScheduleVisit
	TemplateNeighborhoodInfo
	TemplateFinancingQuestion
	TemplateGeneralInquiry
)

const expandPrompt = `You are a real estate assistant. Your task is to clarify and expand the following real estate inquiry to make it more specific and searchable.

Original inquiry: "{message}"

Please provide a clearer, more detailed version of this inquiry that would help in finding relevant property information. Focus on:
- Property type and features
- Location preferences
- Budget considerations
- Specific needs or requirements

Expanded inquiry:`

const categorizePrompt = `Classify the following real estate inquiry into exactly one of these categories:
- Price Inquiry
- Availability Check
- Schedule Visit
- Neighborhood Info
- Financing Question
- General Inquiry

Inquiry: "{message}"

Consider the main intent of the inquiry. Respond with only the category name.

Category:`

// answerPrompt builds a retrieval-augmented answer template for one
// specialization. All six share the same context/question scaffold.
func answerPrompt(role, guidance string) string {
	return fmt.Sprintf(`You are a helpful real estate assistant %s.

Context from property database:
{context}

Customer inquiry: {question}

%s

Response:`, role, guidance)
}

var templates = map[TemplateID]string{
	TemplateExpand:     expandPrompt,
	TemplateCategorize: categorizePrompt,
	TemplatePriceInquiry: answerPrompt("specializing in pricing information",
		`Please provide a comprehensive response about pricing, including:
- Current market prices for similar properties
- Price ranges and factors affecting pricing
- Payment options and financing considerations
- Value propositions`),
	TemplateAvailabilityCheck: answerPrompt("specializing in property availability",
		`Please provide information about:
- Current availability status
- Timeline for availability
- Similar available properties
- Next steps for interested buyers`),
	TemplateScheduleVisit: answerPrompt("specializing in property viewings",
		`Please provide information about:
- How to schedule a viewing
- What to expect during the visit
- Best times for viewings
- Preparation recommendations`),
	TemplateNeighborhoodInfo: answerPrompt("specializing in neighborhood information",
		`Please provide comprehensive neighborhood information including:
- Local amenities and facilities
- Transportation options
- Safety and community features
- Lifestyle and demographics`),
	TemplateFinancingQuestion: answerPrompt("specializing in financing options",
		`Please provide information about:
- Financing options available
- Loan requirements and processes
- Down payment considerations
- Monthly payment estimates`),
	TemplateGeneralInquiry: answerPrompt("providing general information",
		`Please provide a comprehensive and helpful response based on the available information.`),
}

// TemplateForCategory maps a resolved category to its answer template.
// Unrecognized categories (including the Unknown sentinel) take the
// General Inquiry template.
func TemplateForCategory(c models.Category) TemplateID {
	switch c {
	case models.CategoryPrice:
		return TemplatePriceInquiry
	case models.CategoryAvailability:
		return TemplateAvailabilityCheck
	case models.CategoryVisit:
		return TemplateScheduleVisit
	case models.CategoryNeighborhood:
		return TemplateNeighborhoodInfo
	case models.CategoryFinancing:
		return TemplateFinancingQuestion
	case models.CategoryGeneral:
		return TemplateGeneralInquiry
	default:
		return TemplateGeneralInquiry
	}
}

// Render fills a template's {name} placeholders from vars.
func Render(id TemplateID, vars map[string]string) (string, error) {
	tpl, ok := templates[id]
	if !ok {
		return "", fmt.Errorf("unknown template id %d", id)
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	// Missing variables render as literal placeholders; the model copes
	// with those better than an aborted call would.
	return strings.NewReplacer(pairs...).Replace(tpl), nil
}
