package ai

import "strings"

type industryKnowledge struct {
	Knowledge []string
	// Tools only make sense for this industry and are listed next to the
	// general call tools.
	Tools []string
}

var industries = map[string]industryKnowledge{
	"real estate": {
		Knowledge: []string{
			"Knowledgeable about the local real estate market",
			"Understand property values, market trends, and neighborhood insights",
			"Familiar with buying/selling processes, financing options, and legal requirements",
			"Can provide market analysis and property recommendations",
		},
		Tools: []string{
			"schedule_property_viewing: Schedule a property viewing when user requests it (needs: property_address, preferred_date, preferred_time).",
			"get_property_info: Get property details when user asks about a specific property (needs: property_address).",
			"send_property_listings: Send property listings matching user's search criteria (needs: criteria).",
		},
	},
	"insurance": {
		Knowledge: []string{
			"Knowledgeable about various insurance products and coverage options",
			"Understand risk assessment and policy customization",
			"Familiar with claims processes and customer protection",
			"Can provide quotes and explain coverage benefits",
		},
	},
	"financial services": {
		Knowledge: []string{
			"Knowledgeable about financial products and investment options",
			"Understand market conditions and financial planning",
			"Familiar with regulatory requirements and compliance",
			"Can provide financial advice and product recommendations",
		},
	},
	"healthcare": {
		Knowledge: []string{
			"Knowledgeable about healthcare services and treatment options",
			"Understand patient care and medical procedures",
			"Familiar with insurance coverage and billing processes",
			"Can provide information about appointments and services",
		},
	},
	"technology": {
		Knowledge: []string{
			"Knowledgeable about software, cloud infrastructure, and digital transformation",
			"Understand integration, security, and scalability trade-offs",
			"Familiar with implementation timelines, pricing models, and ROI analysis",
			"Can translate technical details into business outcomes",
		},
	},
}

// lookupIndustry matches case-insensitively after trimming. Unknown
// industries simply have no knowledge fragment.
func lookupIndustry(industry string) (industryKnowledge, bool) {
	k, ok := industries[strings.ToLower(strings.TrimSpace(industry))]
	return k, ok
}

// KnownIndustries lists the industries with a knowledge fragment.
func KnownIndustries() []string {
	return []string{"financial services", "healthcare", "insurance", "real estate", "technology"}
}
