package agentconfig

import "sort"

// Preset personalities and companies. Each preset is a plain constructor; the
// registries below map a name to it so presets can be picked from metadata or
// the command line. A new preset needs a constructor and one registry entry.

func ProfessionalConsultant() AgentPersonality {
	return AgentPersonality{
		Traits:             []string{"professional", "knowledgeable", "analytical", "patient"},
		CommunicationStyle: "clear, consultative, and thorough",
		Tone:               "professional",
		ExpertiseLevel:     "expert",
		ResponseSpeed:      "deliberate",
	}
}

func FriendlySalesRep() AgentPersonality {
	return AgentPersonality{
		Traits:             []string{"friendly", "enthusiastic", "persuasive", "empathetic"},
		CommunicationStyle: "warm, engaging, and solution-focused",
		Tone:               "friendly",
		ExpertiseLevel:     "expert",
		ResponseSpeed:      "conversational",
	}
}

func TechnicalExpert() AgentPersonality {
	return AgentPersonality{
		Traits:             []string{"technical", "precise", "logical", "detail-oriented"},
		CommunicationStyle: "clear, technical, and data-driven",
		Tone:               "professional",
		ExpertiseLevel:     "expert",
		ResponseSpeed:      "methodical",
	}
}

func CustomerService() AgentPersonality {
	return AgentPersonality{
		Traits:             []string{"helpful", "patient", "empathetic", "solution-oriented"},
		CommunicationStyle: "warm, supportive, and problem-solving",
		Tone:               "friendly",
		ExpertiseLevel:     "knowledgeable",
		ResponseSpeed:      "responsive",
	}
}

func RealEstateAgency() CompanyDetails {
	return CompanyDetails{
		Name:             "Premier Realty Group",
		Description:      "A leading real estate agency specializing in luxury properties",
		Specialties:      []string{"luxury homes", "commercial properties", "investment properties"},
		Location:         "San Francisco Bay Area",
		YearsInBusiness:  15,
		MissionStatement: "Helping clients find their perfect home",
		Values:           []string{"integrity", "excellence", "client satisfaction"},
	}
}

func InsuranceCompany() CompanyDetails {
	return CompanyDetails{
		Name:             "SecureLife Insurance",
		Description:      "Comprehensive insurance solutions for individuals and families",
		Specialties:      []string{"life insurance", "health insurance", "auto insurance", "home insurance"},
		Location:         "California",
		YearsInBusiness:  8,
		MissionStatement: "Protecting what matters most",
		Values:           []string{"trust", "protection", "peace of mind"},
	}
}

func FinancialServices() CompanyDetails {
	return CompanyDetails{
		Name:             "WealthMax Financial",
		Description:      "Personalized financial planning and investment management",
		Specialties:      []string{"retirement planning", "investment management", "tax planning", "estate planning"},
		Location:         "New York",
		YearsInBusiness:  12,
		MissionStatement: "Building wealth for a secure future",
		Values:           []string{"integrity", "excellence", "client success"},
	}
}

var personalityTemplates = map[string]func() AgentPersonality{
	"professional_consultant": ProfessionalConsultant,
	"friendly_sales_rep":      FriendlySalesRep,
	"technical_expert":        TechnicalExpert,
	"customer_service":        CustomerService,
}

var companyTemplates = map[string]func() CompanyDetails{
	"real_estate_agency": RealEstateAgency,
	"insurance_company":  InsuranceCompany,
	"financial_services": FinancialServices,
}

// PersonalityTemplate returns a fresh copy of the named preset. Unknown names
// report false.
func PersonalityTemplate(name string) (AgentPersonality, bool) {
	fn, ok := personalityTemplates[name]
	if !ok {
		return AgentPersonality{}, false
	}
	return fn(), true
}

func CompanyTemplate(name string) (CompanyDetails, bool) {
	fn, ok := companyTemplates[name]
	if !ok {
		return CompanyDetails{}, false
	}
	return fn(), true
}

func PersonalityTemplateNames() []string {
	return sortedKeys(personalityTemplates)
}

func CompanyTemplateNames() []string {
	return sortedKeys(companyTemplates)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
