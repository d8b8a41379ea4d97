// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Placeholders substituted for missing profile registry fields.
const (
	EducationPlaceholder = "Não disponível"
	WorkTitlePlaceholder = "Título não disponível"
	WorkYearPlaceholder  = "N/A"
)

// PublicationSummary is a title and year pair taken from a researcher's
// registry works list. Year is kept as text because the registry reports
// it as a string and may omit it.
type PublicationSummary struct {
	Title string `json:"title" yaml:"title"`
	Year  string `json:"year" yaml:"year"`
}

// Author is a researcher found by author search and enriched from the
// profile registry. An Author only exists when enrichment succeeded.
type Author struct {
	Name string `json:"name" yaml:"name"`

	// ExternalID is the ORCID iD used to look up the registry profile.
	ExternalID string `json:"externalId" yaml:"external_id"`

	HIndex            int `json:"hIndex" yaml:"h_index"`
	TotalPublications int `json:"totalPublications" yaml:"total_publications"`
	TotalCitations    int `json:"totalCitations" yaml:"total_citations"`

	Affiliations            []string             `json:"affiliations" yaml:"affiliations"`
	ProfessionalExperiences []string             `json:"professionalExperiences" yaml:"professional_experiences"`
	EducationDetails        []string             `json:"educationDetails" yaml:"education_details"`
	Publications            []PublicationSummary `json:"publications" yaml:"publications"`

	// PersonalPageURL is the first personal URL on the profile, or nil.
	PersonalPageURL *string `json:"personalPageUrl" yaml:"personal_page_url"`

	// EducationSummary names the first education organization, or
	// EducationPlaceholder.
	EducationSummary string `json:"educationSummary" yaml:"education_summary"`
}
