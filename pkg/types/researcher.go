// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Job is one professional position on a researcher profile. EndDate is
// empty for a current position.
type Job struct {
	Role         string `json:"role" yaml:"role"`
	Organization string `json:"organization" yaml:"organization"`
	StartDate    string `json:"startDate" yaml:"start_date"`
	EndDate      string `json:"endDate,omitempty" yaml:"end_date,omitempty"`
}

// Education is one degree on a researcher profile.
type Education struct {
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	Field       string `json:"field,omitempty" yaml:"field,omitempty"`
	StartDate   string `json:"startDate" yaml:"start_date"`
	EndDate     string `json:"endDate,omitempty" yaml:"end_date,omitempty"`
}

// Work is a catalog paper summarized on a researcher profile.
type Work struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Year      int    `json:"year" yaml:"year"`
	Citations int    `json:"citations" yaml:"citations"`
}

// Researcher is a profile from the local mock catalog. Citations and
// Publications map a year to that year's count.
type Researcher struct {
	ID           string      `json:"id" yaml:"id"`
	Name         string      `json:"name" yaml:"name"`
	ORCID        string      `json:"orcidId" yaml:"orcid_id"`
	Avatar       string      `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Bio          string      `json:"bio" yaml:"bio"`
	Institution  string      `json:"institution" yaml:"institution"`
	Country      string      `json:"country" yaml:"country"`
	HIndex       int         `json:"hIndex" yaml:"h_index"`
	Citations    map[int]int `json:"citations" yaml:"citations"`
	Publications map[int]int `json:"publications" yaml:"publications"`
	Jobs         []Job       `json:"jobs" yaml:"jobs"`
	Education    []Education `json:"education" yaml:"education"`
	Works        []Work      `json:"works" yaml:"works"`
}

// YearCount is one point of a per-year series.
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// ResearcherStats is the chart data behind the profile dashboard.
type ResearcherStats struct {
	CitationsByYear    []YearCount `json:"citationsByYear" yaml:"citations_by_year"`
	PublicationsByYear []YearCount `json:"publicationsByYear" yaml:"publications_by_year"`
	TotalCitations     int         `json:"totalCitations" yaml:"total_citations"`
	TotalPublications  int         `json:"totalPublications" yaml:"total_publications"`
}
