// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/orquideira/internal/httputil"
	"github.com/pdiddy/orquideira/pkg/types"
)

// orcidAPIBase is the ORCID public API root. Declared as a var so tests can
// substitute an httptest server.
var orcidAPIBase = "https://pub.orcid.org/v3.0"

const orcidService = "ORCID"

// errMalformedProfile is returned when the registry body is not a JSON object.
var errMalformedProfile = errors.New("malformed ORCID profile: expected a JSON object")

// Profile holds the fields extracted from an ORCID record.
type Profile struct {
	PersonalPageURL         *string
	EducationSummary        string
	Affiliations            []string
	ProfessionalExperiences []string
	EducationDetails        []string
	Publications            []types.PublicationSummary
}

// ORCIDClient reads public ORCID records.
type ORCIDClient struct {
	Client *httputil.Client

	// BaseURL overrides orcidAPIBase when set.
	BaseURL string

	// Token is an optional read-public bearer token.
	Token string
}

// Profile fetches and extracts the record for orcidID.
func (c *ORCIDClient) Profile(ctx context.Context, orcidID string) (Profile, error) {
	base := c.BaseURL
	if base == "" {
		base = orcidAPIBase
	}
	reqURL := strings.TrimRight(base, "/") + "/" + url.PathEscape(orcidID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	start := time.Now()
	resp, err := c.Client.Do(ctx, req)
	observeUpstream(orcidService, start)
	if err != nil {
		return Profile{}, fmt.Errorf("ORCID API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Profile{}, &UpstreamError{Service: orcidService, StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Profile{}, fmt.Errorf("parsing ORCID response: %w", err)
	}
	return parseProfile(doc)
}

// parseProfile extracts the profile fields from a decoded ORCID record.
// Every path tolerates missing levels and falls back to its default.
func parseProfile(doc any) (Profile, error) {
	if _, ok := doc.(map[string]any); !ok {
		return Profile{}, errMalformedProfile
	}
	root := node{doc}
	person := root.key("person")
	activities := root.key("activities-summary")

	p := Profile{
		Affiliations:            []string{},
		ProfessionalExperiences: []string{},
		EducationDetails:        []string{},
		Publications:            []types.PublicationSummary{},
	}

	if u := person.path("urls", "url").at(0).key("value").str(); u.ok {
		p.PersonalPageURL = &u.s
	}

	for _, g := range person.path("affiliations", "affiliation-group").items() {
		if name := g.path("affiliation-summary", "organization", "name").str(); name.ok {
			p.Affiliations = append(p.Affiliations, name.s)
		}
	}

	educations := summaries(activities.key("educations"), "education")
	p.EducationSummary = types.EducationPlaceholder
	if len(educations) > 0 {
		p.EducationSummary = educations[0].path("organization", "name").str().or(types.EducationPlaceholder)
	}
	p.EducationDetails = roleTitles(educations)
	p.ProfessionalExperiences = roleTitles(summaries(activities.key("employments"), "employment"))

	for _, g := range activities.path("works", "group").items() {
		ws := g.key("work-summary").at(0)
		title := cleanText(ws.path("title", "title", "value").str().or(""))
		if title == "" {
			title = types.WorkTitlePlaceholder
		}
		p.Publications = append(p.Publications, types.PublicationSummary{
			Title: title,
			Year:  ws.path("publication-date", "year", "value").str().or(types.WorkYearPlaceholder),
		})
	}

	return p, nil
}

// summaries returns the entries of an ORCID affiliation section such as
// educations or employments. Both the flat "<kind>-summary" list and the
// v3.0 "affiliation-group[].summaries[]" layout are read.
func summaries(section node, kind string) []node {
	field := kind + "-summary"
	if flat := section.key(field).items(); len(flat) > 0 {
		return flat
	}
	var out []node
	for _, g := range section.key("affiliation-group").items() {
		for _, s := range g.key("summaries").items() {
			if sum := s.key(field); sum.present() {
				out = append(out, sum)
			}
		}
	}
	return out
}

func roleTitles(entries []node) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if title := e.key("role-title").str(); title.ok {
			out = append(out, title.s)
		}
	}
	return out
}
