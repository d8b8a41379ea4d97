// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"sync"

	"github.com/pdiddy/orquideira/internal/logger"
	"github.com/pdiddy/orquideira/pkg/types"
)

// enrichAuthors looks up every stub's profile concurrently and joins the
// two sources. Each lookup writes only its own slot, so no lock is needed.
// A failed lookup leaves its slot empty and the author is dropped; it never
// cancels the other lookups. The survivors keep the order of stubs.
// limit bounds concurrent lookups; 0 means one goroutine per stub.
func enrichAuthors(ctx context.Context, stubs []authorStub, registry ProfileRegistry, limit int) []types.Author {
	slots := make([]*types.Author, len(stubs))

	var sem chan struct{}
	if limit > 0 {
		sem = make(chan struct{}, limit)
	}

	var wg sync.WaitGroup
	for i, stub := range stubs {
		wg.Add(1)
		go func(i int, stub authorStub) {
			defer wg.Done()

			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					enrichmentsTotal.WithLabelValues("failed").Inc()
					return
				}
			}

			profile, err := registry.Profile(ctx, stub.ORCID)
			if err != nil {
				enrichmentsTotal.WithLabelValues("failed").Inc()
				logger.For(ctx).WithError(err).WithField("orcid", stub.ORCID).
					Debug("profile lookup failed, dropping author")
				return
			}
			enrichmentsTotal.WithLabelValues("ok").Inc()
			author := joinAuthor(stub, profile)
			slots[i] = &author
		}(i, stub)
	}
	wg.Wait()

	authors := make([]types.Author, 0, len(stubs))
	for _, a := range slots {
		if a != nil {
			authors = append(authors, *a)
		}
	}
	return authors
}

// joinAuthor merges search fields with profile fields into one record.
func joinAuthor(stub authorStub, p Profile) types.Author {
	a := types.Author{
		Name:                    stub.Name,
		ExternalID:              stub.ORCID,
		HIndex:                  stub.HIndex,
		TotalPublications:       stub.PublicationCount,
		TotalCitations:          stub.CitationCount,
		Affiliations:            p.Affiliations,
		ProfessionalExperiences: p.ProfessionalExperiences,
		EducationDetails:        p.EducationDetails,
		Publications:            p.Publications,
		PersonalPageURL:         p.PersonalPageURL,
		EducationSummary:        p.EducationSummary,
	}
	if a.Affiliations == nil {
		a.Affiliations = []string{}
	}
	if a.ProfessionalExperiences == nil {
		a.ProfessionalExperiences = []string{}
	}
	if a.EducationDetails == nil {
		a.EducationDetails = []string{}
	}
	if a.Publications == nil {
		a.Publications = []types.PublicationSummary{}
	}
	if a.EducationSummary == "" {
		a.EducationSummary = types.EducationPlaceholder
	}
	return a
}
