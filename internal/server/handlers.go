// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pdiddy/orquideira/internal/browse"
	"github.com/pdiddy/orquideira/internal/catalog"
	"github.com/pdiddy/orquideira/pkg/types"
)

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Mode    types.SearchMode `json:"mode"`
	Query   string           `json:"query"`
	Count   int              `json:"count"`
	Results []types.Result   `json:"results"`
}

// ViewResponse is the body of GET /api/search/view. Rows is set in list
// view and Detail when an item is selected.
type ViewResponse struct {
	Mode     types.SearchMode `json:"mode"`
	Query    string           `json:"query"`
	Count    int              `json:"count"`
	Selected int              `json:"selected"`
	Rows     []browse.Row     `json:"rows,omitempty"`
	Detail   *browse.Detail   `json:"detail,omitempty"`
}

// ResearcherResponse is the body of GET /api/researchers/:id.
type ResearcherResponse struct {
	Researcher types.Researcher      `json:"researcher"`
	Stats      types.ResearcherStats `json:"stats"`
}

func parseMode(c echo.Context) (types.SearchMode, error) {
	raw := c.QueryParam("mode")
	if raw == "" {
		return types.ModePapers, nil
	}
	mode, err := types.ParseSearchMode(raw)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return mode, nil
}

func (s *Server) search(c echo.Context) error {
	mode, err := parseMode(c)
	if err != nil {
		return err
	}
	b := browse.New(s.deps.Search)
	if err := b.Submit(c.Request().Context(), mode, c.QueryParam("q")); err != nil {
		return err
	}
	st := b.Snapshot()
	return c.JSON(http.StatusOK, SearchResponse{Mode: st.Mode, Query: st.Query, Count: len(st.Results), Results: st.Results})
}

// searchView runs a search and returns the list view, or the detail view
// of the zero-based item named by selected.
func (s *Server) searchView(c echo.Context) error {
	mode, err := parseMode(c)
	if err != nil {
		return err
	}
	b := browse.New(s.deps.Search)
	if err := b.Submit(c.Request().Context(), mode, c.QueryParam("q")); err != nil {
		return err
	}

	if raw := c.QueryParam("selected"); raw != "" {
		i, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "selected must be an integer")
		}
		if err := b.Select(i); err != nil {
			return err
		}
	}

	st := b.Snapshot()
	resp := ViewResponse{Mode: st.Mode, Query: st.Query, Count: len(st.Results), Selected: st.Selected}
	if r, ok := st.Selection(); ok {
		d := browse.DetailOf(r)
		resp.Detail = &d
	} else {
		resp.Rows = browse.Rows(st.Results)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) catalogPapers(c echo.Context) error {
	papers, err := s.deps.Catalog.SearchPapers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, papers)
}

func (s *Server) catalogResearchers(c echo.Context) error {
	rs, err := s.deps.Catalog.SearchResearchers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rs)
}

func (s *Server) hotPapers(c echo.Context) error {
	n := catalog.DefaultHotPapers
	if raw := c.QueryParam("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "n must be a positive integer")
		}
		n = v
	}
	papers, err := s.deps.Catalog.HotPapers(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, papers)
}

func (s *Server) researcher(c echo.Context) error {
	r, err := s.deps.Catalog.ResearcherStrict(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ResearcherResponse{Researcher: r, Stats: catalog.Stats(r)})
}
