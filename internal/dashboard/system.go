package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/JaimeStill/portfolio-admin/internal/certifications"
	"github.com/JaimeStill/portfolio-admin/internal/docs"
	"github.com/JaimeStill/portfolio-admin/internal/projects"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
)

// DefaultRecent is the number of activity entries a summary lists when no
// limit is configured.
const DefaultRecent = 8

type System interface {
	Summary(ctx context.Context) (*Summary, error)
}

type system struct {
	projects       projects.System
	docs           docs.System
	certifications certifications.System
	recent         int
	logger         *slog.Logger
}

func New(
	projects projects.System,
	docs docs.System,
	certifications certifications.System,
	recent int,
	logger *slog.Logger,
) System {
	if recent < 1 {
		recent = DefaultRecent
	}
	return &system{
		projects:       projects,
		docs:           docs,
		certifications: certifications,
		recent:         recent,
		logger:         logger.With("system", "dashboard"),
	}
}

var newestFirst = pagination.SortFields{{Field: "UpdatedAt", Descending: true}}

func (s *system) Summary(ctx context.Context) (*Summary, error) {
	var (
		summary Summary
		err     error
	)

	if summary.Projects, err = s.projectCounts(ctx); err != nil {
		return nil, err
	}
	if summary.DocPages, err = s.pageCounts(ctx); err != nil {
		return nil, err
	}
	if summary.Certifications, err = s.certificationCounts(ctx); err != nil {
		return nil, err
	}

	sections, err := s.docs.ListSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("count doc sections: %w", err)
	}
	summary.DocSections = len(sections)

	if summary.Recent, err = s.activity(ctx); err != nil {
		return nil, err
	}

	s.logger.Debug("dashboard summarized",
		"projects", summary.Projects.Total,
		"doc_pages", summary.DocPages.Total,
		"certifications", summary.Certifications.Total,
	)
	return &summary, nil
}

// count reads the total of a one-row page for each status filter.
func count[S ~string](statuses []S, total func(status *S) (int, error)) (Counts, error) {
	all, err := total(nil)
	if err != nil {
		return Counts{}, err
	}

	counts := Counts{Total: all, ByStatus: make(map[string]int, len(statuses))}
	for _, status := range statuses {
		n, err := total(&status)
		if err != nil {
			return Counts{}, err
		}
		counts.ByStatus[string(status)] = n
	}
	return counts, nil
}

var probe = pagination.PageRequest{Page: 1, PageSize: 1}

func (s *system) projectCounts(ctx context.Context) (Counts, error) {
	counts, err := count(projects.Statuses, func(status *projects.Status) (int, error) {
		result, err := s.projects.List(ctx, probe, projects.Filters{Status: status})
		if err != nil {
			return 0, err
		}
		return result.Total, nil
	})
	if err != nil {
		return Counts{}, fmt.Errorf("count projects: %w", err)
	}
	return counts, nil
}

func (s *system) pageCounts(ctx context.Context) (Counts, error) {
	counts, err := count(docs.Statuses, func(status *docs.Status) (int, error) {
		result, err := s.docs.ListPages(ctx, probe, docs.PageFilters{Status: status})
		if err != nil {
			return 0, err
		}
		return result.Total, nil
	})
	if err != nil {
		return Counts{}, fmt.Errorf("count doc pages: %w", err)
	}
	return counts, nil
}

func (s *system) certificationCounts(ctx context.Context) (Counts, error) {
	counts, err := count(certifications.Statuses, func(status *certifications.Status) (int, error) {
		result, err := s.certifications.List(ctx, probe, certifications.Filters{Status: status})
		if err != nil {
			return 0, err
		}
		return result.Total, nil
	})
	if err != nil {
		return Counts{}, fmt.Errorf("count certifications: %w", err)
	}
	return counts, nil
}

// activity merges the newest records of each type into one list, newest
// first, truncated to the configured limit.
func (s *system) activity(ctx context.Context) ([]Activity, error) {
	page := pagination.PageRequest{Page: 1, PageSize: s.recent, Sort: newestFirst}
	entries := make([]Activity, 0, s.recent*3)

	ps, err := s.projects.List(ctx, page, projects.Filters{})
	if err != nil {
		return nil, fmt.Errorf("recent projects: %w", err)
	}
	for _, p := range ps.Data {
		entries = append(entries, Activity{KindProject, p.ID, p.Title, string(p.Status), p.UpdatedAt})
	}

	pages, err := s.docs.ListPages(ctx, page, docs.PageFilters{})
	if err != nil {
		return nil, fmt.Errorf("recent doc pages: %w", err)
	}
	for _, p := range pages.Data {
		entries = append(entries, Activity{KindDocPage, p.ID, p.Title, string(p.Status), p.UpdatedAt})
	}

	certs, err := s.certifications.List(ctx, page, certifications.Filters{})
	if err != nil {
		return nil, fmt.Errorf("recent certifications: %w", err)
	}
	for _, c := range certs.Data {
		entries = append(entries, Activity{KindCertification, c.ID, c.Name, string(c.Status), c.UpdatedAt})
	}

	slices.SortStableFunc(entries, func(a, b Activity) int {
		return cmp.Compare(b.UpdatedAt.UnixNano(), a.UpdatedAt.UnixNano())
	})
	if len(entries) > s.recent {
		entries = entries[:s.recent]
	}
	return entries, nil
}
