package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// Ensure AssignmentService implements the interface.
var _ driving.AssignmentService = (*AssignmentService)(nil)

// AssignmentService picks fragments that still need a translation.
type AssignmentService struct {
	trechos   driven.TrechoStore
	sites     driven.SiteStore
	snapshots driven.SnapshotStore
}

// NewAssignmentService creates a new assignment service.
// snapshots may be nil; candidates then carry no snapshot link.
func NewAssignmentService(trechos driven.TrechoStore, sites driven.SiteStore, snapshots driven.SnapshotStore) *AssignmentService {
	return &AssignmentService{
		trechos:   trechos,
		sites:     sites,
		snapshots: snapshots,
	}
}

// SelectForTranslation returns unassigned fragments in store order.
//
// Fragments that fail to parse were already dropped by the store; fragments
// without an id are skipped because they could never be registered. A
// fragment whose site cannot be found is still returned, with an empty
// site URL.
func (s *AssignmentService) SelectForTranslation(
	ctx context.Context,
	opts domain.SelectionOptions,
) ([]domain.TranslationCandidate, error) {
	if s.trechos == nil || s.sites == nil {
		return nil, domain.ErrNotImplemented
	}

	trechos, err := s.trechos.GetAll(ctx, opts.SiteID)
	if err != nil {
		return nil, fmt.Errorf("select for translation: %w", err)
	}

	candidates := make([]domain.TranslationCandidate, 0)
	siteURLs := make(map[int]string)
	for i := range trechos {
		t := &trechos[i]
		if !t.IsAvailable() {
			continue
		}
		if t.TrechoID == nil {
			logger.Warn("skipping unassigned fragment without trecho_id: %.40q", t.Conteudo)
			continue
		}

		c := domain.TranslationCandidate{
			TrechoID:     *t.TrechoID,
			Conteudo:     t.Conteudo,
			SnapshotName: t.SnapshotName,
			SiteID:       t.SiteID,
		}
		if t.SiteID != nil {
			u, err := s.siteURL(ctx, *t.SiteID, siteURLs)
			if err != nil {
				return nil, fmt.Errorf("select for translation: %w", err)
			}
			c.SiteURL = u
		}
		c.SnapshotURL = s.snapshotURL(ctx, t.SnapshotName)

		candidates = append(candidates, c)
		if !opts.ReturnAll {
			break
		}
	}
	return candidates, nil
}

// siteURL resolves a site once per call. Missing or unparseable sites give
// an empty URL; store failures are returned.
func (s *AssignmentService) siteURL(ctx context.Context, siteID int, cache map[int]string) (string, error) {
	if u, ok := cache[siteID]; ok {
		return u, nil
	}
	site, err := s.sites.GetOneByID(ctx, siteID)
	switch {
	case err == nil:
		cache[siteID] = site.SiteURL
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidInput):
		logger.Warn("site %d of a fragment is unavailable: %v", siteID, err)
		cache[siteID] = ""
	default:
		return "", err
	}
	return cache[siteID], nil
}

func (s *AssignmentService) snapshotURL(ctx context.Context, name *string) string {
	if s.snapshots == nil || name == nil {
		return ""
	}
	u, err := s.snapshots.URL(ctx, *name)
	if err != nil {
		logger.Debug("snapshot %s: %v", *name, err)
		return ""
	}
	return u
}
