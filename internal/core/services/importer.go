package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService turns a web page into fragments of its site.
type ImportService struct {
	extractor driven.FragmentExtractor
	sites     *SiteService
	siteStore driven.SiteStore
	trechos   driven.TrechoStore
	snapshots driven.SnapshotStore
}

// NewImportService creates a new import service.
// snapshots may be nil; snapshot images are then ignored.
func NewImportService(
	extractor driven.FragmentExtractor,
	siteStore driven.SiteStore,
	trechos driven.TrechoStore,
	snapshots driven.SnapshotStore,
) *ImportService {
	return &ImportService{
		extractor: extractor,
		sites:     NewSiteService(siteStore),
		siteStore: siteStore,
		trechos:   trechos,
		snapshots: snapshots,
	}
}

// ContentHash returns the fragment hash stored in trecho_hash.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Import extracts the page's paragraphs and appends those not yet present
// for the site. On failure the report describes what was written so far.
func (s *ImportService) Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportReport, error) {
	if s.extractor == nil || s.siteStore == nil || s.trechos == nil {
		return nil, domain.ErrNotImplemented
	}
	if _, err := normaliseURL(req.PageURL); err != nil {
		return nil, err
	}

	fragments, err := s.extractor.Extract(ctx, req.PageURL)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", req.PageURL, err)
	}
	logger.Info("extracted %d paragraphs from %s", len(fragments), req.PageURL)

	report := &domain.ImportReport{Created: []int{}}
	site, err := s.resolveSite(ctx, req, report)
	if err != nil {
		return report, err
	}
	report.Site = *site

	all, err := s.trechos.GetAll(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("import %s: %w", req.PageURL, err)
	}
	nextID := 1
	seen := make(map[string]bool)
	for i := range all {
		if all[i].TrechoID != nil {
			nextID = max(nextID, *all[i].TrechoID+1)
		}
		if all[i].SiteID != nil && *all[i].SiteID == site.SiteID && all[i].TrechoHash != nil {
			seen[*all[i].TrechoHash] = true
		}
	}

	for _, f := range fragments {
		hash := ContentHash(f.Text)
		if seen[hash] {
			report.Skipped++
			continue
		}
		seen[hash] = true

		t := domain.Trecho{
			TrechoID:   domain.IntPtr(nextID),
			TrechoHash: domain.StringPtr(hash),
			Conteudo:   f.Text,
			SiteID:     domain.IntPtr(site.SiteID),
		}
		if req.DryRun {
			report.Created = append(report.Created, nextID)
			nextID++
			continue
		}

		if name, ok, err := s.uploadSnapshot(ctx, req.SnapshotDir, site.SiteID, f.Ordinal); err != nil {
			logger.Warn("snapshot for paragraph %d: %v", f.Ordinal, err)
		} else if ok {
			t.SnapshotName = domain.StringPtr(name)
			report.Snapshots++
		}

		if err := s.trechos.Append(ctx, t); err != nil {
			return report, fmt.Errorf("import %s: append trecho %d: %w", req.PageURL, nextID, err)
		}
		report.Created = append(report.Created, nextID)
		nextID++
	}

	if req.DryRun || len(report.Created) == 0 {
		return report, nil
	}

	ids := site.TrechosIDs
	for _, id := range report.Created {
		ids = ids.With(id)
	}
	if err := s.siteStore.UpdateOneByID(ctx, site.SiteID, domain.ColTrechosIDs, ids); err != nil {
		return report, fmt.Errorf("import %s: update site %d: %w", req.PageURL, site.SiteID, err)
	}
	report.Site.TrechosIDs = ids
	return report, nil
}

// resolveSite registers the page, or only looks it up on a dry run.
func (s *ImportService) resolveSite(ctx context.Context, req domain.ImportRequest, report *domain.ImportReport) (*domain.Site, error) {
	if !req.DryRun {
		site, created, err := s.sites.Register(ctx, req.PageURL)
		if err != nil {
			return nil, err
		}
		report.SiteCreated = created
		return site, nil
	}

	site, err := s.sites.Lookup(ctx, req.PageURL)
	if errors.Is(err, domain.ErrNotFound) {
		report.SiteCreated = true
		return &domain.Site{SiteURL: req.PageURL, TrechosIDs: domain.IDList{}}, nil
	}
	return site, err
}

// uploadSnapshot stores the paragraph's highlighted image when one exists.
// The object is named after the site so pages never overwrite each other.
func (s *ImportService) uploadSnapshot(ctx context.Context, dir string, siteID, ordinal int) (string, bool, error) {
	if dir == "" || s.snapshots == nil {
		return "", false, nil
	}
	f, err := os.Open(filepath.Join(dir, domain.ScreenshotFile(ordinal)))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", false, err
	}
	name := domain.SnapshotName(siteID, ordinal)
	if err := s.snapshots.Put(ctx, name, f, info.Size(), "image/png"); err != nil {
		return "", false, err
	}
	return name, true, nil
}
