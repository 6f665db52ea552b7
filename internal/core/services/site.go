package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// Ensure SiteService implements the interface.
var _ driving.SiteService = (*SiteService)(nil)

// SiteService manages the pages fragments come from.
type SiteService struct {
	sites driven.SiteStore

	// mu serialises registrations so two requests for new pages cannot
	// take the same id.
	mu sync.Mutex
}

// NewSiteService creates a new site service.
func NewSiteService(sites driven.SiteStore) *SiteService {
	return &SiteService{sites: sites}
}

// Register returns the site with this URL, appending it with the next free
// id when absent.
func (s *SiteService) Register(ctx context.Context, siteURL string) (*domain.Site, bool, error) {
	if s.sites == nil {
		return nil, false, domain.ErrNotImplemented
	}
	siteURL, err := normaliseURL(siteURL)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.sites.GetAll(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("register site: %w", err)
	}
	maxID := 0
	for i := range all {
		if all[i].SiteURL == siteURL {
			return &all[i], false, nil
		}
		maxID = max(maxID, all[i].SiteID)
	}

	site := domain.Site{SiteID: maxID + 1, SiteURL: siteURL, TrechosIDs: domain.IDList{}}
	if err := s.sites.Append(ctx, site); err != nil {
		return nil, false, fmt.Errorf("register site: %w", err)
	}
	logger.Info("registered site %d: %s", site.SiteID, site.SiteURL)
	return &site, true, nil
}

// Lookup returns the site with this URL without creating it.
func (s *SiteService) Lookup(ctx context.Context, siteURL string) (*domain.Site, error) {
	if s.sites == nil {
		return nil, domain.ErrNotImplemented
	}
	siteURL, err := normaliseURL(siteURL)
	if err != nil {
		return nil, err
	}
	all, err := s.sites.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].SiteURL == siteURL {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("site %s: %w", siteURL, domain.ErrNotFound)
}

// Get retrieves a site by ID.
func (s *SiteService) Get(ctx context.Context, siteID int) (*domain.Site, error) {
	if s.sites == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sites.GetOneByID(ctx, siteID)
}

// List returns every site.
func (s *SiteService) List(ctx context.Context) ([]domain.Site, error) {
	if s.sites == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sites.GetAll(ctx, nil)
}

// normaliseURL trims a page URL and checks it is absolute http(s).
func normaliseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if trimmed == "" || err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: %q is not an http(s) URL", domain.ErrInvalidInput, raw)
	}
	return trimmed, nil
}
