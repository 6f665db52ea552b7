package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/EduuF/sinaliza-libras/internal/adapters/driven/extractor"
	"github.com/EduuF/sinaliza-libras/internal/adapters/driven/snapshot"
	"github.com/EduuF/sinaliza-libras/internal/adapters/driven/storage/sheetstore"
	"github.com/EduuF/sinaliza-libras/internal/adapters/driven/storage/sqlite"
	"github.com/EduuF/sinaliza-libras/internal/connectors/google"
	"github.com/EduuF/sinaliza-libras/internal/connectors/google/sheets"
	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
	"github.com/EduuF/sinaliza-libras/internal/core/services"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

func newSettingsService(store driven.ConfigStore) driving.SettingsService {
	return services.NewSettingsService(store)
}

// wireServices connects the spreadsheets and builds every service.
// Missing configuration is logged; the affected worksheets start disabled
// and calls that need them fail with a store-unavailable error.
func wireServices(ctx context.Context) error {
	logger.Section("Wiring")

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			logger.Warn("%s", line)
		}
	}

	gateway := sheets.NewGatewayFromCredentials(ctx, settings.Sheets.CredentialsFile, google.RateLimitConfig{
		RequestsPerSecond: settings.Sheets.RequestsPerSecond,
		BurstSize:         settings.Sheets.Burst,
	})
	sites := sheetstore.NewSiteStore(gateway.Connect(ctx, settings.Sheets.Site))
	trechos := sheetstore.NewTrechoStore(gateway.Connect(ctx, settings.Sheets.Trecho))
	interpretes := sheetstore.NewInterpreteStore(gateway.Connect(ctx, settings.Sheets.Interprete))

	var reconciliations driven.ReconciliationStore
	db, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		logger.Warn("reconciliation store unavailable, partial writes will not be recorded: %v", err)
	} else {
		logger.Debug("reconciliation store at %s", db.Path())
		reconciliations = db.ReconciliationStore()
		closers = append(closers, db.Close)
	}

	snapshots, err := openSnapshots(ctx, settings.Snapshots)
	if err != nil {
		logger.Warn("snapshot store unavailable: %v", err)
	}

	registration := services.NewRegistrationService(trechos, interpretes, reconciliations)

	trechoService = services.NewTrechoService(trechos)
	assignmentService = services.NewAssignmentService(trechos, sites, snapshots)
	registrationService = registration
	siteService = services.NewSiteService(sites)
	importService = services.NewImportService(extractor.New(nil), sites, trechos, snapshots)
	snapshotService = services.NewSnapshotService(snapshots)
	if reconciliations != nil {
		reconciliationService = services.NewReconciliationService(reconciliations, registration)
	}
	return nil
}

// openSnapshots returns nil without error when no bucket is configured.
func openSnapshots(ctx context.Context, settings domain.SnapshotSettings) (driven.SnapshotStore, error) {
	if !settings.IsConfigured() {
		logger.Debug("snapshot store not configured")
		return nil, nil
	}
	store, err := snapshot.New(settings)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			return nil, err
		}
		logger.Warn("checking bucket %s: %v", store.Bucket(), err)
	}
	return store, nil
}
