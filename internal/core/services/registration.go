package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// Ensure RegistrationService implements the interface.
var _ driving.RegistrationService = (*RegistrationService)(nil)

// RegistrationService attaches translation videos to fragments.
//
// A registration is four sheet operations with no transaction around them.
// Registrations of the same fragment are serialised in-process and the
// fragment's interprete_id is checked under that lock, so two requests in
// this process cannot both claim a fragment. Other processes writing the
// same sheet are not coordinated.
type RegistrationService struct {
	trechos         driven.TrechoStore
	interpretes     driven.InterpreteStore
	reconciliations driven.ReconciliationStore
	locks           *keyedMutex
	now             func() time.Time
}

// NewRegistrationService creates a new registration service.
// reconciliations may be nil; partial writes are then only reported.
func NewRegistrationService(
	trechos driven.TrechoStore,
	interpretes driven.InterpreteStore,
	reconciliations driven.ReconciliationStore,
) *RegistrationService {
	return &RegistrationService{
		trechos:         trechos,
		interpretes:     interpretes,
		reconciliations: reconciliations,
		locks:           newKeyedMutex(),
		now:             time.Now,
	}
}

// RegisterVideo runs the registration and records a reconciliation marker
// if it stops partway.
func (s *RegistrationService) RegisterVideo(
	ctx context.Context,
	reg domain.VideoRegistration,
) (*domain.RegistrationReport, error) {
	report, err := s.Replay(ctx, reg)
	var pw *domain.PartialWriteError
	if errors.As(err, &pw) {
		pw.ReconciliationID = s.recordPartial(ctx, reg, pw)
	}
	return report, err
}

// Replay runs the registration without recording a marker on failure.
// Reconciliation uses it to retry a marker it already holds.
func (s *RegistrationService) Replay(
	ctx context.Context,
	reg domain.VideoRegistration,
) (*domain.RegistrationReport, error) {
	if s.trechos == nil || s.interpretes == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	// Refuse unknown interpreters before touching the fragment.
	if _, err := s.interpretes.GetOneByID(ctx, reg.InterpreteID); err != nil {
		return nil, fmt.Errorf("register video: interprete: %w", err)
	}

	unlock := s.locks.Lock(reg.TrechoID)
	defer unlock()

	trecho, err := s.trechos.GetOneByID(ctx, reg.TrechoID)
	if err != nil {
		return nil, fmt.Errorf("register video: trecho: %w", err)
	}
	if trecho.InterpreteID != nil && *trecho.InterpreteID != reg.InterpreteID {
		return nil, fmt.Errorf("register video: trecho %d held by interprete %d: %w",
			reg.TrechoID, *trecho.InterpreteID, domain.ErrAlreadyAssigned)
	}

	report := &domain.RegistrationReport{}
	fail := func(step domain.RegistrationStep, err error) (*domain.RegistrationReport, error) {
		logger.Warn("register video for trecho %d: step %s failed: %v", reg.TrechoID, step, err)
		if len(report.Completed) == 0 {
			return report, fmt.Errorf("register video: %s: %w", step, err)
		}
		return report, &domain.PartialWriteError{
			InterpreteID: reg.InterpreteID,
			TrechoID:     reg.TrechoID,
			Completed:    append([]domain.RegistrationStep(nil), report.Completed...),
			Failed:       step,
			Err:          err,
		}
	}

	if err := s.trechos.UpdateOneByID(ctx, reg.TrechoID, domain.ColVideoURL, reg.VideoURL); err != nil {
		return fail(domain.StepVideoURL, err)
	}
	report.Completed = append(report.Completed, domain.StepVideoURL)

	if err := s.trechos.UpdateOneByID(ctx, reg.TrechoID, domain.ColInterpreteID, reg.InterpreteID); err != nil {
		return fail(domain.StepInterpreteID, err)
	}
	report.Completed = append(report.Completed, domain.StepInterpreteID)

	interprete, err := s.interpretes.GetOneByID(ctx, reg.InterpreteID)
	if err != nil {
		return fail(domain.StepReadInterprete, err)
	}
	report.Completed = append(report.Completed, domain.StepReadInterprete)

	if !interprete.TrechosIDs.Contains(reg.TrechoID) {
		ids := interprete.TrechosIDs.With(reg.TrechoID)
		if err := s.interpretes.UpdateOneByID(ctx, reg.InterpreteID, domain.ColTrechosIDs, ids); err != nil {
			return fail(domain.StepWriteTrechosIDs, err)
		}
	}
	report.Completed = append(report.Completed, domain.StepWriteTrechosIDs)

	logger.Info("registered video for trecho %d by interprete %d", reg.TrechoID, reg.InterpreteID)
	return report, nil
}

// recordPartial persists a reconciliation marker and returns its id, or ""
// when no store is configured or saving failed.
func (s *RegistrationService) recordPartial(ctx context.Context, reg domain.VideoRegistration, pw *domain.PartialWriteError) string {
	if s.reconciliations == nil {
		logger.Error("partial registration of trecho %d not persisted: no reconciliation store", reg.TrechoID)
		return ""
	}
	marker := domain.Reconciliation{
		ID:           uuid.New().String(),
		InterpreteID: reg.InterpreteID,
		TrechoID:     reg.TrechoID,
		VideoURL:     reg.VideoURL,
		Completed:    pw.Completed,
		FailedStep:   pw.Failed,
		Error:        pw.Err.Error(),
		CreatedAt:    s.now(),
	}
	// The request context may already be cancelled; the marker must still land.
	if err := s.reconciliations.Save(context.WithoutCancel(ctx), marker); err != nil {
		logger.Error("save reconciliation for trecho %d: %v", reg.TrechoID, err)
		return ""
	}
	logger.Warn("partial registration of trecho %d recorded as %s", reg.TrechoID, marker.ID)
	return marker.ID
}
