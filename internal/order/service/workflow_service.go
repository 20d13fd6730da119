package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"knox-bundles/internal/domain"
	"knox-bundles/internal/dto"
	apperrors "knox-bundles/internal/errors"
	"knox-bundles/internal/order/repository"
)

// recentWindow is the fixed number of rows /orders shows the operator.
const recentWindow = 5

type LedgerRepository interface {
	Append(ctx context.Context, order domain.Order) (domain.Order, error)
	ListRecent(ctx context.Context, n int) ([]domain.Order, error)
	FindByReference(ctx context.Context, ref string) (repository.RowHandle, domain.Order, error)
	SetStatus(ctx context.Context, handle repository.RowHandle, status domain.Status) error
}

type WorkflowService struct {
	ledger         LedgerRepository
	operatorChatID string
	logger         *zap.Logger
}

func NewWorkflowService(ledger LedgerRepository, operatorChatID string, logger *zap.Logger) *WorkflowService {
	return &WorkflowService{
		ledger:         ledger,
		operatorChatID: operatorChatID,
		logger:         logger,
	}
}

// Submit parses a raw mini-app payload, validates it and appends a Pending
// order. The returned order carries the generated reference.
func (s *WorkflowService) Submit(ctx context.Context, raw string) (domain.Order, error) {
	payload, err := parseSubmission(raw)
	if err != nil {
		s.logger.Warn("rejected submission payload", zap.Error(err))
		return domain.Order{}, err
	}

	order := domain.Order{
		Name:    payload.Name,
		Contact: payload.Contact,
		Bundle:  payload.Bundle,
		Price:   payload.Price,
		Status:  domain.StatusPending,
	}

	stored, err := s.ledger.Append(ctx, order)
	if err != nil {
		s.logger.Error("appending order", zap.Error(err))
		return domain.Order{}, err
	}

	s.logger.Info("order recorded",
		zap.String("reference", stored.Reference),
		zap.String("bundle", stored.Bundle),
		zap.String("price", stored.Price),
	)

	return stored, nil
}

// ListForOperator returns the most recent orders, newest window of five,
// oldest of the window first. An empty slice signals an empty ledger.
func (s *WorkflowService) ListForOperator(ctx context.Context, requesterID string) ([]domain.Order, error) {
	if err := s.authorize(requesterID); err != nil {
		return nil, err
	}

	orders, err := s.ledger.ListRecent(ctx, recentWindow)
	if err != nil {
		s.logger.Error("listing orders", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

// Confirm marks the referenced order Confirmed. Re-confirming an already
// confirmed order re-sets the same value; the effect converges either way.
func (s *WorkflowService) Confirm(ctx context.Context, requesterID, reference string) (domain.Order, error) {
	if err := s.authorize(requesterID); err != nil {
		return domain.Order{}, err
	}

	reference = strings.TrimSpace(reference)
	if reference == "" {
		return domain.Order{}, apperrors.NewValidationError("reference is required", apperrors.ValidationDetail{
			Field:   "reference",
			Message: "reference must not be empty",
		})
	}

	handle, order, err := s.ledger.FindByReference(ctx, reference)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			s.logger.Warn("confirm for unknown reference", zap.String("reference", reference))
		} else {
			s.logger.Error("looking up reference", zap.String("reference", reference), zap.Error(err))
		}
		return domain.Order{}, err
	}

	if err := s.ledger.SetStatus(ctx, handle, domain.StatusConfirmed); err != nil {
		s.logger.Error("confirming order", zap.String("reference", reference), zap.Error(err))
		return domain.Order{}, err
	}

	order.Status = domain.StatusConfirmed
	s.logger.Info("order confirmed", zap.String("reference", reference))

	return order, nil
}

// authorize is a plain identity check: one configured operator, exact match,
// no role hierarchy. The real operator ID is never echoed back.
func (s *WorkflowService) authorize(requesterID string) error {
	if requesterID != s.operatorChatID {
		s.logger.Warn("unauthorized operator command", zap.String("requesterId", requesterID))
		return apperrors.NewUnauthorizedError("operator access required")
	}
	return nil
}

func parseSubmission(raw string) (dto.SubmissionPayload, error) {
	var payload dto.SubmissionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return dto.SubmissionPayload{}, apperrors.NewValidationError("invalid submission payload", apperrors.ValidationDetail{
			Field:   "payload",
			Message: "payload must be valid JSON",
		})
	}

	var details []apperrors.ValidationDetail

	if strings.TrimSpace(payload.Name) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}
	if strings.TrimSpace(payload.Contact) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "contact",
			Message: "contact is required",
		})
	}
	if strings.TrimSpace(payload.Bundle) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "bundle",
			Message: "bundle is required",
		})
	}
	if strings.TrimSpace(payload.Price) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price is required",
		})
	}

	if len(details) > 0 {
		return dto.SubmissionPayload{}, apperrors.NewValidationError("validation failed", details...)
	}

	return payload, nil
}
