package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrSessionAlreadyOpen = errors.New("branch already has an open session")
	ErrInvalidOpeningCash = errors.New("opening cash must be greater than zero")
	ErrInvalidClosingCash = errors.New("closing cash must not be negative")
)

type PosService struct {
	sessionRepo repo.PosSessionRepository
	orderRepo   repo.OrderRepository
	logger      *zap.SugaredLogger
}

func NewPosService(
	sessionRepo repo.PosSessionRepository,
	orderRepo repo.OrderRepository,
	logger *zap.SugaredLogger,
) *PosService {
	return &PosService{
		sessionRepo: sessionRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// OpenSession starts the branch's cash session. A branch can hold at most
// one open session; the unique index backs up the check against races.
func (s *PosService) OpenSession(ctx context.Context, branchID, cashierID primitive.ObjectID, openingCash float64) (*domain.PosSession, error) {
	if openingCash <= 0 {
		return nil, ErrInvalidOpeningCash
	}

	if _, err := s.sessionRepo.GetOpenByBranch(ctx, branchID); err == nil {
		return nil, ErrSessionAlreadyOpen
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check open session: %w", err)
	}

	session := &domain.PosSession{
		BranchID:    branchID,
		CashierID:   cashierID,
		Status:      domain.SessionOpen,
		OpeningCash: openingCash,
		OpenedAt:    time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrSessionAlreadyOpen
		}
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	s.logger.Infow("pos session opened",
		"session_id", session.ID.Hex(), "branch_id", branchID.Hex(), "opening_cash", openingCash)

	return session, nil
}

// CloseSession reconciles the drawer: expected cash is the float plus cash
// sales taken since open, variance is counted minus expected.
func (s *PosService) CloseSession(ctx context.Context, sessionID primitive.ObjectID, closingCash float64, notes string) (*domain.PosSession, error) {
	if closingCash < 0 {
		return nil, ErrInvalidClosingCash
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != domain.SessionOpen {
		return nil, repo.ErrNotFound
	}

	cashSales, err := s.orderRepo.CashSalesTotal(ctx, session.BranchID, session.OpenedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to total cash sales: %w", err)
	}

	expected := decimal.NewFromFloat(session.OpeningCash).Add(decimal.NewFromFloat(cashSales))
	variance := decimal.NewFromFloat(closingCash).Sub(expected)

	now := time.Now()
	session.Status = domain.SessionClosed
	session.ClosingCash = closingCash
	session.ExpectedCash = expected.InexactFloat64()
	session.Variance = variance.InexactFloat64()
	session.Notes = notes
	session.ClosedAt = &now

	if err := s.sessionRepo.Close(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}

	s.logger.Infow("pos session closed",
		"session_id", session.ID.Hex(), "expected_cash", session.ExpectedCash, "variance", session.Variance)

	return session, nil
}

func (s *PosService) ActiveSession(ctx context.Context, branchID primitive.ObjectID) (*domain.PosSession, error) {
	return s.sessionRepo.GetOpenByBranch(ctx, branchID)
}

func (s *PosService) ListSessions(ctx context.Context, branchID primitive.ObjectID, page, pageSize int) ([]domain.PosSession, int64, error) {
	return s.sessionRepo.List(ctx, branchID, page, pageSize)
}
