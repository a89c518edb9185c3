package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ReportService struct {
	orderRepo   repo.OrderRepository
	sessionRepo repo.PosSessionRepository
	logger      *zap.SugaredLogger
}

func NewReportService(
	orderRepo repo.OrderRepository,
	sessionRepo repo.PosSessionRepository,
	logger *zap.SugaredLogger,
) *ReportService {
	return &ReportService{
		orderRepo:   orderRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// SalesReport aggregates a branch's sales over a date range. The three
// groupings are independent queries and run in parallel.
func (s *ReportService) SalesReport(ctx context.Context, branchID primitive.ObjectID, from, to time.Time) (*domain.SalesReport, error) {
	report := &domain.SalesReport{From: from, To: to}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.orderRepo.SalesByDay(ctx, branchID, from, to)
		if err != nil {
			return err
		}
		report.ByDay = rows
		return nil
	})

	g.Go(func() error {
		buckets, err := s.orderRepo.CountByField(ctx, branchID, from, to, "order_type")
		if err != nil {
			return err
		}
		report.ByOrderType = buckets
		return nil
	})

	g.Go(func() error {
		buckets, err := s.orderRepo.CountByField(ctx, branchID, from, to, "payment_method")
		if err != nil {
			return err
		}
		report.ByPaymentMethod = buckets
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build sales report: %w", err)
	}

	revenue := decimal.Zero
	for _, row := range report.ByDay {
		report.TotalOrders += row.Orders
		revenue = revenue.Add(decimal.NewFromFloat(row.Revenue))
	}
	report.TotalRevenue = revenue.InexactFloat64()

	return report, nil
}

// ShiftReport summarizes a closed session's takings by payment method.
func (s *ReportService) ShiftReport(ctx context.Context, sessionID primitive.ObjectID) (*domain.ShiftReport, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	to := time.Now()
	if session.ClosedAt != nil {
		to = *session.ClosedAt
	}

	buckets, err := s.orderRepo.CountByField(ctx, session.BranchID, session.OpenedAt, to, "payment_method")
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shift orders: %w", err)
	}

	report := &domain.ShiftReport{Session: *session}
	for method, bucket := range buckets {
		report.Orders += bucket.Orders
		switch domain.PaymentMethod(method) {
		case domain.PaymentCash:
			report.CashTotal = bucket.Revenue
		case domain.PaymentCard:
			report.CardTotal = bucket.Revenue
		default:
			report.OtherTotal += bucket.Revenue
		}
	}

	return report, nil
}
