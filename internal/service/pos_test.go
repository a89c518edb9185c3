package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestOpenSession(t *testing.T) {
	branchID := primitive.NewObjectID()
	cashierID := primitive.NewObjectID()

	t.Run("opens when no session is active", func(t *testing.T) {
		sessions := new(mockSessionRepo)
		sessions.On("GetOpenByBranch", mock.Anything, branchID).Return(nil, repo.ErrNotFound)
		sessions.On("Create", mock.Anything, mock.AnythingOfType("*domain.PosSession")).Return(nil)

		svc := NewPosService(sessions, new(mockOrderRepo), zap.NewNop().Sugar())

		session, err := svc.OpenSession(context.Background(), branchID, cashierID, 5000)
		require.NoError(t, err)
		assert.Equal(t, domain.SessionOpen, session.Status)
		assert.Equal(t, 5000.0, session.OpeningCash)
	})

	t.Run("rejects a second open session for the branch", func(t *testing.T) {
		sessions := new(mockSessionRepo)
		sessions.On("GetOpenByBranch", mock.Anything, branchID).Return(&domain.PosSession{
			BranchID: branchID, Status: domain.SessionOpen,
		}, nil)

		svc := NewPosService(sessions, new(mockOrderRepo), zap.NewNop().Sugar())

		_, err := svc.OpenSession(context.Background(), branchID, cashierID, 5000)
		assert.ErrorIs(t, err, ErrSessionAlreadyOpen)
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps the unique index race to the same error", func(t *testing.T) {
		sessions := new(mockSessionRepo)
		sessions.On("GetOpenByBranch", mock.Anything, branchID).Return(nil, repo.ErrNotFound)
		sessions.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)

		svc := NewPosService(sessions, new(mockOrderRepo), zap.NewNop().Sugar())

		_, err := svc.OpenSession(context.Background(), branchID, cashierID, 5000)
		assert.ErrorIs(t, err, ErrSessionAlreadyOpen)
	})

	t.Run("rejects a non-positive float", func(t *testing.T) {
		svc := NewPosService(new(mockSessionRepo), new(mockOrderRepo), zap.NewNop().Sugar())

		_, err := svc.OpenSession(context.Background(), branchID, cashierID, 0)
		assert.ErrorIs(t, err, ErrInvalidOpeningCash)
	})
}

func TestCloseSession(t *testing.T) {
	branchID := primitive.NewObjectID()
	sessionID := primitive.NewObjectID()
	openedAt := time.Now().Add(-8 * time.Hour)

	t.Run("reconciles the drawer", func(t *testing.T) {
		sessions := new(mockSessionRepo)
		orders := new(mockOrderRepo)

		sessions.On("GetByID", mock.Anything, sessionID).Return(&domain.PosSession{
			ID: sessionID, BranchID: branchID, Status: domain.SessionOpen,
			OpeningCash: 5000, OpenedAt: openedAt,
		}, nil)
		orders.On("CashSalesTotal", mock.Anything, branchID, openedAt).Return(12340.5, nil)
		sessions.On("Close", mock.Anything, mock.AnythingOfType("*domain.PosSession")).Return(nil)

		svc := NewPosService(sessions, orders, zap.NewNop().Sugar())

		session, err := svc.CloseSession(context.Background(), sessionID, 17000, "short on change")
		require.NoError(t, err)
		assert.Equal(t, domain.SessionClosed, session.Status)
		assert.Equal(t, 17340.5, session.ExpectedCash)
		assert.Equal(t, -340.5, session.Variance)
		require.NotNil(t, session.ClosedAt)
	})

	t.Run("cannot close twice", func(t *testing.T) {
		closed := time.Now()
		sessions := new(mockSessionRepo)
		sessions.On("GetByID", mock.Anything, sessionID).Return(&domain.PosSession{
			ID: sessionID, Status: domain.SessionClosed, ClosedAt: &closed,
		}, nil)

		svc := NewPosService(sessions, new(mockOrderRepo), zap.NewNop().Sugar())

		_, err := svc.CloseSession(context.Background(), sessionID, 100, "")
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("rejects a negative count", func(t *testing.T) {
		svc := NewPosService(new(mockSessionRepo), new(mockOrderRepo), zap.NewNop().Sugar())

		_, err := svc.CloseSession(context.Background(), sessionID, -1, "")
		assert.ErrorIs(t, err, ErrInvalidClosingCash)
	})
}
