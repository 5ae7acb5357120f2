package service

import (
	"context"
	"testing"

	"mro-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListByEntity(ctx context.Context, entityID string) ([]model.AuditLog, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

func TestWriteAudit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("encodes details", func(t *testing.T) {
		repo := new(MockAuditRepository)
		repo.On("Log", ctx, mock.MatchedBy(func(e *model.AuditLog) bool {
			return e.Action == model.ActionPostDocument && e.EntityName == "RCV-1" && e.Details == `{"lines":2}`
		})).Return(nil)

		err := writeAudit(ctx, repo, &userID, model.ActionPostDocument, uuid.NewString(), "RCV-1", map[string]int{"lines": 2})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unencodable details", func(t *testing.T) {
		repo := new(MockAuditRepository)

		err := writeAudit(ctx, repo, &userID, model.ActionPostDocument, uuid.NewString(), "RCV-1", map[string]interface{}{"ch": make(chan int)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to encode audit details")
		repo.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockAuditRepository)
		repo.On("Log", ctx, mock.Anything).Return(assert.AnError)

		err := writeAudit(ctx, repo, nil, model.ActionPostDocument, uuid.NewString(), "RCV-1", nil)

		require.ErrorIs(t, err, assert.AnError)
	})
}
