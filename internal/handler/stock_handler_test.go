package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"mro-inventory/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStockProjector implements service.StockProjector for testing
type MockStockProjector struct {
	mock.Mock
}

func (m *MockStockProjector) OnHand(ctx context.Context, partID, warehouseID uuid.UUID, binID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, partID, warehouseID, binID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockProjector) Summary(ctx context.Context, partID, warehouseID uuid.UUID) (*service.StockSummary, error) {
	args := m.Called(ctx, partID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StockSummary), args.Error(1)
}

func (m *MockStockProjector) ByLocation(ctx context.Context, partID uuid.UUID) ([]service.LocationQty, error) {
	args := m.Called(ctx, partID)
	return args.Get(0).([]service.LocationQty), args.Error(1)
}

func (m *MockStockProjector) ReorderCandidates(ctx context.Context, warehouseID uuid.UUID) ([]service.StockSummary, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).([]service.StockSummary), args.Error(1)
}

func (m *MockStockProjector) Reconcile(ctx context.Context, warehouseID *uuid.UUID) ([]service.Drift, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).([]service.Drift), args.Error(1)
}

func newStockRouter(t *testing.T) (*MockStockProjector, http.Handler) {
	projector := new(MockStockProjector)
	t.Cleanup(func() { projector.AssertExpectations(t) })
	return projector, newTestRouter(NewStockHandler(projector))
}

func TestStockHandler_GetOnHand(t *testing.T) {
	partID, whID, binID := uuid.New(), uuid.New(), uuid.New()
	token := tokenFor(t, "u2", "technician")

	t.Run("warehouse total", func(t *testing.T) {
		projector, r := newStockRouter(t)
		projector.On("OnHand", mock.Anything, partID, whID, (*uuid.UUID)(nil)).Return(decimal.NewFromInt(12), nil)

		w, env := doRequest(t, r, http.MethodGet, "/api/inventory/stock/on-hand?part_id="+partID.String()+"&warehouse_id="+whID.String(), token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var res OnHandResponse
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.True(t, decimal.NewFromInt(12).Equal(res.OnHand))
		assert.Nil(t, res.BinID)
	})

	t.Run("single bin", func(t *testing.T) {
		projector, r := newStockRouter(t)
		projector.On("OnHand", mock.Anything, partID, whID, &binID).Return(decimal.NewFromInt(4), nil)

		w, env := doRequest(t, r, http.MethodGet, "/api/inventory/stock/on-hand?part_id="+partID.String()+"&warehouse_id="+whID.String()+"&bin_id="+binID.String(), token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var res OnHandResponse
		require.NoError(t, json.Unmarshal(env.Data, &res))
		require.NotNil(t, res.BinID)
		assert.Equal(t, binID.String(), *res.BinID)
	})

	t.Run("missing part", func(t *testing.T) {
		_, r := newStockRouter(t)

		w, env := doRequest(t, r, http.MethodGet, "/api/inventory/stock/on-hand?warehouse_id="+whID.String(), token, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "part_id is required", env.Error)
	})

	t.Run("malformed bin", func(t *testing.T) {
		_, r := newStockRouter(t)

		w, _ := doRequest(t, r, http.MethodGet, "/api/inventory/stock/on-hand?part_id="+partID.String()+"&warehouse_id="+whID.String()+"&bin_id=x", token, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStockHandler_Queries(t *testing.T) {
	partID, whID := uuid.New(), uuid.New()
	token := tokenFor(t, "u2", "technician")

	t.Run("summary", func(t *testing.T) {
		projector, r := newStockRouter(t)
		projector.On("Summary", mock.Anything, partID, whID).Return(&service.StockSummary{
			PartID: partID, WarehouseID: whID,
			OnHand: decimal.NewFromInt(10), Reserved: decimal.NewFromInt(3), Available: decimal.NewFromInt(7),
			NeedsReorder: true,
		}, nil)

		w, env := doRequest(t, r, http.MethodGet, "/api/inventory/stock/summary?part_id="+partID.String()+"&warehouse_id="+whID.String(), token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var res service.StockSummary
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.True(t, decimal.NewFromInt(7).Equal(res.Available))
		assert.True(t, res.NeedsReorder)
	})

	t.Run("reconcile all warehouses", func(t *testing.T) {
		projector, r := newStockRouter(t)
		projector.On("Reconcile", mock.Anything, (*uuid.UUID)(nil)).Return([]service.Drift{{
			PartID: partID, WarehouseID: whID,
			PositionQty: decimal.NewFromInt(4), LedgerQty: decimal.NewFromInt(5),
		}}, nil)

		w, env := doRequest(t, r, http.MethodGet, "/api/inventory/stock/reconcile", token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var drifts []service.Drift
		require.NoError(t, json.Unmarshal(env.Data, &drifts))
		require.Len(t, drifts, 1)
		assert.Equal(t, partID, drifts[0].PartID)
	})

	t.Run("storage error", func(t *testing.T) {
		projector, r := newStockRouter(t)
		projector.On("ByLocation", mock.Anything, partID).
			Return([]service.LocationQty(nil), &service.StorageError{Op: "list stock positions", Err: assert.AnError})

		w, _ := doRequest(t, r, http.MethodGet, "/api/inventory/stock/by-location?part_id="+partID.String(), token, nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("requires a token", func(t *testing.T) {
		_, r := newStockRouter(t)

		w, _ := doRequest(t, r, http.MethodGet, "/api/inventory/stock/reorder?warehouse_id="+whID.String(), "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
