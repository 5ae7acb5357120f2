package handler

import (
	"net/http"

	"mro-inventory/internal/middleware"
	"mro-inventory/internal/model"
	"mro-inventory/internal/service"
	"mro-inventory/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type StockHandler struct {
	projector service.StockProjector
}

func NewStockHandler(projector service.StockProjector) *StockHandler {
	return &StockHandler{projector: projector}
}

// OnHandResponse is the on-hand quantity of one stock key
type OnHandResponse struct {
	PartID      string          `json:"part_id"`
	WarehouseID string          `json:"warehouse_id"`
	BinID       *string         `json:"bin_id"`
	OnHand      decimal.Decimal `json:"on_hand"`
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Authorizer) {
	stock := router.Group("/api/inventory/stock")
	stock.Use(auth.RequirePermission(model.PermInventoryRead))
	{
		stock.GET("/on-hand", h.GetOnHand)
		stock.GET("/summary", h.GetSummary)
		stock.GET("/by-location", h.GetByLocation)
		stock.GET("/reorder", h.GetReorderCandidates)
		stock.GET("/reconcile", h.Reconcile)
	}
}

// GetOnHand returns the ledger quantity of a part in a warehouse or bin
// @Summary      On-hand quantity
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        part_id       query     string  true   "Part ID"
// @Param        warehouse_id  query     string  true   "Warehouse ID"
// @Param        bin_id        query     string  false  "Bin ID; omit for the warehouse total"
// @Success      200  {object}  response.Response{data=OnHandResponse}
// @Router       /api/inventory/stock/on-hand [get]
func (h *StockHandler) GetOnHand(c *gin.Context) {
	partID, ok := queryID(c, "part_id", true)
	if !ok {
		return
	}
	warehouseID, ok := queryID(c, "warehouse_id", true)
	if !ok {
		return
	}
	binID, ok := queryID(c, "bin_id", false)
	if !ok {
		return
	}

	qty, err := h.projector.OnHand(c.Request.Context(), *partID, *warehouseID, binID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := OnHandResponse{PartID: partID.String(), WarehouseID: warehouseID.String(), OnHand: qty}
	if binID != nil {
		s := binID.String()
		resp.BinID = &s
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, resp))
}

// GetSummary returns on-hand, reserved and available stock with average cost
// @Summary      Stock summary
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        part_id       query     string  true  "Part ID"
// @Param        warehouse_id  query     string  true  "Warehouse ID"
// @Success      200  {object}  response.Response{data=service.StockSummary}
// @Router       /api/inventory/stock/summary [get]
func (h *StockHandler) GetSummary(c *gin.Context) {
	partID, ok := queryID(c, "part_id", true)
	if !ok {
		return
	}
	warehouseID, ok := queryID(c, "warehouse_id", true)
	if !ok {
		return
	}

	summary, err := h.projector.Summary(c.Request.Context(), *partID, *warehouseID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// GetByLocation lists the non-zero positions of a part
// @Summary      Stock by location
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        part_id  query     string  true  "Part ID"
// @Success      200  {object}  response.Response{data=[]service.LocationQty}
// @Router       /api/inventory/stock/by-location [get]
func (h *StockHandler) GetByLocation(c *gin.Context) {
	partID, ok := queryID(c, "part_id", true)
	if !ok {
		return
	}

	locations, err := h.projector.ByLocation(c.Request.Context(), *partID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, locations))
}

// GetReorderCandidates lists parts at or below their reorder threshold
// @Summary      Reorder candidates
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        warehouse_id  query     string  true  "Warehouse ID"
// @Success      200  {object}  response.Response{data=[]service.StockSummary}
// @Router       /api/inventory/stock/reorder [get]
func (h *StockHandler) GetReorderCandidates(c *gin.Context) {
	warehouseID, ok := queryID(c, "warehouse_id", true)
	if !ok {
		return
	}

	candidates, err := h.projector.ReorderCandidates(c.Request.Context(), *warehouseID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, candidates))
}

// Reconcile reports stock positions that disagree with the ledger
// @Summary      Reconcile positions
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        warehouse_id  query     string  false  "Warehouse ID; omit for all warehouses"
// @Success      200  {object}  response.Response{data=[]service.Drift}
// @Router       /api/inventory/stock/reconcile [get]
func (h *StockHandler) Reconcile(c *gin.Context) {
	warehouseID, ok := queryID(c, "warehouse_id", false)
	if !ok {
		return
	}

	drifts, err := h.projector.Reconcile(c.Request.Context(), warehouseID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, drifts))
}
