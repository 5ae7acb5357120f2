package handler

import (
	"net/http"

	"mro-inventory/internal/middleware"
	"mro-inventory/internal/model"
	"mro-inventory/internal/service"
	"mro-inventory/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Authorizer) {
	read := auth.RequirePermission(model.PermInventoryRead)
	write := auth.RequirePermission(model.PermCatalogWrite)

	catalog := router.Group("/api/catalog")
	{
		catalog.GET("/parts", read, h.ListParts)
		catalog.POST("/parts", write, h.CreatePart)
		catalog.GET("/vendors", read, h.ListVendors)
		catalog.POST("/vendors", write, h.CreateVendor)
		catalog.GET("/warehouses", read, h.ListWarehouses)
		catalog.POST("/warehouses", write, h.CreateWarehouse)
		catalog.POST("/warehouses/:id/bins", write, h.CreateBin)
		catalog.GET("/units", read, h.ListUnits)
		catalog.POST("/units", write, h.CreateUnit)
		catalog.PUT("/reorder-policies", write, h.UpsertReorderPolicy)
	}
}

// bindAndCreate binds a JSON payload, runs create and writes the 201 response
func bindAndCreate[Req any, Res any](c *gin.Context, create func(req Req) (Res, error)) {
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	created, err := create(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// ListParts returns all active parts
// @Summary      List parts
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Part}
// @Router       /api/catalog/parts [get]
func (h *CatalogHandler) ListParts(c *gin.Context) {
	parts, err := h.catalogService.ListParts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, parts))
}

// CreatePart registers a new part number
// @Summary      Create part
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreatePartRequest  true  "Create Part Payload"
// @Success      201      {object}  response.Response{data=model.Part}
// @Failure      409      {object}  response.Response
// @Router       /api/catalog/parts [post]
func (h *CatalogHandler) CreatePart(c *gin.Context) {
	bindAndCreate(c, func(req service.CreatePartRequest) (*model.Part, error) {
		return h.catalogService.CreatePart(c.Request.Context(), middleware.UserID(c), req)
	})
}

// ListVendors returns all active vendors
// @Summary      List vendors
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Vendor}
// @Router       /api/catalog/vendors [get]
func (h *CatalogHandler) ListVendors(c *gin.Context) {
	vendors, err := h.catalogService.ListVendors(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendors))
}

// CreateVendor registers a supplier
// @Summary      Create vendor
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateVendorRequest  true  "Create Vendor Payload"
// @Success      201      {object}  response.Response{data=model.Vendor}
// @Router       /api/catalog/vendors [post]
func (h *CatalogHandler) CreateVendor(c *gin.Context) {
	bindAndCreate(c, func(req service.CreateVendorRequest) (*model.Vendor, error) {
		return h.catalogService.CreateVendor(c.Request.Context(), middleware.UserID(c), req)
	})
}

// ListWarehouses returns warehouses with their bins
// @Summary      List warehouses
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Warehouse}
// @Router       /api/catalog/warehouses [get]
func (h *CatalogHandler) ListWarehouses(c *gin.Context) {
	warehouses, err := h.catalogService.ListWarehouses(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, warehouses))
}

// CreateWarehouse registers a stocking location
// @Summary      Create warehouse
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateWarehouseRequest  true  "Create Warehouse Payload"
// @Success      201      {object}  response.Response{data=model.Warehouse}
// @Failure      409      {object}  response.Response
// @Router       /api/catalog/warehouses [post]
func (h *CatalogHandler) CreateWarehouse(c *gin.Context) {
	bindAndCreate(c, func(req service.CreateWarehouseRequest) (*model.Warehouse, error) {
		return h.catalogService.CreateWarehouse(c.Request.Context(), middleware.UserID(c), req)
	})
}

// CreateBin adds a bin to a warehouse
// @Summary      Create bin
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Warehouse ID"
// @Param        payload  body      service.CreateBinRequest  true  "Create Bin Payload"
// @Success      201      {object}  response.Response{data=model.Bin}
// @Failure      404      {object}  response.Response
// @Router       /api/catalog/warehouses/{id}/bins [post]
func (h *CatalogHandler) CreateBin(c *gin.Context) {
	warehouseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	bindAndCreate(c, func(req service.CreateBinRequest) (*model.Bin, error) {
		return h.catalogService.CreateBin(c.Request.Context(), middleware.UserID(c), warehouseID, req)
	})
}

// ListUnits returns all units of measure
// @Summary      List units
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.UnitOfMeasure}
// @Router       /api/catalog/units [get]
func (h *CatalogHandler) ListUnits(c *gin.Context) {
	units, err := h.catalogService.ListUnits(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, units))
}

// CreateUnit registers a unit of measure
// @Summary      Create unit
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateUnitRequest  true  "Create Unit Payload"
// @Success      201      {object}  response.Response{data=model.UnitOfMeasure}
// @Router       /api/catalog/units [post]
func (h *CatalogHandler) CreateUnit(c *gin.Context) {
	bindAndCreate(c, func(req service.CreateUnitRequest) (*model.UnitOfMeasure, error) {
		return h.catalogService.CreateUnit(c.Request.Context(), middleware.UserID(c), req)
	})
}

// UpsertReorderPolicy sets the replenishment thresholds of a part in a warehouse
// @Summary      Upsert reorder policy
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UpsertReorderPolicyRequest  true  "Reorder Policy Payload"
// @Success      200      {object}  response.Response{data=model.ReorderPolicy}
// @Failure      422      {object}  response.Response
// @Router       /api/catalog/reorder-policies [put]
func (h *CatalogHandler) UpsertReorderPolicy(c *gin.Context) {
	var req service.UpsertReorderPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	policy, err := h.catalogService.UpsertReorderPolicy(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, policy))
}
