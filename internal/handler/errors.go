package handler

import (
	"errors"
	"net/http"

	"mro-inventory/internal/service"
	"mro-inventory/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ValidationDetails is the body detail of a 422 response
type ValidationDetails struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ShortfallDetails is the body detail of an insufficient stock response
type ShortfallDetails struct {
	LineNo      int        `json:"line_no"`
	PartID      uuid.UUID  `json:"part_id"`
	WarehouseID uuid.UUID  `json:"warehouse_id"`
	BinID       *uuid.UUID `json:"bin_id"`
	OnHand      string     `json:"on_hand"`
	Requested   string     `json:"requested"`
}

// writeServiceError maps a service error kind onto its HTTP status
func writeServiceError(c *gin.Context, err error) {
	switch service.ErrorKind(err) {
	case service.KindValidationFailed:
		var vErr *service.ValidationError
		errors.As(err, &vErr)
		c.JSON(http.StatusUnprocessableEntity, response.ErrorWithDetails(http.StatusUnprocessableEntity, "Validation failed",
			ValidationDetails{Errors: nonNil(vErr.Errors), Warnings: nonNil(vErr.Warnings)}))
	case service.KindStockInsufficient:
		var sErr *service.StockInsufficientError
		errors.As(err, &sErr)
		c.JSON(http.StatusConflict, response.ErrorWithDetails(http.StatusConflict, sErr.Error(), ShortfallDetails{
			LineNo:      sErr.LineNo,
			PartID:      sErr.PartID,
			WarehouseID: sErr.WarehouseID,
			BinID:       sErr.BinID,
			OnHand:      sErr.OnHand.String(),
			Requested:   sErr.Requested.String(),
		}))
	case service.KindConflict:
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case service.KindStorage:
		// The cause reaches the request log line, not the client.
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, response.Error(http.StatusServiceUnavailable, "Storage unavailable, please retry"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// pathID parses a uuid path param, writing a 400 when it is malformed
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid "+name+": "+c.Param(name)))
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses a uuid query param. Missing optional params yield nil.
func queryID(c *gin.Context, name string, required bool) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		if required {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, name+" is required"))
			return nil, false
		}
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid "+name+": "+raw))
		return nil, false
	}
	return &id, true
}
