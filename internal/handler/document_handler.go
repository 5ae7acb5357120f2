package handler

import (
	"net/http"

	"mro-inventory/internal/middleware"
	"mro-inventory/internal/model"
	"mro-inventory/internal/service"
	"mro-inventory/pkg/response"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService service.DocumentService
	postingService  service.PostingService
	reversalService service.ReversalService
}

func NewDocumentHandler(
	documentService service.DocumentService,
	postingService service.PostingService,
	reversalService service.ReversalService,
) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		postingService:  postingService,
		reversalService: reversalService,
	}
}

// CancelResponse links a cancelled document to its compensating reversal
type CancelResponse struct {
	DocumentID    string `json:"document_id"`
	ReversalDocID string `json:"reversal_doc_id"`
}

func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Authorizer) {
	docs := router.Group("/api/inventory/documents")
	{
		docs.POST("", auth.RequirePermission(model.PermInventoryWrite), h.CreateDocument)
		docs.GET("/:id", auth.RequirePermission(model.PermInventoryRead), h.GetDocument)
		docs.PUT("/:id", auth.RequirePermission(model.PermInventoryWrite), h.UpdateDocument)
		docs.PUT("/:id/lines", auth.RequirePermission(model.PermInventoryWrite), h.ReplaceLines)
		docs.DELETE("/:id", auth.RequirePermission(model.PermInventoryWrite), h.DeleteDocument)
		docs.GET("/:id/preview", auth.RequirePermission(model.PermInventoryRead), h.PreviewDocument)
		docs.GET("/:id/history", auth.RequirePermission(model.PermInventoryRead), h.DocumentHistory)
		docs.POST("/:id/post", auth.RequirePermission(model.PermInventoryPost), h.PostDocument)
		docs.POST("/:id/cancel", auth.RequirePermission(model.PermInventoryCancel), h.CancelDocument)
	}
}

// allowBackorder reads the backorder override, which only callers holding
// the backorder permission may request
func allowBackorder(c *gin.Context) (bool, bool) {
	if c.Query("allow_backorder") != "true" {
		return false, true
	}
	if !middleware.HasPermission(c, model.PermInventoryBackorder) {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: missing permission '"+model.PermInventoryBackorder+"'"))
		return false, false
	}
	return true, true
}

// CreateDocument creates a draft inventory document
// @Summary      Create draft document
// @Description  Creates a DRAFT document with optional lines; numbering is assigned per document type
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateDocumentRequest  true  "Create Document Payload"
// @Success      201      {object}  response.Response{data=model.InventoryDocument}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response{details=ValidationDetails}
// @Router       /api/inventory/documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	doc, err := h.documentService.CreateDraft(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}

// GetDocument returns a document with its lines
// @Summary      Get document
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=model.InventoryDocument}
// @Failure      404  {object}  response.Response
// @Router       /api/inventory/documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// UpdateDocument edits the header of a draft
// @Summary      Update draft header
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Document ID"
// @Param        payload  body      service.UpdateDocumentRequest  true  "Update Document Payload"
// @Success      200      {object}  response.Response{data=model.InventoryDocument}
// @Failure      409      {object}  response.Response
// @Router       /api/inventory/documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	doc, err := h.documentService.UpdateDraft(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// ReplaceLines swaps the full line set of a draft
// @Summary      Replace draft lines
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Document ID"
// @Param        payload  body      service.ReplaceLinesRequest  true  "Lines Payload"
// @Success      200      {object}  response.Response{data=model.InventoryDocument}
// @Failure      409      {object}  response.Response
// @Router       /api/inventory/documents/{id}/lines [put]
func (h *DocumentHandler) ReplaceLines(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.ReplaceLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	doc, err := h.documentService.ReplaceLines(c.Request.Context(), middleware.UserID(c), id, req.Lines)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// DeleteDocument removes a draft
// @Summary      Delete draft
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/inventory/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.DeleteDraft(c.Request.Context(), middleware.UserID(c), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Document deleted successfully"}))
}

// PreviewDocument runs validation without posting
// @Summary      Validate document
// @Description  Returns the errors and warnings posting would report, without changing anything
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=service.ValidationResult}
// @Router       /api/inventory/documents/{id}/preview [get]
func (h *DocumentHandler) PreviewDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.documentService.Preview(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// DocumentHistory lists the audit trail of a document
// @Summary      Document history
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=[]service.AuditLogResponse}
// @Router       /api/inventory/documents/{id}/history [get]
func (h *DocumentHandler) DocumentHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	logs, err := h.documentService.History(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, logs))
}

// PostDocument posts a draft to the ledger
// @Summary      Post document
// @Description  Validates the draft, writes its ledger entries and updates stock and average cost atomically
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id               path      string  true   "Document ID"
// @Param        allow_backorder  query     bool    false  "Allow stock to go negative (requires inventory.backorder)"
// @Success      200  {object}  response.Response{data=service.PostResult}
// @Failure      409  {object}  response.Response{details=ShortfallDetails}
// @Failure      422  {object}  response.Response{details=ValidationDetails}
// @Failure      503  {object}  response.Response
// @Router       /api/inventory/documents/{id}/post [post]
func (h *DocumentHandler) PostDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	backorder, ok := allowBackorder(c)
	if !ok {
		return
	}

	result, err := h.postingService.Post(c.Request.Context(), id, service.PostOptions{
		UserID:         middleware.UserID(c),
		AllowBackorder: backorder,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// CancelDocument reverses a posted document
// @Summary      Cancel document
// @Description  Posts a compensating reversal document and marks the original CANCELLED
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id               path      string  true   "Document ID"
// @Param        allow_backorder  query     bool    false  "Allow stock to go negative (requires inventory.backorder)"
// @Success      200  {object}  response.Response{data=CancelResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/inventory/documents/{id}/cancel [post]
func (h *DocumentHandler) CancelDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	backorder, ok := allowBackorder(c)
	if !ok {
		return
	}

	reversalID, err := h.reversalService.Cancel(c.Request.Context(), id, service.CancelOptions{
		UserID:         middleware.UserID(c),
		AllowBackorder: backorder,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, CancelResponse{
		DocumentID:    id.String(),
		ReversalDocID: reversalID.String(),
	}))
}
