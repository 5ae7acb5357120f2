package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mro-inventory/internal/model"
	"mro-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs
type DocumentLineRequest struct {
	PartID    string           `json:"part_id"`
	UoMID     string           `json:"uom_id"`
	Qty       decimal.Decimal  `json:"qty"`
	UnitCost  *decimal.Decimal `json:"unit_cost"` // null = auto cost
	FromBinID string           `json:"from_bin_id"`
	ToBinID   string           `json:"to_bin_id"`
	Notes     string           `json:"notes"`
}

type CreateDocumentRequest struct {
	DocType         string                `json:"doc_type" binding:"required,oneof=RECEIPT ISSUE TRANSFER ADJUSTMENT RETURN"`
	WarehouseID     string                `json:"warehouse_id"`
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	VendorID        string                `json:"vendor_id"`
	TicketID        string                `json:"ticket_id"`
	Reference       string                `json:"reference"`
	Notes           string                `json:"notes"`
	Lines           []DocumentLineRequest `json:"lines"`
}

type UpdateDocumentRequest struct {
	WarehouseID     string `json:"warehouse_id"`
	FromWarehouseID string `json:"from_warehouse_id"`
	ToWarehouseID   string `json:"to_warehouse_id"`
	VendorID        string `json:"vendor_id"`
	TicketID        string `json:"ticket_id"`
	Reference       string `json:"reference"`
	Notes           string `json:"notes"`
}

type ReplaceLinesRequest struct {
	Lines []DocumentLineRequest `json:"lines"`
}

type DocumentService interface {
	CreateDraft(ctx context.Context, userID string, req CreateDocumentRequest) (*model.InventoryDocument, error)
	UpdateDraft(ctx context.Context, userID string, id uuid.UUID, req UpdateDocumentRequest) (*model.InventoryDocument, error)
	ReplaceLines(ctx context.Context, userID string, id uuid.UUID, lines []DocumentLineRequest) (*model.InventoryDocument, error)
	DeleteDraft(ctx context.Context, userID string, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.InventoryDocument, error)
	Preview(ctx context.Context, id uuid.UUID) (ValidationResult, error)
	History(ctx context.Context, id uuid.UUID) ([]AuditLogResponse, error)
}

type documentService struct {
	Engine
	audit AuditService
}

func NewDocumentService(engine Engine, audit AuditService) DocumentService {
	return &documentService{Engine: engine.withDefaults(), audit: audit}
}

func (s *documentService) CreateDraft(ctx context.Context, userID string, req CreateDocumentRequest) (*model.InventoryDocument, error) {
	docType := model.DocType(strings.ToUpper(req.DocType))
	if !docType.Valid() {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf("unknown document type %q", req.DocType)}}
	}

	header := UpdateDocumentRequest{
		WarehouseID:     req.WarehouseID,
		FromWarehouseID: req.FromWarehouseID,
		ToWarehouseID:   req.ToWarehouseID,
		VendorID:        req.VendorID,
		TicketID:        req.TicketID,
		Reference:       req.Reference,
		Notes:           req.Notes,
	}
	doc := &model.InventoryDocument{DocType: docType, Status: model.DocStatusDraft, CreatedBy: parseUserID(userID)}
	if err := applyHeader(doc, header); err != nil {
		return nil, err
	}
	lines, err := buildLines(req.Lines)
	if err != nil {
		return nil, err
	}

	err = s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		docNo, err := s.Documents.NextDocNo(txCtx, docType, s.Now())
		if err != nil {
			return fmt.Errorf("failed to allocate document number: %w", err)
		}
		doc.DocNo = docNo

		if err := s.Documents.Create(txCtx, doc); err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}
		if err := s.Documents.ReplaceLines(txCtx, doc.ID, lines); err != nil {
			return fmt.Errorf("failed to create document lines: %w", err)
		}
		return writeAudit(txCtx, s.Audit, doc.CreatedBy, model.ActionCreateDocument, doc.ID.String(), doc.DocNo, req)
	})
	if err != nil {
		return nil, asStorageError("create inventory document", err)
	}

	doc.Lines = lines
	return doc, nil
}

func (s *documentService) UpdateDraft(ctx context.Context, userID string, id uuid.UUID, req UpdateDocumentRequest) (*model.InventoryDocument, error) {
	var doc *model.InventoryDocument
	err := s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if doc, err = s.lockDraft(txCtx, id); err != nil {
			return err
		}
		if err := applyHeader(doc, req); err != nil {
			return err
		}
		if err := s.Documents.UpdateHeader(txCtx, doc); err != nil {
			return fmt.Errorf("failed to update document: %w", err)
		}
		return writeAudit(txCtx, s.Audit, parseUserID(userID), model.ActionUpdateDocument, doc.ID.String(), doc.DocNo, req)
	})
	if err != nil {
		return nil, asStorageError("update inventory document", err)
	}
	return s.Get(ctx, id)
}

// ReplaceLines swaps the whole line set, renumbering it 1..n.
func (s *documentService) ReplaceLines(ctx context.Context, userID string, id uuid.UUID, reqLines []DocumentLineRequest) (*model.InventoryDocument, error) {
	lines, err := buildLines(reqLines)
	if err != nil {
		return nil, err
	}

	err = s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.lockDraft(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.Documents.ReplaceLines(txCtx, id, lines); err != nil {
			return fmt.Errorf("failed to replace document lines: %w", err)
		}
		return writeAudit(txCtx, s.Audit, parseUserID(userID), model.ActionReplaceLines, doc.ID.String(), doc.DocNo, map[string]interface{}{
			"lines": reqLines,
		})
	})
	if err != nil {
		return nil, asStorageError("replace inventory document lines", err)
	}
	return s.Get(ctx, id)
}

func (s *documentService) DeleteDraft(ctx context.Context, userID string, id uuid.UUID) error {
	err := s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.lockDraft(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.Documents.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
		return writeAudit(txCtx, s.Audit, parseUserID(userID), model.ActionDeleteDocument, doc.ID.String(), doc.DocNo, map[string]interface{}{
			"deleted":  true,
			"doc_type": doc.DocType,
		})
	})
	return asStorageError("delete inventory document", err)
}

func (s *documentService) Get(ctx context.Context, id uuid.UUID) (*model.InventoryDocument, error) {
	doc, err := s.Documents.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &NotFoundError{Entity: "inventory document", ID: id.String()}
		}
		return nil, &StorageError{Op: "load inventory document", Err: err}
	}
	return doc, nil
}

// Preview runs the posting checks against the stored draft without writing.
func (s *documentService) Preview(ctx context.Context, id uuid.UUID) (ValidationResult, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return ValidationResult{}, err
	}
	facts, err := s.binFacts(ctx, doc, doc.Lines)
	if err != nil {
		return ValidationResult{}, &StorageError{Op: "preview inventory document", Err: err}
	}
	return ValidateDocument(doc, doc.Lines, facts), nil
}

func (s *documentService) History(ctx context.Context, id uuid.UUID) ([]AuditLogResponse, error) {
	return s.audit.History(ctx, id.String())
}

func (s *documentService) lockDraft(ctx context.Context, id uuid.UUID) (*model.InventoryDocument, error) {
	doc, err := s.Documents.FindByIDForUpdate(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &NotFoundError{Entity: "inventory document", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if !doc.IsDraft() {
		return nil, conflictf("document %s is %s and can no longer be changed", doc.DocNo, doc.Status)
	}
	return doc, nil
}

func applyHeader(doc *model.InventoryDocument, req UpdateDocumentRequest) error {
	var errs []string
	parse := func(field, value string) *uuid.UUID {
		id, err := parseOptionalID(value)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %q", field, value))
		}
		return id
	}

	doc.WarehouseID = parse("warehouse_id", req.WarehouseID)
	doc.FromWarehouseID = parse("from_warehouse_id", req.FromWarehouseID)
	doc.ToWarehouseID = parse("to_warehouse_id", req.ToWarehouseID)
	doc.VendorID = parse("vendor_id", req.VendorID)
	doc.TicketID = parse("ticket_id", req.TicketID)
	doc.Reference = req.Reference
	doc.Notes = req.Notes

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// buildLines converts request lines into models numbered densely from 1.
func buildLines(reqLines []DocumentLineRequest) ([]model.InventoryDocumentLine, error) {
	var errs []string
	lines := make([]model.InventoryDocumentLine, 0, len(reqLines))
	for i, rl := range reqLines {
		n := i + 1
		parse := func(field, value string) *uuid.UUID {
			id, err := parseOptionalID(value)
			if err != nil {
				errs = append(errs, fmt.Sprintf("line %d: invalid %s: %q", n, field, value))
			}
			return id
		}

		line := model.InventoryDocumentLine{
			LineNo:    n,
			Qty:       rl.Qty,
			UnitCost:  rl.UnitCost,
			FromBinID: parse("from_bin_id", rl.FromBinID),
			ToBinID:   parse("to_bin_id", rl.ToBinID),
			Notes:     rl.Notes,
		}
		if id := parse("part_id", rl.PartID); id != nil {
			line.PartID = *id
		}
		if id := parse("uom_id", rl.UoMID); id != nil {
			line.UoMID = *id
		}
		if rl.UnitCost != nil && rl.UnitCost.IsNegative() {
			errs = append(errs, fmt.Sprintf("line %d: unit cost must not be negative", n))
		}
		lines = append(lines, line)
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return lines, nil
}

var errEmptyID = errors.New("empty id")

func parseOptionalID(value string) (*uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, errEmptyID
	}
	return &id, nil
}
