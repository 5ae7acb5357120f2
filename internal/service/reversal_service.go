package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mro-inventory/internal/model"
	"mro-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CancelOptions struct {
	UserID         string
	AllowBackorder bool
}

type ReversalService interface {
	// Cancel reverses a POSTED document through a compensating posted
	// document and returns the reversal's id.
	Cancel(ctx context.Context, docID uuid.UUID, opts CancelOptions) (uuid.UUID, error)
}

type reversalService struct {
	Engine
	posting PostingService
}

func NewReversalService(engine Engine, posting PostingService) ReversalService {
	return &reversalService{Engine: engine.withDefaults(), posting: posting}
}

func (s *reversalService) Cancel(ctx context.Context, docID uuid.UUID, opts CancelOptions) (uuid.UUID, error) {
	start := s.Now()

	lease, err := s.obtainDocument(ctx, docID)
	if err != nil {
		return uuid.Nil, err
	}
	defer func() { _ = lease.Release(context.WithoutCancel(ctx)) }()

	docType := "unknown"
	var original *model.InventoryDocument
	var posted *PostResult
	err = s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.Documents.FindByIDForUpdate(txCtx, docID)
		if err != nil {
			if repository.IsNotFound(err) {
				return &NotFoundError{Entity: "inventory document", ID: docID.String()}
			}
			return fmt.Errorf("failed to load document: %w", err)
		}
		docType = string(doc.DocType)
		original = doc

		posted, err = s.cancel(txCtx, doc, opts)
		return err
	})
	err = asStorageError("cancel inventory document", err)

	s.Metrics.ObserveOperation("cancel", docType, outcomeOf(err), time.Since(start))
	if err != nil {
		s.Logger.Warn("inventory document not cancelled",
			zap.String("doc_id", docID.String()),
			zap.String("doc_type", docType),
			zap.String("user_id", opts.UserID),
			zap.String("kind", string(ErrorKind(err))),
			zap.Error(err),
		)
		return uuid.Nil, err
	}

	reversal := posted.Document
	s.Events.Publish(EventDocumentPosted, map[string]interface{}{
		"doc_id":   reversal.ID.String(),
		"doc_no":   reversal.DocNo,
		"doc_type": reversal.DocType,
	})
	s.Events.Publish(EventDocumentCancelled, map[string]interface{}{
		"doc_id":          original.ID.String(),
		"doc_no":          original.DocNo,
		"doc_type":        original.DocType,
		"reversal_doc_id": reversal.ID.String(),
	})
	s.Logger.Info("inventory document cancelled",
		zap.String("doc_id", original.ID.String()),
		zap.String("doc_no", original.DocNo),
		zap.String("reversal_doc_no", reversal.DocNo),
		zap.String("user_id", opts.UserID),
	)
	return reversal.ID, nil
}

func (s *reversalService) cancel(ctx context.Context, doc *model.InventoryDocument, opts CancelOptions) (*PostResult, error) {
	if doc.Status != model.DocStatusPosted {
		return nil, conflictf("document %s is %s: only a posted document can be cancelled", doc.DocNo, doc.Status)
	}
	// The original already carries the cancellation; undoing its reversal would
	// put the stock back under a CANCELLED document.
	if doc.ReversalOfID != nil {
		return nil, conflictf("document %s is a reversal of another document and cannot be cancelled", doc.DocNo)
	}

	lines, err := s.Documents.FindLines(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document lines: %w", err)
	}
	entries, err := s.Ledger.ListByDoc(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}

	userID := parseUserID(opts.UserID)
	now := s.Now()

	reversal, reversalLines := buildReversal(doc, lines, entries)
	reversal.CreatedBy = userID
	if reversal.DocNo, err = s.Documents.NextDocNo(ctx, reversal.DocType, now); err != nil {
		return nil, fmt.Errorf("failed to allocate document number: %w", err)
	}
	if err := s.Documents.Create(ctx, reversal); err != nil {
		return nil, fmt.Errorf("failed to create reversal document: %w", err)
	}
	if err := s.Documents.ReplaceLines(ctx, reversal.ID, reversalLines); err != nil {
		return nil, fmt.Errorf("failed to create reversal lines: %w", err)
	}
	if err := writeAudit(ctx, s.Audit, userID, model.ActionCreateDocument, reversal.ID.String(), reversal.DocNo, map[string]interface{}{
		"doc_type":       reversal.DocType,
		"reversal_of_id": doc.ID.String(),
		"lines":          len(reversalLines),
	}); err != nil {
		return nil, err
	}

	posted, err := s.posting.PostInTx(ctx, reversal.ID, PostOptions{UserID: opts.UserID, AllowBackorder: opts.AllowBackorder})
	if err != nil {
		return nil, err
	}

	if err := s.Documents.MarkCancelled(ctx, doc.ID, now, userID, reversal.ID); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, conflictf("document %s: only a posted document can be cancelled", doc.DocNo)
		}
		return nil, fmt.Errorf("failed to mark document cancelled: %w", err)
	}
	doc.Status = model.DocStatusCancelled
	doc.CancelledAt = &now
	doc.CancelledBy = userID
	doc.ReversalDocID = &reversal.ID

	if err := writeAudit(ctx, s.Audit, userID, model.ActionCancelDocument, doc.ID.String(), doc.DocNo, map[string]interface{}{
		"doc_type":        doc.DocType,
		"reversal_doc_id": reversal.ID.String(),
		"reversal_doc_no": reversal.DocNo,
	}); err != nil {
		return nil, err
	}

	return posted, nil
}

// reversalType is the document type that undoes t's stock effect.
func reversalType(t model.DocType) model.DocType {
	switch t {
	case model.DocTypeReceipt, model.DocTypeReturn:
		return model.DocTypeIssue
	case model.DocTypeIssue:
		return model.DocTypeReturn
	}
	return t
}

// buildReversal derives the compensating draft of a posted document. Costs are
// taken from the ledger so that stock comes back at the value it left with.
func buildReversal(doc *model.InventoryDocument, lines []model.InventoryDocumentLine, entries []model.LedgerEntry) (*model.InventoryDocument, []model.InventoryDocumentLine) {
	outCost := make(map[uuid.UUID]decimal.Decimal, len(entries))
	anyCost := make(map[uuid.UUID]decimal.Decimal, len(entries))
	for _, e := range entries {
		anyCost[e.DocLineID] = e.UnitCost
		if e.MovementSide == model.MovementOut {
			outCost[e.DocLineID] = e.UnitCost
		}
	}

	originalID := doc.ID
	rev := &model.InventoryDocument{
		DocType:      reversalType(doc.DocType),
		Status:       model.DocStatusDraft,
		VendorID:     doc.VendorID,
		TicketID:     doc.TicketID,
		Reference:    "REV " + doc.DocNo,
		Notes:        "Reversal of " + doc.DocNo,
		ReversalOfID: &originalID,
	}
	if doc.DocType == model.DocTypeTransfer {
		rev.FromWarehouseID = doc.ToWarehouseID
		rev.ToWarehouseID = doc.FromWarehouseID
	} else {
		rev.WarehouseID = doc.WarehouseID
	}

	revLines := make([]model.InventoryDocumentLine, 0, len(lines))
	for i, l := range lines {
		rl := model.InventoryDocumentLine{
			LineNo: i + 1,
			PartID: l.PartID,
			UoMID:  l.UoMID,
			Qty:    l.Qty,
			Notes:  l.Notes,
		}
		switch doc.DocType {
		case model.DocTypeReceipt, model.DocTypeReturn:
			rl.FromBinID = l.ToBinID
		case model.DocTypeIssue:
			rl.ToBinID = l.FromBinID
			rl.UnitCost = costPtr(outCost, l.ID)
		case model.DocTypeTransfer:
			rl.FromBinID = l.ToBinID
			rl.ToBinID = l.FromBinID
			rl.UnitCost = costPtr(outCost, l.ID)
		case model.DocTypeAdjustment:
			rl.Qty = l.Qty.Neg()
			rl.FromBinID = l.FromBinID
			rl.ToBinID = l.ToBinID
			rl.UnitCost = costPtr(anyCost, l.ID)
		}
		revLines = append(revLines, rl)
	}
	return rev, revLines
}

func costPtr(costs map[uuid.UUID]decimal.Decimal, lineID uuid.UUID) *decimal.Decimal {
	c, ok := costs[lineID]
	if !ok {
		return nil
	}
	return &c
}
