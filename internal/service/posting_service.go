package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mro-inventory/internal/lock"
	"mro-inventory/internal/metrics"
	"mro-inventory/internal/model"
	"mro-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PostOptions carry the caller's identity and granted overrides.
type PostOptions struct {
	UserID         string
	AllowBackorder bool
}

// PostResult is a posted document with the ledger entries it produced.
type PostResult struct {
	Document *model.InventoryDocument `json:"document"`
	Entries  []model.LedgerEntry      `json:"entries"`
	Warnings []string                 `json:"warnings"`
}

type PostingService interface {
	// Post moves a DRAFT document to POSTED in its own transaction.
	Post(ctx context.Context, docID uuid.UUID, opts PostOptions) (*PostResult, error)
	// PostInTx posts within the transaction carried by ctx, leaving commit,
	// locking and notifications to the caller.
	PostInTx(ctx context.Context, docID uuid.UUID, opts PostOptions) (*PostResult, error)
}

// Engine bundles what the document engines share.
type Engine struct {
	Documents repository.DocumentRepository
	Ledger    repository.LedgerRepository
	Stock     repository.StockRepository
	Catalog   repository.CatalogRepository
	Audit     repository.AuditRepository
	TxManager repository.TransactionManager
	Locker    lock.DocumentLocker
	Events    EventPublisher
	Metrics   *metrics.Recorder
	Logger    *zap.Logger
	Now       func() time.Time
}

func (e Engine) withDefaults() Engine {
	if e.Locker == nil {
		e.Locker = lock.NewLocalLocker()
	}
	if e.Events == nil {
		e.Events = noopPublisher{}
	}
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	return e
}

// obtainDocument takes the cross-instance document lock.
func (e Engine) obtainDocument(ctx context.Context, docID uuid.UUID) (lock.Lease, error) {
	lease, err := e.Locker.Obtain(ctx, lock.DocumentKey(docID.String()))
	if errors.Is(err, lock.ErrNotObtained) {
		return nil, conflictf("document %s is being processed", docID)
	}
	if err != nil {
		return nil, &StorageError{Op: "lock document", Err: err}
	}
	return lease, nil
}

func (e Engine) binFacts(ctx context.Context, doc *model.InventoryDocument, lines []model.InventoryDocumentLine) (BinFacts, error) {
	var facts BinFacts
	layout := func(id *uuid.UUID) (BinLayout, error) {
		if isNil(id) {
			return Unbinned, nil
		}
		n, err := e.Catalog.CountBins(ctx, *id)
		if err != nil {
			return Unbinned, fmt.Errorf("failed to count bins: %w", err)
		}
		return BinLayoutFromCount(n), nil
	}

	var err error
	if facts.Warehouse, err = layout(doc.WarehouseID); err != nil {
		return facts, err
	}
	if facts.From, err = layout(doc.FromWarehouseID); err != nil {
		return facts, err
	}
	if facts.To, err = layout(doc.ToWarehouseID); err != nil {
		return facts, err
	}

	var binIDs []uuid.UUID
	for _, l := range lines {
		for _, id := range []*uuid.UUID{l.FromBinID, l.ToBinID} {
			if !isNil(id) {
				binIDs = append(binIDs, *id)
			}
		}
	}
	if facts.Owners, err = e.Catalog.BinWarehouses(ctx, binIDs); err != nil {
		return facts, fmt.Errorf("failed to load bins: %w", err)
	}
	return facts, nil
}

func outcomeOf(err error) string {
	switch ErrorKind(err) {
	case "":
		return metrics.OutcomeSuccess
	case KindStorage, KindUnknown:
		return metrics.OutcomeError
	}
	return metrics.OutcomeRejected
}

type postingService struct {
	Engine
}

func NewPostingService(engine Engine) PostingService {
	return &postingService{Engine: engine.withDefaults()}
}

func (s *postingService) Post(ctx context.Context, docID uuid.UUID, opts PostOptions) (*PostResult, error) {
	start := s.Now()

	lease, err := s.obtainDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = lease.Release(context.WithoutCancel(ctx)) }()

	docType := "unknown"
	var res *PostResult
	err = s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.lockDocument(txCtx, docID)
		if err != nil {
			return err
		}
		docType = string(doc.DocType)
		res, err = s.post(txCtx, doc, opts)
		return err
	})
	err = asStorageError("post inventory document", err)

	s.Metrics.ObserveOperation("post", docType, outcomeOf(err), time.Since(start))
	if err != nil {
		s.Logger.Warn("inventory document not posted",
			zap.String("doc_id", docID.String()),
			zap.String("doc_type", docType),
			zap.String("user_id", opts.UserID),
			zap.String("kind", string(ErrorKind(err))),
			zap.Error(err),
		)
		return nil, err
	}

	s.afterPost(res)
	s.Logger.Info("inventory document posted",
		zap.String("doc_id", docID.String()),
		zap.String("doc_no", res.Document.DocNo),
		zap.String("doc_type", docType),
		zap.String("user_id", opts.UserID),
		zap.Int("entries", len(res.Entries)),
	)
	return res, nil
}

func (s *postingService) PostInTx(ctx context.Context, docID uuid.UUID, opts PostOptions) (*PostResult, error) {
	var res *PostResult
	err := s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.lockDocument(txCtx, docID)
		if err != nil {
			return err
		}
		res, err = s.post(txCtx, doc, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *postingService) afterPost(res *PostResult) {
	var in, out int
	for _, e := range res.Entries {
		if e.MovementSide == model.MovementIn {
			in++
		} else {
			out++
		}
	}
	s.Metrics.AddLedgerEntries(string(model.MovementIn), in)
	s.Metrics.AddLedgerEntries(string(model.MovementOut), out)

	s.Events.Publish(EventDocumentPosted, map[string]interface{}{
		"doc_id":   res.Document.ID.String(),
		"doc_no":   res.Document.DocNo,
		"doc_type": res.Document.DocType,
	})
}

func (s *postingService) lockDocument(ctx context.Context, docID uuid.UUID) (*model.InventoryDocument, error) {
	doc, err := s.Documents.FindByIDForUpdate(ctx, docID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &NotFoundError{Entity: "inventory document", ID: docID.String()}
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return doc, nil
}

// post runs validation, costing and the ledger writes for a locked document.
func (s *postingService) post(ctx context.Context, doc *model.InventoryDocument, opts PostOptions) (*PostResult, error) {
	if !doc.IsDraft() {
		return nil, conflictf("document %s is %s: %s", doc.DocNo, doc.Status, msgNotDraft)
	}

	lines, err := s.Documents.FindLines(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document lines: %w", err)
	}

	facts, err := s.binFacts(ctx, doc, lines)
	if err != nil {
		return nil, err
	}
	verdict := ValidateDocument(doc, lines, facts)
	if !verdict.OK {
		return nil, &ValidationError{Errors: verdict.Errors, Warnings: verdict.Warnings}
	}

	planned := planEntries(doc, lines)
	book, err := s.openBook(ctx, planned)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	entries := make([]model.LedgerEntry, len(planned))
	for i, p := range planned {
		cost, err := book.apply(p, entries[:i], opts.AllowBackorder)
		if err != nil {
			return nil, err
		}
		entries[i] = model.LedgerEntry{
			DocID:        doc.ID,
			DocLineID:    p.line.ID,
			DocType:      doc.DocType,
			OccurredAt:   now,
			PartID:       p.partID,
			WarehouseID:  p.warehouseID,
			BinID:        p.binID,
			QtyDelta:     p.qtyDelta,
			UnitCost:     cost,
			MovementSide: p.side,
		}
	}

	if err := s.Ledger.Append(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to append ledger entries: %w", err)
	}
	if err := book.flush(ctx, s.Stock); err != nil {
		return nil, err
	}

	postedBy := parseUserID(opts.UserID)
	if err := s.Documents.MarkPosted(ctx, doc.ID, now, postedBy); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, conflictf("document %s: %s", doc.DocNo, msgNotDraft)
		}
		return nil, fmt.Errorf("failed to mark document posted: %w", err)
	}
	doc.Status = model.DocStatusPosted
	doc.PostedAt = &now
	doc.PostedBy = postedBy
	doc.Lines = lines

	if err := writeAudit(ctx, s.Audit, postedBy, model.ActionPostDocument, doc.ID.String(), doc.DocNo, map[string]interface{}{
		"doc_type":        doc.DocType,
		"lines":           len(lines),
		"ledger_entries":  len(entries),
		"allow_backorder": opts.AllowBackorder,
		"warnings":        verdict.Warnings,
	}); err != nil {
		return nil, err
	}

	return &PostResult{Document: doc, Entries: entries, Warnings: verdict.Warnings}, nil
}

// stockBook holds the locked position and cost rows of one posting and the
// running warehouse totals the moving average is computed from.
type stockBook struct {
	positions    map[positionKey]*model.StockPosition
	costs        map[costKey]*model.AverageCost
	warehouseQty map[costKey]decimal.Decimal
	dirtyCosts   map[costKey]bool
}

// openBook locks every cost row, then every position row, in sorted order.
func (s *postingService) openBook(ctx context.Context, planned []plannedEntry) (*stockBook, error) {
	costKeys, posKeys := lockOrder(planned)
	book := &stockBook{
		positions:    make(map[positionKey]*model.StockPosition, len(posKeys)),
		costs:        make(map[costKey]*model.AverageCost, len(costKeys)),
		warehouseQty: make(map[costKey]decimal.Decimal, len(costKeys)),
		dirtyCosts:   make(map[costKey]bool),
	}

	for _, k := range costKeys {
		avg, err := s.Stock.LockAverageCost(ctx, k.part, k.warehouse)
		if err != nil {
			return nil, fmt.Errorf("failed to lock average cost: %w", err)
		}
		qty, err := s.Stock.WarehouseQty(ctx, k.part, k.warehouse)
		if err != nil {
			return nil, fmt.Errorf("failed to read warehouse quantity: %w", err)
		}
		book.costs[k] = avg
		book.warehouseQty[k] = qty
	}

	binOf := make(map[positionKey]*uuid.UUID, len(posKeys))
	for _, p := range planned {
		binOf[p.position()] = p.binID
	}
	for _, k := range posKeys {
		pos, err := s.Stock.LockPosition(ctx, k.part, k.warehouse, binOf[k])
		if err != nil {
			return nil, fmt.Errorf("failed to lock stock position: %w", err)
		}
		book.positions[k] = pos
	}
	return book, nil
}

// apply moves one entry through the book and returns the unit cost it carries.
// prior holds the already costed entries of the same document.
func (b *stockBook) apply(p plannedEntry, prior []model.LedgerEntry, allowBackorder bool) (decimal.Decimal, error) {
	pos := b.positions[p.position()]
	ck := p.costKey()
	avg := b.costs[ck]
	newQty := pos.Qty.Add(p.qtyDelta)

	if p.side == model.MovementOut {
		if newQty.IsNegative() && !allowBackorder {
			return decimal.Zero, &StockInsufficientError{
				LineNo:      p.line.LineNo,
				PartID:      p.partID,
				WarehouseID: p.warehouseID,
				BinID:       p.binID,
				OnHand:      pos.Qty,
				Requested:   p.qtyDelta.Neg(),
			}
		}
		pos.Qty = newQty
		b.warehouseQty[ck] = b.warehouseQty[ck].Add(p.qtyDelta)
		return avg.AvgUnitCost, nil
	}

	cost := avg.AvgUnitCost
	switch {
	case p.line.UnitCost != nil:
		cost = *p.line.UnitCost
	case p.pairedOut >= 0:
		cost = prior[p.pairedOut].UnitCost
	}

	avg.AvgUnitCost = movingAverage(b.warehouseQty[ck], avg.AvgUnitCost, p.qtyDelta, cost)
	b.dirtyCosts[ck] = true
	pos.Qty = newQty
	b.warehouseQty[ck] = b.warehouseQty[ck].Add(p.qtyDelta)
	return cost, nil
}

func (b *stockBook) flush(ctx context.Context, stock repository.StockRepository) error {
	for _, pos := range b.positions {
		if err := stock.SavePosition(ctx, pos); err != nil {
			return fmt.Errorf("failed to update stock position: %w", err)
		}
	}
	for k := range b.dirtyCosts {
		if err := stock.SaveAverageCost(ctx, b.costs[k]); err != nil {
			return fmt.Errorf("failed to update average cost: %w", err)
		}
	}
	return nil
}
