package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"mro-inventory/internal/lock"
	"mro-inventory/internal/metrics"
	"mro-inventory/internal/model"
	"mro-inventory/internal/repository"
	"mro-inventory/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type publishedEvent struct {
	name string
	data map[string]interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(event string, data map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{name: event, data: data})
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.name)
	}
	return names
}

type harness struct {
	ctx       context.Context
	db        *gorm.DB
	cat       *testutil.Catalog
	events    *recordingPublisher
	metrics   *metrics.Recorder
	locker    *lock.LocalLocker
	engine    Engine
	documents DocumentService
	posting   PostingService
	reversal  ReversalService
	projector StockProjector
	catalog   CatalogService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewDB(t)
	h := &harness{
		ctx:     context.Background(),
		db:      db,
		cat:     testutil.SeedCatalog(t, db),
		events:  &recordingPublisher{},
		metrics: metrics.NewRecorder(),
		locker:  lock.NewLocalLocker(),
	}

	auditRepo := repository.NewAuditRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	stockRepo := repository.NewStockRepository(db)
	txManager := repository.NewTransactionManager(db)

	h.engine = Engine{
		Documents: repository.NewDocumentRepository(db),
		Ledger:    ledgerRepo,
		Stock:     stockRepo,
		Catalog:   catalogRepo,
		Audit:     auditRepo,
		TxManager: txManager,
		Locker:    h.locker,
		Events:    h.events,
		Metrics:   h.metrics,
		Logger:    zaptest.NewLogger(t),
	}
	h.posting = NewPostingService(h.engine)
	h.reversal = NewReversalService(h.engine, h.posting)
	h.documents = NewDocumentService(h.engine, NewAuditService(auditRepo))
	h.projector = NewStockProjector(ledgerRepo, stockRepo, catalogRepo, repository.NewReservationRepository(db))
	h.catalog = NewCatalogService(catalogRepo, auditRepo, txManager)
	return h
}

// draft stores doc and its lines as a DRAFT, numbering lines from 1.
func (h *harness) draft(t *testing.T, doc *model.InventoryDocument, lines ...model.InventoryDocumentLine) *model.InventoryDocument {
	t.Helper()

	doc.Status = model.DocStatusDraft
	docNo, err := h.engine.Documents.NextDocNo(h.ctx, doc.DocType, time.Now())
	require.NoError(t, err)
	doc.DocNo = docNo
	require.NoError(t, h.engine.Documents.Create(h.ctx, doc))

	for i := range lines {
		lines[i].LineNo = i + 1
	}
	require.NoError(t, h.engine.Documents.ReplaceLines(h.ctx, doc.ID, lines))
	return doc
}

func (h *harness) post(t *testing.T, doc *model.InventoryDocument) *PostResult {
	t.Helper()
	res, err := h.posting.Post(h.ctx, doc.ID, PostOptions{UserID: uuid.NewString()})
	require.NoError(t, err)
	return res
}

// receive posts a RECEIPT of qty at cost (nil cost = auto) into warehouse/bin.
func (h *harness) receive(t *testing.T, part model.Part, wh model.Warehouse, bin *uuid.UUID, qty string, cost *decimal.Decimal) *model.InventoryDocument {
	t.Helper()
	l := h.cat.Line(part, qty)
	l.ToBinID = bin
	l.UnitCost = cost
	doc := h.draft(t, &model.InventoryDocument{
		DocType:     model.DocTypeReceipt,
		WarehouseID: testutil.IDPtr(wh.ID),
		VendorID:    testutil.IDPtr(h.cat.Vendor.ID),
	}, l)
	h.post(t, doc)
	return doc
}

func (h *harness) position(t *testing.T, part model.Part, wh model.Warehouse, bin *uuid.UUID) decimal.Decimal {
	t.Helper()
	var pos model.StockPosition
	err := h.db.Where("part_id = ? AND warehouse_id = ? AND bin_key = ?", part.ID, wh.ID, model.BinKeyOf(bin)).
		Limit(1).Find(&pos).Error
	require.NoError(t, err)
	if pos.ID == uuid.Nil {
		return decimal.Zero
	}
	return pos.Qty
}

func (h *harness) avgCost(t *testing.T, part model.Part, wh model.Warehouse) decimal.Decimal {
	t.Helper()
	avg, err := h.engine.Stock.FindAverageCost(h.ctx, part.ID, wh.ID)
	require.NoError(t, err)
	if avg == nil {
		return decimal.Zero
	}
	return avg.AvgUnitCost
}

func (h *harness) reload(t *testing.T, id uuid.UUID) *model.InventoryDocument {
	t.Helper()
	doc, err := h.engine.Documents.FindByID(h.ctx, id)
	require.NoError(t, err)
	return doc
}

func (h *harness) countLedger(t *testing.T, docID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, h.db.Model(&model.LedgerEntry{}).Where("doc_id = ?", docID).Count(&n).Error)
	return n
}

func (h *harness) auditActions(t *testing.T, entityID uuid.UUID) []string {
	t.Helper()
	logs, err := repository.NewAuditRepository(h.db).ListByEntity(h.ctx, entityID.String())
	require.NoError(t, err)
	actions := make([]string, 0, len(logs))
	for _, l := range logs {
		actions = append(actions, l.Action)
	}
	return actions
}

// scrape returns the text exposition of the harness metrics.
func (h *harness) scrape(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(h.metrics.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}
