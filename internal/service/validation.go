package service

import (
	"fmt"

	"mro-inventory/internal/model"

	"github.com/google/uuid"
)

// BinLayout tells whether a warehouse is subdivided into bins.
type BinLayout int

const (
	Unbinned BinLayout = iota
	Binned
)

// BinLayoutFromCount maps a warehouse's bin count to its layout.
func BinLayoutFromCount(n int64) BinLayout {
	if n > 0 {
		return Binned
	}
	return Unbinned
}

func (l BinLayout) HasBins() bool { return l == Binned }

func (l BinLayout) String() string {
	if l == Binned {
		return "binned"
	}
	return "unbinned"
}

// BinFacts holds the layouts of the warehouses a document touches. Warehouse
// is used by single-warehouse types, From and To by transfers. Owners maps the
// bins named on the lines to their warehouse; nil skips the ownership check.
type BinFacts struct {
	Warehouse BinLayout
	From      BinLayout
	To        BinLayout
	Owners    map[uuid.UUID]uuid.UUID
}

// ValidationResult is the itemized verdict on a document.
type ValidationResult struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

const msgNotDraft = "only a draft document can be posted"

type verdict struct {
	errors   []string
	warnings []string
}

func (v *verdict) fail(format string, args ...interface{}) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *verdict) warn(format string, args ...interface{}) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *verdict) result() ValidationResult {
	res := ValidationResult{OK: len(v.errors) == 0, Errors: v.errors, Warnings: v.warnings}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	return res
}

// ValidateDocument decides whether doc with lines may be posted. It has no side
// effects and collects every violation instead of stopping at the first one.
func ValidateDocument(doc *model.InventoryDocument, lines []model.InventoryDocumentLine, bins BinFacts) ValidationResult {
	v := &verdict{}

	if doc.Status != model.DocStatusDraft {
		v.fail(msgNotDraft)
		return v.result()
	}

	validateHeader(v, doc)

	if len(lines) == 0 {
		v.fail("at least one line is required")
	}
	validateLineNumbers(v, lines)
	for i := range lines {
		validateLine(v, doc, &lines[i], bins)
	}

	return v.result()
}

func validateHeader(v *verdict, doc *model.InventoryDocument) {
	switch doc.DocType {
	case model.DocTypeReceipt, model.DocTypeIssue, model.DocTypeReturn, model.DocTypeAdjustment:
		if isNil(doc.WarehouseID) {
			v.fail("warehouse is required")
		}
		if !isNil(doc.FromWarehouseID) || !isNil(doc.ToWarehouseID) {
			v.fail("from/to warehouse must not be set on a %s document", doc.DocType)
		}
	case model.DocTypeTransfer:
		if isNil(doc.FromWarehouseID) {
			v.fail("from warehouse is required")
		}
		if isNil(doc.ToWarehouseID) {
			v.fail("to warehouse is required")
		}
		if !isNil(doc.FromWarehouseID) && !isNil(doc.ToWarehouseID) && *doc.FromWarehouseID == *doc.ToWarehouseID {
			v.fail("from and to warehouse must be different")
		}
		if !isNil(doc.WarehouseID) {
			v.fail("warehouse must not be set on a TRANSFER document, use from/to warehouse")
		}
	default:
		v.fail("unknown document type %q", doc.DocType)
		return
	}

	switch doc.DocType {
	case model.DocTypeReceipt:
		if isNil(doc.VendorID) {
			v.warn("no vendor set on receipt")
		}
	case model.DocTypeIssue, model.DocTypeReturn:
		if isNil(doc.TicketID) {
			v.warn("no ticket linked")
		}
	}
}

func validateLineNumbers(v *verdict, lines []model.InventoryDocumentLine) {
	seen := make(map[int]bool, len(lines))
	dense := true
	for _, l := range lines {
		if seen[l.LineNo] {
			v.fail("line %d: duplicate line number", l.LineNo)
		}
		seen[l.LineNo] = true
	}
	for n := 1; n <= len(lines); n++ {
		if !seen[n] {
			dense = false
			break
		}
	}
	if !dense && len(seen) == len(lines) {
		v.fail("line numbers must run from 1 to %d without gaps", len(lines))
	}
}

func validateLine(v *verdict, doc *model.InventoryDocument, l *model.InventoryDocumentLine, bins BinFacts) {
	n := l.LineNo
	docType := doc.DocType

	if l.PartID == uuid.Nil {
		v.fail("line %d: part is required", n)
	}
	if l.UoMID == uuid.Nil {
		v.fail("line %d: unit of measure is required", n)
	}

	if docType == model.DocTypeAdjustment {
		if l.Qty.IsZero() {
			v.fail("line %d: qty must not be zero", n)
		}
	} else if !l.Qty.IsPositive() {
		v.fail("line %d: qty must be greater than zero", n)
	}

	switch docType {
	case model.DocTypeIssue:
		if bins.Warehouse.HasBins() && isNil(l.FromBinID) {
			v.fail("line %d: from bin is required", n)
		}
		checkBinOwner(v, n, "from", l.FromBinID, doc.WarehouseID, bins)
	case model.DocTypeReceipt, model.DocTypeReturn:
		if bins.Warehouse.HasBins() && isNil(l.ToBinID) {
			v.fail("line %d: to bin is required", n)
		}
		checkBinOwner(v, n, "to", l.ToBinID, doc.WarehouseID, bins)
	case model.DocTypeTransfer:
		if bins.From.HasBins() && isNil(l.FromBinID) {
			v.fail("line %d: from bin is required", n)
		}
		if bins.To.HasBins() && isNil(l.ToBinID) {
			v.fail("line %d: to bin is required", n)
		}
		checkBinOwner(v, n, "from", l.FromBinID, doc.FromWarehouseID, bins)
		checkBinOwner(v, n, "to", l.ToBinID, doc.ToWarehouseID, bins)
	case model.DocTypeAdjustment:
		if bins.Warehouse.HasBins() && isNil(l.ToBinID) && isNil(l.FromBinID) {
			v.fail("line %d: to bin or from bin is required", n)
		}
		checkBinOwner(v, n, "from", l.FromBinID, doc.WarehouseID, bins)
		checkBinOwner(v, n, "to", l.ToBinID, doc.WarehouseID, bins)
	}

	if l.UnitCost == nil && isInboundLine(docType, l) {
		v.warn("line %d: no unit cost, current average cost will be used", n)
	}
}

// checkBinOwner fails the line when its bin is unknown or sits in another
// warehouse than the one the line moves stock in.
func checkBinOwner(v *verdict, n int, side string, binID, warehouseID *uuid.UUID, bins BinFacts) {
	if bins.Owners == nil || isNil(binID) || isNil(warehouseID) {
		return
	}
	owner, ok := bins.Owners[*binID]
	switch {
	case !ok:
		v.fail("line %d: %s bin %s does not exist", n, side, binID)
	case owner != *warehouseID:
		v.fail("line %d: %s bin %s is not in warehouse %s", n, side, binID, warehouseID)
	}
}

// isInboundLine reports whether the line raises stock at a cost the line itself
// must supply. Transfers carry the origin cost and are excluded.
func isInboundLine(docType model.DocType, l *model.InventoryDocumentLine) bool {
	switch docType {
	case model.DocTypeReceipt, model.DocTypeReturn:
		return true
	case model.DocTypeAdjustment:
		return l.Qty.IsPositive()
	}
	return false
}

func isNil(id *uuid.UUID) bool {
	return id == nil || *id == uuid.Nil
}
