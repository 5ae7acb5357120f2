package service

import (
	"testing"

	"mro-inventory/internal/model"
	"mro-inventory/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCreateAndList(t *testing.T) {
	h := newHarness(t)

	part, err := h.catalog.CreatePart(h.ctx, "", CreatePartRequest{PartNo: "B-300", Name: "Bearing", DefaultUoMID: h.cat.Unit.ID.String()})
	require.NoError(t, err)
	assert.True(t, part.IsActive)
	assert.Equal(t, h.cat.Unit.ID, *part.DefaultUoMID)

	parts, err := h.catalog.ListParts(h.ctx)
	require.NoError(t, err)
	require.Len(t, parts, 3)
	assert.Equal(t, "B-300", parts[0].PartNo)

	wh, err := h.catalog.CreateWarehouse(h.ctx, "", CreateWarehouseRequest{Code: "SAT", Name: "Satellite store"})
	require.NoError(t, err)
	bin, err := h.catalog.CreateBin(h.ctx, "", wh.ID, CreateBinRequest{Code: "S-01"})
	require.NoError(t, err)
	assert.Equal(t, wh.ID, bin.WarehouseID)

	uom, err := h.catalog.CreateUnit(h.ctx, "", CreateUnitRequest{Code: "L", Name: "Litre"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, uom.ID)

	vendor, err := h.catalog.CreateVendor(h.ctx, "", CreateVendorRequest{Name: "Hydraulics Ltd"})
	require.NoError(t, err)
	assert.Equal(t, []string{model.ActionCreateVendor}, h.auditActions(t, vendor.ID))
}

func TestCatalogDuplicatesConflict(t *testing.T) {
	h := newHarness(t)

	_, err := h.catalog.CreatePart(h.ctx, "", CreatePartRequest{PartNo: h.cat.Pump.PartNo, Name: "Again"})
	assert.Equal(t, KindConflict, ErrorKind(err))
	assert.EqualError(t, err, "part already exists")

	_, err = h.catalog.CreateWarehouse(h.ctx, "", CreateWarehouseRequest{Code: h.cat.Yard.Code, Name: "Again"})
	assert.Equal(t, KindConflict, ErrorKind(err))

	_, err = h.catalog.CreateBin(h.ctx, "", h.cat.Yard.ID, CreateBinRequest{Code: h.cat.Bin1.Code})
	assert.Equal(t, KindConflict, ErrorKind(err))

	_, err = h.catalog.CreateBin(h.ctx, "", uuid.New(), CreateBinRequest{Code: "X"})
	assert.Equal(t, KindNotFound, ErrorKind(err))

	_, err = h.catalog.CreatePart(h.ctx, "", CreatePartRequest{PartNo: "Z", Name: "Z", DefaultUoMID: "bogus"})
	assert.Equal(t, KindValidationFailed, ErrorKind(err))
}

func TestUpsertReorderPolicy(t *testing.T) {
	h := newHarness(t)
	req := UpsertReorderPolicyRequest{
		PartID:       h.cat.Pump.ID.String(),
		WarehouseID:  h.cat.Main.ID.String(),
		ReorderPoint: testutil.Dec("5"),
		MinQty:       testutil.Dec("2"),
		MaxQty:       testutil.Dec("20"),
	}

	first, err := h.catalog.UpsertReorderPolicy(h.ctx, "", req)
	require.NoError(t, err)
	requireDecimal(t, "5", first.ReorderPoint)

	req.ReorderPoint = testutil.Dec("7")
	second, err := h.catalog.UpsertReorderPolicy(h.ctx, "", req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	requireDecimal(t, "7", second.ReorderPoint)

	var n int64
	require.NoError(t, h.db.Model(&model.ReorderPolicy{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestUpsertReorderPolicyValidation(t *testing.T) {
	h := newHarness(t)

	_, err := h.catalog.UpsertReorderPolicy(h.ctx, "", UpsertReorderPolicyRequest{PartID: "x", WarehouseID: "y"})
	assert.Equal(t, KindValidationFailed, ErrorKind(err))

	_, err = h.catalog.UpsertReorderPolicy(h.ctx, "", UpsertReorderPolicyRequest{
		PartID:      h.cat.Pump.ID.String(),
		WarehouseID: h.cat.Main.ID.String(),
		MinQty:      testutil.Dec("10"),
		MaxQty:      testutil.Dec("4"),
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"max_qty must not be below min_qty"}, vErr.Errors)
}
