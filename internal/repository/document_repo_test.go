package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"mro-inventory/internal/model"
	"mro-inventory/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDocumentRepository wires the repository to a mocked postgres connection
func newMockDocumentRepository(t *testing.T) (DocumentRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewDocumentRepository(gormDB), mock, mockDB
}

func TestDocumentRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the document row", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "doc_no", "doc_type", "status"}).
			AddRow(id.String(), "RCV-20261019-00001", "RECEIPT", "DRAFT")
		mock.ExpectQuery(`SELECT \* FROM "inventory_documents" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(rows)

		doc, err := repo.FindByIDForUpdate(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, doc.ID)
		assert.Equal(t, model.DocStatusDraft, doc.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a missing row as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "inventory_documents" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		doc, err := repo.FindByIDForUpdate(context.Background(), uuid.New())

		assert.Nil(t, doc)
		assert.True(t, IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentRepository_NextDocNoTakesAdvisoryLock(t *testing.T) {
	repo, mock, mockDB := newMockDocumentRepository(t)
	defer mockDB.Close()

	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("RCV-20261019-").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT MAX\(doc_no\) FROM "inventory_documents" WHERE doc_no LIKE \$1`).
		WithArgs("RCV-20261019-%").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("RCV-20261019-00041"))

	docNo, err := repo.NextDocNo(context.Background(), model.DocTypeReceipt, at)

	require.NoError(t, err)
	assert.Equal(t, "RCV-20261019-00042", docNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_MarkPostedIsCompareAndSwap(t *testing.T) {
	t.Run("updates a draft", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "inventory_documents" SET .*status`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkPosted(context.Background(), uuid.New(), time.Now(), nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows means the status moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "inventory_documents" SET .*status`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkCancelled(context.Background(), uuid.New(), time.Now(), nil, uuid.New())

		assert.ErrorIs(t, err, ErrStaleStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	cat := testutil.SeedCatalog(t, db)
	repo := NewDocumentRepository(db)
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	first, err := repo.NextDocNo(ctx, model.DocTypeIssue, at)
	require.NoError(t, err)
	assert.Equal(t, "ISS-20261019-00001", first)

	doc := &model.InventoryDocument{DocNo: first, DocType: model.DocTypeIssue, Status: model.DocStatusDraft, WarehouseID: testutil.IDPtr(cat.Main.ID)}
	require.NoError(t, repo.Create(ctx, doc))

	second, err := repo.NextDocNo(ctx, model.DocTypeIssue, at)
	require.NoError(t, err)
	assert.Equal(t, "ISS-20261019-00002", second)
	other, err := repo.NextDocNo(ctx, model.DocTypeIssue, at.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "ISS-20261020-00001", other)

	lines := []model.InventoryDocumentLine{cat.Line(cat.Pump, "2"), cat.Line(cat.Filter, "1")}
	lines[0].LineNo, lines[1].LineNo = 2, 1
	require.NoError(t, repo.ReplaceLines(ctx, doc.ID, lines))
	require.NoError(t, repo.ReplaceLines(ctx, doc.ID, lines[:1]))

	loaded, err := repo.FindByID(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, cat.Pump.ID, loaded.Lines[0].PartID)

	by := uuid.New()
	require.NoError(t, repo.MarkPosted(ctx, doc.ID, at, &by))
	assert.ErrorIs(t, repo.MarkPosted(ctx, doc.ID, at, &by), ErrStaleStatus)

	loaded, err = repo.FindByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DocStatusPosted, loaded.Status)
	assert.Equal(t, by, *loaded.PostedBy)

	require.NoError(t, repo.Delete(ctx, doc.ID))
	_, err = repo.FindByID(ctx, doc.ID)
	assert.True(t, IsNotFound(err))
}

func TestDocumentRepository_DuplicateDocNo(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDocumentRepository(db)

	require.NoError(t, repo.Create(ctx, &model.InventoryDocument{DocNo: "ADJ-1", DocType: model.DocTypeAdjustment, Status: model.DocStatusDraft}))
	err := repo.Create(ctx, &model.InventoryDocument{DocNo: "ADJ-1", DocType: model.DocTypeAdjustment, Status: model.DocStatusDraft})
	assert.True(t, IsDuplicate(err))
}
