package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mro-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRepository stores inventory documents and their lines. It holds no
// business rules; status checks live in the service layer.
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.InventoryDocument) error
	UpdateHeader(ctx context.Context, doc *model.InventoryDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryDocument, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InventoryDocument, error)
	FindLines(ctx context.Context, docID uuid.UUID) ([]model.InventoryDocumentLine, error)
	ReplaceLines(ctx context.Context, docID uuid.UUID, lines []model.InventoryDocumentLine) error
	MarkPosted(ctx context.Context, id uuid.UUID, at time.Time, by *uuid.UUID) error
	MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time, by *uuid.UUID, reversalID uuid.UUID) error
	NextDocNo(ctx context.Context, docType model.DocType, at time.Time) (string, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.InventoryDocument) error {
	return GetDB(ctx, r.db).Create(doc).Error
}

// UpdateHeader saves header columns only; lines are managed by ReplaceLines.
func (r *documentRepository) UpdateHeader(ctx context.Context, doc *model.InventoryDocument) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(doc).Error
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("doc_id = ?", id).Delete(&model.InventoryDocumentLine{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.InventoryDocument{}).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryDocument, error) {
	var doc model.InventoryDocument
	if err := GetDB(ctx, r.db).
		Preload("Lines", orderByLineNo).
		First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByIDForUpdate locks the document row for the rest of the transaction.
func (r *documentRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InventoryDocument, error) {
	var doc model.InventoryDocument
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindLines(ctx context.Context, docID uuid.UUID) ([]model.InventoryDocumentLine, error) {
	var lines []model.InventoryDocumentLine
	if err := GetDB(ctx, r.db).Where("doc_id = ?", docID).Order("line_no").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *documentRepository) ReplaceLines(ctx context.Context, docID uuid.UUID, lines []model.InventoryDocumentLine) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("doc_id = ?", docID).Delete(&model.InventoryDocumentLine{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].DocID = docID
	}
	return db.Create(&lines).Error
}

func (r *documentRepository) MarkPosted(ctx context.Context, id uuid.UUID, at time.Time, by *uuid.UUID) error {
	return r.updateStatus(ctx, id, model.DocStatusDraft, map[string]interface{}{
		"status":    model.DocStatusPosted,
		"posted_at": at,
		"posted_by": by,
	})
}

func (r *documentRepository) MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time, by *uuid.UUID, reversalID uuid.UUID) error {
	return r.updateStatus(ctx, id, model.DocStatusPosted, map[string]interface{}{
		"status":          model.DocStatusCancelled,
		"cancelled_at":    at,
		"cancelled_by":    by,
		"reversal_doc_id": reversalID,
	})
}

// updateStatus is a compare-and-swap on status: zero rows affected means the
// document left the expected state.
func (r *documentRepository) updateStatus(ctx context.Context, id uuid.UUID, from model.DocStatus, values map[string]interface{}) error {
	res := GetDB(ctx, r.db).Model(&model.InventoryDocument{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

// NextDocNo returns the next per-type, per-day document number, e.g. RCV-20261019-00001.
func (r *documentRepository) NextDocNo(ctx context.Context, docType model.DocType, at time.Time) (string, error) {
	db := GetDB(ctx, r.db)
	prefix := docType.Prefix() + "-" + at.Format("20060102") + "-"

	// Advisory lock prevents concurrent duplicate numbers
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefix).Error; err != nil {
			return "", err
		}
	}

	var last sql.NullString
	if err := db.Model(&model.InventoryDocument{}).
		Where("doc_no LIKE ?", prefix+"%").
		Select("MAX(doc_no)").
		Row().Scan(&last); err != nil {
		return "", err
	}

	seq := 0
	if last.Valid {
		seq, _ = strconv.Atoi(strings.TrimPrefix(last.String, prefix))
	}

	return fmt.Sprintf("%s%05d", prefix, seq+1), nil
}

func orderByLineNo(db *gorm.DB) *gorm.DB {
	return db.Order("line_no")
}
