// Package audit keeps an append-only trail of account and product
// mutations.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventra/internal/models"
)

const (
	ActionRegister      = "account.register"
	ActionLogin         = "account.login"
	ActionProductCreate = "product.create"
	ActionProductUpdate = "product.update"
	ActionProductDelete = "product.delete"
)

// ListLimit caps how many entries a single query returns.
const ListLimit = 200

type Recorder struct {
	db *gorm.DB
	lg *zap.SugaredLogger
}

func NewRecorder(db *gorm.DB, lg *zap.SugaredLogger) *Recorder {
	return &Recorder{db: db, lg: lg}
}

// Record appends an entry. Failures are logged and swallowed so the
// primary operation never fails on account of the trail.
func (r *Recorder) Record(ctx context.Context, userID, productID, action string, meta any) {
	if r == nil {
		return
	}
	entry := models.AuditLog{Action: action, Metadata: models.NewJSONB(meta), CreatedAt: time.Now()}
	if userID != "" {
		entry.UserID = &userID
	}
	if productID != "" {
		entry.ProductID = &productID
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		r.lg.Warnw("audit write failed", "action", action, "user_id", userID, "error", err)
	}
}

// ForUser returns the caller's most recent entries, newest first.
func (r *Recorder) ForUser(ctx context.Context, userID string) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(ListLimit).
		Find(&logs).Error
	return logs, err
}

// Recent returns the most recent entries across all accounts.
func (r *Recorder) Recent(ctx context.Context) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	err := r.db.WithContext(ctx).Order("created_at desc, id desc").Limit(ListLimit).Find(&logs).Error
	return logs, err
}
