// Package product implements owner-scoped product storage. Every read and
// write is filtered by the caller's account id; a product owned by someone
// else is reported exactly like a missing one.
package product

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventra/internal/apperr"
	"inventra/internal/models"
	"inventra/internal/services/audit"
)

const (
	SortDefault   = "default"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// Filter narrows List. The zero value returns every product of the owner.
type Filter struct {
	Search   string
	Category models.Category
	MinValue *float64
	MaxValue *float64
	SortBy   string
}

type Service struct {
	db    *gorm.DB
	audit *audit.Recorder
	lg    *zap.SugaredLogger
}

func NewService(db *gorm.DB, rec *audit.Recorder, lg *zap.SugaredLogger) *Service {
	return &Service{db: db, audit: rec, lg: lg}
}

func (s *Service) Create(ctx context.Context, in Input, ownerID string) (*models.Product, error) {
	f, err := in.parse(true)
	if err != nil {
		return nil, err
	}
	p := &models.Product{OwnerID: ownerID, IsActive: true}
	f.apply(p)
	p.ComputeTotal()
	if err := checkTotal(p); err != nil {
		return nil, err
	}
	// Select("*") so an explicit isActive=false is not replaced by the column default
	if err := s.db.WithContext(ctx).Select("*").Create(p).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	s.audit.Record(ctx, ownerID, p.ID, audit.ActionProductCreate, map[string]any{"name": p.Name})
	return p, nil
}

// List returns the owner's products.
func (s *Service) List(ctx context.Context, ownerID string, f Filter) ([]models.Product, error) {
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if term := strings.TrimSpace(f.Search); term != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(term))+"%")
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinValue != nil {
		q = q.Where("total_value >= ?", *f.MinValue)
	}
	if f.MaxValue != nil {
		q = q.Where("total_value <= ?", *f.MaxValue)
	}
	switch f.SortBy {
	case SortPriceAsc:
		q = q.Order("unit_price asc")
	case SortPriceDesc:
		q = q.Order("unit_price desc")
	default:
		q = q.Order("created_at asc")
	}
	out := []models.Product{}
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id, ownerID string) (*models.Product, error) {
	return s.find(s.db.WithContext(ctx), id, ownerID)
}

// Update applies the supplied fields and recomputes the total value.
func (s *Service) Update(ctx context.Context, id string, in Input, ownerID string) (*models.Product, error) {
	f, err := in.parse(false)
	if err != nil {
		return nil, err
	}
	var p *models.Product
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.find(tx, id, ownerID)
		if err != nil {
			return err
		}
		f.apply(found)
		found.ComputeTotal()
		if err := checkTotal(found); err != nil {
			return err
		}
		if err := tx.Save(found).Error; err != nil {
			return apperr.Internal(err)
		}
		p = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, ownerID, p.ID, audit.ActionProductUpdate, map[string]any{"name": p.Name})
	return p, nil
}

// Delete removes the product and returns it as it was.
func (s *Service) Delete(ctx context.Context, id, ownerID string) (*models.Product, error) {
	var p *models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.find(tx, id, ownerID)
		if err != nil {
			return err
		}
		res := tx.Where("id = ? AND owner_id = ?", found.ID, ownerID).Delete(&models.Product{})
		if res.Error != nil {
			return apperr.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound(apperr.MsgProductNotFound)
		}
		p = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, ownerID, p.ID, audit.ActionProductDelete, map[string]any{"name": p.Name})
	return p, nil
}

func (s *Service) find(db *gorm.DB, id, ownerID string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound(apperr.MsgProductNotFound)
	}
	var p models.Product
	err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(apperr.MsgProductNotFound)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &p, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
