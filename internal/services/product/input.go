package product

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"inventra/internal/apperr"
	"inventra/internal/models"
)

// Input is a caller-supplied product body. Absent fields are nil. Numeric
// fields are kept raw so non-numeric values are rejected explicitly rather
// than failing the whole decode. totalValue and createdBy are never read.
type Input struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *models.Category `json:"category"`
	Quantity    json.RawMessage  `json:"quantity"`
	UnitPrice   json.RawMessage  `json:"unitPrice"`
	IsActive    *bool            `json:"isActive"`
}

// fields is Input after numeric parsing.
type fields struct {
	name        *string
	description *string
	category    *models.Category
	quantity    *int
	unitPrice   *float64
	isActive    *bool
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func parseNumber(raw json.RawMessage, notNumber string) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, apperr.Validation(notNumber)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apperr.Validation(notNumber)
	}
	return f, nil
}

// parse validates in. On create every required field must be present; on
// update only the supplied fields are checked.
func (in Input) parse(create bool) (fields, error) {
	var out fields

	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return out, apperr.Validation(apperr.MsgProductNameRequired)
		}
		out.name = &n
	} else if create {
		return out, apperr.Validation(apperr.MsgProductNameRequired)
	}

	if in.Category != nil {
		c := models.Category(strings.ToLower(strings.TrimSpace(string(*in.Category))))
		if !c.Valid() {
			return out, apperr.Validation(apperr.MsgInvalidCategory)
		}
		out.category = &c
	} else if create {
		return out, apperr.Validation(apperr.MsgInvalidCategory)
	}

	if present(in.Quantity) {
		f, err := parseNumber(in.Quantity, apperr.MsgQuantityNotNumber)
		if err != nil {
			return out, err
		}
		if f != math.Trunc(f) {
			return out, apperr.Validation(apperr.MsgQuantityNotNumber)
		}
		if f < 0 {
			return out, apperr.Validation(apperr.MsgQuantityNegative)
		}
		if f > math.MaxInt32 {
			return out, apperr.Validation(apperr.MsgQuantityTooLarge)
		}
		q := int(f)
		out.quantity = &q
	} else if create {
		return out, apperr.Validation(apperr.MsgQuantityRequired)
	}

	if present(in.UnitPrice) {
		f, err := parseNumber(in.UnitPrice, apperr.MsgPriceNotNumber)
		if err != nil {
			return out, err
		}
		if f < 0 {
			return out, apperr.Validation(apperr.MsgPriceNegative)
		}
		out.unitPrice = &f
	} else if create {
		return out, apperr.Validation(apperr.MsgPriceRequired)
	}

	out.description = in.Description
	out.isActive = in.IsActive
	return out, nil
}

// checkTotal rejects products whose derived total overflows float64, which
// could not be stored or encoded as JSON.
func checkTotal(p *models.Product) error {
	if math.IsInf(p.TotalValue, 0) || math.IsNaN(p.TotalValue) {
		return apperr.Validation(apperr.MsgTotalTooLarge)
	}
	return nil
}

func (f fields) apply(p *models.Product) {
	if f.name != nil {
		p.Name = *f.name
	}
	if f.description != nil {
		p.Description = *f.description
	}
	if f.category != nil {
		p.Category = *f.category
	}
	if f.quantity != nil {
		p.Quantity = *f.quantity
	}
	if f.unitPrice != nil {
		p.UnitPrice = *f.unitPrice
	}
	if f.isActive != nil {
		p.IsActive = *f.isActive
	}
}
