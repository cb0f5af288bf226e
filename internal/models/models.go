package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleUser }

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFood        Category = "food"
	CategoryBooks       Category = "books"
	CategoryOther       Category = "other"
)

var Categories = []Category{CategoryElectronics, CategoryClothing, CategoryFood, CategoryBooks, CategoryOther}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"_id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// Product is owned by exactly one User. TotalValue is derived and
// recomputed in BeforeSave.
type Product struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null;default:''" json:"description"`
	Category    Category  `gorm:"size:32;not null;index" json:"category"`
	Quantity    int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	UnitPrice   float64   `gorm:"not null;check:unit_price >= 0" json:"unitPrice"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	TotalValue  float64   `gorm:"not null;default:0" json:"totalValue"`
	OwnerID     string    `gorm:"type:uuid;not null;index" json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ComputeTotal sets TotalValue from Quantity and UnitPrice.
func (p *Product) ComputeTotal() {
	p.TotalValue = float64(p.Quantity) * p.UnitPrice
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Product) BeforeSave(*gorm.DB) error {
	p.ComputeTotal()
	return nil
}

type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *string   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	ProductID *string   `gorm:"type:uuid" json:"product_id,omitempty"`
	Action    string    `gorm:"not null" json:"action"`
	Metadata  JSONB     `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&User{}, &Product{}, &AuditLog{}}
}
