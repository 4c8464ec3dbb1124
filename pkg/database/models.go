package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model for all entities
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns an id when the database has no uuid default
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// User represents an account owner; every business record is scoped to one user
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	GoogleID     string `gorm:"index" json:"-"` // For Google OAuth users
	PasswordHash string `json:"-"`              // Optional for OAuth users
	Name         string `gorm:"not null" json:"name"`
	BusinessName string `json:"business_name"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
}

// Customer represents a buyer, deduplicated by exact name per user
type Customer struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"not null" json:"name"`
	Phone  string    `json:"phone"`
	Email  string    `json:"email"`
}

// Product represents a sellable item
type Product struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string    `gorm:"not null" json:"name"`
	Category     string    `json:"category"`
	Cost         float64   `json:"cost"`
	SellingPrice float64   `gorm:"not null" json:"selling_price"`
	StockQty     int       `gorm:"default:0" json:"stock_qty"` // Never negative after a committed sale
	IsActive     bool      `gorm:"default:true" json:"is_active"`
}

// Sale represents one transaction header against one customer
type Sale struct {
	BaseModel
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null" json:"customer_id"`
	Customer      *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items         []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
	TotalAmount   float64    `gorm:"not null" json:"total_amount"`
	TotalCost     float64    `gorm:"not null" json:"total_cost"`
	PaymentStatus string     `gorm:"default:'paid'" json:"payment_status"` // paid, pending, overdue
	SaleDate      time.Time  `json:"sale_date"`
	DueDate       *time.Time `json:"due_date"` // Required when payment_status is pending
}

// SaleItem is one product line within a sale; price and cost are frozen at sale time
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	UnitCost  float64   `gorm:"not null" json:"unit_cost"`
}

func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Debtor is the unresolved payment obligation derived from a pending sale
type Debtor struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SaleID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"sale_id"`
	Sale       *Sale     `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	AmountOwed float64   `gorm:"not null" json:"amount_owed"`
	DueDate    time.Time `gorm:"not null" json:"due_date"`
	IsResolved bool      `gorm:"default:false" json:"is_resolved"`
}

// Note is a standalone memo, independent of the sales workflow
type Note struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title    string    `gorm:"not null" json:"title"`
	Content  string    `json:"content"`
	Category string    `gorm:"default:'general'" json:"category"` // general, task, reminder, idea
	IsPinned bool      `gorm:"default:false" json:"is_pinned"`
}

// ActivityLog tracks domain actions for the audit trail
type ActivityLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Action     string     `gorm:"not null" json:"action"` // sale, void_sale, debt_paid, stock_adjust, etc.
	EntityType string     `json:"entity_type"`            // sale, debtor, product, note
	EntityID   *uuid.UUID `gorm:"type:uuid" json:"entity_id"`
	Details    string     `gorm:"type:text" json:"details"` // JSON details
	IPAddress  string     `json:"ip_address"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Customer{},
		&Product{},
		&Sale{},
		&SaleItem{},
		&Debtor{},
		&Note{},
		&ActivityLog{},
	)
}
