package debt

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/internal/sales"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("debtor not found")
	ErrAlreadyResolved = errors.New("debtor already resolved")
)

// Urgency classes for an open debt
const (
	ClassOverdue = "overdue"
	ClassDueSoon = "due_soon"
	ClassOnTrack = "on_track"
)

// DaysUntilDue rounds up: a due date 0.1 days away still counts as 1 day
// left, and a due date exactly now is 0, "due today".
func DaysUntilDue(dueDate, now time.Time) int {
	return int(math.Ceil(dueDate.Sub(now).Hours() / 24))
}

// Classify grades an open debt for display. Overdue only when the due date
// is strictly in the past; within 7 days counts as due soon.
func Classify(dueDate, now time.Time) string {
	if dueDate.Before(now) {
		return ClassOverdue
	}
	if DaysUntilDue(dueDate, now) <= 7 {
		return ClassDueSoon
	}
	return ClassOnTrack
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// MarkPaid resolves a debtor and marks its sale paid in one transaction.
// A resolved debtor always implies a paid sale; neither write lands alone.
func (s *Service) MarkPaid(userID, debtorID uuid.UUID) (*database.Debtor, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var debtor database.Debtor
	if err := tx.Where("id = ? AND user_id = ?", debtorID, userID).First(&debtor).Error; err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if debtor.IsResolved {
		tx.Rollback()
		return nil, ErrAlreadyResolved
	}

	if err := tx.Model(&debtor).Update("is_resolved", true).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Model(&database.Sale{}).
		Where("id = ? AND user_id = ?", debtor.SaleID, userID).
		Update("payment_status", sales.StatusPaid).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.db.Preload("Customer").Preload("Sale").First(&debtor, debtor.ID)

	return &debtor, nil
}

// ListOpen returns unresolved debtors with customer and sale, soonest due first
func (s *Service) ListOpen(userID uuid.UUID) ([]database.Debtor, error) {
	var debtors []database.Debtor
	err := s.db.Where("user_id = ? AND is_resolved = ?", userID, false).
		Preload("Customer").
		Preload("Sale").
		Order("due_date ASC").
		Find(&debtors).Error
	return debtors, err
}

// ListAll returns every debtor for the user, resolved included
func (s *Service) ListAll(userID uuid.UUID) ([]database.Debtor, error) {
	var debtors []database.Debtor
	err := s.db.Where("user_id = ?", userID).
		Preload("Customer").
		Preload("Sale").
		Order("due_date ASC").
		Find(&debtors).Error
	return debtors, err
}
