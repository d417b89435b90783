package services

import (
	"fmt"

	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"github.com/nori1700pm/ESD-FoodDelivery/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RepairReport says which of the user's resources had to be created.
type RepairReport struct {
	ProfileCreated bool     `json:"profileCreated"`
	WalletCreated  bool     `json:"walletCreated"`
	CartCreated    bool     `json:"cartCreated"`
	StartingGrant  float64  `json:"startingGrant,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

// Changed reports whether the repair had to create anything.
func (r RepairReport) Changed() bool {
	return r.ProfileCreated || r.WalletCreated || r.CartCreated
}

// RepairService idempotently ensures a user's profile, wallet and cart
// exist. Each check is independent: one failing never blocks the rest.
type RepairService struct {
	DB         *gorm.DB
	UserRepo   *repository.UserRepository
	WalletRepo *repository.WalletRepository
	CartRepo   *repository.CartRepository

	// balance granted to a wallet the repair had to create
	Grant float64
}

func NewRepairService(db *gorm.DB, ur *repository.UserRepository, wr *repository.WalletRepository, cr *repository.CartRepository, grant float64) *RepairService {
	return &RepairService{DB: db, UserRepo: ur, WalletRepo: wr, CartRepo: cr, Grant: grant}
}

func (s *RepairService) Repair(userID uint) RepairReport {
	report := RepairReport{}

	created, err := s.ensureProfile(userID)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("profile repair failed: %v", err))
	}
	report.ProfileCreated = created

	if _, created, err := s.WalletRepo.GetOrCreate(userID, s.Grant); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("wallet repair failed: %v", err))
	} else if created {
		report.WalletCreated = true
		report.StartingGrant = s.Grant
	}

	if _, created, err := s.CartRepo.GetOrCreateCart(userID); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("cart repair failed: %v", err))
	} else if created {
		report.CartCreated = true
	}

	logrus.WithFields(logrus.Fields{
		"user_id":         userID,
		"profile_created": report.ProfileCreated,
		"wallet_created":  report.WalletCreated,
		"cart_created":    report.CartCreated,
		"errors":          len(report.Errors),
	}).Info("user data repair complete")

	return report
}

// ensureProfile recreates a missing user row under its original id. The
// placeholder email marks it for the account-recovery flow.
func (s *RepairService) ensureProfile(userID uint) (bool, error) {
	exists, err := s.UserRepo.Exists(userID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	stub := entity.User{
		Model: gorm.Model{ID: userID},
		Email: fmt.Sprintf("recovered-%d@placeholder.invalid", userID),
		Role:  "customer",
	}
	if err := s.DB.Create(&stub).Error; err != nil {
		return false, err
	}
	return true, nil
}
