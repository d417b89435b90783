package repository

import (
	"errors"

	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"gorm.io/gorm"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type WalletRepository struct{ DB *gorm.DB }

func NewWalletRepository(db *gorm.DB) *WalletRepository { return &WalletRepository{DB: db} }

func (r *WalletRepository) GetOrCreate(userID uint, initial float64) (*entity.Wallet, bool, error) {
	var w entity.Wallet
	err := r.DB.Where("user_id = ?", userID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		w = entity.Wallet{UserID: userID, Balance: initial}
		if err := r.DB.Create(&w).Error; err != nil {
			return nil, false, err
		}
		return &w, true, nil
	}
	return &w, false, err
}

func (r *WalletRepository) Get(userID uint) (*entity.Wallet, error) {
	var w entity.Wallet
	err := r.DB.Where("user_id = ?", userID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWalletNotFound
	}
	return &w, err
}

// Debit subtracts amount from the wallet and records the PAYMENT row in
// one transaction. The update is conditional on sufficient balance so two
// concurrent debits cannot both pass a stale read.
func (r *WalletRepository) Debit(userID uint, amount float64, ref, orderRef string) (float64, error) {
	var newBalance float64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var w entity.Wallet
		if err := tx.Where("user_id = ?", userID).First(&w).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletNotFound
			}
			return err
		}

		res := tx.Model(&entity.Wallet{}).
			Where("id = ? AND balance >= ?", w.ID, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		t := entity.Transaction{
			WalletID: w.ID,
			Type:     entity.TxnPayment,
			Amount:   amount,
			Status:   entity.TxnCompleted,
			Method:   "wallet",
			Ref:      ref,
			OrderRef: orderRef,
		}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}

		return tx.Model(&entity.Wallet{}).Select("balance").
			Where("id = ?", w.ID).Scan(&newBalance).Error
	})
	return newBalance, err
}

// Credit adds amount to the wallet and records the DEPOSIT row in one
// transaction.
func (r *WalletRepository) Credit(userID uint, amount float64, method, ref string) (float64, error) {
	var newBalance float64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var w entity.Wallet
		if err := tx.Where("user_id = ?", userID).First(&w).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletNotFound
			}
			return err
		}

		if err := tx.Model(&w).Update("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
			return err
		}

		t := entity.Transaction{
			WalletID: w.ID,
			Type:     entity.TxnDeposit,
			Amount:   amount,
			Status:   entity.TxnCompleted,
			Method:   method,
			Ref:      ref,
		}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}

		return tx.Model(&entity.Wallet{}).Select("balance").
			Where("id = ?", w.ID).Scan(&newBalance).Error
	})
	return newBalance, err
}

// CompletedRefExists reports whether a completed transaction with this
// reference was already recorded on the user's wallet.
func (r *WalletRepository) CompletedRefExists(userID uint, ref string) (bool, error) {
	w, err := r.Get(userID)
	if err != nil {
		if errors.Is(err, ErrWalletNotFound) {
			return false, nil
		}
		return false, err
	}
	var count int64
	err = r.DB.Model(&entity.Transaction{}).
		Where("wallet_id = ? AND ref = ? AND status = ?", w.ID, ref, entity.TxnCompleted).
		Count(&count).Error
	return count > 0, err
}

// RecordFailed appends a failed transaction without touching the balance.
func (r *WalletRepository) RecordFailed(userID uint, txType string, amount float64, method, ref string) error {
	w, err := r.Get(userID)
	if err != nil {
		return err
	}
	t := entity.Transaction{
		WalletID: w.ID,
		Type:     txType,
		Amount:   amount,
		Status:   entity.TxnFailed,
		Method:   method,
		Ref:      ref,
	}
	return r.DB.Create(&t).Error
}

func (r *WalletRepository) Transactions(userID uint, offset, limit int) ([]entity.Transaction, int64, error) {
	w, err := r.Get(userID)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.DB.Model(&entity.Transaction{}).Where("wallet_id = ?", w.ID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txns []entity.Transaction
	err = r.DB.Where("wallet_id = ?", w.ID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&txns).Error
	return txns, total, err
}
