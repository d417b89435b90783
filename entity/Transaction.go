package entity

import (
	"gorm.io/gorm"
)

const (
	TxnDeposit = "DEPOSIT"
	TxnPayment = "PAYMENT"

	TxnCompleted = "completed"
	TxnFailed    = "failed"
)

type Transaction struct {
	gorm.Model
	WalletID uint    `gorm:"index" json:"walletId"`
	Wallet   Wallet  `json:"-"`
	Type     string  `gorm:"not null" json:"type"` // DEPOSIT | PAYMENT
	Amount   float64 `json:"amount"`
	Status   string  `gorm:"not null;default:completed" json:"status"`
	Method   string  `json:"method"` // wallet | stripe
	Ref      string  `gorm:"index" json:"ref"`
	OrderRef string  `json:"orderRef"`
}
