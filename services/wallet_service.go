package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"github.com/nori1700pm/ESD-FoodDelivery/pkg/metrics"
	"github.com/nori1700pm/ESD-FoodDelivery/repository"
	"github.com/nori1700pm/ESD-FoodDelivery/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Result is what every mutating wallet operation returns. Failures are
// values, not raised errors; Message is safe to show to the user and
// Balance is always the authoritative post-call value.
type Result struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Balance float64 `json:"balance"`
}

// BalanceNotifier receives the new balance after every committed
// mutation. The websocket hub implements it.
type BalanceNotifier interface {
	Publish(userID uint, balance float64)
}

type WalletService struct {
	Repo    *repository.WalletRepository
	Gateway *GatewayClient

	rdb      *redis.Client
	notifier BalanceNotifier
}

func NewWalletService(repo *repository.WalletRepository, gw *GatewayClient, rdb *redis.Client) *WalletService {
	return &WalletService{Repo: repo, Gateway: gw, rdb: rdb}
}

func (s *WalletService) SetNotifier(n BalanceNotifier) { s.notifier = n }

// Init loads or creates the user's wallet and returns its balance.
func (s *WalletService) Init(userID uint) (float64, error) {
	if userID == 0 {
		return 0, nil
	}
	w, _, err := s.Repo.GetOrCreate(userID, 0)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// Balance answers from the redis cache when possible, the DB otherwise.
func (s *WalletService) Balance(userID uint) (float64, error) {
	ctx := context.Background()
	key := walletCacheKey(userID)

	if s.rdb != nil {
		var cached float64
		if found, err := utils.GetCache(ctx, s.rdb, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	w, err := s.Repo.Get(userID)
	if err != nil {
		return 0, err
	}
	if s.rdb != nil {
		_ = utils.SetCache(ctx, s.rdb, key, w.Balance, 60*time.Second)
	}
	return w.Balance, nil
}

// ProcessPayment debits amount for an order. The balance never goes
// below zero: the sufficient-funds check runs again inside the guarded
// update, so a stale pre-check cannot overdraw.
func (s *WalletService) ProcessPayment(userID uint, amount float64, orderRef string) Result {
	if userID == 0 {
		return Result{Success: false, Message: "user not authenticated"}
	}
	if amount <= 0 {
		bal, _ := s.Balance(userID)
		return Result{Success: false, Message: "invalid amount", Balance: bal}
	}

	current, err := s.Balance(userID)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			return Result{Success: false, Message: "wallet not found"}
		}
		return s.storeFailure(userID, "payment", err)
	}
	if current < amount {
		metrics.PaymentsTotal.WithLabelValues("insufficient").Inc()
		return Result{
			Success: false,
			Message: fmt.Sprintf("insufficient balance: have %.2f, need %.2f", current, amount),
			Balance: current,
		}
	}

	ref := uuid.NewString()
	newBalance, err := s.Repo.Debit(userID, amount, ref, orderRef)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			// lost the race against a concurrent debit
			metrics.PaymentsTotal.WithLabelValues("insufficient").Inc()
			bal, _ := s.Balance(userID)
			return Result{Success: false, Message: "insufficient balance", Balance: bal}
		}
		return s.storeFailure(userID, "payment", err)
	}

	s.afterMutation(userID, newBalance)
	metrics.PaymentsTotal.WithLabelValues("completed").Inc()
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"order":   orderRef,
		"ref":     ref,
		"type":    entity.TxnPayment,
		"balance": newBalance,
	}).Info("payment processed")

	return Result{Success: true, Message: "payment processed successfully", Balance: newBalance}
}

// AddMoney is the old direct top-up. It was retired when the hosted
// checkout flow landed and now always refuses.
func (s *WalletService) AddMoney(userID uint, amount float64) Result {
	bal, _ := s.Balance(userID)
	return Result{
		Success: false,
		Message: "direct top-up is no longer supported, use checkout",
		Balance: bal,
	}
}

// CreateCheckout requests a hosted checkout session from the gateway.
// The balance is untouched until the session is verified.
func (s *WalletService) CreateCheckout(userID uint, amount float64) (*CheckoutSession, error) {
	if userID == 0 {
		return nil, errors.New("user not authenticated")
	}
	if amount <= 0 {
		return nil, errors.New("invalid amount")
	}
	return s.Gateway.CreateTopupSession(customerRef(userID), amount)
}

// ProcessTopupSuccess verifies the checkout session and credits the
// wallet by exactly the session amount. A failed verification records a
// failed transaction and leaves the balance unchanged.
func (s *WalletService) ProcessTopupSuccess(userID uint, sessionID string, amount float64) Result {
	if userID == 0 {
		return Result{Success: false, Message: "user not authenticated"}
	}
	if sessionID == "" || amount <= 0 {
		bal, _ := s.Balance(userID)
		return Result{Success: false, Message: "invalid top-up request", Balance: bal}
	}

	// Wallet must exist before any transaction can reference it.
	if _, _, err := s.Repo.GetOrCreate(userID, 0); err != nil {
		return s.storeFailure(userID, "top-up", err)
	}

	// A session credits at most once; replays are rejected locally.
	credited, err := s.Repo.CompletedRefExists(userID, sessionID)
	if err != nil {
		return s.storeFailure(userID, "top-up", err)
	}
	if credited {
		bal, _ := s.Balance(userID)
		return Result{Success: false, Message: "checkout session already credited", Balance: bal}
	}

	if err := s.Gateway.VerifyTopup(sessionID, customerRef(userID), amount); err != nil {
		if recErr := s.Repo.RecordFailed(userID, entity.TxnDeposit, amount, "stripe", sessionID); recErr != nil {
			logrus.WithField("user_id", userID).Errorf("record failed top-up: %v", recErr)
		}
		metrics.TopupsTotal.WithLabelValues("failed").Inc()
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"session": sessionID,
			"amount":  amount,
		}).Warnf("top-up verification failed: %v", err)

		bal, _ := s.Balance(userID)
		return Result{Success: false, Message: "top-up verification failed", Balance: bal}
	}

	newBalance, err := s.Repo.Credit(userID, amount, "stripe", sessionID)
	if err != nil {
		return s.storeFailure(userID, "top-up", err)
	}

	s.afterMutation(userID, newBalance)
	metrics.TopupsTotal.WithLabelValues("completed").Inc()
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"session": sessionID,
		"amount":  amount,
		"type":    entity.TxnDeposit,
		"balance": newBalance,
	}).Info("top-up credited")

	return Result{Success: true, Message: "wallet topped up successfully", Balance: newBalance}
}

// Transactions returns the user's history, newest first.
func (s *WalletService) Transactions(userID uint, page, pageSize int) ([]entity.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	ctx := context.Background()
	key := txnCacheKey(userID, page, pageSize)
	type cachedPage struct {
		Transactions []entity.Transaction `json:"transactions"`
		Total        int64                `json:"total"`
	}

	if s.rdb != nil {
		var cached cachedPage
		if found, err := utils.GetCache(ctx, s.rdb, key, &cached); err == nil && found {
			return cached.Transactions, cached.Total, nil
		}
	}

	txns, total, err := s.Repo.Transactions(userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if s.rdb != nil {
		_ = utils.SetCache(ctx, s.rdb, key, cachedPage{Transactions: txns, Total: total}, 60*time.Second)
	}
	return txns, total, nil
}

// Remote-store failures degrade to a generic stored message; the raw
// error only goes to the log.
func (s *WalletService) storeFailure(userID uint, op string, err error) Result {
	metrics.PaymentsTotal.WithLabelValues("failed").Inc()
	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"error_id": uuid.NewString(),
	}).Errorf("wallet %s failed: %v", op, err)
	bal, _ := s.Balance(userID)
	return Result{Success: false, Message: fmt.Sprintf("failed to process %s", op), Balance: bal}
}

func (s *WalletService) afterMutation(userID uint, balance float64) {
	if s.rdb != nil {
		ctx := context.Background()
		_ = utils.DeleteCache(ctx, s.rdb, walletCacheKey(userID))
		// drop the first pages of history, same shortcut as before
		for i := 1; i <= 5; i++ {
			_ = utils.DeleteCache(ctx, s.rdb, txnCacheKey(userID, i, 20))
		}
	}
	if s.notifier != nil {
		s.notifier.Publish(userID, balance)
	}
}

func walletCacheKey(userID uint) string {
	return "wallet:user:" + strconv.Itoa(int(userID))
}

func txnCacheKey(userID uint, page, size int) string {
	return "txhistory:user:" + strconv.Itoa(int(userID)) +
		":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(size)
}

func customerRef(userID uint) string {
	return strconv.Itoa(int(userID))
}
