package services

import (
	"errors"
	"fmt"

	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"github.com/nori1700pm/ESD-FoodDelivery/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PayDeliveryOut mirrors the envelope the old gateway route answered
// with: a numeric code plus message, and the wallet result when a debit
// was attempted.
type PayDeliveryOut struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Wallet  *Result `json:"wallet,omitempty"`
}

// DeliveryService orchestrates order lookup and wallet debit for the
// pay-for-delivery flow, and feeds the driver job board.
type DeliveryService struct {
	OrderRepo *repository.OrderRepository
	CartSvc   *CartService
	WalletSvc *WalletService
}

func NewDeliveryService(or *repository.OrderRepository, cs *CartService, ws *WalletService) *DeliveryService {
	return &DeliveryService{OrderRepo: or, CartSvc: cs, WalletSvc: ws}
}

// CreateOrder turns the user's current cart into a pending order and
// clears the cart.
func (s *DeliveryService) CreateOrder(userID uint) (*entity.Order, error) {
	items, err := s.CartSvc.Init(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("cart is empty")
	}

	order := &entity.Order{
		UserID:       userID,
		RestaurantID: items[0].RestaurantID,
		Price:        Total(items),
		Status:       entity.OrderPending,
	}
	if err := s.OrderRepo.Create(order); err != nil {
		return nil, err
	}
	if err := s.CartSvc.Clear(userID); err != nil {
		logrus.WithField("user_id", userID).Warnf("cart clear after order failed: %v", err)
	}
	return order, nil
}

// PayDelivery debits the order price from the customer's wallet.
func (s *DeliveryService) PayDelivery(userID, orderID uint) PayDeliveryOut {
	order, err := s.OrderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayDeliveryOut{Code: 400, Message: "order not found"}
		}
		return PayDeliveryOut{Code: 500, Message: "failed to load order"}
	}
	if order.UserID != userID {
		return PayDeliveryOut{Code: 403, Message: "order belongs to another customer"}
	}
	if order.Price <= 0 {
		return PayDeliveryOut{Code: 400, Message: "invalid order: price not found"}
	}
	if order.Status != entity.OrderPending {
		return PayDeliveryOut{Code: 400, Message: "order already paid"}
	}

	res := s.WalletSvc.ProcessPayment(userID, order.Price, orderRefOf(order))
	if !res.Success {
		logrus.WithFields(logrus.Fields{
			"error_id": uuid.NewString(),
			"user_id":  userID,
			"order_id": orderID,
			"message":  res.Message,
		}).Warn("delivery payment failed")
		return PayDeliveryOut{Code: 400, Message: res.Message, Wallet: &res}
	}

	if err := s.OrderRepo.UpdateStatus(orderID, entity.OrderPaid); err != nil {
		logrus.WithField("order_id", orderID).Errorf("order status update failed: %v", err)
	}
	return PayDeliveryOut{Code: 200, Message: "payment processed successfully", Wallet: &res}
}

// PendingDeliveries lists paid orders waiting for a driver.
func (s *DeliveryService) PendingDeliveries() ([]entity.Order, error) {
	return s.OrderRepo.ListByStatus(entity.OrderPaid)
}

// CompleteDelivery moves a paid order to DELIVERED. Only paid orders can
// transition; anything else is rejected. driverEmail is audit-only, the
// route already enforces the driver role.
func (s *DeliveryService) CompleteDelivery(orderID uint, driverEmail string) (*entity.Order, error) {
	order, err := s.OrderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, err
	}
	if order.Status != entity.OrderPaid {
		return nil, fmt.Errorf("order is %s, only paid orders can be delivered", order.Status)
	}

	if err := s.OrderRepo.UpdateStatus(orderID, entity.OrderDelivered); err != nil {
		return nil, err
	}
	order.Status = entity.OrderDelivered

	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"driver":   driverEmail,
	}).Info("delivery completed")
	return order, nil
}

func orderRefOf(o *entity.Order) string {
	return fmt.Sprintf("order-%d", o.ID)
}
