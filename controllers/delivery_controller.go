package controllers

import (
	"net/http"
	"strconv"

	"github.com/nori1700pm/ESD-FoodDelivery/pkg/resp"
	"github.com/nori1700pm/ESD-FoodDelivery/services"
	"github.com/nori1700pm/ESD-FoodDelivery/utils"

	"github.com/gin-gonic/gin"
)

type DeliveryController struct{ Svc *services.DeliveryService }

func NewDeliveryController(s *services.DeliveryService) *DeliveryController {
	return &DeliveryController{Svc: s}
}

// POST /orders — create an order from the current cart
func (h *DeliveryController) CreateOrder(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	order, err := h.Svc.CreateOrder(uid)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, order)
}

// GET /orders — the caller's order history
func (h *DeliveryController) ListOrders(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	orders, err := h.Svc.OrderRepo.ListForUser(uid)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, orders)
}

// POST /pay-delivery
func (h *DeliveryController) PayDelivery(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		OrderID uint `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out := h.Svc.PayDelivery(uid, req.OrderID)
	status := http.StatusOK
	if out.Code >= 400 {
		status = out.Code
	}
	c.JSON(status, out)
}

// POST /partner/deliveries/:id/complete — the driver marks a paid order
// as delivered
func (h *DeliveryController) CompleteDelivery(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.Svc.CompleteDelivery(uint(orderID), utils.CurrentEmail(c))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, order)
}

// GET /partner/deliveries — paid orders waiting for a driver
func (h *DeliveryController) PendingDeliveries(c *gin.Context) {
	orders, err := h.Svc.PendingDeliveries()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, orders)
}
