package controllers

import (
	"net/http"
	"strconv"

	"github.com/nori1700pm/ESD-FoodDelivery/pkg/resp"
	"github.com/nori1700pm/ESD-FoodDelivery/services"
	"github.com/nori1700pm/ESD-FoodDelivery/utils"

	"github.com/gin-gonic/gin"
)

type WalletController struct{ Svc *services.WalletService }

func NewWalletController(s *services.WalletService) *WalletController {
	return &WalletController{Svc: s}
}

// GET /wallet
func (h *WalletController) Get(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	balance, err := h.Svc.Init(uid)
	if err != nil {
		c.JSON(200, gin.H{"ok": false, "balance": 0, "error": "Failed to initialize wallet"})
		return
	}
	resp.OK(c, gin.H{"balance": balance})
}

// GET /wallet/transactions
func (h *WalletController) Transactions(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	txns, total, err := h.Svc.Transactions(uid, page, size)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"transactions": txns, "total": total, "page": page})
}

// POST /wallet/process-payment
func (h *WalletController) ProcessPayment(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		Amount  float64 `json:"amount" binding:"required,gt=0"`
		OrderID string  `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	res := h.Svc.ProcessPayment(uid, req.Amount, req.OrderID)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, res)
}

// PUT /wallet — the retired direct top-up; kept so old clients get a
// clear deprecation failure instead of a 404.
func (h *WalletController) AddMoney(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	_ = c.ShouldBindJSON(&req)

	res := h.Svc.AddMoney(uid, req.Amount)
	c.JSON(http.StatusGone, res)
}

// POST /wallet/topup
func (h *WalletController) CreateCheckout(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	session, err := h.Svc.CreateCheckout(uid, req.Amount)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, session)
}

// POST /wallet/process-topup
func (h *WalletController) ProcessTopup(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		SessionID string  `json:"sessionId" binding:"required"`
		Amount    float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	res := h.Svc.ProcessTopupSuccess(uid, req.SessionID, req.Amount)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, res)
}
