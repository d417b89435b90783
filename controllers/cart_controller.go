package controllers

import (
	"strconv"

	"github.com/nori1700pm/ESD-FoodDelivery/pkg/resp"
	"github.com/nori1700pm/ESD-FoodDelivery/services"
	"github.com/nori1700pm/ESD-FoodDelivery/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	items, err := h.Svc.Init(uid)
	if err != nil {
		// degraded view: empty list plus the error flag, never a crash
		c.JSON(200, gin.H{"ok": false, "items": []any{}, "total": 0, "error": "Failed to load your cart"})
		return
	}
	resp.OK(c, gin.H{"items": items, "total": services.Total(items)})
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req services.AddItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	items, err := h.Svc.AddItem(uid, req)
	if err != nil {
		resp.BadRequest(c, "Failed to add item to cart")
		return
	}
	resp.Created(c, gin.H{"items": items, "total": services.Total(items)})
}

// DELETE /cart/items/:menuId
func (h *CartController) Remove(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	menuID, err := strconv.Atoi(c.Param("menuId"))
	if err != nil || menuID <= 0 {
		resp.BadRequest(c, "invalid menu id")
		return
	}

	items, err := h.Svc.RemoveItem(uid, uint(menuID))
	if err != nil {
		resp.BadRequest(c, "Failed to remove item from cart")
		return
	}
	resp.OK(c, gin.H{"items": items, "total": services.Total(items)})
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.Svc.Clear(uid); err != nil {
		resp.BadRequest(c, "Failed to clear your cart")
		return
	}
	resp.OK(c, gin.H{"items": []any{}, "total": 0})
}
