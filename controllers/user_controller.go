package controllers

import (
	"github.com/nori1700pm/ESD-FoodDelivery/pkg/resp"
	"github.com/nori1700pm/ESD-FoodDelivery/services"
	"github.com/nori1700pm/ESD-FoodDelivery/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct{ Repair *services.RepairService }

func NewUserController(r *services.RepairService) *UserController {
	return &UserController{Repair: r}
}

// POST /profile/repair — ensure the caller's profile, wallet and cart
// documents all exist.
func (h *UserController) RepairMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	report := h.Repair.Repair(uid)
	resp.OK(c, gin.H{
		"message":  "User data check complete",
		"changed":  report.Changed(),
		"repaired": report,
	})
}
