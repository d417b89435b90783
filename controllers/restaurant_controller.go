package controllers

import (
	"strconv"

	"github.com/nori1700pm/ESD-FoodDelivery/pkg/resp"
	"github.com/nori1700pm/ESD-FoodDelivery/repository"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct{ Repo *repository.RestaurantRepository }

func NewRestaurantController(r *repository.RestaurantRepository) *RestaurantController {
	return &RestaurantController{Repo: r}
}

// GET /restaurants
func (h *RestaurantController) List(c *gin.Context) {
	restaurants, err := h.Repo.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, restaurants)
}

// GET /restaurants/:id
func (h *RestaurantController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	rest, err := h.Repo.FindWithMenus(uint(id))
	if err != nil {
		resp.NotFound(c, "restaurant not found")
		return
	}
	resp.OK(c, rest)
}
