package main

import (
	"fmt"

	"github.com/nori1700pm/ESD-FoodDelivery/configs"
	"github.com/nori1700pm/ESD-FoodDelivery/middlewares"
	"github.com/nori1700pm/ESD-FoodDelivery/pkg/metrics"
	"github.com/nori1700pm/ESD-FoodDelivery/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := configs.LoadConfig()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	metrics.Init()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// Redis (optional; wallet cache only)
	rdb := configs.ConnectRedis(cfg)

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	// Guarded navigation waits on this until bootstrap is done.
	ready := make(chan struct{})
	routes.RegisterRoutes(r, db, rdb, cfg, ready)

	configs.SetupDatabase()
	if err := configs.SeedRestaurants(); err != nil {
		logrus.Fatalf("seed restaurants failed: %v", err)
	}
	close(ready)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logrus.Infof("server running at %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatal(err)
	}
}
