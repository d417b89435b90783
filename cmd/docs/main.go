package main

import (
	"github.com/nori1700pm/ESD-FoodDelivery/configs"
	"github.com/nori1700pm/ESD-FoodDelivery/docs"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := configs.LoadConfig()

	srv, err := docs.New(cfg.DocsDir)
	if err != nil {
		logrus.Fatalf("docs server setup failed: %v", err)
	}

	logrus.Infof("docs server running on port %s", cfg.DocsPort)
	if err := srv.Run(cfg.DocsPort); err != nil {
		logrus.Fatal(err)
	}
}
