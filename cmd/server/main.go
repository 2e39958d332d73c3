package main

import (
	"log"

	"arenapix-be/internal/api"
	"arenapix-be/internal/cart"
	"arenapix-be/internal/config"
	"arenapix-be/internal/db"
	"arenapix-be/internal/logger"
	"arenapix-be/internal/openpix"
	"arenapix-be/internal/order"
	"arenapix-be/internal/payment/webhook"
	"arenapix-be/internal/product"
	"arenapix-be/internal/team"
	"arenapix-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	gateway := openpix.NewClient(cfg.OpenPixBaseURL, cfg.OpenPixAppID)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, gateway)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, gateway, cfg.PlatformFeePct)

	teamRepo := team.NewRepository(database)
	teamSvc := team.NewService(teamRepo)

	r := api.NewRouter(cfg, api.Handlers{
		User:    api.NewUserHandler(userSvc),
		Product: api.NewProductHandler(productSvc),
		Cart:    api.NewCartHandler(cartSvc),
		Order:   api.NewOrderHandler(orderSvc),
		Team:    api.NewTeamHandler(teamSvc),
		Pix:     api.NewPixHandler(gateway),
		Webhook: webhook.NewHandler(orderRepo, cfg.WebhookSecret),
	})

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(r.Run(":" + cfg.AppPort))
}
