package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/payment"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は実環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Order{},
		&model.Product{},
		&model.CartItem{},
		&model.AdminSettings{},
		&model.WebhookEvent{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	settingsRepo := infraRepo.NewSettingsGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Stripeゲートウェイ（セッション作成と署名検証）
	gateway := payment.NewStripeGateway()

	//Usecase生成
	resolver := usecase.NewProviderConfigResolver(settingsRepo, cfg)
	checkoutUC := usecase.NewCheckoutUsecase(resolver, orderRepo, gateway, cfg)
	webhookUC := usecase.NewWebhookUsecase(
		resolver,
		gateway,
		txManager,
		usecase.NewTransactionalReconciler(txManager),
		usecase.NewBestEffortReconciler(orderRepo, productRepo),
		orderRepo,
	)
	cartUC := usecase.NewCartUsecase(cartItemRepo)
	productUC := usecase.NewProductUsecase(productRepo)
	settingsUC := usecase.NewSettingsUsecase(settingsRepo, cfg)
	adminAuthUC := usecase.NewAdminAuthUsecase(cfg)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo)

	//Handler生成
	checkoutH := handler.NewCheckoutHandler(checkoutUC)
	webhookH := handler.NewWebhookHandler(webhookUC)
	cartH := handler.NewCartHandler(cartUC)
	productH := handler.NewProductHandler(productUC)
	adminH := handler.NewAdminHandler(adminAuthUC, settingsUC, productUC, adminOrderUC)

	//Server起動
	e := server.New(cfg)
	checkoutH.RegisterRoutes(e)
	webhookH.RegisterRoutes(e)
	cartH.RegisterRoutes(e)
	productH.RegisterRoutes(e)
	adminH.RegisterRoutes(e, cfg)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := e.Start(addr); err != nil {
		panic(err)
	}
}
