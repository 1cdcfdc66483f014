package main

import (
	"log"

	"shoestore/internal/config"
	"shoestore/internal/domain/model"
	"shoestore/internal/handler"
	"shoestore/internal/infra/db"
	infraRepo "shoestore/internal/infra/repository"
	"shoestore/internal/middleware"
	"shoestore/internal/server"
	"shoestore/internal/usecase"
	"shoestore/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Printf("db close: %v", err)
		}
	}()

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderDetail{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderDetailRepo := infraRepo.NewOrderDetailGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, validator.NewAuthValidator(), cfg.JWTSecret, "shoestore")
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, cartUC, orderRepo, orderDetailRepo, productRepo, userRepo)

	//Middleware
	authMW := middleware.AuthJWT(authUC)
	adminMW := middleware.AdminRoleGuard()

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC, cfg.CookieSecure),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
	}

	//Server起動
	e := server.New(cfg, handlers, authMW, adminMW)
	if err := server.Start(e, cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
