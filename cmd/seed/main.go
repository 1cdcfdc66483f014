package main

import (
	"log"
	"os"

	"shoestore/internal/config"
	"shoestore/internal/domain/model"
	"shoestore/internal/infra/db"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 開発用の初期データ投入。商品を入れ直し、管理者が無ければ作る。
var products = []model.Product{
	{Name: "Nike Air Max 90", Price: 3500000, Stock: 50, Description: "Classic Nike Air Max 90 with visible Air cushioning and a retro look. Premium leather and mesh upper with a durable outsole.", ImageURL: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500"},
	{Name: "Adidas Ultraboost 22", Price: 4200000, Stock: 35, Description: "Adidas running shoe with Boost cushioning for soft landings and energy return. Built for long runs and daily training.", ImageURL: "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=500"},
	{Name: "Converse Chuck Taylor All Star", Price: 1500000, Stock: 100, Description: "The timeless Converse silhouette with a simple canvas build. Works for any occasion and comes in plenty of colors.", ImageURL: "https://images.unsplash.com/photo-1460353581641-37baddab0fa2?w=500"},
	{Name: "Vans Old Skool", Price: 1800000, Stock: 75, Description: "Iconic Vans Old Skool with the side stripe. Canvas and suede upper on a grippy waffle outsole. Streetwear staple.", ImageURL: "https://images.unsplash.com/photo-1539185441755-769473a23570?w=500"},
	{Name: "Puma Suede Classic", Price: 2000000, Stock: 60, Description: "Puma Suede with a soft suede upper and classic lines. Fits street style and light sport alike.", ImageURL: "https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa?w=500"},
	{Name: "Nike Dunk Low", Price: 3200000, Stock: 40, Description: "Nike Dunk Low with classic basketball design and many colorways. Premium leather upper and durable rubber sole.", ImageURL: "https://images.unsplash.com/photo-1605348532760-6753d2aeb165?w=500"},
	{Name: "Adidas Stan Smith", Price: 2200000, Stock: 80, Description: "Minimal Adidas Stan Smith in white leather with the green heel tab. Dresses up or down with ease.", ImageURL: "https://images.unsplash.com/photo-1608231387042-66d1773070a5?w=500"},
	{Name: "New Balance 550", Price: 2800000, Stock: 55, Description: "Retro New Balance 550 with ABZORB cushioning. Leather and mesh upper for walking and light sport.", ImageURL: "https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?w=500"},
	{Name: "Jordan 1 Retro High", Price: 5500000, Stock: 25, Description: "The legendary Air Jordan 1 Retro High. Premium leather in iconic colorways.", ImageURL: "https://images.unsplash.com/photo-1600269452121-4f2416e55c28?w=500"},
	{Name: "Reebok Classic Leather", Price: 1900000, Stock: 65, Description: "Reebok Classic Leather with a soft leather upper and cushioned midsole. Made for everyday walking.", ImageURL: "https://images.unsplash.com/photo-1600185365926-3a2ce3cdb9eb?w=500"},
	{Name: "Nike Air Force 1", Price: 2800000, Stock: 90, Description: "Nike Air Force 1 with classic hoops style and Air-Sole cushioning. White leather upper that goes with anything.", ImageURL: "https://images.unsplash.com/photo-1608231387042-66d1773070a5?w=500"},
	{Name: "Adidas Samba", Price: 2400000, Stock: 70, Description: "Adidas Samba with classic football heritage and gum sole. Leather and suede upper, retro and sporty.", ImageURL: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500"},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

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

	//重複を避けるため商品は入れ直す
	if err := gormDB.Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
		log.Fatalf("clear products: %v", err)
	}
	for i := range products {
		products[i].Status = model.ProductStatusActive
		if err := gormDB.Create(&products[i]).Error; err != nil {
			log.Fatalf("create product %q: %v", products[i].Name, err)
		}
		log.Printf("created product: %s (id=%d)", products[i].Name, products[i].ID)
	}

	if err := seedAdmin(gormDB); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	log.Printf("done: %d products", len(products))
}

// 管理者は既にいれば作らない
func seedAdmin(gormDB *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@shoestore.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
	}

	var count int64
	if err := gormDB.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("admin already exists: %s", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 13)
	if err != nil {
		return err
	}

	admin := model.User{
		FullName:     "Store Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := gormDB.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("created admin: %s (id=%d)", admin.Email, admin.ID)
	return nil
}
