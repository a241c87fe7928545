// demoserver starts the API on an in-memory database seeded with a small
// catalog, an admin account and two couriers, for trying out the storefront
// and dashboard without any setup.
// Usage: go run ./cmd/demoserver
package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Pasindu991182/food-delivery-system/internal/api"
	"github.com/Pasindu991182/food-delivery-system/internal/config"
	"github.com/Pasindu991182/food-delivery-system/internal/model"
	"github.com/Pasindu991182/food-delivery-system/internal/store"
	"github.com/Pasindu991182/food-delivery-system/internal/tracking"
)

const demoAdminPassword = "admin-demo-pass"

func pct(v float64) *float64 { return &v }

var demoFoods = []model.Food{
	{
		Name: "Chicken Kottu", Description: "Chopped roti stir-fried with chicken and vegetables",
		Price: 6.5, Image: "chicken_kottu.png", Category: "Kottu",
		Ingredients: []string{"roti", "chicken", "leeks", "egg"},
	},
	{
		Name: "Vegetable Roll", Description: "Crumbed roll stuffed with spiced potato",
		Price: 1.2, Image: "veg_roll.png", Category: "Rolls",
		Ingredients: []string{"potato", "flour", "breadcrumbs"},
		DietaryInfo: model.DietaryInfo{IsVegetarian: true, IsVegan: true},
	},
	{
		Name: "Greek Salad", Description: "Tomato, cucumber, olives and feta",
		Price: 5, Image: "greek_salad.png", Category: "Salad",
		Ingredients: []string{"tomato", "cucumber", "olives", "feta"},
		DietaryInfo: model.DietaryInfo{IsVegetarian: true, IsGlutenFree: true},
		SpecialOffer: model.SpecialOffer{
			IsOnOffer: true, OfferDescription: "Lunchtime special", DiscountPercentage: pct(20),
		},
	},
	{
		Name: "Watalappan", Description: "Coconut custard with jaggery",
		Price: 2.5, Image: "watalappan.png", Category: "Desserts",
		Ingredients: []string{"coconut milk", "jaggery", "egg", "cardamom"},
		DietaryInfo: model.DietaryInfo{IsVegetarian: true, IsGlutenFree: true},
	},
}

var demoCouriers = []model.DeliveryPerson{
	{FirstName: "Kamal", LastName: "Perera", NIC: "199012345678", Email: "kamal@demo.local", Age: 34, VehicleType: model.VehicleBike, Address: "Colombo 05"},
	{FirstName: "Sunil", LastName: "Fernando", NIC: "198512345678", Email: "sunil@demo.local", Age: 39, VehicleType: model.VehicleWheel, Address: "Dehiwala"},
}

func seed(ctx context.Context, s store.Store) error {
	now := time.Now().UTC()

	hash, err := bcrypt.GenerateFromPassword([]byte(demoAdminPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Name: "Demo Admin", Email: "admin@demo.local", PhoneNumber: "0110000000",
		PasswordHash: string(hash), Address: "Head office", Role: model.RoleAdmin,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		return err
	}

	for _, f := range demoFoods {
		f.CreatedAt, f.UpdatedAt = now, now
		if err := s.CreateFood(ctx, &f); err != nil {
			return err
		}
	}
	for _, p := range demoCouriers {
		if err := s.CreateDeliveryPerson(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := seed(context.Background(), db); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	srv := api.NewServer(cfg.ListenAddr, db, tracking.NewBroker(), logger,
		api.WithAllowedOrigins(cfg.AllowedOrigins),
	)

	logger.Info("demoserver: starting",
		"addr", cfg.ListenAddr,
		"foods", len(demoFoods),
		"couriers", len(demoCouriers),
		"admin_email", "admin@demo.local",
	)
	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
