package main

import (
	"log"
	"os"

	"bhavan/internal/database"
	"bhavan/internal/domain"
	"bhavan/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "bhavan.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Resource{},
		&domain.Package{},
		&domain.PackageResource{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}
	if err := repository.NewBookingRepository(db).Migrate(); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM booking_items")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM package_resources")
	db.Exec("DELETE FROM packages")
	db.Exec("DELETE FROM resources")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Name:         "Venue Admin",
		Email:        "admin@bhavan.example",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal(err)
	}

	guestHash, _ := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
	guest := domain.User{
		Name:         "Demo Guest",
		Email:        "guest@bhavan.example",
		Phone:        "+91-9000000001",
		PasswordHash: string(guestHash),
		Role:         domain.RoleUser,
	}
	if err := db.Create(&guest).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Creating resources...")
	mustResource := func(name string, ft domain.FacilityType, category string, price int64, capacity, units int, exclusive bool, maxDays int) *domain.Resource {
		r, err := domain.NewResource(name, ft, category, price, capacity, units)
		if err != nil {
			log.Fatal(err)
		}
		r.Exclusive = exclusive
		r.MaxBookingDays = maxDays
		r.AdvanceBookingDays = 180
		if err := db.Create(r).Error; err != nil {
			log.Fatal(err)
		}
		return r
	}

	deluxeRoom := mustResource("Deluxe Room", domain.FacilityRoom, "deluxe", 100000, 3, 20, false, 15)
	standardRoom := mustResource("Standard Room", domain.FacilityRoom, "standard", 60000, 2, 30, false, 15)
	functionHall := mustResource("Function Hall", domain.FacilityFunctionHall, "", 500000, 500, 1, true, 7)
	diningHall := mustResource("Dining Hall", domain.FacilityDiningHall, "", 200000, 200, 1, true, 7)
	miniHall := mustResource("Mini Hall", domain.FacilityMiniHall, "", 150000, 80, 2, false, 7)

	log.Println("Creating packages...")
	packages := []domain.Package{
		{
			Name:               "Rooms Only",
			Slug:               domain.Slugify("Rooms Only"),
			Description:        "Guest rooms by the night, quantity of your choice.",
			Category:           domain.PackageRoomsOnly,
			GSTPercent:         18,
			MinBookingDays:     1,
			MaxBookingDays:     15,
			AdvanceBookingDays: 180,
			IsActive:           true,
			Resources: []domain.PackageResource{
				{ResourceID: deluxeRoom.ID, Quantity: 1, Flexible: true},
			},
		},
		{
			Name:               "Wedding Package",
			Slug:               domain.Slugify("Wedding Package"),
			Description:        "Function hall, dining hall and ten deluxe rooms.",
			Category:           domain.PackageFunctionHall,
			BasePricePerDay:    1500000,
			GSTPercent:         18,
			MinBookingDays:     1,
			MaxBookingDays:     5,
			AdvanceBookingDays: 365,
			IsActive:           true,
			Resources: []domain.PackageResource{
				{ResourceID: functionHall.ID, Quantity: 1},
				{ResourceID: diningHall.ID, Quantity: 1},
				{ResourceID: deluxeRoom.ID, Quantity: 10},
			},
		},
		{
			Name:               "Mini Hall Event",
			Slug:               domain.Slugify("Mini Hall Event"),
			Description:        "Mini hall with two standard rooms for small functions.",
			Category:           domain.PackageMiniHall,
			BasePricePerDay:    250000,
			GSTPercent:         18,
			MinBookingDays:     1,
			MaxBookingDays:     3,
			AdvanceBookingDays: 180,
			IsActive:           true,
			Resources: []domain.PackageResource{
				{ResourceID: miniHall.ID, Quantity: 1},
				{ResourceID: standardRoom.ID, Quantity: 2},
			},
		},
	}
	for i := range packages {
		if err := packages[i].Validate(); err != nil {
			log.Fatal(err)
		}
		if err := db.Create(&packages[i]).Error; err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Seed complete.")
}
