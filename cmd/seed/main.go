// seed loads a demo hostel with rooms and one user per role.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"

	"hostel/internal/config"
	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/modules/auth"
	"hostel/internal/repository"
)

type seedUser struct {
	email    string
	name     string
	role     domain.UserRole
	password string
}

var users = []seedUser{
	{"admin@hostel.local", "Administrator", domain.RoleAdmin, "admin12345"},
	{"manager@hostel.local", "Front Desk Manager", domain.RoleManager, "manager12345"},
	{"staff@hostel.local", "Night Shift", domain.RoleStaff, "staff12345"},
	{"guest@hostel.local", "Demo Guest", domain.RoleUser, "guest12345"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var reset bool
	flags := pflag.NewFlagSet("hostel-seed", pflag.ContinueOnError)
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "postgres:// DSN or SQLite file path")
	flags.BoolVar(&reset, "reset", false, "delete existing data first")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	if err := database.Migrate(ctx, db, cfg.DatabaseURL); err != nil {
		log.Fatal("migration failed: ", err)
	}

	if reset {
		log.Println("Cleaning old data...")
		for _, table := range []string{"notifications", "expenses", "salaries", "payments", "bookings", "rooms", "hostels", "users"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				log.Fatalf("clean %s: %v", table, err)
			}
		}
	}

	store := repository.NewStore(db)

	log.Println("Creating users...")
	for _, u := range users {
		hash, err := auth.HashPassword(u.password, bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		err = store.Users.Create(ctx, &domain.User{
			Email:        u.email,
			Name:         u.name,
			Role:         u.role,
			PasswordHash: hash,
		})
		if err != nil {
			log.Printf("skip %s: %v", u.email, err)
			continue
		}
		log.Printf("  %s / %s (%s)", u.email, u.password, u.role)
	}

	log.Println("Creating hostel and rooms...")
	h := &domain.Hostel{Name: "Riverside Hostel", Address: "12 Market Street", City: "Nairobi", Phone: "+254 700 000 000"}
	if err := store.Hostels.Create(ctx, h); err != nil {
		log.Fatal(err)
	}

	layout := []struct {
		floor    int
		capacity int
		night    float64
		month    float64
	}{
		{1, 1, 2500, 45000},
		{1, 2, 1800, 32000},
		{1, 4, 1200, 22000},
		{2, 6, 1000, 18000},
		{2, 8, 900, 15000},
	}
	for i, l := range layout {
		room := &domain.Room{
			HostelID:      h.ID,
			RoomNumber:    fmt.Sprintf("%d%02d", l.floor, i+1),
			Floor:         l.floor,
			Capacity:      l.capacity,
			PricePerNight: l.night,
			PricePerMonth: l.month,
			Status:        domain.RoomAvailable,
		}
		room.SetAmenities([]string{"wifi", "lockers", "fan"})
		if err := store.Rooms.Create(ctx, room); err != nil {
			log.Fatal(err)
		}
		log.Printf("  room %s: %d beds", room.RoomNumber, room.Capacity)
	}

	log.Println("Seed completed")
}
