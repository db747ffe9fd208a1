// Command seed creates or updates the admin account and can load demo listings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/config"
	database "github.com/mikiasgoitom/airhost/internal/infrastructure/database"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/logger"
	passwordservice "github.com/mikiasgoitom/airhost/internal/infrastructure/password_service"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/airhost/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

const demoPassword = "123456"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.NewConfig()

	username := flag.String("username", envOr("ADMIN_USERNAME", "admin"), "admin username")
	email := flag.String("email", envOr("ADMIN_EMAIL", "admin@airhost.local"), "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (ADMIN_PASSWORD)")
	demo := flag.Bool("demo", false, "also load demo hosts, listings and reviews")
	flag.Parse()

	appLogger := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.MongoURI == "" {
		appLogger.Fatalf("MONGODB_URI environment variable not set")
	}
	if len(*password) < 6 {
		appLogger.Fatalf("admin password must be at least 6 characters (set -password or ADMIN_PASSWORD)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := database.NewMongoDBClient(cfg.MongoURI)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}

	users := mongodb.NewMongoUserRepository(db.Collection(database.ColUsers))
	hasher := passwordservice.NewHasher()
	ids := uuidgen.NewGenerator()

	created, err := upsertAdmin(ctx, users, hasher, ids, *username, *email, *password)
	if err != nil {
		appLogger.Fatalf("failed to seed admin: %v", err)
	}
	if created {
		appLogger.Infof("admin %s created", *username)
	} else {
		appLogger.Infof("admin %s updated", *username)
	}

	if !*demo {
		return
	}
	listings := mongodb.NewListingRepository(db)
	reviews := mongodb.NewReviewRepository(db)
	reservations := mongodb.NewReservationRepository(db)
	cascade := usecase.NewCascadeUsecase(users, listings, reviews, reservations)
	seeder := &demoSeeder{
		users:     users,
		listings:  listings,
		hasher:    hasher,
		ids:       ids,
		listingUC: usecase.NewListingUsecase(listings, reviews, cascade, ids, appLogger),
		reviewUC:  usecase.NewReviewUsecase(reviews, listings, cascade, ids, appLogger),
		logger:    appLogger,
	}
	if err := seeder.run(ctx); err != nil {
		appLogger.Fatalf("failed to load demo data: %v", err)
	}
}

// upsertAdmin creates the admin account, or resets the password and role of
// the account already registered under email.
func upsertAdmin(ctx context.Context, users contract.IUserRepository, hasher contract.IHasher, ids contract.IUUIDGenerator, username, email, password string) (bool, error) {
	hash, err := hasher.HashPassword(password)
	if err != nil {
		return false, err
	}
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		existing.PasswordHash = hash
		existing.Role = entity.UserRoleAdmin
		existing.Status = entity.UserStatusActive
		_, err = users.UpdateUser(ctx, existing)
		return false, err
	case !errors.Is(err, entity.ErrNotFound):
		return false, err
	}

	now := time.Now()
	return true, users.CreateUser(ctx, &entity.User{
		ID:           ids.NewUUID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.UserRoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

type demoSeeder struct {
	users     contract.IUserRepository
	listings  contract.IListingRepository
	hasher    contract.IHasher
	ids       contract.IUUIDGenerator
	listingUC usecasecontract.IListingUseCase
	reviewUC  usecasecontract.IReviewUseCase
	logger    usecasecontract.IAppLogger
}

var demoHosts = []string{"sara_villas", "rahul_urban", "priya_beach", "john_doe"}

var demoListings = []struct {
	title, location, country, category string
	price                              int64
	image                              string
}{
	{"Royal Heritage Haveli", "Jaipur", "India", "Luxe", 5500, "https://images.unsplash.com/photo-1590053132232-f30217edd1bf"},
	{"Modern Sky Loft", "Mumbai", "India", "Entire Home", 4500, "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688"},
	{"Tropical Beach Villa", "Goa", "India", "Entire Home", 3500, "https://images.unsplash.com/photo-1499793983690-e29da59ef1c2"},
	{"Snow Peak Cabin", "Manali", "India", "Cabins", 2800, "https://images.unsplash.com/photo-1464822759023-fed622ff2c3b"},
	{"Infinity Pool Penthouse", "Dubai", "UAE", "Luxe", 12000, "https://images.unsplash.com/photo-1512917774080-9991f1c4c750"},
	{"Bamboo Treehouse", "Bali", "Indonesia", "Cabins", 3200, "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4"},
	{"Cozy Studio", "Mumbai", "India", "Rooms", 2200, "https://images.unsplash.com/photo-1536376074432-cd23f5450974"},
	{"Elegant City Suite", "New York", "USA", "Hotels", 9500, "https://images.unsplash.com/photo-1449156059431-78995541892a"},
}

var demoComments = []string{
	"Amazing stay, the host was very welcoming.",
	"Clean, quiet and exactly like the photos.",
	"Great location, would book again.",
}

func (s *demoSeeder) run(ctx context.Context) error {
	if _, err := s.users.GetUserByUsername(ctx, demoHosts[0]); err == nil {
		s.logger.Infof("demo data already present, skipping")
		return nil
	}

	hash, err := s.hasher.HashPassword(demoPassword)
	if err != nil {
		return err
	}
	hosts := make([]string, 0, len(demoHosts))
	for _, name := range demoHosts {
		now := time.Now()
		u := &entity.User{
			ID: s.ids.NewUUID(), Username: name, Email: name + "@airhost.com", PasswordHash: hash,
			Role: entity.UserRoleUser, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now,
		}
		if err := s.users.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		hosts = append(hosts, u.ID)
	}

	cleaning := int64(500)
	for i, d := range demoListings {
		owner := entity.Actor{UserID: hosts[i%len(hosts)], Role: entity.UserRoleUser}
		listing, err := s.listingUC.CreateListing(ctx, owner, usecasecontract.ListingInput{
			Title:       d.title,
			Description: fmt.Sprintf("%s in %s, %s. Hand-picked for the demo catalogue.", d.title, d.location, d.country),
			Price:       d.price,
			Location:    d.location,
			Country:     d.country,
			Image:       entity.ListingImage{URL: d.image, Filename: "listingimage"},
			Category:    d.category,
			CleaningFee: &cleaning,
			Guests:      2 + i%4,
			Amenities:   entity.Amenities{Wifi: true, Kitchen: i%2 == 0, Parking: i%3 == 0},
		})
		if err != nil {
			return fmt.Errorf("create listing %q: %w", d.title, err)
		}
		if _, err := s.listings.UpdateListing(ctx, listing.ID, map[string]interface{}{"is_verified": true}); err != nil {
			return err
		}
		reviewer := entity.Actor{UserID: hosts[(i+1)%len(hosts)], Role: entity.UserRoleUser}
		if _, err := s.reviewUC.CreateReview(ctx, reviewer, listing.ID, 4+i%2, demoComments[i%len(demoComments)]); err != nil {
			return fmt.Errorf("review %q: %w", d.title, err)
		}
	}
	s.logger.Infof("demo data loaded: %d hosts, %d listings (password %q)", len(hosts), len(demoListings), demoPassword)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
