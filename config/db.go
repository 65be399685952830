package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"villa-backend/models"
	"villa-backend/repository"
	"villa-backend/utils"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// resolveMySQLDSN prefers MYSQL_URL / DATABASE_URL (mysql:// or raw DSN)
// and falls back to the DB_* variables.
func resolveMySQLDSN() (string, error) {
	raw := utils.EnvOrDefault("MYSQL_URL", "")
	if raw == "" {
		raw = utils.EnvOrDefault("DATABASE_URL", "")
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "villa_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// GormLogger routes gorm's SQL log through zap.
func GormLogger(log *zap.Logger) logger.Interface {
	return logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// ConnectDatabase opens MySQL with the configured DSN and migrates the schema.
func ConnectDatabase(cfg *APIConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{Logger: GormLogger(log)})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates tables parent first so the villa_numbers foreign key
// has something to point at.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Villa{},
		&models.VillaNumber{},
		&models.LocalUser{},
	)
}

var seedVillas = []models.Villa{
	{Name: "Royal Villa", Details: "Spacious villa with a private garden.", Rate: 200, Occupancy: 4, Sqft: 550, ImageURL: "https://placehold.co/600x400?text=Royal+Villa", Amenity: "Pool, WiFi"},
	{Name: "Premium Pool Villa", Details: "Infinity pool overlooking the bay.", Rate: 300, Occupancy: 4, Sqft: 550, ImageURL: "https://placehold.co/600x400?text=Premium+Pool+Villa", Amenity: "Pool, Spa"},
	{Name: "Luxury Pool Villa", Details: "Two floors, two pools.", Rate: 400, Occupancy: 4, Sqft: 750, ImageURL: "https://placehold.co/600x400?text=Luxury+Pool+Villa", Amenity: "Pool, Gym"},
	{Name: "Diamond Villa", Details: "Top floor suite with a terrace.", Rate: 550, Occupancy: 4, Sqft: 900, ImageURL: "https://placehold.co/600x400?text=Diamond+Villa", Amenity: "Terrace, Bar"},
}

// SeedDatabase creates the admin account and a few villas when missing.
// Existing rows are left alone.
func SeedDatabase(ctx context.Context, db *gorm.DB, cfg *APIConfig, log *zap.Logger) error {
	users := repository.NewUserRepository(db, log)
	unique, err := users.IsUnique(ctx, cfg.SeedAdminUsername)
	if err != nil {
		return err
	}
	if unique {
		hash, err := utils.HashPassword(cfg.SeedAdminPassword)
		if err != nil {
			return fmt.Errorf("hash seed admin password: %w", err)
		}
		admin := models.LocalUser{
			UserName: cfg.SeedAdminUsername,
			Name:     "Administrator",
			Password: hash,
			Role:     "admin",
		}
		if err := users.Create(ctx, &admin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		log.Info("default admin seeded", zap.String("username", admin.UserName))
	}

	villas := repository.NewVillaRepository(db, log)
	count, err := villas.Count(ctx, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("villas already seeded", zap.Int64("count", count))
		return nil
	}
	for i := range seedVillas {
		villa := seedVillas[i]
		if err := villas.Create(ctx, &villa); err != nil {
			log.Warn("failed to seed villa", zap.String("name", villa.Name), zap.Error(err))
			continue
		}
	}
	log.Info("villas seeded", zap.Int("count", len(seedVillas)))
	return nil
}
