package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"estate-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

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

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "estate_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures the single admin account and a demo project with unit
// stock exist so a fresh install is usable immediately.
func SeedDatabase() {
	// ---------------- Admin ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		password := envOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Site Administrator",
				Username: envOrDefault("ADMIN_USERNAME", "admin@estate.local"),
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Demo property + stock ----------------
	var propertyCount int64
	DB.Model(&models.Property{}).Count(&propertyCount)
	if propertyCount == 0 && strings.ToLower(envOrDefault("SEED_DEMO_DATA", "true")) == "true" {
		property := models.Property{
			Title:       "Riverside Residences",
			Slug:        "riverside-residences",
			Description: "Demo project seeded on first run",
			Location:    "Riverside District",
			Status:      "under-construction",
		}
		if err := DB.Create(&property).Error; err != nil {
			log.Printf("warning: failed to seed demo property: %v", err)
		} else {
			stocks := []models.UnitStock{
				{PropertyID: property.ID, UnitType: "1B", TotalUnits: 20},
				{PropertyID: property.ID, UnitType: "2B", TotalUnits: 10},
				{PropertyID: property.ID, UnitType: "3B", TotalUnits: 5},
			}
			if err := DB.Create(&stocks).Error; err != nil {
				log.Printf("warning: failed to seed unit stock: %v", err)
			} else {
				log.Println("Demo property and unit stock seeded")
			}
		}
	}

	// ---------------- Company profile ----------------
	var settingCount int64
	DB.Model(&models.CompanySetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.CompanySetting{Name: envOrDefault("COMPANY_NAME", "Estate Construction Co.")}
		if err := DB.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed company settings: %v", err)
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.CompanySetting{},
		&models.Property{},
		&models.UnitStock{},
		&models.Booking{},
		&models.Appointment{},
		&models.ContactMessage{},
		&models.Announcement{},
		&models.EmailLog{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
