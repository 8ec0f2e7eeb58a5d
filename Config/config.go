package Config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config is everything the service reads from the environment. Defaults keep a
// development machine working without a .env file.
type Config struct {
	Port                string
	StorageBackend      string
	SQLitePath          string
	FirebaseCredentials string
	ImgurClientID       string
	EmailJSServiceID    string
	EmailJSTemplateID   string
	EmailJSUserID       string
	FleetManagerEmail   string
	JWTSecret           string
}

// Backends selectable through STORAGE_BACKEND.
const (
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
)

// Load reads .env and the environment.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}
	return &Config{
		Port:                getEnv("PORT", "8000"),
		StorageBackend:      getEnv("STORAGE_BACKEND", BackendSQLite),
		SQLitePath:          getEnv("SQLITE_PATH", "database.db"),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", "./serviceAccountKey.json"),
		ImgurClientID:       getEnv("IMGUR_CLIENT_ID", "546c25a59c58ad7"),
		EmailJSServiceID:    getEnv("EMAILJS_SERVICE_ID", "service_2kg7kuq"),
		EmailJSTemplateID:   getEnv("EMAILJS_TEMPLATE_ID", "template_6g7rug8"),
		EmailJSUserID:       getEnv("EMAILJS_USER_ID", "nHeIEyrRMqXKXV_-e"),
		FleetManagerEmail:   getEnv("FLEET_MANAGER_EMAIL", "esposito.gino11@gmail.com"),
		JWTSecret:           getEnv("JWT_SECRET", "secret"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
