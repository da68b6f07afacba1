package config

import "os"

// Config holds the environment configuration for the whole service.
type Config struct {
	Port string

	// GCP
	GCPCreds                 string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string
	FirebaseWebAPIKey        string
	ProductImageBucket       string

	// Postgres (products, orders)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Mail
	SendGridAPIKey string
	MailFrom       string

	// Exchange rates
	ExchangeRateBaseURL string

	// CORS
	AllowOrigin string
}

// Load reads environment variables into a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "straightenup-mall")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
		FirebaseWebAPIKey:        os.Getenv("FIREBASE_WEB_API_KEY"),
		ProductImageBucket:       getenvDefault("PRODUCT_IMAGE_BUCKET", "straightenup-product-images"),

		DBHost:     getenvDefault("DB_HOST", "localhost"),
		DBPort:     getenvDefault("DB_PORT", "5432"),
		DBUser:     getenvDefault("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenvDefault("DB_NAME", "straightenup"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenvDefault("SENDGRID_FROM", "orders@straightenup.example.com"),

		ExchangeRateBaseURL: getenvDefault("EXCHANGE_RATE_BASE_URL", "https://open.er-api.com/v6"),

		AllowOrigin: getenvDefault("ALLOW_ORIGIN", "*"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
