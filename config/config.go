package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	DatabaseURL string
	DBName      string
	JWTKey      string

	FileApiURL string // Base URL of the external file storage service
	FileApiKey string // API key for the file storage service

	SendGridApiKey string
	EmailSender    string

	QuizGraceSeconds int    // grace window added on top of the quiz duration
	StatsCron        string // cron spec for the course stats refresh job
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: getEnv("DATABASE_URL", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "lms"),
		JWTKey:      getEnv("JWT_SECRET_KEY", "defaultSecret"),

		FileApiURL: getEnv("FILE_API_URL", "http://localhost:9000/files"),
		FileApiKey: getEnv("FILE_API_KEY", "defaultSecret"),

		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "noreply@lms.local"),

		QuizGraceSeconds: getEnvInt("QUIZ_GRACE_SECONDS", 10),
		StatsCron:        getEnv("STATS_CRON", "0 3 * * *"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendGridApiKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Submission emails are disabled.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
