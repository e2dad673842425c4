package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Blob storage: local directory by default, S3 when a bucket is set
	UploadDir    string `yaml:"UPLOAD_DIR"`
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Gemini API configuration
	GeminiAPIKey string `yaml:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"GEMINI_MODEL"`

	// Google Wallet configuration
	WalletIssuerID string `yaml:"WALLET_ISSUER_ID"`
	WalletKeyFile  string `yaml:"WALLET_KEY_FILE"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	// Environment variables win over config.yaml so deployments can
	// override secrets without editing the file.
	os.Setenv("JWT_SECRET", firstOf(os.Getenv("JWT_SECRET"), config.JWTSecret))
	os.Setenv("AWS_S3_BUCKET", firstOf(os.Getenv("AWS_S3_BUCKET"), config.AWSS3Bucket))
	os.Setenv("AWS_S3_REGION", firstOf(os.Getenv("AWS_S3_REGION"), config.AWSS3Region))
	os.Setenv("AWS_ACCESS_KEY", firstOf(os.Getenv("AWS_ACCESS_KEY"), config.AWSAccessKey))
	os.Setenv("AWS_SECRET_KEY", firstOf(os.Getenv("AWS_SECRET_KEY"), config.AWSSecretKey))
	os.Setenv("GEMINI_API_KEY", firstOf(os.Getenv("GEMINI_API_KEY"), config.GeminiAPIKey))
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func GetConfig(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "UPLOAD_DIR":
		if config.UploadDir == "" {
			return "uploaded_invoices"
		}
		return config.UploadDir
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "GEMINI_API_KEY":
		return config.GeminiAPIKey
	case "GEMINI_MODEL":
		return config.GeminiModel
	case "WALLET_ISSUER_ID":
		return config.WalletIssuerID
	case "WALLET_KEY_FILE":
		if config.WalletKeyFile == "" {
			return "wallet_key.json"
		}
		return config.WalletKeyFile
	default:
		return ""
	}
}
