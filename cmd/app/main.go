package main

import (
	"os"

	"github.com/Goutham-IITJ/Project-Raseed/cmd/config"
	migration "github.com/Goutham-IITJ/Project-Raseed/cmd/database/migrate"
	"github.com/Goutham-IITJ/Project-Raseed/internal/utils"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; config.yaml carries the defaults.
	_ = godotenv.Load()
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
