package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Shashhank12/Budget-Buddy/internal/config"
	"github.com/Shashhank12/Budget-Buddy/internal/database"
	httpserver "github.com/Shashhank12/Budget-Buddy/internal/http"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	r := httpserver.NewServer(cfg, db)
	log.Printf("listening on %s:%s", cfg.Host, cfg.Port)
	if err := r.Run(cfg.Host + ":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
