package main

import (
	"flag"
	"log"
	"net/http"

	"asset-dashboard/internal"
	"asset-dashboard/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	srv := internal.NewServer(cfg)

	log.Println("Starting asset dashboard...")
	log.Printf("Backend API: %s", cfg.BackendURL)
	log.Printf("Listening on %s", cfg.ListenAddr)

	log.Fatal(http.ListenAndServe(cfg.ListenAddr, srv.Router))
}
