package main

import (
	"flag"
	"log"

	"grid-tactics/internal/config"
	"grid-tactics/internal/persistence"
	"grid-tactics/internal/server"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to server config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := persistence.WriteDefaultSpecs(cfg.SpecDir); err != nil {
		log.Printf("Could not seed spec files in %s: %v", cfg.SpecDir, err)
	}
	gameCfg, err := persistence.LoadGameConfig(cfg.SpecDir)
	if err != nil {
		log.Fatalf("Error loading game config: %v", err)
	}
	gameCfg.GridWidth = cfg.GridWidth
	gameCfg.GridHeight = cfg.GridHeight
	gameCfg.CampDepth = cfg.CampDepth
	if err := gameCfg.Validate(); err != nil {
		log.Fatalf("Invalid game config: %v", err)
	}

	mgr, err := server.NewSessionManager(gameCfg)
	if err != nil {
		log.Fatalf("Error creating session manager: %v", err)
	}

	router := server.NewRouter(mgr)
	log.Printf("Battle server listening on %s", cfg.ListenAddress)
	if err := router.Run(cfg.ListenAddress); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
