package main

import (
	"flag"
	"log"

	"grid-tactics/internal/client"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "battle server base URL")
	flag.Parse()

	api := client.NewClient(*serverURL)
	ui := client.NewTermboxUI(api)

	if err := ui.Init(); err != nil {
		log.Fatalf("Failed to initialize terminal UI: %v", err)
	}
	defer ui.Close()

	ui.Run()
}
