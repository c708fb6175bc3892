package main

import (
	"context"
	"log"

	"github.com/stormarket/stormarket/internal/app"
	"github.com/stormarket/stormarket/internal/config"
)

func main() {
	cfg := config.LoadConfig()

	a, err := app.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	a.Run(context.Background())
}
