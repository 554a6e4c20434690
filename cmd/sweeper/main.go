package main

import (
	"context"
	"log"

	"github.com/pastelog/pastelog/internal/sweeper"
	"github.com/pastelog/pastelog/internal/sweeper/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := sweeper.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
