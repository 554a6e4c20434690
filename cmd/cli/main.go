package main

import (
	"context"
	"log"
	"os"

	"github.com/pastelog/pastelog/internal/buildinfo"
	"github.com/pastelog/pastelog/internal/client/cli"
	"github.com/pastelog/pastelog/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
