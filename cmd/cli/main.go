package main

import (
	"context"
	"log"

	"github.com/freecbt/journal/internal/cli"
	"github.com/freecbt/journal/internal/cli/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
