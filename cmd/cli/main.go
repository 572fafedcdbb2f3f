package main

import (
	"context"
	"log"
	"os"

	"github.com/chrisdutt24/lifeadmin/internal/buildinfo"
	"github.com/chrisdutt24/lifeadmin/internal/client/cli"
	"github.com/chrisdutt24/lifeadmin/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
