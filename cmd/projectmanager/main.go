package main

import (
	"context"
	"log"
	"os"

	"project-manager-api/internal"
)

func main() {
	ctx := context.Background()

	app, err := internal.NewApp(ctx)
	if err != nil {
		log.Fatalf("init app failed: %v", err)
	}
	defer app.Close()

	if err = app.InitControllers(); err != nil {
		app.Logger().Sugar().Errorf("init controllers failed: %v", err)
		return
	}

	if err = app.Run(ctx); err != nil {
		app.Logger().Sugar().Errorf("projectmanagerapi stopped with error: %v", err)
		app.Close()
		os.Exit(1)
	}
}
