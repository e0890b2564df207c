package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type cli struct {
	Globals

	Serve  serveCmd  `cmd:"" default:"withargs" help:"Serve the leads HTTP API."`
	Report reportCmd `cmd:"" help:"Fetch leads once and print a summary."`
	Browse browseCmd `cmd:"" help:"Browse leads in an interactive table."`
	Chart  chartCmd  `cmd:"" help:"Inspect and scaffold chart manifests."`
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("leadsctl: load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app cli
	kctx := kong.Parse(&app,
		kong.Name("leadsctl"),
		kong.Description("Sales leads dashboard: HTTP API, reports and a terminal browser."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	err := kctx.Run(&app.Globals)
	kctx.FatalIfErrorf(err)
}
