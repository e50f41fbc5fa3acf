package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/config"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/bootstrap"
)

const usage = "usage: worker <manifest <projectCode> | projects | migrate>"

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	slogger := bootstrap.NewLogger(os.Stderr, cfg.App.Environment, cfg.LogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "manifest":
		err = RunManifest(ctx, cfg, os.Args[2:], os.Stdout)
	case "projects":
		err = RunProjects(ctx, cfg, os.Stdout)
	case "migrate":
		err = RunMigrate(ctx, cfg)
	default:
		log.Fatalf("unknown command: %s\n%s", os.Args[1], usage)
	}
	if err != nil {
		slogger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}
