package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rakhulsr/vendoz/app/cmd"
	"github.com/Rakhulsr/vendoz/app/configs"
)

func main() {
	env := configs.LoadEnv()

	logger, err := configs.InitLogger(env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.RunCli(ctx, env, logger, os.Args); err != nil {
		logger.Sugar().Errorf("vendoz: %v", err)
		stop()
		os.Exit(1)
	}
}
