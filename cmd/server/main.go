package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arikankainen/consequat-server/internal/auth"
	"github.com/arikankainen/consequat-server/internal/config"
	"github.com/arikankainen/consequat-server/internal/logger"
	"github.com/arikankainen/consequat-server/internal/server"
	"github.com/arikankainen/consequat-server/internal/service"
	"github.com/arikankainen/consequat-server/internal/store/mongodb"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Env == "development")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("mongo ping: %v", err)
	}
	log.Infof("connected to mongodb (%s)", cfg.Env)

	st := mongodb.New(client, client.Database(cfg.MongoDatabase))
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	codec := auth.NewTokenCodec(cfg.JWTPrivateKey)
	svc := service.New(st, codec, log)

	srv, err := server.New(cfg, svc, codec, log)
	if err != nil {
		log.Fatalf("server init: %v", err)
	}

	go func() {
		if err := srv.Listen(cfg.Port); err != nil {
			log.Fatalf("listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown requested")

	timeoutCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	_ = srv.Shutdown()
	_ = client.Disconnect(timeoutCtx)
	log.Info("shutdown completed")
}
