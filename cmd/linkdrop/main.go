package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"linkdrop/internal/config"
	"linkdrop/internal/domain/share"
	"linkdrop/internal/firebase"
	"linkdrop/internal/launcher"
	"linkdrop/internal/logger"
	"linkdrop/internal/status"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	l := logger.New()
	if err := l.Init(cfg.LogLevel); err != nil {
		// logger is still the nop one here
		os.Stderr.WriteString("invalid log level: " + cfg.LogLevel + "\n")
		os.Exit(1)
	}
	defer l.Sync()
	log := l.Log

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		log.Fatal("firebase app init failed", zap.Error(err))
	}

	fs, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		log.Fatal("firestore init failed", zap.Error(err))
	}
	defer fs.Close()

	repo := share.NewRepo(fs.Client, cfg.Collection, log)
	consumer := share.NewConsumer(repo, launcher.NewBrowser(), log, cfg)

	log.Info("connected to firestore",
		zap.String("project", cfg.ProjectID),
		zap.String("collection", cfg.Collection))

	if cfg.Once {
		sum, err := consumer.RunOnce(ctx)
		if err != nil {
			log.Fatal("run failed", zap.Error(err))
		}
		log.Info("done",
			zap.Int("delivered", sum.Delivered),
			zap.Int("failed", sum.Failed))
		return
	}

	var srv *http.Server
	if cfg.StatusAddr != "" {
		srv = &http.Server{
			Addr:         cfg.StatusAddr,
			Handler:      status.NewRouter(consumer),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			log.Info("status server listening", zap.String("addr", cfg.StatusAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("status server failed", zap.Error(err))
			}
		}()
	}

	// graceful shutdown
	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		log.Info("shutting down...")
		cancel()
	}()

	log.Info("polling for shared urls", zap.Duration("interval", cfg.PollInterval))
	if err := consumer.Run(ctx); err != nil {
		log.Fatal("consumer stopped", zap.Error(err))
	}

	if srv != nil {
		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		_ = srv.Shutdown(ctxShutdown)
	}
}
