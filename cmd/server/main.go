package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anprojects/anproyektim/modules/projects"
	"github.com/anprojects/anproyektim/modules/projects/services"
	"github.com/anprojects/anproyektim/pkg/configuration"
	"github.com/anprojects/anproyektim/pkg/middleware"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	var pool *pgxpool.Pool
	if conf.Tasks.Backend != "local" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var err error
		pool, err = pgxpool.New(ctx, conf.Database.Opts)
		if err != nil {
			panic(err)
		}
		if err := pool.Ping(ctx); err != nil {
			panic(err)
		}
		defer pool.Close()
	} else {
		logger.WithField("path", conf.Tasks.LocalPath).Info("using local task store")
	}

	module := projects.NewModule(conf, logger)
	module.Bus.Subscribe(func(event services.ImportCompletedEvent) {
		logger.WithFields(map[string]interface{}{
			"project_id": event.ProjectID.String(),
			"created":    event.Report.Created,
			"updated":    event.Report.Updated,
			"errors":     event.Report.Errors,
		}).Info("import completed")
	})

	router := mux.NewRouter()
	router.Use(
		middleware.WithLogger(logger),
		middleware.RequestParams(),
	)
	if pool != nil {
		router.Use(middleware.ProvidePool(pool))
	}
	module.Register(router)

	srv := &http.Server{
		Addr:         conf.SocketAddress,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.WithField("address", conf.SocketAddress).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown failed")
	}
	conf.Unload()
}
