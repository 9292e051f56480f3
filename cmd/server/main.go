package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/VitaminP8/tutorhub/graph"
	"github.com/VitaminP8/tutorhub/graph/generated"
	"github.com/VitaminP8/tutorhub/internal/auth"
	"github.com/VitaminP8/tutorhub/internal/config"
	"github.com/VitaminP8/tutorhub/internal/logger"
	"github.com/VitaminP8/tutorhub/internal/middleware"
	"github.com/VitaminP8/tutorhub/internal/skill"
	"github.com/VitaminP8/tutorhub/internal/storage/memory"
	"github.com/VitaminP8/tutorhub/internal/storage/mongodb"
	"github.com/VitaminP8/tutorhub/internal/storage/postgres"
	"github.com/VitaminP8/tutorhub/internal/subscription"
	"github.com/VitaminP8/tutorhub/internal/thought"
	"github.com/VitaminP8/tutorhub/internal/tutor"
	"github.com/VitaminP8/tutorhub/internal/user"
)

type stores struct {
	users    user.UserStorage
	thoughts thought.ThoughtStorage
	tutors   tutor.TutorStorage
	skills   skill.SkillStorage
	close    func(context.Context) error
}

func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	storageType := flag.String("storage", "", "storage backend: memory, mongo or postgres (overrides config)")
	flag.Parse()

	if *storageType != "" {
		os.Setenv("STORAGE", *storageType)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	st, err := openStores(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("storage_init_failed", zap.String("storage", cfg.Storage), zap.Error(err))
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal("auth_init_failed", zap.Error(err))
	}

	resolver := &graph.Resolver{
		UserStore:           st.users,
		ThoughtStore:        st.thoughts,
		TutorStore:          st.tutors,
		SkillStore:          st.skills,
		Auth:                tokens,
		SubscriptionManager: subscription.NewSubscriptionManager(),
		Logger:              log.Named("graph"),
	}

	srv := handler.New(generated.NewExecutableSchema(generated.Config{Resolvers: resolver}))
	srv.AddTransport(transport.Websocket{
		KeepAlivePingInterval: 10 * time.Second,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	})
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	srv.Use(extension.Introspection{})
	srv.Use(extension.FixedComplexityLimit(cfg.ComplexityLimit))
	srv.SetErrorPresenter(graph.ErrorPresenter)

	mux := http.NewServeMux()
	mux.Handle("/", playground.Handler("TutorHub GraphQL", "/query"))
	mux.Handle("/query", chain(
		srv,
		middleware.RequestID,
		middleware.Logging(log),
		middleware.Timeout(cfg.RequestTimeout),
		auth.AuthMiddleware(tokens),
	))

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server_starting", zap.String("addr", httpServer.Addr), zap.String("storage", cfg.Storage))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server_failed", zap.Error(err))
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server_stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server_shutdown_failed", zap.Error(err))
	}
	if err := st.close(shutdownCtx); err != nil {
		log.Error("storage_close_failed", zap.Error(err))
	}

	log.Info("server_stopped")
}

// openStores connects the configured backend once. The handles live for the whole process.
func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (*stores, error) {
	switch cfg.Storage {
	case config.StorageMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)

		indexCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
		defer cancel()
		if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
			_ = mongodb.Disconnect(ctx, client, log)
			return nil, err
		}

		return &stores{
			users:    mongodb.NewUserMongoStorage(db, cfg.Mongo.Timeout),
			thoughts: mongodb.NewThoughtMongoStorage(db, cfg.Mongo.Timeout),
			tutors:   mongodb.NewTutorMongoStorage(db, cfg.Mongo.Timeout),
			skills:   mongodb.NewSkillMongoStorage(db, cfg.Mongo.Timeout),
			close: func(ctx context.Context) error {
				return mongodb.Disconnect(ctx, client, log)
			},
		}, nil

	case config.StoragePostgres:
		db, err := postgres.InitDB(cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:    postgres.NewUserPostgresStorage(db),
			thoughts: postgres.NewThoughtPostgresStorage(db),
			tutors:   postgres.NewTutorPostgresStorage(db),
			skills:   postgres.NewSkillPostgresStorage(db),
			close: func(context.Context) error {
				return postgres.CloseDB(db, log)
			},
		}, nil

	default:
		log.Info("используется in-memory хранилище")
		return &stores{
			users:    memory.NewUserMemoryStorage(),
			thoughts: memory.NewThoughtMemoryStorage(),
			tutors:   memory.NewTutorMemoryStorage(),
			skills:   memory.NewSkillMemoryStorage(),
			close:    func(context.Context) error { return nil },
		}, nil
	}
}

func chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
