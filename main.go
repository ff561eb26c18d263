package main

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"fakebook/auth"
	"fakebook/cache"
	"fakebook/feeds"
	"fakebook/monitoring"
	"fakebook/relationships"
	"fakebook/server"
	"fakebook/storage/db"
	"fakebook/storage/migrations"
	"fakebook/tasks"
	"fakebook/utils"
)

func buildDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s sslmode=disable host=%s port=%s",
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		utils.StringFromEnv(os.Getenv("DB_NAME"), "fakebook"),
		utils.StringFromEnv(os.Getenv("DB_HOST"), "localhost"),
		utils.StringFromEnv(os.Getenv("DB_PORT"), "5432"),
	)
}

func runMigrations(ctx context.Context, dsn string) error {
	migrationsDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer migrationsDB.Close()

	goose.SetBaseFS(migrations.Migrations)
	return goose.UpContext(ctx, migrationsDB, ".")
}

func runBackgroundTasks(queries *db.Queries, usersCache *cache.UsersCache) {
	statisticsInterval := utils.IntFromString(
		os.Getenv("STATISTICS_INTERVAL_MINUTES"), 5,
	)

	// Statistics updater
	go utils.Recoverer(math.MaxInt, 1, func() {
		statisticsUpdater := tasks.NewStatisticsUpdater(
			queries,
			usersCache,
			time.Duration(statisticsInterval)*time.Minute,
		)
		statisticsUpdater.Run()
	})
}

func main() {
	// Missing .env is fine; plain env vars still apply
	_ = godotenv.Load()

	logLevel, err := log.ParseLevel(utils.StringFromEnv(os.Getenv("LOG_LEVEL"), "info"))
	if err != nil {
		logLevel = log.InfoLevel
	}
	log.SetLevel(logLevel)

	ctx := context.Background()
	dsn := buildDSN()

	if err := runMigrations(ctx, dsn); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	connectionPool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	queries := db.New(connectionPool)

	redisOptions := redis.Options{
		Addr: fmt.Sprintf(
			"%s:%s",
			utils.StringFromEnv(os.Getenv("REDIS_HOST"), "localhost"),
			utils.StringFromEnv(os.Getenv("REDIS_PORT"), "6379"),
		),
		Password: "", // no password set
		DB:       0,  // use default DB
	}
	usersCache := cache.NewUsersCache(&redisOptions)

	sessionExpiration := utils.IntFromString(
		os.Getenv("SESSION_EXPIRATION_MINUTES"), 60*24,
	)
	sessionsCache := cache.NewSessionsCache(
		&redisOptions,
		time.Duration(sessionExpiration)*time.Minute,
	)

	authService := auth.NewService(queries, sessionsCache)
	relationshipManager := relationships.NewManager(queries)
	feedComposer := feeds.NewComposer(queries, relationshipManager, usersCache)

	monitoring.Register()

	s := server.NewServer(
		utils.StringFromEnv(os.Getenv("LISTEN_ADDR"), ":3000"),
		authService,
		relationshipManager,
		feedComposer,
		queries,
	)

	runBackgroundTasks(queries, usersCache)

	log.Infof("Listening on %s...", s.Addr())
	s.Run()
}
