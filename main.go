package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"stogie_backend/internals/configs"
	database "stogie_backend/internals/databases"
	"stogie_backend/internals/events"
	scheduler "stogie_backend/internals/features/users/auth/scheduler"
	helper "stogie_backend/internals/helpers"
	helperOSS "stogie_backend/internals/helpers/oss"
	middlewares "stogie_backend/internals/middlewares"
	routes "stogie_backend/internals/route"
	"stogie_backend/internals/seeds"
)

const version = "0.3.0"

var migrateFlag = &cli.BoolFlag{
	Name:    "migrate",
	Aliases: []string{"m"},
	Usage:   "Run schema auto-migration before starting",
	Sources: cli.EnvVars("DB_AUTO_MIGRATE"),
}

func main() {
	cmd := &cli.Command{
		Name:    "stogie",
		Usage:   "Stogie social backend",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API",
				Flags:  []cli.Flag{migrateFlag},
				Action: serve,
			},
			{
				Name:   "seed",
				Usage:  "Migrate and load the bundled cigar and shop catalog",
				Action: seed,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

func openDB(cfg *configs.Config) (*gorm.DB, error) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	database.TunePool(db)
	return db, nil
}

func seed(ctx context.Context, _ *cli.Command) error {
	cfg, err := configs.LoadEnv()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	return seeds.RunAllSeeds(ctx, db)
}

func serve(ctx context.Context, c *cli.Command) error {
	cfg, err := configs.LoadEnv()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	database.WarmUp(db)

	if c.Bool("migrate") || cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}

	pub := newPublisher(cfg)
	defer pub.Close()

	images, err := newImageStore(cfg)
	if err != nil {
		return err
	}

	// ⏱ cleanup cron after the DB is ready
	cron, err := scheduler.StartBlacklistCleanupScheduler(db, cfg.BlacklistCleanupSpec)
	if err != nil {
		return err
	}
	defer cron.Stop()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.FromFiberError,
		DisableStartupMessage: true,
		BodyLimit:             12 * 1024 * 1024,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app, cfg)

	routes.SetupRoutes(app, db, cfg, routes.Deps{Publisher: pub, Images: images})

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("[INFO] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func newPublisher(cfg *configs.Config) events.Publisher {
	if cfg.NATSURL == "" {
		log.Println("[INFO] NATS_URL not set, activity events are dropped")
		return events.Noop{}
	}
	pub, err := events.NewNATSPublisher(cfg.NATSURL)
	if err != nil {
		log.Printf("[WARN] nats unavailable, activity events are dropped: %v", err)
		return events.Noop{}
	}
	return pub
}

func newImageStore(cfg *configs.Config) (helperOSS.ImageStore, error) {
	if cfg.OSSEndpoint == "" {
		return helperOSS.NewDiskImageStore(cfg.UploadDir, cfg.UploadPublicURL), nil
	}
	return helperOSS.NewOSSImageStore(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey, cfg.OSSBucket, cfg.OSSPublicURL)
}
