package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fadilmartias/job-matcher/internal/config"
	"github.com/fadilmartias/job-matcher/internal/domain/fiber/handler"
	"github.com/fadilmartias/job-matcher/internal/logger"
	"github.com/fadilmartias/job-matcher/internal/middleware"
	"github.com/fadilmartias/job-matcher/internal/model"
	"github.com/fadilmartias/job-matcher/internal/repository"
	"github.com/fadilmartias/job-matcher/internal/service"
	"github.com/fadilmartias/job-matcher/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const uploadDir = "./uploads"

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	zlog, err := logger.New(appConfig.Env == "production", appConfig.Env != "production")
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	engine := html.New("./views", ".html")

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		Views:   engine,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB(zlog)

	hf, err := service.NewHuggingFaceService(zlog)
	if err != nil {
		zlog.Fatal("hugging face service init failed", zap.Error(err))
	}

	var embedder service.EmbeddingServiceInterface = hf
	if config.LoadEmbeddingsConfig().Provider == "gemini" {
		gemini, err := service.NewGeminiService(ctx, zlog)
		if err != nil {
			zlog.Fatal("gemini service init failed", zap.Error(err))
		}
		embedder = gemini
	}

	vectorRepo := repository.NewVectorRepository(db)
	uc := usecase.NewSearchUsecase(vectorRepo, embedder, hf, zlog)

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		zlog.Fatal("cannot create upload directory", zap.Error(err))
	}

	searchHandler := handler.NewSearchHandler(uc, uploadDir, zlog)
	searchHandler.RegisterRoutes(app)

	// Index the corpus up front so the upload path never depends on a prior
	// text search. Failures are retried lazily by the search paths.
	indexCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	if err := uc.IndexCorpus(indexCtx); err != nil {
		zlog.Warn("corpus indexing failed at startup, will retry on first search", zap.Error(err))
	}
	cancel()

	port := appConfig.Port
	if port == "" {
		port = ":3000"
	}

	zlog.Info("server running", zap.String("port", port))
	if err := app.Listen(port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func ConnectDB(zlog *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Jakarta",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zlog.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)  // cukup 5 idle
		pgDB.SetMaxOpenConns(10) // max 10 koneksi aktif
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)           // simpan 20 koneksi siap pakai
		pgDB.SetMaxOpenConns(200)          // max 200 koneksi aktif
		pgDB.SetConnMaxLifetime(time.Hour) // recycle tiap 1 jam
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		zlog.Fatal("could not enable pgvector extension", zap.Error(err))
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		zlog.Fatal("could not enable uuid-ossp extension", zap.Error(err))
	}

	// migrasi tabel
	if err := db.AutoMigrate(&model.Collection{}, &model.Document{}); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	return db
}
