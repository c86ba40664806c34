package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/arifwib/interview-coach/internal/config"
	"github.com/arifwib/interview-coach/internal/domain/fiber/handler"
	"github.com/arifwib/interview-coach/internal/middleware"
	"github.com/arifwib/interview-coach/internal/model"
	"github.com/arifwib/interview-coach/internal/repository"
	"github.com/arifwib/interview-coach/internal/service"
	"github.com/arifwib/interview-coach/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	if config.LoadAuthConfig().JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

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
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
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

	app.Static("/uploads", "./uploads")

	db := ConnectDB()

	profileRepo := repository.NewProfileRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	mentorRepo := repository.NewMentorRepository(db)

	if err := mentorRepo.Seed(model.DefaultMentors()); err != nil {
		log.Fatal("mentor seed failed: ", err)
	}

	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		log.Fatal(err)
	}
	heygen := service.NewHeyGenService()

	profileUC := usecase.NewProfileUsecase(profileRepo, gemini)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, profileRepo, gemini)

	api := app.Group("", middleware.JWTProtected())
	handler.NewProfileHandler(profileUC).RegisterRoutes(api)
	handler.NewInterviewHandler(interviewUC).RegisterRoutes(api)
	handler.NewMentorHandler(mentorRepo).RegisterRoutes(api)
	handler.NewTokenHandler(heygen).RegisterRoutes(api)

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(&model.UserProfile{}, &model.Interview{}, &model.Mentor{})
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
