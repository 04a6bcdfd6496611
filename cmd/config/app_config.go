package config

import (
	"food-tracker/internal/api/handlers"
	"food-tracker/internal/api/routes"
	"food-tracker/internal/metrics"
	"food-tracker/internal/middleware"
	"food-tracker/internal/utils"
	"food-tracker/internal/utils/cache"
	"food-tracker/internal/utils/mailing"
	"food-tracker/internal/utils/storage"
	"food-tracker/pkg/analytics"
	"food-tracker/pkg/category"
	"food-tracker/pkg/database"
	"food-tracker/pkg/donation"
	"food-tracker/pkg/food"
	"food-tracker/pkg/foodlog"
	"food-tracker/pkg/jwt"
	"food-tracker/pkg/user"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const defaultCacheTTL = 5 * time.Minute

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))
	app.Use(metrics.Middleware())

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()
	centerCache := newCenterCache()
	transactor := database.NewTransactor(db)

	// Repository
	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)
	foodLogRepository := foodlog.NewFoodLogRepository(db)
	analyticsRepository := analytics.NewAnalyticsRepository(db)
	categoryRepository := category.NewCategoryRepository(db)
	donationRepository := donation.NewDonationRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	userService := user.NewUserService(userRepository, jwtService)
	foodService := food.NewFoodService(foodRepository, userRepository, transactor, s3, mailer)
	foodLogService := foodlog.NewFoodLogService(foodLogRepository, foodRepository, foodService, transactor)
	analyticsService := analytics.NewAnalyticsService(analyticsRepository)
	categoryService := category.NewCategoryService(categoryRepository)
	centerService := donation.NewDonationCenterService(donationRepository, centerCache)
	donationService := donation.NewDonationService(
		donationRepository,
		foodRepository,
		foodLogService,
		transactor,
		mailer,
		utils.GetConfig("APP_URL"),
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	foodLogHandler := handlers.NewFoodLogHandler(foodLogService, validator)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, validator)
	centerHandler := handlers.NewDonationCenterHandler(centerService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)

	// routes
	routesConfig := routes.Config{
		App:                   app,
		UserHandler:           userHandler,
		FoodHandler:           foodHandler,
		FoodLogHandler:        foodLogHandler,
		AnalyticsHandler:      analyticsHandler,
		CategoryHandler:       categoryHandler,
		DonationCenterHandler: centerHandler,
		DonationHandler:       donationHandler,
		Middleware:            middlewares,
		JWTService:            jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

// newCenterCache connects to redis when REDIS_ADDR is set; otherwise center
// reads always go to the database.
func newCenterCache() cache.Cache {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		log.Info("REDIS_ADDR not set, donation center cache disabled")
		return cache.NoopCache{}
	}

	ttl := defaultCacheTTL
	if raw := utils.GetConfig("CACHE_TTL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			log.Warnf("invalid CACHE_TTL_SECONDS %q, using %s", raw, defaultCacheTTL)
		} else {
			ttl = time.Duration(seconds) * time.Second
		}
	}

	client := cache.MustInitRedis(addr, utils.GetConfig("REDIS_PASSWORD"))
	return cache.NewRedisCache(client, ttl)
}
