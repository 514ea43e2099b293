package config

import (
	"FoodBridge-Backend/internal/api/handlers"
	"FoodBridge-Backend/internal/api/routes"
	"FoodBridge-Backend/internal/middleware"
	"FoodBridge-Backend/internal/utils"
	"FoodBridge-Backend/internal/utils/mailing"
	"FoodBridge-Backend/internal/utils/storage"
	"FoodBridge-Backend/pkg/conversation"
	"FoodBridge-Backend/pkg/donation"
	"FoodBridge-Backend/pkg/jwt"
	"FoodBridge-Backend/pkg/user"
	"FoodBridge-Backend/pkg/volunteer"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

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
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewSender()

	// Repository
	userRepository := user.NewUserRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	volunteerRepository := volunteer.NewVolunteerRepository(db)
	conversationRepository := conversation.NewConversationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	donationService := donation.NewDonationService(donationRepository)
	volunteerService := volunteer.NewVolunteerService(
		volunteerRepository,
		donationRepository,
		userRepository,
		mailer,
	)
	conversationService := conversation.NewConversationService(conversationRepository, userRepository)

	// Handler
	authHandler := handlers.NewAuthHandler(userService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)
	organizationHandler := handlers.NewOrganizationHandler(donationService, volunteerService, validator)
	volunteerHandler := handlers.NewVolunteerHandler(volunteerService, donationService, validator)
	conversationHandler := handlers.NewConversationHandler(conversationService, validator)
	uploadHandler := handlers.NewUploadHandler(s3)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		AuthHandler:         authHandler,
		DonationHandler:     donationHandler,
		OrganizationHandler: organizationHandler,
		VolunteerHandler:    volunteerHandler,
		ConversationHandler: conversationHandler,
		UploadHandler:       uploadHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
