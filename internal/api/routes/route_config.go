package routes

import (
	"FoodBridge-Backend/domain"
	"FoodBridge-Backend/internal/api/handlers"
	"FoodBridge-Backend/internal/middleware"
	"FoodBridge-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	AuthHandler         handlers.AuthHandler
	DonationHandler     handlers.DonationHandler
	OrganizationHandler handlers.OrganizationHandler
	VolunteerHandler    handlers.VolunteerHandler
	ConversationHandler handlers.ConversationHandler
	UploadHandler       handlers.UploadHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Donations()
	c.Organizations()
	c.Volunteers()
	c.Conversations()
	c.Uploads()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.AuthHandler.Register)
		auth.Post("/login", c.AuthHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.AuthHandler.Me)
		auth.Patch("/password", c.Middleware.AuthMiddleware(c.JWTService), c.AuthHandler.ChangePassword)
	}
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations", c.Middleware.AuthMiddleware(c.JWTService))
	{
		donations.Post("", c.DonationHandler.CreateDonation)
		donations.Get("/my", c.DonationHandler.GetMyDonations)
		donations.Get("/available", c.DonationHandler.GetAvailableDonations)
		donations.Get("/:id", c.DonationHandler.GetDonationByID)
		donations.Put("/:id", c.DonationHandler.UpdateDonation)
		donations.Delete("/:id", c.DonationHandler.DeleteDonation)
	}
}

func (c *Config) Organizations() {
	organizations := c.App.Group(
		"/api/v1/organizations",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireRoles(domain.RoleOrganization),
	)
	{
		organizations.Post("/donations/:id/claim", c.OrganizationHandler.ClaimDonation)
		organizations.Get("/donations", c.OrganizationHandler.GetClaimedDonations)
		organizations.Patch("/donations/:id/status", c.OrganizationHandler.UpdateDonationStatus)
		organizations.Post("/donations/:id/request-volunteer", c.OrganizationHandler.RequestVolunteer)
		organizations.Post("/donations/:id/request-volunteers", c.OrganizationHandler.RequestVolunteers)
	}
}

func (c *Config) Volunteers() {
	volunteers := c.App.Group(
		"/api/v1/volunteers",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireRoles(domain.RoleVolunteer),
	)
	{
		volunteers.Get("/requests", c.VolunteerHandler.GetVolunteerRequests)
		volunteers.Patch("/requests/:id", c.VolunteerHandler.RespondToRequest)
		volunteers.Get("/donations", c.VolunteerHandler.GetAssignedDonations)
		volunteers.Post("/donations/:id/complete", c.VolunteerHandler.CompleteDonation)
	}
}

func (c *Config) Conversations() {
	conversations := c.App.Group("/api/v1/conversations", c.Middleware.AuthMiddleware(c.JWTService))
	{
		conversations.Get("", c.ConversationHandler.GetUserConversations)
		conversations.Post("", c.ConversationHandler.CreateConversation)
		conversations.Get("/unread-count", c.ConversationHandler.GetUnreadCount)
		conversations.Get("/users", c.ConversationHandler.GetAvailableUsers)
		conversations.Get("/:id", c.ConversationHandler.GetConversationByID)
		conversations.Post("/:id/messages", c.ConversationHandler.SendMessage)
	}
}

func (c *Config) Uploads() {
	uploads := c.App.Group("/api/v1/uploads", c.Middleware.AuthMiddleware(c.JWTService))
	{
		uploads.Post("/image", c.UploadHandler.UploadImage)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
