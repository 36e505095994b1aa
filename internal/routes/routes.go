package routes

import (
	"context"
	"fmt"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ankit-bind/shared-space-seekers/internal/config"
	"github.com/ankit-bind/shared-space-seekers/internal/handlers"
	"github.com/ankit-bind/shared-space-seekers/internal/middleware"
	"github.com/ankit-bind/shared-space-seekers/internal/repository"
	"github.com/ankit-bind/shared-space-seekers/internal/services"
	chatws "github.com/ankit-bind/shared-space-seekers/internal/websocket"
)

// RegisterRoutes builds the in-memory stores and services from fixtures and
// mounts the API. The chat hub runs until ctx is canceled.
func RegisterRoutes(
	ctx context.Context,
	app *fiber.App,
	cfg *config.Config,
	fixtures *repository.Fixtures,
	log zerolog.Logger,
) error {
	listingRepo, err := repository.NewListingRepository(fixtures.Listings)
	if err != nil {
		return fmt.Errorf("build listing catalog: %w", err)
	}
	profileRepo := repository.NewProfileRepository(fixtures.Profile)
	conversationStore, err := services.NewConversationStore(fixtures.Conversations)
	if err != nil {
		return fmt.Errorf("build conversation store: %w", err)
	}

	policy, err := services.ParsePendingPolicy(cfg.PendingPolicy)
	if err != nil {
		return err
	}
	filterSim := services.NewSimulator(services.SimulatorConfig{
		Delay:       cfg.FilterDelay,
		FailureRate: cfg.FailureRate,
		Policy:      policy,
	})
	draftSim := services.NewSimulator(services.SimulatorConfig{
		Delay:       cfg.SaveDelay,
		FailureRate: cfg.FailureRate,
		Policy:      policy,
	})
	profileSim := services.NewSimulator(services.SimulatorConfig{
		Delay:       cfg.SaveDelay,
		FailureRate: cfg.FailureRate,
		Policy:      policy,
	})

	chatHub := chatws.NewHub(log)
	go chatHub.Run(ctx)
	notifier := services.MultiNotifier{services.NewLogNotifier(log), chatHub}

	listingService, err := services.NewListingService(ctx, listingRepo, filterSim, draftSim, notifier, log)
	if err != nil {
		return err
	}
	profileService := services.NewProfileService(profileRepo, profileSim, notifier, log)
	chatService := services.NewChatService(conversationStore, notifier, log)

	listingHandler := handlers.NewListingHandler(listingService, profileService)
	profileHandler := handlers.NewProfileHandler(profileService)
	chatHandler := handlers.NewChatHandler(chatService, chatHub)

	if cfg.EnableMetrics {
		app.Use(middleware.RequestMetrics())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api/v1", middleware.ViewerSession(cfg.ViewerID))

	listings := api.Group("/listings")
	listings.Get("", listingHandler.ListListings)
	listings.Post("", listingHandler.CreateListing)
	listings.Post("/search", listingHandler.SearchListings)
	listings.Get("/applied", listingHandler.GetAppliedFilters)
	listings.Get("/featured", listingHandler.GetFeaturedListings)
	listings.Get("/:id", listingHandler.GetListing)
	listings.Post("/:id/contact", listingHandler.ContactOwner)

	api.Get("/profile", profileHandler.GetProfile)
	api.Put("/profile", profileHandler.UpdateProfile)

	conversations := api.Group("/conversations")
	conversations.Get("", chatHandler.ListConversations)
	conversations.Get("/:id", chatHandler.GetConversation)
	conversations.Post("/:id/messages", chatHandler.SendMessage)

	api.Use("/ws", chatHandler.WebSocketUpgrade)
	api.Get("/ws", websocket.New(chatHandler.HandleWebSocket))

	return nil
}
