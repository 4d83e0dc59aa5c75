package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/lumamail/lumamail-backend/internal/auth"
	"github.com/lumamail/lumamail-backend/internal/config"
	"github.com/lumamail/lumamail-backend/internal/db"
	"github.com/lumamail/lumamail-backend/internal/handler"
	"github.com/lumamail/lumamail-backend/internal/repository"
	"github.com/lumamail/lumamail-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	conn, err := db.Open(cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	defer conn.Close()
	log.Println("✅ Connected to database")

	if cfg.DB.RunMigrations {
		if err := db.Migrate(cfg.DB.DSN()); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		log.Println("✅ Migrations applied")
	}

	tokens, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to init auth: %v", err)
	}

	contactRepo := &repository.ContactRepository{DB: conn}
	campaignRepo := &repository.CampaignRepository{
		DB:           conn,
		Materializer: &repository.RecipientMaterializer{Contacts: contactRepo},
	}
	templateRepo := &repository.TemplateRepository{DB: conn}
	settingsRepo := &repository.SettingsRepository{DB: conn}
	analyticsRepo := &repository.AnalyticsRepository{DB: conn}
	userRepo := &repository.UserRepository{DB: conn}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		Now:          time.Now,
	}
	analyticsService := &service.AnalyticsService{AnalyticsRepo: analyticsRepo}
	authService := &service.AuthService{
		Users:  userRepo,
		Tokens: tokens,
		Now:    time.Now,
	}

	campaignHandler := &handler.CampaignHandler{Service: campaignService}
	contactHandler := &handler.ContactHandler{Repo: contactRepo}
	templateHandler := &handler.TemplateHandler{Repo: templateRepo}
	analyticsHandler := &handler.AnalyticsHandler{Service: analyticsService}
	settingsHandler := &handler.SettingsHandler{Repo: settingsRepo}
	authHandler := &handler.AuthHandler{Service: authService}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// Everything past login requires a valid token.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/campaigns", campaignHandler.ListCampaigns)
		r.Post("/campaigns", campaignHandler.CreateCampaign)
		r.Get("/campaigns/{id}", campaignHandler.GetCampaign)
		r.Put("/campaigns/{id}", campaignHandler.UpdateCampaign)
		r.Get("/campaigns/{id}/recipients", campaignHandler.ListRecipients)

		r.Get("/contacts", contactHandler.ListContacts)
		r.Post("/contacts", contactHandler.CreateContact)
		r.Get("/contacts/{id}", contactHandler.GetContact)
		r.Put("/contacts/{id}", contactHandler.UpdateContact)
		r.Delete("/contacts/{id}", contactHandler.DeleteContact)

		r.Get("/templates", templateHandler.ListTemplates)
		r.Post("/templates", templateHandler.CreateTemplate)
		r.Get("/templates/{id}", templateHandler.GetTemplate)
		r.Put("/templates/{id}", templateHandler.UpdateTemplate)
		r.Delete("/templates/{id}", templateHandler.DeleteTemplate)

		r.Get("/analytics/campaigns", analyticsHandler.CampaignPerformance)
		r.Get("/analytics/summary", analyticsHandler.Summary)
		r.Get("/analytics/dashboard", analyticsHandler.Dashboard)

		r.Get("/settings", settingsHandler.GetSettings)
		r.Put("/settings", settingsHandler.UpdateSettings)
	})

	log.Printf("🚀 Server running on %s", cfg.HTTP.Addr)
	log.Fatal(http.ListenAndServe(cfg.HTTP.Addr, r))
}
