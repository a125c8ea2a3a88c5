package api

import (
	"log"
	"strings"
	"time"

	"github.com/ethanbaker/api/pkg/api_key"
	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/interview/internal/interview"
	"github.com/ethanbaker/interview/internal/media"
	"github.com/ethanbaker/interview/internal/stores/session"
	"github.com/ethanbaker/interview/internal/stores/user"
	"github.com/ethanbaker/interview/pkg/ai"
	"github.com/ethanbaker/interview/pkg/utils"

	ai_module "github.com/ethanbaker/interview/internal/api/modules/ai"
	auth_module "github.com/ethanbaker/interview/internal/api/modules/auth"
	health_module "github.com/ethanbaker/interview/internal/api/modules/health"
	interview_module "github.com/ethanbaker/interview/internal/api/modules/interview"
)

func Start(cfg *utils.Config) {
	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(api_utils.NoRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Build the backing stores and the session manager
	manager, userStore, uploadDir := setup(cfg)

	// Stored recordings are served back at the same path they are referenced by
	engine.Static("/static/uploads", uploadDir)

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Guard all API routes behind an api key when one is configured
	if apiKey := cfg.Get("API_KEY"); apiKey != "" {
		baseGroup.Handlers = append(baseGroup.Handlers, api_key.APIKeyHeaderHandler(func(key string) bool {
			return apiKey == key
		}))
	}

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)

	auth_module.RegisterRoutes(baseGroup)
	auth_module.Init(userStore)

	ai_module.RegisterRoutes(baseGroup)
	ai_module.Init(manager)

	interview_module.RegisterRoutes(baseGroup)
	interview_module.Init(manager)

	// Then after performing initial setup, start the server
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}

// setup builds the stores and the session manager from configuration
func setup(cfg *utils.Config) (*interview.Manager, user.Store, string) {
	// Session files, the user directory, and uploads all live on disk
	sessionStore, err := session.NewFileStore(cfg.GetWithDefault("DATA_DIR", "data/interviews"))
	if err != nil {
		log.Fatal("[API-MAIN]: Failed to create session store: ", err)
	}

	userStore, err := user.NewFileStore(cfg.GetWithDefault("USERS_FILE", "data/users.json"))
	if err != nil {
		log.Fatal("[API-MAIN]: Failed to create user store: ", err)
	}

	uploadDir := cfg.GetWithDefault("UPLOAD_DIR", "data/uploads")
	mediaStore, err := media.NewStore(uploadDir, "/static/uploads")
	if err != nil {
		log.Fatal("[API-MAIN]: Failed to create media store: ", err)
	}

	// Without a credential the manager runs in deterministic fallback mode
	var client ai.Client
	if key := cfg.Get("OPENAI_API_KEY"); key != "" {
		client = ai.NewOpenAI(ai.OpenAIConfig{
			APIKey:      key,
			Model:       cfg.Get("OPENAI_MODEL"),
			Temperature: cfg.GetFloatWithDefault("OPENAI_TEMPERATURE", 0.7),
			Timeout:     cfg.GetDurationWithDefault("OPENAI_TIMEOUT", 60*time.Second),
		})
	} else {
		log.Println("[API-MAIN]: OPENAI_API_KEY not set, running with fallback content")
	}

	rubric := interview.LoadConfigOrDefault(cfg.GetWithDefault("INTERVIEW_CONFIG", "config/interview.yaml"))

	return interview.New(sessionStore, mediaStore, client, rubric), userStore, uploadDir
}
