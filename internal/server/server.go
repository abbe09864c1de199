package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/database"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/handlers"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/llm"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/repositories"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/routes"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/services"
)

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	if err := database.EnsureDatabaseExists(); err != nil {
		log.Fatalf("failed to ensure database exists: %v", err)
	}

	pool, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	llmClient := llm.NewClient(llm.LoadConfig())

	// Dependency injection
	projectRepo := repositories.NewProjectRepository(pool)
	projectService := services.NewProjectService(projectRepo)
	chatService := services.NewChatService(llmClient, projectRepo)
	projectHandler := handlers.NewProjectHandler(projectService)
	chatHandler := handlers.NewChatHandler(chatService)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	routes.RegisterRoutes(router, projectHandler, chatHandler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
}
