package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/codebrain-api/internal/config"
	"github.com/yourusername/codebrain-api/internal/handler"
	"github.com/yourusername/codebrain-api/internal/middleware"
	pgRepo "github.com/yourusername/codebrain-api/internal/repository/postgres"
	"github.com/yourusername/codebrain-api/internal/service"
	"github.com/yourusername/codebrain-api/pkg/database"
)

const version = "1.0.0"

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL.
	// До успешного подключения и создания схемы сервер не стартует.
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.ProvisionSchema(db); err != nil {
		log.Printf("Failed to provision database schema: %v", err)
		os.Exit(1)
	}

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	gameRepo := pgRepo.NewGameRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)

	// Инициализируем сервисы
	userService := service.NewUserService(userRepo)
	gameService := service.NewGameService(gameRepo, userRepo, db)
	questionService := service.NewQuestionService(questionRepo)

	// Инициализируем обработчики
	userHandler := handler.NewUserHandler(userService)
	gameHandler := handler.NewGameHandler(gameService)
	questionHandler := handler.NewQuestionHandler(questionService)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Служебные маршруты
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🧠 CodeBrain API",
			"version": version,
			"status":  "online",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			// Статические маршруты раньше динамических
			users.GET("/ranking/top", userHandler.GetRanking)
			users.GET("/ranking/export", userHandler.ExportRanking)
			users.POST("/sync", userHandler.SyncUser)

			userWithUID := users.Group("/:uid")
			userWithUID.Use(middleware.ExtractUIDParam("uid", "firebaseUID"))
			{
				userWithUID.GET("", userHandler.GetProfile)
				userWithUID.PUT("", userHandler.UpdateProfile)
				userWithUID.PATCH("/stats", userHandler.UpdateStats)
				userWithUID.DELETE("", userHandler.DeleteUser)
			}
		}

		games := api.Group("/games/:userId")
		games.Use(middleware.ExtractUIDParam("userId", "firebaseUID"))
		{
			games.POST("/finish", gameHandler.FinishGame)
			games.GET("", gameHandler.GetUserGames)
		}

		questions := api.Group("/questions")
		{
			questions.POST("", questionHandler.CreateQuestion)
			questions.GET("", questionHandler.GetQuestions)
		}
	}

	// Несуществующие маршруты отвечают тем же JSON-конвертом
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ждём сигнал остановки и завершаем работу корректно
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
