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
	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/config"
	"github.com/yourusername/questionnaire-api/internal/handler"
	"github.com/yourusername/questionnaire-api/internal/middleware"
	pgRepo "github.com/yourusername/questionnaire-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/questionnaire-api/internal/repository/redis"
	"github.com/yourusername/questionnaire-api/internal/service"
	"github.com/yourusername/questionnaire-api/pkg/auth"
	"github.com/yourusername/questionnaire-api/pkg/database"
)

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

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	questionnaireRepo := pgRepo.NewQuestionnaireRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	questionTypeRepo := pgRepo.NewQuestionTypeRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)
	responseRepo := pgRepo.NewResponseRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Личность вызывающего: посевной администратор при отсутствии токена
	seededAdminID := uuid.New()
	if cfg.Auth.SeededAdminID != "" {
		parsed, err := uuid.Parse(cfg.Auth.SeededAdminID)
		if err != nil {
			log.Printf("Invalid seeded admin ID in config: %v", err)
			os.Exit(1)
		}
		seededAdminID = parsed
	} else {
		log.Printf("Посевной администратор не задан, сгенерирован эфемерный ID %s", seededAdminID)
	}

	var jwtService *auth.JWTService
	if cfg.Auth.JWTSecret != "" {
		jwtService, err = auth.NewJWTService(cfg.Auth.JWTSecret, 24)
		if err != nil {
			log.Printf("Failed to initialize JWTService: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("JWT secret не задан: все запросы получают посевную личность")
	}

	// Инициализируем сервисы
	policy := service.NewRolePolicy()
	validator := service.NewValidator()

	questionnaireService := service.NewQuestionnaireService(questionnaireRepo, questionTypeRepo, categoryRepo, responseRepo, cacheRepo)
	questionService := service.NewQuestionService(questionRepo, questionnaireRepo, questionTypeRepo, responseRepo, cacheRepo)
	responseService := service.NewResponseService(questionnaireRepo, responseRepo, cacheRepo, validator, policy, cfg.Cache.DefinitionTTL())

	// Инициализируем обработчики
	questionnaireHandler := handler.NewQuestionnaireHandler(questionnaireService, policy)
	questionHandler := handler.NewQuestionHandler(questionService, policy)
	responseHandler := handler.NewResponseHandler(responseService, questionnaireService)

	// Инициализируем middleware
	identityMiddleware := middleware.NewIdentityMiddleware(jwtService, seededAdminID)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	// В production (GIN_MODE=release): не доверяем прокси (защита от IP spoofing)
	// В development: доверяем localhost
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
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Личность вызывающего нужна каждому маршруту
	router.Use(identityMiddleware.Identify())

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Справочник типов вопросов
		api.GET("/question-types", questionHandler.ListQuestionTypes)

		// Отправки текущего пользователя
		api.GET("/users/me/responses", responseHandler.GetMyResponses)

		// Отправка по идентификатору
		responses := api.Group("/responses/:id")
		responses.Use(middleware.ExtractUUIDParam("id", "responseID"))
		{
			responses.GET("", responseHandler.GetResponse)
		}

		// Удаление вопроса не требует контекста анкеты
		questions := api.Group("/questions/:qid")
		questions.Use(middleware.ExtractUUIDParam("qid", "questionID"))
		{
			questions.DELETE("", questionHandler.DeleteQuestion)
		}

		// Анкеты
		questionnaires := api.Group("/questionnaires")
		{
			questionnaires.GET("", questionnaireHandler.ListQuestionnaires)
			questionnaires.POST("", questionnaireHandler.CreateQuestionnaire)

			// Группа маршрутов, требующих questionnaireID
			withID := questionnaires.Group("/:id")
			withID.Use(middleware.ExtractUUIDParam("id", "questionnaireID"))
			{
				withID.GET("", questionnaireHandler.GetQuestionnaire)
				withID.PUT("", questionnaireHandler.UpdateQuestionnaire)
				withID.DELETE("", questionnaireHandler.DeleteQuestionnaire)

				withID.GET("/questions", questionHandler.GetQuestions)
				withID.POST("/questions", questionHandler.CreateQuestion)

				questionInContext := withID.Group("/questions/:qid")
				questionInContext.Use(middleware.ExtractUUIDParam("qid", "questionID"))
				{
					questionInContext.PUT("", questionHandler.UpdateQuestion)
				}

				withID.GET("/responses", responseHandler.GetResponsesByQuestionnaire)
				withID.POST("/responses", rateLimiter.Limit(middleware.DefaultSubmitRateLimitConfig()), responseHandler.SubmitResponse)
				withID.POST("/responses/validate", responseHandler.ValidateResponse)
				withID.GET("/responses/export", rateLimiter.Limit(middleware.ExportRateLimitConfig()), responseHandler.ExportResponses)
			}
		}
	}

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

	log.Printf("Server started on port %s", cfg.Server.Port)

	// После получения сигнала SIGINT или SIGTERM завершаем работу корректно
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
