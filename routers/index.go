package routers

import (
	"strings"
	"time"

	"lms/config"
	authControllers "lms/controllers/auth"
	contentControllers "lms/controllers/content"
	progressControllers "lms/controllers/progress"
	quizControllers "lms/controllers/quiz"
	"lms/logger"
	"lms/middleware"
	"lms/models"
	"lms/routers/authRoutes"
	"lms/routers/contentRoutes"
	"lms/routers/progressRoutes"
	"lms/routers/quizRoutes"
	"lms/services/auth"
	"lms/services/content"
	"lms/services/progress"
	"lms/services/quiz"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewApp builds the fiber application with every service wired to db.
func NewApp(cfg *config.Config, db *gorm.DB, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "lms",
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
				return middleware.JsonResponse(c, code, false, fe.Message, nil)
			}
			log.Error("unhandled error", "path", c.Path(), "error", err)
			return middleware.JsonResponse(c, code, false, "Internal server error!", nil)
		},
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CorsAllowOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: strings.Join([]string{"Content-Type", "Authorization", middleware.RequestIDHeader}, ","),
	}))
	app.Use(compress.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${ip} ${locals:requestId} ${method} ${path} ${status} ${latency}\n",
	}))
	app.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeoutSeconds) * time.Second))

	app.Get("/health", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", nil)
	})

	ttl := time.Duration(cfg.JWTTTLHours) * time.Hour
	issue := func(user models.User) (string, error) {
		return middleware.GenerateJWT(cfg.JWTKey, ttl, user)
	}

	authSvc := auth.NewService(db, log, cfg.SaltRound, issue)
	contentSvc := content.NewService(db, log)
	quizSvc := quiz.NewService(db, log)
	progressSvc := progress.NewService(db, log)

	jwt := middleware.JWTMiddleware(cfg.JWTKey)
	staff := middleware.RequireRoles(db, models.RoleAdmin, models.RoleTeacher)
	student := middleware.RequireRoles(db, models.RoleStudent)

	admin := app.Group("/admin", jwt, staff)

	authRoutes.SetupAuthRoutes(app, admin, authControllers.New(authSvc, log), jwt)
	contentRoutes.SetupContentRoutes(app, admin, contentControllers.New(contentSvc, log), jwt)
	quizRoutes.SetupQuizRoutes(app, quizControllers.New(quizSvc, progressSvc, authSvc, log), jwt, staff)
	progressRoutes.SetupProgressRoutes(app, progressControllers.New(progressSvc, log), jwt, student)

	return app
}
