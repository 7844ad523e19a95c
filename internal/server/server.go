package server

import (
	"errors"

	// Registers the OpenAPI document served under /docs.
	_ "products-api/internal/docs"
	"products-api/internal/handlers"
	"products-api/internal/middleware"
	"products-api/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Options are the dependencies of the HTTP app.
type Options struct {
	Logger     *zap.Logger
	Products   *services.ProductService
	DB         handlers.Pinger
	CORSOrigin string
}

// New builds the Fiber app with every route and middleware registered.
func New(opts Options) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	origin := opts.CORSOrigin
	if origin == "" {
		origin = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:      "products-api",
		ErrorHandler: ErrorHandler,
	})

	// --- Middleware ---
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: origin}))

	// --- Documentation ---
	app.Get("/docs/*", swagger.HandlerDefault)

	// --- API Routes ---
	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": "Desde API"})
	})
	handlers.NewProductHandler(opts.Products).RegisterRoutes(api)

	// --- Health Check Endpoint ---
	handlers.NewHealthHandler(opts.DB).RegisterRoutes(app)

	return app
}

// ErrorHandler renders errors that reach Fiber. *fiber.Error keeps its code
// and message; anything else, storage failures included, is a generic 500.
// The cause is logged once, on the request line written by RequestLogger.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := utils.StatusMessage(code)

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
