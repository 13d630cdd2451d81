package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"go.uber.org/zap"

	auth "github.com/goliatone/go-auth-session"
	"github.com/goliatone/go-auth-session/middleware/jwtware"
)

type loginRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := auth.LoadConfig()
	if err != nil {
		logger.Fatal("load auth config", zap.Error(err))
	}

	srv := router.NewFiberAdapter(func(*fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath: true,
			ErrorHandler: auth.FiberErrorHandler,
		}))
	})
	r := srv.Router()

	manager, err := auth.Register(r, cfg, auth.WithLogger(auth.NewZapLogger(logger)))
	if err != nil {
		logger.Fatal("register auth", zap.Error(err))
	}

	r.Post("/login", func(c router.Context) error {
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		a, _ := auth.FromRouter(c)
		token, err := a.GenerateJWT(auth.Session{
			auth.ClaimUserID: req.UserID,
			"email":          req.Email,
		})
		if err != nil {
			return err
		}
		return c.JSON(fiber.StatusOK, map[string]any{"token": token})
	})

	r.Get("/me", func(c router.Context) error {
		a, _ := auth.FromRouter(c)
		if err := a.LoadSession(); err != nil {
			return err
		}
		session, _ := a.Session()
		return c.JSON(fiber.StatusOK, map[string]any{"userId": session.UserID(), "session": session})
	})

	private := r.Group("/private")
	private.Use(jwtware.New(jwtware.Config{
		Loader:      manager,
		TokenLookup: "header:" + cfg.HeaderKey + ",query:token",
	}))
	private.Get("/ping", func(c router.Context) error {
		session, _ := auth.GetRouterSession(c, "")
		return c.JSON(fiber.StatusOK, map[string]any{"pong": session.UserID()})
	})

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	logger.Info("listening", zap.String("addr", addr))
	if err := srv.Serve(addr); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
}
