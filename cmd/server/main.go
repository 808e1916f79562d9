package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Shrutis65143/Booqly/internal/config"
	"github.com/Shrutis65143/Booqly/internal/database"
	"github.com/Shrutis65143/Booqly/internal/handler"
	"github.com/Shrutis65143/Booqly/internal/middleware"
	"github.com/Shrutis65143/Booqly/internal/queue"
	"github.com/Shrutis65143/Booqly/internal/repository"
	"github.com/Shrutis65143/Booqly/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories share the single pooled handle.
	books := repository.NewBookRepo(db)
	borrows := repository.NewBorrowRepo(db)
	categories := repository.NewCategoryRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	authH := handler.NewAuthHandler(users, tokens, &cfg)
	bookH := handler.NewBookHandler(books, categories)
	catH := handler.NewCategoryHandler(categories)
	userH := handler.NewUserHandler(users, tokens, &cfg)
	borrowH := handler.NewBorrowHandler(borrows, books)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// Redis is optional: without it the limiter and cache middlewares
	// pass requests straight through.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, bookH, catH, cacheMW)
	router.RegisterMember(e, borrowH, cfg.JWTSecret)
	router.RegisterAdmin(e, bookH, catH, userH, borrowH, cfg.JWTSecret)

	// Background audit-trail consumer; reconnects on its own.
	go func() {
		if err := queue.StartCirculationConsumer(); err != nil {
			log.Printf("circulation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
