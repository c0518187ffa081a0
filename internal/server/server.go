package server

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/campusbooks/campusbooks-backend/internal/handler"
	appmw "github.com/campusbooks/campusbooks-backend/internal/middleware"
	"github.com/campusbooks/campusbooks-backend/internal/objectstore"
	"github.com/campusbooks/campusbooks-backend/internal/repository"
	"github.com/campusbooks/campusbooks-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e           *echo.Echo
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	msgRepo     repository.MessageRepository
}

func New(db *gorm.DB, store *objectstore.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	msgRepo := repository.NewMessageRepository(db)

	userSvc := service.NewUserService(userRepo)
	listingSvc := service.NewListingService(listingRepo, userRepo)
	convSvc := service.NewConversationService(msgRepo, listingRepo, userRepo)
	adminSvc := service.NewAdminService(userRepo, listingRepo, msgRepo)

	userHandler := handler.NewUserHandler(userSvc)
	listingHandler := handler.NewListingHandler(listingSvc)
	convHandler := handler.NewConversationHandler(convSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, userSvc)

	authMw, err := appmw.NewAuthMiddleware(context.Background())
	if err != nil {
		log.Printf("firebase auth disabled: %v", err)
	}
	var authed []echo.MiddlewareFunc
	if authMw != nil {
		authed = append(authed, authMw.RequireAuth)
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")
	api.GET("/listings", listingHandler.List)
	api.GET("/listings/:id", listingHandler.Get)

	api.GET("/auth/user", userHandler.Me, authed...)
	api.GET("/users/:id/public", userHandler.GetPublic, authed...)
	api.GET("/my-listings", listingHandler.ListMine, authed...)
	api.POST("/listings", listingHandler.Create, authed...)
	api.PATCH("/listings/:id", listingHandler.Update, authed...)
	api.DELETE("/listings/:id", listingHandler.Delete, authed...)
	api.POST("/messages", convHandler.SendMessage, authed...)
	api.POST("/conversations", convHandler.Start, authed...)
	api.GET("/conversations", convHandler.List, authed...)
	api.GET("/admin/stats", adminHandler.Stats, authed...)

	if store != nil {
		uploadHandler := handler.NewUploadHandler(store)
		api.POST("/objects/upload", uploadHandler.CreateUploadURL, authed...)
	}

	return &Server{e: e, userRepo: userRepo, listingRepo: listingRepo, msgRepo: msgRepo}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB injects the database connection after startup; the server begins
// accepting requests before the connection lands and repositories report
// ErrDBNotReady until then.
func (s *Server) SetDB(db *gorm.DB) {
	s.userRepo.SetDB(db)
	s.listingRepo.SetDB(db)
	s.msgRepo.SetDB(db)
}
