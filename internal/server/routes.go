package server

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/farellandr/fyyur-trivia/config"
	"github.com/farellandr/fyyur-trivia/internal/handlers"
	"github.com/farellandr/fyyur-trivia/internal/helpers"
	"github.com/farellandr/fyyur-trivia/internal/middleware"
	"github.com/farellandr/fyyur-trivia/internal/templates"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewFyyurRouter(db *gorm.DB, cfg *config.Config, logger *slog.Logger) (*gin.Engine, error) {
	if err := helpers.RegisterFormValidators(); err != nil {
		return nil, err
	}

	tmpl, err := templates.Load(helpers.TemplateFuncs())
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.MaxMultipartMemory = 8 << 20
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", "error", recovered)
		helpers.RenderError(c, http.StatusInternalServerError)
	}))

	setupFyyurRoutes(r, db, cfg)
	return r, nil
}

func setupFyyurRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.Static("/uploads", cfg.UploadDir)

	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.UploadMiddleware(helpers.ImageUploadConfig(cfg.UploadDir)))
	r.NoRoute(func(c *gin.Context) {
		helpers.RenderError(c, http.StatusNotFound)
	})

	r.GET("/", handlers.Home)

	venues := r.Group("/venues")
	{
		venues.GET("", handlers.ListVenues)
		venues.POST("/search", handlers.SearchVenues)
		venues.GET("/create", handlers.CreateVenueForm)
		venues.POST("/create", handlers.CreateVenueSubmission)
		venues.GET("/:id", handlers.ShowVenue)
		venues.DELETE("/:id", handlers.DeleteVenue)
		venues.GET("/:id/edit", handlers.EditVenueForm)
		venues.POST("/:id/edit", handlers.EditVenueSubmission)
		venues.POST("/:id/remove", handlers.RemoveVenue)
	}

	artists := r.Group("/artists")
	{
		artists.GET("", handlers.ListArtists)
		artists.POST("/search", handlers.SearchArtists)
		artists.GET("/create", handlers.CreateArtistForm)
		artists.POST("/create", handlers.CreateArtistSubmission)
		artists.GET("/:id", handlers.ShowArtist)
		artists.DELETE("/:id", handlers.DeleteArtist)
		artists.GET("/:id/edit", handlers.EditArtistForm)
		artists.POST("/:id/edit", handlers.EditArtistSubmission)
		artists.POST("/:id/remove", handlers.RemoveArtist)
	}

	shows := r.Group("/shows")
	{
		shows.GET("", handlers.ListShows)
		shows.GET("/create", handlers.CreateShowForm)
		shows.POST("/create", handlers.CreateShowSubmission)
	}
}

func NewTriviaRouter(db *gorm.DB, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", "error", recovered)
		helpers.RespondWithError(c, http.StatusInternalServerError)
	}))
	r.Use(cors.New(corsConfig(cfg.Origins)))

	setupTriviaRoutes(r, db, cfg)
	return r
}

func corsConfig(origins []string) cors.Config {
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return corsCfg
}

func setupTriviaRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.NoRoute(func(c *gin.Context) {
		helpers.RespondWithError(c, http.StatusNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		helpers.RespondWithError(c, http.StatusMethodNotAllowed)
	})

	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret)

	r.GET("/", handlers.TriviaRoot)
	r.GET("/categories", handlers.ListCategories)
	r.GET("/categories/:id/questions", handlers.ListCategoryQuestions)

	r.GET("/questions", handlers.ListQuestions)
	r.POST("/questions", auth, handlers.SubmitQuestion)
	r.DELETE("/questions/:id", auth, middleware.RequireAuth(), handlers.DeleteQuestion)

	r.POST("/quizzes", handlers.NextQuizQuestion)
}
