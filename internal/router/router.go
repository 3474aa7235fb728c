package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/config"
	"github.com/timtruong/timtruong-backend/internal/handler"
	"github.com/timtruong/timtruong-backend/internal/middleware"
	"github.com/timtruong/timtruong-backend/internal/response"
)

const (
	maxJSONBody   = 1 << 20
	maxUploadBody = 11 << 20
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Recommendation *handler.RecommendationHandler
	University     *handler.UniversityHandler
	Campus         *handler.CampusHandler
	Major          *handler.MajorHandler
	Requirement    *handler.AdmissionRequirementHandler
	Reference      *handler.ReferenceHandler
	Dashboard      *handler.DashboardHandler
	Import         *handler.ImportHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	handlers *Handlers,
	recommendLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the request log line can carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.BodyLimit(maxJSONBody))

	// ─── 1. Recommendations (public, rate limited) ────────────────────
	api.POST("/recommendations", recommendLimiter.Middleware(), handlers.Recommendation.Recommend)

	// ─── 2. Reference data (public, cacheable) ────────────────────────
	reference := api.Group("/reference")
	reference.Use(middleware.CacheControl(cfg.ReferenceCacheSeconds))
	{
		reference.GET("/exam-types", handlers.Reference.ListExamTypes)
		reference.GET("/subject-combinations", handlers.Reference.ListSubjectCombinations)
	}

	// ─── 3. Catalog ───────────────────────────────────────────────────
	universities := api.Group("/universities")
	{
		universities.GET("", handlers.University.ListUniversities)
		universities.GET("/simple", handlers.University.ListSimple)
		universities.GET("/:id", handlers.University.GetUniversity)
		universities.POST("", handlers.University.CreateUniversity)
		universities.PUT("/:id", handlers.University.UpdateUniversity)
		universities.DELETE("/:id", handlers.University.DeleteUniversity)

		universities.GET("/:id/majors", handlers.Major.ListMajors)
		universities.POST("/:id/majors", handlers.Major.CreateMajor)
	}

	campuses := api.Group("/campuses")
	{
		campuses.GET("", handlers.Campus.ListCampuses)
		campuses.GET("/:id", handlers.Campus.GetCampus)
		campuses.POST("", handlers.Campus.CreateCampus)
		campuses.PUT("/:id", handlers.Campus.UpdateCampus)
		campuses.DELETE("/:id", handlers.Campus.DeleteCampus)
	}

	majors := api.Group("/majors")
	{
		majors.GET("/:id", handlers.Major.GetMajor)
		majors.PUT("/:id", handlers.Major.UpdateMajor)
		majors.DELETE("/:id", handlers.Major.DeleteMajor)

		majors.GET("/:id/requirements", handlers.Requirement.ListRequirements)
		majors.POST("/:id/requirements", handlers.Requirement.CreateRequirement)
	}

	requirements := api.Group("/requirements")
	{
		requirements.GET("/:id", handlers.Requirement.GetRequirement)
		requirements.PUT("/:id", handlers.Requirement.UpdateRequirement)
		requirements.DELETE("/:id", handlers.Requirement.DeleteRequirement)
	}

	// ─── 4. Admin ─────────────────────────────────────────────────────
	admin := router.Group("/api/v1/admin")
	{
		admin.GET("/dashboard", middleware.CacheControl(0), handlers.Dashboard.GetDashboardData)
		admin.POST("/import/requirements", middleware.BodyLimit(maxUploadBody), handlers.Import.ImportRequirements)
	}

	return router
}
