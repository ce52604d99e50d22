package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/campuskit/facility-booking-backend/internal/announcement"
	announcementHttp "github.com/campuskit/facility-booking-backend/internal/announcement/http"
	"github.com/campuskit/facility-booking-backend/internal/auth"
	"github.com/campuskit/facility-booking-backend/internal/booking"
	bookingHttp "github.com/campuskit/facility-booking-backend/internal/booking/http"
	"github.com/campuskit/facility-booking-backend/internal/building"
	buildingHttp "github.com/campuskit/facility-booking-backend/internal/building/http"
	"github.com/campuskit/facility-booking-backend/internal/config"
	"github.com/campuskit/facility-booking-backend/internal/department"
	departmentHttp "github.com/campuskit/facility-booking-backend/internal/department/http"
	"github.com/campuskit/facility-booking-backend/internal/facility"
	facilityHttp "github.com/campuskit/facility-booking-backend/internal/facility/http"
	"github.com/campuskit/facility-booking-backend/internal/facilitytype"
	facilitytypeHttp "github.com/campuskit/facility-booking-backend/internal/facilitytype/http"
	"github.com/campuskit/facility-booking-backend/internal/file"
	fileHttp "github.com/campuskit/facility-booking-backend/internal/file/http"
	"github.com/campuskit/facility-booking-backend/internal/mw"
	"github.com/campuskit/facility-booking-backend/internal/user"
)

// RouterConfig collects everything the router needs to assemble the
// HTTP surface.
type RouterConfig struct {
	Cfg        *config.Config
	JWTManager *auth.JWTManager

	UserService         user.Service
	BuildingService     building.Service
	DepartmentService   department.Service
	FacilityTypeService facilitytype.Service
	FacilityService     facility.Service
	BookingService      booking.Service
	AnnouncementService announcement.Service
	FileService         file.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles global middleware (CORS, Logger, rate limiting) and
// registers routes for every module under /v1.
func NewRouter(rc RouterConfig) *gin.Engine {
	if rc.Cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if rc.Cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(rc.Cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware validates the bearer token; adminMiddleware then
	// checks the admin flag against the user record, so a demotion
	// takes effect without waiting for the token to expire.
	authMiddleware := auth.AuthRequired(rc.JWTManager)
	adminMiddleware := RequireAdmin(rc.UserService)

	// Short-lived response cache for the public catalog and
	// availability reads, which dominate traffic around term start.
	cacheStore := cache.New(rc.Cfg.CacheTTL, 10*time.Minute)
	cacheMiddleware := mw.Cache(cacheStore, rc.Cfg.CacheTTL)

	limiter := mw.RateLimiter(rate.Limit(rc.Cfg.RateLimitPerSecond), rc.Cfg.RateLimitBurst)

	authHandler := NewAuthHandler(rc.UserService, rc.JWTManager)
	userHandler := NewUserHandler(rc.UserService)
	buildingHandler := buildingHttp.NewHandler(rc.BuildingService)
	departmentHandler := departmentHttp.NewHandler(rc.DepartmentService)
	facilityTypeHandler := facilitytypeHttp.NewHandler(rc.FacilityTypeService)
	facilityHandler := facilityHttp.NewHandler(rc.FacilityService)
	bookingHandler := bookingHttp.NewHandler(rc.BookingService, rc.UserService)
	announcementHandler := announcementHttp.NewHandler(rc.AnnouncementService)
	fileHandler := fileHttp.NewHandler(rc.FileService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		authGroup := v1.Group("/auth", limiter)
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
		v1.GET("/me", authMiddleware, authHandler.Me)

		users := v1.Group("/users", authMiddleware, adminMiddleware)
		{
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.PATCH("/:id/active", userHandler.SetActive)
		}

		buildingHttp.RegisterRoutes(v1, buildingHandler, authMiddleware, adminMiddleware, cacheMiddleware)
		departmentHttp.RegisterRoutes(v1, departmentHandler, authMiddleware, adminMiddleware)
		facilitytypeHttp.RegisterRoutes(v1, facilityTypeHandler, authMiddleware, adminMiddleware, cacheMiddleware)
		facilityHttp.RegisterRoutes(v1, facilityHandler, authMiddleware, adminMiddleware, cacheMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, limiter)
		bookingHttp.RegisterAvailabilityRoutes(v1, bookingHandler, cacheMiddleware)
		announcementHttp.RegisterRoutes(v1, announcementHandler, authMiddleware, adminMiddleware, cacheMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware, adminMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
