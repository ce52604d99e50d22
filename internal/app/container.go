package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/facility-booking-backend/internal/announcement"
	"github.com/campuskit/facility-booking-backend/internal/api"
	"github.com/campuskit/facility-booking-backend/internal/auth"
	"github.com/campuskit/facility-booking-backend/internal/booking"
	"github.com/campuskit/facility-booking-backend/internal/building"
	"github.com/campuskit/facility-booking-backend/internal/config"
	"github.com/campuskit/facility-booking-backend/internal/department"
	"github.com/campuskit/facility-booking-backend/internal/facility"
	"github.com/campuskit/facility-booking-backend/internal/facilitytype"
	"github.com/campuskit/facility-booking-backend/internal/file"
	"github.com/campuskit/facility-booking-backend/internal/pkg/storage"
	"github.com/campuskit/facility-booking-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher)

	// Building Module
	buildingRepo := building.NewPgxRepository(pool)
	buildingService := building.NewService(buildingRepo)

	// Department Module
	deptRepo := department.NewPgxRepository(pool)
	deptService := department.NewService(deptRepo, userService)

	// FacilityType Module
	typeRepo := facilitytype.NewPgxRepository(pool)
	typeService := facilitytype.NewService(typeRepo)

	// Facility Module
	facilityRepo := facility.NewPgxRepository(pool)
	facilityService := facility.NewService(facilityRepo, buildingService, deptService, typeService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(
		bookingRepo,
		facilityService,
		buildingService,
		deptService,
		userService,
		cfg.CheckInEarlyWindow,
		cfg.CheckInGracePeriod,
	)

	// Announcement Module
	annRepo := announcement.NewPgxRepository(pool)
	annService := announcement.NewService(annRepo, facilityService)

	// File Module
	fileRepo := file.NewPgxRepository(pool)
	fileService := file.NewService(fileRepo, store)

	// Router
	router := api.NewRouter(api.RouterConfig{
		Cfg:                 cfg,
		JWTManager:          jwtManager,
		UserService:         userService,
		BuildingService:     buildingService,
		DepartmentService:   deptService,
		FacilityTypeService: typeService,
		FacilityService:     facilityService,
		BookingService:      bookingService,
		AnnouncementService: annService,
		FileService:         fileService,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		BookingService: bookingService,
	}, nil
}
