package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "seedcare/internal/common/api"
	"seedcare/internal/config"
	"seedcare/internal/database"
	"seedcare/internal/features/analytics"
	"seedcare/internal/features/assignment"
	"seedcare/internal/features/complaint"
	"seedcare/internal/features/digest"
	"seedcare/internal/features/notification"
	"seedcare/internal/features/observation"
	"seedcare/internal/features/staff"
	"seedcare/internal/features/system"
	"seedcare/internal/logger"
	"seedcare/internal/middleware"
	"seedcare/pkg/utils"

	_ "seedcare/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.CORSMiddleware(cfg))
	app.Use(middleware.MetricsMiddleware())

	return app
}

// AsRoute tags the constructor so Fx adds it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes calls Setup() on every route in the "routes" group.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, log *zap.Logger) {
	for _, route := range routes {
		route.Setup(app)
		log.Debug("Route registered", zap.String("api", fmt.Sprintf("%T", route)))
	}
	log.Info("All routes registered", zap.Int("count", len(routes)))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer starts Fiber in a goroutine and shuts it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

type indexParams struct {
	fx.In

	Complaints   complaint.ComplaintRepository
	History      complaint.HistoryRepository
	Responses    complaint.ResponseRepository
	Staff        staff.StaffRepository
	Assignments  assignment.AssignmentRepository
	Observations observation.ObservationRepository
	Notification notification.NotificationRepository
	Snapshots    digest.SnapshotRepository
}

// InitializeIndexes ensures the unique and lookup indexes every repository relies on
func InitializeIndexes(lc fx.Lifecycle, p indexParams, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var ensurers []database.IndexEnsurer
			for _, repo := range []any{p.Complaints, p.History, p.Responses, p.Staff, p.Assignments, p.Observations, p.Notification, p.Snapshots} {
				if e, ok := repo.(database.IndexEnsurer); ok {
					ensurers = append(ensurers, e)
				}
			}
			go database.EnsureIndexes(context.Background(), log, ensurers...)
			return nil
		},
	})
}

// StartDigest schedules the analytics digest for the lifetime of the app
func StartDigest(lc fx.Lifecycle, svc digest.DigestService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Start()
		},
		OnStop: func(ctx context.Context) error {
			done := make(chan struct{})
			go func() {
				svc.Stop()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

// @title           SeedCare Complaint API
// @version         1.0
// @description     Seed complaint intake, assignment, observation and analytics.

// @contact.name    API Support

// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Repositories
			complaint.NewComplaintRepository,
			complaint.NewHistoryRepository,
			complaint.NewResponseRepository,
			staff.NewStaffRepository,
			assignment.NewAssignmentRepository,
			observation.NewObservationRepository,
			notification.NewNotificationRepository,
			digest.NewSnapshotRepository,

			// Services
			complaint.NewNumberGenerator,
			notification.NewDispatcherFromConfig,
			notification.NewNotificationService,
			staff.NewStaffService,
			complaint.NewComplaintService,
			assignment.NewAssignmentService,
			observation.NewObservationService,
			analytics.NewAnalyticsService,
			digest.NewDigestService,

			// Interface adapters to break circular dependencies
			func(d *notification.Dispatcher) notification.Notifier { return d },
			func(s notification.NotificationService) assignment.InAppNotifier { return s },
			func(s assignment.AssignmentService) complaint.AssignmentCloser { return s },
			func(s staff.StaffService) complaint.StaffMetricsReporter { return s },

			// Controllers
			complaint.NewComplaintController,
			staff.NewStaffController,
			assignment.NewAssignmentController,
			observation.NewObservationController,
			notification.NewNotificationController,
			analytics.NewAnalyticsController,
			digest.NewDigestController,

			// API Routes
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(complaint.NewComplaintApi),
			AsRoute(staff.NewStaffApi),
			AsRoute(assignment.NewAssignmentApi),
			AsRoute(observation.NewObservationApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(analytics.NewAnalyticsApi),
			AsRoute(digest.NewDigestApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			RegisterAllRoutesWithAnnotation,
			InitializeIndexes,
			StartDigest,
			StartServer,
		),
		fx.StopTimeout(30*time.Second),
	)

	app.Run()
}
