package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"

	"seedcare/internal/common/apperror"
	"seedcare/internal/config"
	"seedcare/internal/database"
	"seedcare/internal/features/staff"
	"seedcare/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Data path, assuming the seeder runs from the repository root
const staffPath = "cmd/seed/data/staff.json"

// Seed creates the staff profiles complaints can be assigned to. Existing
// profiles are updated in place so the seeder can be rerun.
func Seed(
	lc fx.Lifecycle,
	staffService staff.StaffService,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				ctx := context.Background()
				logger.Info("Starting staff seeding", zap.String("path", staffPath))

				b, err := os.ReadFile(staffPath)
				if err != nil {
					logger.Error("Failed to read staff seed file", zap.Error(err))
					return
				}
				var profiles []staff.Profile
				if err := json.Unmarshal(b, &profiles); err != nil {
					logger.Error("Failed to parse staff seed file", zap.Error(err))
					return
				}

				created, updated := 0, 0
				for _, p := range profiles {
					_, err := staffService.GetProfile(ctx, p.UserID)
					switch {
					case err == nil:
						update := staff.ProfileUpdate{
							FullName:              &p.FullName,
							Email:                 &p.Email,
							Department:            &p.Department,
							MaxAssignedComplaints: &p.MaxAssignedComplaints,
							IsActive:              &p.IsActive,
						}
						if _, err := staffService.UpdateProfile(ctx, p.UserID, update); err != nil {
							logger.Error("Failed to update staff profile", zap.String("user_id", p.UserID), zap.Error(err))
							continue
						}
						updated++
					case errors.Is(err, apperror.ErrNotFound):
						if err := staffService.CreateProfile(ctx, &p); err != nil {
							logger.Error("Failed to create staff profile", zap.String("user_id", p.UserID), zap.Error(err))
							continue
						}
						created++
					default:
						logger.Error("Failed to look up staff profile", zap.String("user_id", p.UserID), zap.Error(err))
					}
				}

				logger.Info("Seeding complete", zap.Int("created", created), zap.Int("updated", updated))
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			staff.NewStaffRepository,
			staff.NewStaffService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	<-app.Done()
}
