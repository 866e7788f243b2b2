package main

import (
	"context"
	"time"

	bookingsrepo "bookit/internal/bookings/repository"
	facilitiesrepo "bookit/internal/facilities/repository"
	usersrepo "bookit/internal/users/repository"
	"bookit/pkg/config"
	"bookit/pkg/model"
)

const ServiceName = "seed"

// Seeds a development database with a few users, facilities and bookings.
// Collections that already hold data are left alone so reruns are safe.
func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := usersrepo.NewMongoUserRepository(cfg)
	facilityRepo := facilitiesrepo.NewMongoFacilityRepository(cfg)
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)

	users := seedUsers(ctx, cfg, userRepo)
	facilities := seedFacilities(ctx, cfg, facilityRepo)
	seedBookings(ctx, cfg, bookingRepo, users, facilities)

	cfg.Log.Info("Seeding completed", "database", cfg.MongoDatabaseName)
}

func seedUsers(ctx context.Context, cfg *config.Config, repo usersrepo.UserRepository) []*model.User {
	users := []*model.User{
		{Email: "alice@example.edu", Name: "Alice Johnson", Role: model.RoleStudent},
		{Email: "bob@example.edu", Name: "Bob Martinez", Role: model.RoleStaff},
		{Email: "carol@example.edu", Name: "Carol Chen", Role: model.RoleAdmin},
	}

	count, err := repo.Count(ctx)
	if err != nil {
		cfg.Log.Fatal("Failed to count users", "error", err)
	}
	if count > 0 {
		cfg.Log.Info("Users collection already seeded", "count", count)
		return nil
	}

	for _, u := range users {
		if err := repo.Create(ctx, u); err != nil {
			cfg.Log.Fatal("Failed to seed user", "email", u.Email, "error", err)
		}
		cfg.Log.Info("Seeded user", "id", u.ID, "email", u.Email, "role", u.Role)
	}
	return users
}

func seedFacilities(ctx context.Context, cfg *config.Config, repo facilitiesrepo.FacilityRepository) []*model.Facility {
	available := true
	closed := false
	facilities := []*model.Facility{
		{Name: "Basketball Court", Location: "Sports Hall, Ground Floor", Capacity: 20, IsAvailable: &available},
		{Name: "Conference Room A", Location: "Main Building, Floor 3", Capacity: 12, IsAvailable: &available},
		{Name: "Music Studio", Location: "Arts Wing, Floor 1", Capacity: 6, IsAvailable: &available},
		{Name: "Swimming Pool", Location: "Sports Hall, Basement", Capacity: 30, IsAvailable: &closed},
	}

	count, err := repo.Count(ctx)
	if err != nil {
		cfg.Log.Fatal("Failed to count facilities", "error", err)
	}
	if count > 0 {
		cfg.Log.Info("Facilities collection already seeded", "count", count)
		return nil
	}

	now := time.Now().UTC()
	for _, f := range facilities {
		f.CreatedAt = now
		if err := repo.Create(ctx, f); err != nil {
			cfg.Log.Fatal("Failed to seed facility", "name", f.Name, "error", err)
		}
		cfg.Log.Info("Seeded facility", "id", f.ID, "name", f.Name)
	}
	return facilities
}

func seedBookings(ctx context.Context, cfg *config.Config, repo bookingsrepo.BookingRepository, users []*model.User, facilities []*model.Facility) {
	// Skip when either prerequisite collection was already populated; the
	// seeded ids are unknown in that case.
	if len(users) < 2 || len(facilities) < 2 {
		cfg.Log.Info("Skipping booking seed, users or facilities were not freshly seeded")
		return
	}

	count, err := repo.Count(ctx)
	if err != nil {
		cfg.Log.Fatal("Failed to count bookings", "error", err)
	}
	if count > 0 {
		cfg.Log.Info("Bookings collection already seeded", "count", count)
		return
	}

	now := time.Now().UTC()
	nextWeek := now.AddDate(0, 0, 7).Format(model.DateLayout)
	bookings := []*model.Booking{
		{
			UserID:     users[0].ID,
			FacilityID: facilities[0].ID,
			Date:       nextWeek,
			StartTime:  "09:00",
			EndTime:    "10:30",
			Status:     model.StatusConfirmed,
			Purpose:    "Morning practice",
			CreatedAt:  now,
		},
		{
			UserID:     users[1].ID,
			FacilityID: facilities[1].ID,
			Date:       nextWeek,
			StartTime:  "14:00",
			EndTime:    "15:00",
			Status:     model.StatusConfirmed,
			Purpose:    "Department sync",
			CreatedAt:  now,
		},
	}

	for _, b := range bookings {
		if err := repo.Create(ctx, b); err != nil {
			cfg.Log.Fatal("Failed to seed booking", "facility_id", b.FacilityID, "error", err)
		}
		cfg.Log.Info("Seeded booking", "id", b.ID, "facility_id", b.FacilityID, "date", b.Date)
	}
}
