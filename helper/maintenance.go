package helper

import (
	"log"
	"space_manager/database"
	"space_manager/model"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var maintenanceScheduler gocron.Scheduler

// CleanupExpiredResetTokens removes password reset tokens past their
// expiry.
func CleanupExpiredResetTokens() {
	result := database.DB.
		Where("expires_at < ?", time.Now()).
		Delete(&model.PasswordResetToken{})

	if result.Error != nil {
		log.Printf("reset token cleanup failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("removed %d expired password reset tokens", result.RowsAffected)
	}
}

// StartMaintenanceScheduler runs housekeeping once a day, shortly after
// midnight.
func StartMaintenanceScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	maintenanceScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 10, 0),
			),
		),
		gocron.NewTask(CleanupExpiredResetTokens),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Maintenance scheduler started (daily)")
}

func StopMaintenanceScheduler() {
	if maintenanceScheduler != nil {
		if err := maintenanceScheduler.Shutdown(); err != nil {
			log.Printf("maintenance scheduler shutdown: %v", err)
		}
	}
}
