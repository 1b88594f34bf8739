package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/hanbot/internal/database"
	"github.com/go-co-op/gocron"
)

// Default notification window in local hours
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
}

// Notifier interface for sending due-review reminders
type Notifier interface {
	SendReminder(count int) error
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly check for items that have come due
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder counts due reviews and notifies the learner when
// the current hour falls inside the notification window
func (s *Scheduler) checkAndSendReminder() {
	currentHour := time.Now().Hour()

	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminder",
			currentHour, startHour, endHour)
		return
	}

	recordRepo := database.NewReviewRecordRepository()
	count, err := recordRepo.CountDue(time.Now())
	if err != nil {
		log.Printf("Error counting due reviews: %v", err)
		return
	}

	if count > 0 {
		if err := s.notifier.SendReminder(count); err != nil {
			log.Printf("Error sending reminder: %v", err)
		}
	}
}

// RunManualCheck forces a due check regardless of the notification window
func (s *Scheduler) RunManualCheck() error {
	recordRepo := database.NewReviewRecordRepository()
	count, err := recordRepo.CountDue(time.Now())
	if err != nil {
		return err
	}

	if count > 0 {
		return s.notifier.SendReminder(count)
	}
	return nil
}

func envHour(name string, fallback int) int {
	if value := os.Getenv(name); value != "" {
		if h, err := strconv.Atoi(value); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
