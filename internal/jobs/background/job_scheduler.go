package background

import (
	"context"
	"log"
	"time"

	"medstock/internal/analytics"
	"medstock/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic maintenance work: analytics refresh and
// the low-stock/expiry alert scans.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.AnalyticsService
	alertSvc     *jobs.StockAlertService
	registered   map[string]gocron.Job
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(analyticsSvc *analytics.AnalyticsService, alertSvc *jobs.StockAlertService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		alertSvc:     alertSvc,
		registered:   make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Analytics refresh - every 5 minutes
	analyticsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshAnalytics, context.Background()),
		gocron.WithName("analytics-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create analytics job: %v", err)
	} else {
		js.registered["analytics"] = analyticsJob
	}

	// Stock and expiry alerts - every 30 minutes
	alertsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.scanAlerts, context.Background()),
		gocron.WithName("stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stock alerts job: %v", err)
	} else {
		js.registered["stock-alerts"] = alertsJob
	}

	log.Printf("Registered %d background jobs", len(js.registered))
}

func (js *JobScheduler) refreshAnalytics(ctx context.Context) error {
	log.Printf("Starting analytics refresh")
	if _, err := js.analyticsSvc.Refresh(ctx); err != nil {
		log.Printf("Failed to refresh analytics: %v", err)
		return err
	}
	log.Printf("Completed analytics refresh")
	return nil
}

func (js *JobScheduler) scanAlerts(ctx context.Context) error {
	log.Printf("Starting stock alert scan")
	js.alertSvc.LogAlerts(ctx)
	return nil
}
