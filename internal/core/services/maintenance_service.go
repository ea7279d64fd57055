package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// tokenPurger deletes refresh tokens past their expiry
type tokenPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// adExpirer deactivates ads whose end date is before today
type adExpirer interface {
	DeactivateExpired(ctx context.Context, today time.Time) (int64, error)
}

// MaintenanceReport is the outcome of one maintenance run
type MaintenanceReport struct {
	TokensPurged   int64
	AdsDeactivated int64
}

// MaintenanceService runs periodic cleanup on a cron schedule
type MaintenanceService struct {
	cron    *cron.Cron
	tokens  tokenPurger
	ads     adExpirer
	timeout time.Duration
}

// NewMaintenanceService creates the scheduler. spec is a standard
// five-field cron expression.
func NewMaintenanceService(spec string, tokens tokenPurger, ads adExpirer) (*MaintenanceService, error) {
	s := &MaintenanceService{
		cron:    cron.New(),
		tokens:  tokens,
		ads:     ads,
		timeout: 5 * time.Minute,
	}

	if _, err := s.cron.AddFunc(spec, s.runScheduled); err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start launches the scheduler in its own goroutine
func (s *MaintenanceService) Start() {
	s.cron.Start()
	log.Println("🚀 MaintenanceService started")
}

// Stop halts the scheduler and waits for a running job to finish
func (s *MaintenanceService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 MaintenanceService stopped")
}

// RunOnce executes every maintenance job synchronously. Both jobs run even
// if the first fails; the first error is returned.
func (s *MaintenanceService) RunOnce(ctx context.Context) (MaintenanceReport, error) {
	var report MaintenanceReport
	var firstErr error

	purged, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		firstErr = fmt.Errorf("purge expired refresh tokens: %w", err)
	}
	report.TokensPurged = purged

	deactivated, err := s.ads.DeactivateExpired(ctx, today())
	if err != nil && firstErr == nil {
		firstErr = fmt.Errorf("deactivate expired job ads: %w", err)
	}
	report.AdsDeactivated = deactivated

	return report, firstErr
}

func (s *MaintenanceService) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report, err := s.RunOnce(ctx)
	if err != nil {
		log.Printf("❌ Maintenance run failed: %v", err)
	}
	log.Printf("🧹 Maintenance: %d expired refresh tokens purged, %d job ads deactivated",
		report.TokensPurged, report.AdsDeactivated)
}
