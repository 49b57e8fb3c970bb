package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/config"
)

// CronService manages scheduled background jobs
type CronService struct {
	cron        *cron.Cron
	sweeper     *SweeperService
	scheduleSvc *ScheduleService
	cfg         config.JobsConfig
	logger      *logrus.Logger
}

// NewCronService creates a new CronService
func NewCronService(sweeper *SweeperService, scheduleSvc *ScheduleService, cfg config.JobsConfig, logger *logrus.Logger) *CronService {
	// Seconds precision, cron format: second minute hour day month weekday
	c := cron.New(cron.WithSeconds())

	return &CronService{
		cron:        c,
		sweeper:     sweeper,
		scheduleSvc: scheduleSvc,
		cfg:         cfg,
		logger:      logger,
	}
}

// Start registers and starts all background jobs.
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.cfg.SweepCronSpec, s.sweeper.SweepJob)
	if err != nil {
		return fmt.Errorf("failed to schedule booking sweep job: %w", err)
	}

	_, err = s.cron.AddFunc(s.cfg.GenerateCronSpec, s.generateSchedulesJob)
	if err != nil {
		return fmt.Errorf("failed to schedule generation job: %w", err)
	}

	s.cron.Start()
	s.logger.WithFields(logrus.Fields{
		"sweep_spec":    s.cfg.SweepCronSpec,
		"generate_spec": s.cfg.GenerateCronSpec,
	}).Info("Cron service started")

	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

func (s *CronService) generateSchedulesJob() {
	start := time.Now()
	generated, err := s.scheduleSvc.GenerateSchedules(time.Now(), s.cfg.GenerationDaysAhead)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Schedule generation job failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"generated": generated,
		"duration":  time.Since(start).String(),
	}).Info("Schedule generation job finished")
}

// RunGenerationNow triggers the generation job outside its schedule,
// used on startup so a fresh deployment has bookable schedules.
func (s *CronService) RunGenerationNow() {
	go s.generateSchedulesJob()
}
