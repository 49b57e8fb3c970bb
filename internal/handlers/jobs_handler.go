package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/services"
)

// JobsHandler triggers background maintenance on demand (admin)
type JobsHandler struct {
	sweeper         *services.SweeperService
	scheduleService *services.ScheduleService
	daysAhead       int
	logger          *logrus.Logger
}

// NewJobsHandler creates a new JobsHandler
func NewJobsHandler(sweeper *services.SweeperService, scheduleService *services.ScheduleService, daysAhead int, logger *logrus.Logger) *JobsHandler {
	return &JobsHandler{
		sweeper:         sweeper,
		scheduleService: scheduleService,
		daysAhead:       daysAhead,
		logger:          logger,
	}
}

// Sweep runs the booking auto-complete sweep now
// @Summary Run booking sweep
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/jobs/sweep [post]
func (h *JobsHandler) Sweep(c *gin.Context) {
	completed, ran, err := h.sweeper.Sweep(time.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ran": ran, "completed": completed})
}

// GenerateSchedules materializes schedules from recurring templates now
// @Summary Run schedule generation
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/jobs/generate-schedules [post]
func (h *JobsHandler) GenerateSchedules(c *gin.Context) {
	generated, err := h.scheduleService.GenerateSchedules(time.Now(), h.daysAhead)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"generated": generated})
}
