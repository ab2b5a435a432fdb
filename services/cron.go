package services

import (
	"fmt"
	"time"

	"socially/internal/logger"
	"socially/internal/mockdata"

	"github.com/go-co-op/gocron"
)

const refreshJobTag = "mock-data-refresh"

// CronService periodically regenerates the mock analytics dataset
type CronService struct {
	scheduler *gocron.Scheduler
	exporter  *ExportService
	path      string
	count     int
}

func NewCronService(exporter *ExportService, path string, count int) *CronService {
	s := gocron.NewScheduler(time.UTC)
	s.TagsUnique()

	return &CronService{
		scheduler: s,
		exporter:  exporter,
		path:      path,
		count:     count,
	}
}

// Schedule registers the refresh job on a cron expression
func (c *CronService) Schedule(cronExpr string) error {
	if _, err := c.scheduler.Cron(cronExpr).Tag(refreshJobTag).Do(c.RunOnce); err != nil {
		return fmt.Errorf("schedule mock data refresh %q: %w", cronExpr, err)
	}
	return nil
}

// RunOnce generates a fresh dataset and overwrites the csv file
func (c *CronService) RunOnce() error {
	posts := mockdata.NewGenerator(nil).Generate(c.count)
	if err := c.exporter.Export(c.path, FormatCSV, posts); err != nil {
		logger.Error("Mock data refresh failed", "path", c.path, "error", err)
		return err
	}
	return nil
}

func (c *CronService) Start() {
	logger.Info("Starting mock data refresh cron", "path", c.path, "jobs", len(c.scheduler.Jobs()))
	c.scheduler.StartAsync()
}

func (c *CronService) Stop() {
	logger.Info("Stopping mock data refresh cron")
	c.scheduler.Stop()
}
