package export

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/semla/internal/app"
)

// GSheetExporter periodically dumps stored quiz results to Google
// Sheets, one configured sheet per course. It only ever reads the
// results collection; scoring itself lives outside this platform.
type GSheetExporter struct {
	service   *app.Service
	scheduler *gocron.Scheduler
	sheets    map[string]*sheets.Service
	targets   map[string]app.GSheetConfig
}

func NewGSheetExporter(config *app.Config, service *app.Service) (*GSheetExporter, error) {
	ctx := context.Background()

	e := &GSheetExporter{
		service:   service,
		scheduler: gocron.NewScheduler(time.UTC),
		sheets:    make(map[string]*sheets.Service),
		targets:   config.GSheet,
	}

	for course, cfg := range config.GSheet {
		svc, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath))
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets service for %s: %w", course, err)
		}
		e.sheets[course] = svc

		course := course
		if _, err := e.scheduler.Cron(cfg.Schedule).Do(func() {
			if err := e.Export(course); err != nil {
				logger.Error.Printf("Export for %s failed: %v", course, err)
			}
		}); err != nil {
			return nil, fmt.Errorf("failed to schedule export for %s: %w", course, err)
		}
	}

	e.scheduler.StartAsync()
	return e, nil
}

func (e *GSheetExporter) Stop() {
	e.scheduler.Stop()
}

// Export writes all stored results for one course code to its sheet:
// student id, score, total, percent, submission time.
func (e *GSheetExporter) Export(courseCode string) error {
	cfg, ok := e.targets[courseCode]
	if !ok {
		return fmt.Errorf("no export target for course %s", courseCode)
	}

	snap := e.service.Snapshot()

	courseID := ""
	for _, c := range snap.Courses {
		if c.Code == courseCode {
			courseID = c.ID
			break
		}
	}
	if courseID == "" {
		return fmt.Errorf("no published course with code %s", courseCode)
	}

	values := [][]interface{}{
		{"student", "score", "total", "percent", "submitted"},
	}
	for _, r := range snap.Results {
		if r.CourseID != courseID {
			continue
		}
		percent := 0.0
		if r.Total > 0 {
			percent = 100 * float64(r.Score) / float64(r.Total)
		}
		values = append(values, []interface{}{
			r.StudentID,
			r.Score,
			r.Total,
			fmt.Sprintf("%.1f", percent),
			time.Unix(r.Timestamp, 0).UTC().Format("2006-01-02 15:04:05"),
		})
	}

	writeRange := fmt.Sprintf("%s!A1", cfg.SheetName)
	_, err := e.sheets[courseCode].Spreadsheets.Values.Update(
		cfg.SheetID,
		writeRange,
		&sheets.ValueRange{Values: values},
	).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	logger.Info.Printf("Exported %d result rows for course %s", len(values)-1, courseCode)
	return nil
}
