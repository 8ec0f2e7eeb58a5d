package CronJobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"PreStart/Inspection"
	"PreStart/Storage"
)

// DigestMailer sends the fleet manager a daily summary of completed
// inspections through the same email relay the damage reports use.
type DigestMailer struct {
	cronScheduler     *cron.Cron
	inspections       Storage.InspectionStore
	dispatcher        Inspection.Dispatcher
	fleetManagerEmail string
	jobID             cron.EntryID
}

// NewDigestMailer creates a digest mailer with the given dependencies.
func NewDigestMailer(inspections Storage.InspectionStore, dispatcher Inspection.Dispatcher, fleetManagerEmail string) *DigestMailer {
	return &DigestMailer{
		cronScheduler:     cron.New(),
		inspections:       inspections,
		dispatcher:        dispatcher,
		fleetManagerEmail: fleetManagerEmail,
	}
}

// Start schedules the digest for 18:00 every day.
func (m *DigestMailer) Start() error {
	var err error
	m.jobID, err = m.cronScheduler.AddFunc("0 18 * * *", func() {
		log.Println("Running scheduled daily inspection digest")
		if err := m.SendDigest(context.Background()); err != nil {
			log.Printf("Daily digest failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}
	m.cronScheduler.Start()
	log.Println("Inspection digest scheduler started - will run daily at 6:00 PM")
	return nil
}

// Stop terminates the scheduler.
func (m *DigestMailer) Stop() {
	if m.cronScheduler != nil {
		m.cronScheduler.Stop()
		log.Println("Inspection digest scheduler stopped")
	}
}

// SendDigest compiles today's numbers and mails them to the fleet manager.
// Days with no inspections send nothing.
func (m *DigestMailer) SendDigest(ctx context.Context) error {
	records, err := m.inspections.List(ctx)
	if err != nil {
		return fmt.Errorf("could not load inspections: %v", err)
	}

	today := time.Now().Format("2006-01-02")
	total, damaged, critical := 0, 0, 0
	trucks := make(map[string]bool)
	for _, record := range records {
		if record.Date != today {
			continue
		}
		total++
		trucks[record.TruckNumber] = true
		if record.HasDamages {
			damaged++
		}
		for _, fi := range record.ReportSummary.FailedItems {
			if fi.Critical {
				critical++
			}
		}
	}
	if total == 0 {
		log.Println("No inspections today, skipping digest")
		return nil
	}

	body := fmt.Sprintf(
		"DAILY PRE-START INSPECTION DIGEST\n\nDate: %s\nInspections completed: %d\nVehicles inspected: %d\nInspections with damages: %d\nCritical issues reported: %d\n\n---\nThis is an automated digest from the MF King Vehicle Inspection System.",
		today, total, len(trucks), damaged, critical)

	return m.dispatcher.Send(ctx, map[string]interface{}{
		"to_email":            m.fleetManagerEmail,
		"subject":             fmt.Sprintf("Daily Inspection Digest - %s", today),
		"driver_name":         "Fleet System",
		"truck_number":        fmt.Sprintf("%d vehicles", len(trucks)),
		"inspection_date":     today,
		"workshop_name":       "",
		"failed_items":        body,
		"photo_gallery":       "",
		"total_issues":        damaged,
		"critical_issues":     critical,
		"fleet_manager_email": m.fleetManagerEmail,
	})
}
