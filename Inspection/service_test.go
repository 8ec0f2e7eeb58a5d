package Inspection

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"PreStart/Checklist"
	"PreStart/Draft"
	"PreStart/Models"
	"PreStart/Storage"
)

type fakePublisher struct {
	mu     sync.Mutex
	count  int
	failAt map[int]bool
}

func (p *fakePublisher) Upload(ctx context.Context, photo []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count++
	if p.failAt[p.count] {
		return "", errors.New("image host unavailable")
	}
	return fmt.Sprintf("https://i.imgur.com/%d.jpg", p.count), nil
}

type fakeDispatcher struct {
	err  error
	sent []map[string]interface{}
}

func (d *fakeDispatcher) Send(ctx context.Context, params map[string]interface{}) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, params)
	return nil
}

func serviceFixture(t *testing.T) (*Service, *fakePublisher, *fakeDispatcher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Models.Inspection{}, &Models.Workshop{}))

	workshops := Storage.NewGormWorkshopStore(db)
	workshopID, err := workshops.Add(context.Background(), &Models.Workshop{
		Name:  "MF King Engineering Ltd",
		Email: "gino@mfking.co.nz",
	})
	require.NoError(t, err)

	publisher := &fakePublisher{}
	dispatcher := &fakeDispatcher{}
	svc := NewService(Storage.NewGormInspectionStore(db), workshops, publisher, dispatcher, "esposito.gino11@gmail.com")
	return svc, publisher, dispatcher, workshopID
}

func cleanDraft(t *testing.T) *Draft.Draft {
	t.Helper()
	d := Draft.New()
	require.NoError(t, d.SetDriverInfo("Gino Esposito", "ABC123"))
	require.NoError(t, d.BeginChecklist())
	for _, item := range Checklist.Items {
		require.NoError(t, d.Answer(item.ID, Draft.Pass))
	}
	step, err := d.FinishChecklist()
	require.NoError(t, err)
	require.Equal(t, Draft.StepSummary, step)
	return d
}

func damagedDraft(t *testing.T, workshopID string) *Draft.Draft {
	t.Helper()
	d := Draft.New()
	require.NoError(t, d.SetDriverInfo("Gino Esposito", "ABC123"))
	require.NoError(t, d.BeginChecklist())
	for _, item := range Checklist.Items {
		verdict := Draft.Pass
		if item.ID == "brakes" {
			verdict = Draft.Fail
		}
		require.NoError(t, d.Answer(item.ID, verdict))
	}
	require.NoError(t, d.SetNote("brakes", "grinding noise"))
	require.NoError(t, d.Attach("brakes", []byte("photo-one")))
	require.NoError(t, d.Attach("brakes", []byte("photo-two")))
	step, err := d.FinishChecklist()
	require.NoError(t, err)
	require.Equal(t, Draft.StepWorkshop, step)
	require.NoError(t, d.ToggleWorkshop(workshopID))
	require.NoError(t, d.FinishWorkshopSelection())
	return d
}

func TestFinalizeCleanInspectionSkipsReport(t *testing.T) {
	svc, publisher, dispatcher, _ := serviceFixture(t)
	d := cleanDraft(t)

	record, err := svc.Finalize(context.Background(), d)
	require.NoError(t, err)

	assert.Zero(t, publisher.count)
	assert.Empty(t, dispatcher.sent)
	assert.False(t, record.HasDamages)
	assert.Empty(t, record.ReportSummary.FailedItems)
	assert.Equal(t, Draft.StepArchived, d.Step())

	records, err := svc.Inspections.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ABC123", records[0].TruckNumber)
}

func TestFinalizeDamagedInspectionSendsReport(t *testing.T) {
	svc, publisher, dispatcher, workshopID := serviceFixture(t)
	d := damagedDraft(t, workshopID)

	record, err := svc.Finalize(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, 2, publisher.count)
	require.Len(t, dispatcher.sent, 1)
	params := dispatcher.sent[0]
	assert.Equal(t, "gino@mfking.co.nz,esposito.gino11@gmail.com", params["to_email"])
	assert.Contains(t, params["failed_items"], "CRITICAL")
	assert.Contains(t, params["failed_items"], "grinding noise")
	assert.Equal(t, 1, params["total_issues"])

	assert.True(t, record.HasDamages)
	require.Len(t, record.ReportSummary.FailedItems, 1)
	snapshot := record.ReportSummary.FailedItems[0]
	assert.Equal(t, "brakes", snapshot.ItemID)
	assert.Equal(t, 2, snapshot.CapturedPhotos)
	assert.Len(t, snapshot.PhotoURLs, 2)
	assert.Equal(t, "MF King Engineering Ltd", record.ReportSummary.WorkshopNames)

	// Originals are archived alongside the hosted URLs.
	require.Len(t, record.Photos["brakes"], 2)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("photo-one")), record.Photos["brakes"][0])

	assert.Equal(t, Draft.StepArchived, d.Step())
}

func TestFinalizeDispatchFailureCommitsNothing(t *testing.T) {
	svc, _, dispatcher, workshopID := serviceFixture(t)
	dispatcher.err = errors.New("relay rejected the request")
	d := damagedDraft(t, workshopID)

	_, err := svc.Finalize(context.Background(), d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report not sent")

	records, listErr := svc.Inspections.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, records)

	// The draft survives for a retry.
	assert.Equal(t, Draft.StepSummary, d.Step())

	dispatcher.err = nil
	record, err := svc.Finalize(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, record.HasDamages)
	assert.Equal(t, Draft.StepArchived, d.Step())
}

func TestFinalizeProceedsPastFailedUploads(t *testing.T) {
	svc, publisher, dispatcher, workshopID := serviceFixture(t)
	svc.UploadWorkers = 1
	publisher.failAt = map[int]bool{1: true}
	d := damagedDraft(t, workshopID)

	record, err := svc.Finalize(context.Background(), d)
	require.NoError(t, err)

	require.Len(t, dispatcher.sent, 1)
	require.Len(t, record.ReportSummary.FailedItems, 1)
	snapshot := record.ReportSummary.FailedItems[0]
	assert.Equal(t, 2, snapshot.CapturedPhotos)
	assert.Len(t, snapshot.PhotoURLs, 1)
	assert.Contains(t, dispatcher.sent[0]["failed_items"], "(1 failed to upload)")
}

func TestFinalizeRequiresSummaryStep(t *testing.T) {
	svc, _, _, _ := serviceFixture(t)
	d := Draft.New()

	_, err := svc.Finalize(context.Background(), d)
	assert.ErrorIs(t, err, Draft.ErrWrongStep)
}
