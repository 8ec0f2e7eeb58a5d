package Inspection

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"PreStart/Draft"
	"PreStart/Models"
	"PreStart/Report"
	"PreStart/Storage"
)

// Publisher uploads one photo and returns its public URL.
type Publisher interface {
	Upload(ctx context.Context, photo []byte) (string, error)
}

// Dispatcher sends one compiled report to the email relay.
type Dispatcher interface {
	Send(ctx context.Context, templateParams map[string]interface{}) error
}

// Service runs the finalize flow: upload photos, compile the report, dispatch
// it, then commit the record. The order is strict per flow. A failed dispatch
// commits nothing and leaves the draft live so the user can retry.
type Service struct {
	Inspections       Storage.InspectionStore
	Workshops         Storage.WorkshopStore
	Publisher         Publisher
	Dispatcher        Dispatcher
	FleetManagerEmail string
	UploadWorkers     int
}

func NewService(inspections Storage.InspectionStore, workshops Storage.WorkshopStore, publisher Publisher, dispatcher Dispatcher, fleetManagerEmail string) *Service {
	return &Service{
		Inspections:       inspections,
		Workshops:         workshops,
		Publisher:         publisher,
		Dispatcher:        dispatcher,
		FleetManagerEmail: fleetManagerEmail,
		UploadWorkers:     4,
	}
}

// Finalize freezes a summarized draft into an archived record. With damages it
// first uploads the photos and dispatches the damage report; without damages it
// archives immediately, no upload and no email.
func (s *Service) Finalize(ctx context.Context, d *Draft.Draft) (*Models.Inspection, error) {
	view := d.Snapshot()
	if view.Step != Draft.StepSummary {
		return nil, Draft.ErrWrongStep
	}

	var compiled Report.Compiled
	if view.HasDamages {
		all, err := s.Workshops.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not resolve workshops: %v", err)
		}
		selected := filterSelected(all, view.SelectedWorkshops)
		uploaded := s.uploadAll(ctx, view)
		compiled = Report.Compile(view, selected, s.FleetManagerEmail, uploaded)
		if err := s.Dispatcher.Send(ctx, compiled.TemplateParams(view, s.FleetManagerEmail)); err != nil {
			return nil, fmt.Errorf("report not sent: %v", err)
		}
	} else {
		compiled = Report.Compile(view, nil, s.FleetManagerEmail, nil)
	}

	record := buildRecord(view, compiled)
	if _, err := s.Inspections.Add(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to archive inspection: %v", err)
	}
	d.MarkArchived()
	return record, nil
}

// uploadAll pushes every failed item's photos through the publisher in a
// bounded parallel group. Per-photo failures are logged and swallowed; the
// report proceeds with whatever subset succeeded, holding capture order for
// the survivors.
func (s *Service) uploadAll(ctx context.Context, view Draft.View) Report.UploadedPhotos {
	workers := s.UploadWorkers
	if workers <= 0 {
		workers = 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	slots := make(map[string][]string, len(view.Attachments))
	for itemID, photos := range view.Attachments {
		if view.Answers[itemID] != Draft.Fail {
			continue
		}
		urls := make([]string, len(photos))
		slots[itemID] = urls
		for i, photo := range photos {
			i, photo, itemID := i, photo, itemID
			g.Go(func() error {
				url, err := s.Publisher.Upload(gctx, photo)
				if err != nil {
					log.Printf("photo upload failed for %s: %v", itemID, err)
					return nil
				}
				urls[i] = url
				return nil
			})
		}
	}
	_ = g.Wait()

	uploaded := make(Report.UploadedPhotos, len(slots))
	for itemID, urls := range slots {
		kept := make([]string, 0, len(urls))
		for _, url := range urls {
			if url != "" {
				kept = append(kept, url)
			}
		}
		uploaded[itemID] = kept
	}
	return uploaded
}

func filterSelected(all []Models.Workshop, selectedIDs []string) []Models.Workshop {
	wanted := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		wanted[id] = true
	}
	selected := make([]Models.Workshop, 0, len(selectedIDs))
	for _, w := range all {
		if wanted[w.DocID] {
			selected = append(selected, w)
		}
	}
	return selected
}

func buildRecord(view Draft.View, compiled Report.Compiled) *Models.Inspection {
	photos := make(map[string][]string, len(view.Attachments))
	for itemID, blobs := range view.Attachments {
		encoded := make([]string, 0, len(blobs))
		for _, blob := range blobs {
			encoded = append(encoded, base64.StdEncoding.EncodeToString(blob))
		}
		photos[itemID] = encoded
	}

	failed := make([]Models.FailedItemSnapshot, 0, len(compiled.FailedItems))
	for _, fi := range compiled.FailedItems {
		failed = append(failed, Models.FailedItemSnapshot{
			ItemID:         fi.Item.ID,
			Category:       fi.Item.Category,
			Question:       fi.Item.Question,
			Critical:       fi.Item.Critical,
			Note:           fi.Note,
			CapturedPhotos: fi.CapturedPhotos,
			PhotoURLs:      fi.PhotoURLs,
		})
	}

	return &Models.Inspection{
		Driver:            view.Driver,
		TruckNumber:       view.TruckNumber,
		Date:              view.Date,
		Answers:           view.Answers,
		Notes:             view.Notes,
		Photos:            photos,
		SelectedWorkshops: view.SelectedWorkshops,
		HasDamages:        view.HasDamages,
		ReportSummary: Models.ReportSummary{
			FailedItems:    failed,
			WorkshopNames:  compiled.WorkshopNames,
			WorkshopEmails: compiled.WorkshopEmails,
		},
	}
}
