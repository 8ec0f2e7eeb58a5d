package Storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"PreStart/Models"
)

// The Firestore adapters back the stores with the cloud document database. Ids
// are Firestore document ids; Subscribe rides the native snapshot listener,
// which delivers the current result set first and then every change.

// NewFirestoreClient initializes the Firebase app from a service account key
// file and returns its Firestore client.
func NewFirestoreClient(ctx context.Context, credentialsFile string) (*firestore.Client, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %v", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %v", err)
	}
	log.Println("Firestore initialized successfully")
	return client, nil
}

// FirestoreInspectionStore persists finalized inspections in the cloud store.
type FirestoreInspectionStore struct {
	Client *firestore.Client
}

func NewFirestoreInspectionStore(client *firestore.Client) *FirestoreInspectionStore {
	return &FirestoreInspectionStore{Client: client}
}

func (s *FirestoreInspectionStore) Add(ctx context.Context, record *Models.Inspection) (string, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	ref, _, err := s.Client.Collection(InspectionsCollection).Add(ctx, record)
	if err != nil {
		return "", fmt.Errorf("error saving inspection: %v", err)
	}
	record.DocID = ref.ID
	return ref.ID, nil
}

func (s *FirestoreInspectionStore) List(ctx context.Context) ([]Models.Inspection, error) {
	iter := s.Client.Collection(InspectionsCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var records []Models.Inspection
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error loading inspections: %v", err)
		}
		var record Models.Inspection
		if err := doc.DataTo(&record); err != nil {
			return nil, fmt.Errorf("error decoding inspection %s: %v", doc.Ref.ID, err)
		}
		record.DocID = doc.Ref.ID
		records = append(records, record)
	}
	return records, nil
}

func (s *FirestoreInspectionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Client.Collection(InspectionsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("error deleting inspection %s: %v", id, err)
	}
	return nil
}

func (s *FirestoreInspectionStore) Subscribe(fn func([]Models.Inspection)) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	snaps := s.Client.Collection(InspectionsCollection).
		OrderBy("createdAt", firestore.Desc).
		Snapshots(ctx)
	go func() {
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if ctx.Err() == nil {
					log.Println("inspection listener stopped:", err)
				}
				return
			}
			records := make([]Models.Inspection, 0, qs.Size)
			docs := qs.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Println("inspection snapshot decode stopped:", err)
					break
				}
				var record Models.Inspection
				if err := doc.DataTo(&record); err != nil {
					log.Printf("skipping undecodable inspection %s: %v", doc.Ref.ID, err)
					continue
				}
				record.DocID = doc.Ref.ID
				records = append(records, record)
			}
			fn(records)
		}
	}()
	return cancel, nil
}

// FirestoreDriverStore persists the driver roster in the cloud store.
type FirestoreDriverStore struct {
	Client *firestore.Client
}

func NewFirestoreDriverStore(client *firestore.Client) *FirestoreDriverStore {
	return &FirestoreDriverStore{Client: client}
}

func (s *FirestoreDriverStore) Add(ctx context.Context, driver *Models.Driver) (string, error) {
	if driver.CreatedAt.IsZero() {
		driver.CreatedAt = time.Now()
	}
	ref, _, err := s.Client.Collection(DriversCollection).Add(ctx, driver)
	if err != nil {
		return "", fmt.Errorf("error saving driver: %v", err)
	}
	driver.DocID = ref.ID
	return ref.ID, nil
}

func (s *FirestoreDriverStore) List(ctx context.Context) ([]Models.Driver, error) {
	iter := s.Client.Collection(DriversCollection).Documents(ctx)
	defer iter.Stop()

	var drivers []Models.Driver
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error loading drivers: %v", err)
		}
		var driver Models.Driver
		if err := doc.DataTo(&driver); err != nil {
			return nil, fmt.Errorf("error decoding driver %s: %v", doc.Ref.ID, err)
		}
		driver.DocID = doc.Ref.ID
		drivers = append(drivers, driver)
	}
	return drivers, nil
}

// Delete refuses to remove the last driver. The size check is a read before the
// delete, matching the original client-side guard; there is no cross-writer
// transaction.
func (s *FirestoreDriverStore) Delete(ctx context.Context, id string) error {
	drivers, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(drivers) <= 1 {
		return ErrLastItem
	}
	if _, err := s.Client.Collection(DriversCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("error deleting driver %s: %v", id, err)
	}
	return nil
}

func (s *FirestoreDriverStore) Subscribe(fn func([]Models.Driver)) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	snaps := s.Client.Collection(DriversCollection).Snapshots(ctx)
	go func() {
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if ctx.Err() == nil {
					log.Println("driver listener stopped:", err)
				}
				return
			}
			drivers := make([]Models.Driver, 0, qs.Size)
			docs := qs.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Println("driver snapshot decode stopped:", err)
					break
				}
				var driver Models.Driver
				if err := doc.DataTo(&driver); err != nil {
					log.Printf("skipping undecodable driver %s: %v", doc.Ref.ID, err)
					continue
				}
				driver.DocID = doc.Ref.ID
				drivers = append(drivers, driver)
			}
			fn(drivers)
		}
	}()
	return cancel, nil
}

// FirestoreWorkshopStore persists the workshop directory in the cloud store.
type FirestoreWorkshopStore struct {
	Client *firestore.Client
}

func NewFirestoreWorkshopStore(client *firestore.Client) *FirestoreWorkshopStore {
	return &FirestoreWorkshopStore{Client: client}
}

func (s *FirestoreWorkshopStore) Add(ctx context.Context, workshop *Models.Workshop) (string, error) {
	now := time.Now()
	if workshop.CreatedAt.IsZero() {
		workshop.CreatedAt = now
	}
	workshop.UpdatedAt = now
	ref, _, err := s.Client.Collection(WorkshopsCollection).Add(ctx, workshop)
	if err != nil {
		return "", fmt.Errorf("error saving workshop: %v", err)
	}
	workshop.DocID = ref.ID
	return ref.ID, nil
}

func (s *FirestoreWorkshopStore) List(ctx context.Context) ([]Models.Workshop, error) {
	iter := s.Client.Collection(WorkshopsCollection).Documents(ctx)
	defer iter.Stop()

	var workshops []Models.Workshop
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error loading workshops: %v", err)
		}
		var workshop Models.Workshop
		if err := doc.DataTo(&workshop); err != nil {
			return nil, fmt.Errorf("error decoding workshop %s: %v", doc.Ref.ID, err)
		}
		workshop.DocID = doc.Ref.ID
		workshops = append(workshops, workshop)
	}
	return workshops, nil
}

func (s *FirestoreWorkshopStore) Update(ctx context.Context, id, name, email string) error {
	_, err := s.Client.Collection(WorkshopsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "name", Value: name},
		{Path: "email", Value: email},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return fmt.Errorf("error updating workshop %s: %v", id, err)
	}
	return nil
}

// Delete refuses to remove the last workshop, same read-then-delete guard as
// the driver store.
func (s *FirestoreWorkshopStore) Delete(ctx context.Context, id string) error {
	workshops, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(workshops) <= 1 {
		return ErrLastItem
	}
	if _, err := s.Client.Collection(WorkshopsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("error deleting workshop %s: %v", id, err)
	}
	return nil
}

func (s *FirestoreWorkshopStore) Subscribe(fn func([]Models.Workshop)) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	snaps := s.Client.Collection(WorkshopsCollection).Snapshots(ctx)
	go func() {
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if ctx.Err() == nil {
					log.Println("workshop listener stopped:", err)
				}
				return
			}
			workshops := make([]Models.Workshop, 0, qs.Size)
			docs := qs.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Println("workshop snapshot decode stopped:", err)
					break
				}
				var workshop Models.Workshop
				if err := doc.DataTo(&workshop); err != nil {
					log.Printf("skipping undecodable workshop %s: %v", doc.Ref.ID, err)
					continue
				}
				workshop.DocID = doc.Ref.ID
				workshops = append(workshops, workshop)
			}
			fn(workshops)
		}
	}()
	return cancel, nil
}
