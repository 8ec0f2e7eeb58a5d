package Storage

import (
	"context"
	"errors"
	"log"
	"strconv"

	"gorm.io/gorm"

	"PreStart/Models"
)

// The GORM adapters back the stores with the embedded SQLite database:
// auto-increment keys, secondary indexes on date and truck number, and a
// reload-after-write fan-out to subscribers.

func parseRowID(id string) (uint, error) {
	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return uint(v), nil
}

// GormInspectionStore persists finalized inspections in SQLite.
type GormInspectionStore struct {
	DB *gorm.DB
	n  notifier[Models.Inspection]
}

func NewGormInspectionStore(db *gorm.DB) *GormInspectionStore {
	return &GormInspectionStore{DB: db}
}

func (s *GormInspectionStore) Add(ctx context.Context, record *Models.Inspection) (string, error) {
	if err := s.DB.WithContext(ctx).Create(record).Error; err != nil {
		return "", err
	}
	record.DocID = strconv.FormatUint(uint64(record.ID), 10)
	s.broadcast()
	return record.DocID, nil
}

func (s *GormInspectionStore) List(ctx context.Context) ([]Models.Inspection, error) {
	var records []Models.Inspection
	if err := s.DB.WithContext(ctx).Order("created_at desc").Find(&records).Error; err != nil {
		return nil, err
	}
	for i := range records {
		records[i].DocID = strconv.FormatUint(uint64(records[i].ID), 10)
	}
	return records, nil
}

func (s *GormInspectionStore) Delete(ctx context.Context, id string) error {
	rowID, err := parseRowID(id)
	if err != nil {
		return err
	}
	result := s.DB.WithContext(ctx).Delete(&Models.Inspection{}, rowID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.broadcast()
	return nil
}

func (s *GormInspectionStore) Subscribe(fn func([]Models.Inspection)) (func(), error) {
	snapshot, err := s.List(context.Background())
	if err != nil {
		return nil, err
	}
	unsubscribe := s.n.subscribe(fn)
	fn(snapshot)
	return unsubscribe, nil
}

func (s *GormInspectionStore) broadcast() {
	snapshot, err := s.List(context.Background())
	if err != nil {
		log.Println("inspection broadcast skipped:", err)
		return
	}
	s.n.publish(snapshot)
}

// GormDriverStore persists the driver roster in SQLite.
type GormDriverStore struct {
	DB *gorm.DB
	n  notifier[Models.Driver]
}

func NewGormDriverStore(db *gorm.DB) *GormDriverStore {
	return &GormDriverStore{DB: db}
}

func (s *GormDriverStore) Add(ctx context.Context, driver *Models.Driver) (string, error) {
	if err := s.DB.WithContext(ctx).Create(driver).Error; err != nil {
		return "", err
	}
	driver.DocID = strconv.FormatUint(uint64(driver.ID), 10)
	s.broadcast()
	return driver.DocID, nil
}

func (s *GormDriverStore) List(ctx context.Context) ([]Models.Driver, error) {
	var drivers []Models.Driver
	if err := s.DB.WithContext(ctx).Order("name").Find(&drivers).Error; err != nil {
		return nil, err
	}
	for i := range drivers {
		drivers[i].DocID = strconv.FormatUint(uint64(drivers[i].ID), 10)
	}
	return drivers, nil
}

func (s *GormDriverStore) Delete(ctx context.Context, id string) error {
	rowID, err := parseRowID(id)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Models.Driver{}).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastItem
		}
		result := tx.Delete(&Models.Driver{}, rowID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcast()
	return nil
}

func (s *GormDriverStore) Subscribe(fn func([]Models.Driver)) (func(), error) {
	snapshot, err := s.List(context.Background())
	if err != nil {
		return nil, err
	}
	unsubscribe := s.n.subscribe(fn)
	fn(snapshot)
	return unsubscribe, nil
}

func (s *GormDriverStore) broadcast() {
	snapshot, err := s.List(context.Background())
	if err != nil {
		log.Println("driver broadcast skipped:", err)
		return
	}
	s.n.publish(snapshot)
}

// GormWorkshopStore persists the workshop directory in SQLite.
type GormWorkshopStore struct {
	DB *gorm.DB
	n  notifier[Models.Workshop]
}

func NewGormWorkshopStore(db *gorm.DB) *GormWorkshopStore {
	return &GormWorkshopStore{DB: db}
}

func (s *GormWorkshopStore) Add(ctx context.Context, workshop *Models.Workshop) (string, error) {
	if err := s.DB.WithContext(ctx).Create(workshop).Error; err != nil {
		return "", err
	}
	workshop.DocID = strconv.FormatUint(uint64(workshop.ID), 10)
	s.broadcast()
	return workshop.DocID, nil
}

func (s *GormWorkshopStore) List(ctx context.Context) ([]Models.Workshop, error) {
	var workshops []Models.Workshop
	if err := s.DB.WithContext(ctx).Order("name").Find(&workshops).Error; err != nil {
		return nil, err
	}
	for i := range workshops {
		workshops[i].DocID = strconv.FormatUint(uint64(workshops[i].ID), 10)
	}
	return workshops, nil
}

func (s *GormWorkshopStore) Update(ctx context.Context, id, name, email string) error {
	rowID, err := parseRowID(id)
	if err != nil {
		return err
	}
	var workshop Models.Workshop
	if err := s.DB.WithContext(ctx).First(&workshop, rowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	workshop.Name = name
	workshop.Email = email
	if err := s.DB.WithContext(ctx).Save(&workshop).Error; err != nil {
		return err
	}
	s.broadcast()
	return nil
}

func (s *GormWorkshopStore) Delete(ctx context.Context, id string) error {
	rowID, err := parseRowID(id)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Models.Workshop{}).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastItem
		}
		result := tx.Delete(&Models.Workshop{}, rowID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcast()
	return nil
}

func (s *GormWorkshopStore) Subscribe(fn func([]Models.Workshop)) (func(), error) {
	snapshot, err := s.List(context.Background())
	if err != nil {
		return nil, err
	}
	unsubscribe := s.n.subscribe(fn)
	fn(snapshot)
	return unsubscribe, nil
}

func (s *GormWorkshopStore) broadcast() {
	snapshot, err := s.List(context.Background())
	if err != nil {
		log.Println("workshop broadcast skipped:", err)
		return
	}
	s.n.publish(snapshot)
}
