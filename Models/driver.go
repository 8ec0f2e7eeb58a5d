package Models

import "time"

// Driver is a roster entry. Drivers are created and deleted, never edited in
// place; the roster must always keep at least one entry.
type Driver struct {
	ID        uint      `gorm:"primaryKey" json:"-" firestore:"-"`
	DocID     string    `gorm:"-" json:"id" firestore:"-"`
	Name      string    `gorm:"index" json:"name" firestore:"name"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
