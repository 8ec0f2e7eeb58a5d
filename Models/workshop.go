package Models

import "time"

// Workshop is a repair workshop that can receive damage reports. Name and email
// may be updated in place; the directory must always keep at least one entry.
type Workshop struct {
	ID        uint      `gorm:"primaryKey" json:"-" firestore:"-"`
	DocID     string    `gorm:"-" json:"id" firestore:"-"`
	Name      string    `gorm:"index" json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}
