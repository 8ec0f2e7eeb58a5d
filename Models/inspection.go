package Models

import (
	"time"
)

// FailedItemSnapshot is one failed checklist item as it appeared at completion
// time, including how many photos the driver captured and which of those made it
// to the image host. CapturedPhotos and PhotoURLs can legitimately disagree when
// some uploads failed.
type FailedItemSnapshot struct {
	ItemID         string   `json:"id" firestore:"id"`
	Category       string   `json:"category" firestore:"category"`
	Question       string   `json:"question" firestore:"question"`
	Critical       bool     `json:"critical" firestore:"critical"`
	Note           string   `json:"note" firestore:"note"`
	CapturedPhotos int      `json:"capturedPhotos" firestore:"capturedPhotos"`
	PhotoURLs      []string `json:"photoUrls" firestore:"photoUrls"`
}

// ReportSummary is the denormalized report attached to a finished inspection.
// Workshop names and emails are resolved at creation time, not live references.
type ReportSummary struct {
	FailedItems    []FailedItemSnapshot `json:"failedItems" firestore:"failedItems"`
	WorkshopNames  string               `json:"workshopNames" firestore:"workshopNames"`
	WorkshopEmails string               `json:"workshopEmails" firestore:"workshopEmails"`
}

// Inspection is a finalized pre-start inspection. Immutable once created;
// deleted only by explicit user action.
type Inspection struct {
	ID                uint                `gorm:"primaryKey" json:"-" firestore:"-"`
	DocID             string              `gorm:"-" json:"id" firestore:"-"`
	Driver            string              `json:"driver" firestore:"driver"`
	TruckNumber       string              `gorm:"index" json:"truckNumber" firestore:"truckNumber"`
	Date              string              `gorm:"index" json:"date" firestore:"date"`
	Answers           map[string]string   `gorm:"serializer:json" json:"answers" firestore:"answers"`
	Notes             map[string]string   `gorm:"serializer:json" json:"notes" firestore:"notes"`
	Photos            map[string][]string `gorm:"serializer:json" json:"photos" firestore:"photos"`
	SelectedWorkshops []string            `gorm:"serializer:json" json:"selectedWorkshops" firestore:"selectedWorkshops"`
	HasDamages        bool                `json:"hasDamages" firestore:"hasDamages"`
	ReportSummary     ReportSummary       `gorm:"serializer:json" json:"reportSummary" firestore:"reportSummary"`
	CreatedAt         time.Time           `json:"createdAt" firestore:"createdAt"`
}
