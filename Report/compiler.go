package Report

import (
	"fmt"
	"strings"
	"time"

	"PreStart/Checklist"
	"PreStart/Draft"
	"PreStart/Models"
)

// UploadedPhotos maps a checklist item id to the public URLs of its uploaded
// photos, in capture order. Items whose uploads all failed map to an empty
// slice even when photos were captured; the compiler surfaces that difference.
type UploadedPhotos map[string][]string

// FailedItem is one failed checklist item ready for rendering.
type FailedItem struct {
	Item           Checklist.Item
	Note           string
	CapturedPhotos int
	PhotoURLs      []string
}

// Compiled is the outbound report: human-readable body plus the flat fields the
// email template consumes.
type Compiled struct {
	Subject          string
	Body             string
	Recipients       []string
	FailedItems      []FailedItem
	FormattedItems   string
	PhotoGalleryHTML string
	WorkshopNames    string
	WorkshopEmails   string
	TotalIssues      int
	CriticalIssues   int
	DateFormatted    string
}

const noNotesPlaceholder = "No notes provided"

// Compile projects a completed draft into the report. Pure: no I/O, no clock.
// Failed items are numbered in checklist declaration order no matter what order
// the driver answered in.
func Compile(view Draft.View, workshops []Models.Workshop, fleetManagerEmail string, uploaded UploadedPhotos) Compiled {
	var failed []FailedItem
	for _, item := range Checklist.Items {
		if view.Answers[item.ID] != Draft.Fail {
			continue
		}
		failed = append(failed, FailedItem{
			Item:           item,
			Note:           view.Notes[item.ID],
			CapturedPhotos: len(view.Attachments[item.ID]),
			PhotoURLs:      uploaded[item.ID],
		})
	}

	names := make([]string, 0, len(workshops))
	emails := make([]string, 0, len(workshops))
	for _, w := range workshops {
		names = append(names, w.Name)
		emails = append(emails, w.Email)
	}
	workshopNames := strings.Join(names, ", ")

	critical := 0
	for _, fi := range failed {
		if fi.Item.Critical {
			critical++
		}
	}

	c := Compiled{
		Subject:        fmt.Sprintf("Vehicle Inspection Report - REGO: %s", view.TruckNumber),
		Recipients:     dedupeRecipients(append(emails, fleetManagerEmail)),
		FailedItems:    failed,
		WorkshopNames:  workshopNames,
		WorkshopEmails: strings.Join(emails, ", "),
		TotalIssues:    len(failed),
		CriticalIssues: critical,
		DateFormatted:  FormatDate(view.Date),
	}
	c.FormattedItems = formatFailedItems(failed)
	c.PhotoGalleryHTML = photoGallery(failed)
	c.Body = buildBody(view, c)
	return c
}

// FormatDate renders an ISO date as DD-MM-YYYY. Presentation only; records
// keep the ISO form.
func FormatDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("02-01-2006")
}

func dedupeRecipients(addresses []string) []string {
	seen := make(map[string]bool, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		out = append(out, addr)
	}
	return out
}

func noteOrPlaceholder(note string) string {
	if note == "" {
		return noNotesPlaceholder
	}
	return note
}

// photoLine distinguishes "nothing was captured" from "everything captured
// failed to upload" instead of collapsing both into silence.
func photoLine(fi FailedItem) string {
	if fi.CapturedPhotos == 0 {
		return "No photos provided"
	}
	if len(fi.PhotoURLs) == 0 {
		return fmt.Sprintf("%d photo(s) could not be uploaded", fi.CapturedPhotos)
	}
	line := strings.Join(fi.PhotoURLs, "\n   ")
	if lost := fi.CapturedPhotos - len(fi.PhotoURLs); lost > 0 {
		line += fmt.Sprintf(" (%d failed to upload)", lost)
	}
	return line
}

func formatFailedItems(failed []FailedItem) string {
	blocks := make([]string, 0, len(failed))
	for i, fi := range failed {
		marker := ""
		if fi.Item.Critical {
			marker = " CRITICAL"
		}
		blocks = append(blocks, fmt.Sprintf("%d. %s - %s%s\n   Notes: %s\n   Photo(s): %s",
			i+1, fi.Item.Category, fi.Item.Question, marker,
			noteOrPlaceholder(fi.Note), photoLine(fi)))
	}
	return strings.Join(blocks, "\n\n")
}

// photoGallery builds the HTML fragment embedded in the email, one captioned
// image per uploaded URL, widths constrained so email clients behave.
func photoGallery(failed []FailedItem) string {
	var b strings.Builder
	for _, fi := range failed {
		for _, url := range fi.PhotoURLs {
			b.WriteString(fmt.Sprintf(
				`<div style="margin-bottom:12px;padding:10px;border-radius:6px;border:1px solid #e5e7eb;background:#fafafa;">`+
					`<p style="margin:0 0 6px 0;font-size:13px;color:#374151;">%s - %s</p>`+
					`<img src="%s" alt="%s damage" style="max-width:400px;width:100%%;height:auto;border-radius:4px;border:1px solid #ddd;" />`+
					`</div>`,
				fi.Item.Category, fi.Item.Question, url, fi.Item.Category))
		}
	}
	return b.String()
}

func buildBody(view Draft.View, c Compiled) string {
	workshops := c.WorkshopNames
	if workshops == "" {
		workshops = "Not selected"
	}
	var b strings.Builder
	b.WriteString("VEHICLE INSPECTION DAMAGE REPORT\n\n")
	fmt.Fprintf(&b, "Driver: %s\n", view.Driver)
	fmt.Fprintf(&b, "Vehicle Registration: %s\n", view.TruckNumber)
	fmt.Fprintf(&b, "Inspection Date: %s\n", c.DateFormatted)
	fmt.Fprintf(&b, "Workshop(s): %s\n\n", workshops)
	b.WriteString("ITEMS REQUIRING ATTENTION:\n")
	b.WriteString(c.FormattedItems)
	fmt.Fprintf(&b, "\n\nTotal Issues: %d\nCritical Issues: %d\n\n", c.TotalIssues, c.CriticalIssues)
	b.WriteString("Please contact the driver to arrange inspection and repairs.\n\n")
	b.WriteString("---\nThis is an automated report from the MF King Vehicle Inspection System.")
	return b.String()
}

// TemplateParams flattens the report into the named parameters the email
// template expects.
func (c Compiled) TemplateParams(view Draft.View, fleetManagerEmail string) map[string]interface{} {
	return map[string]interface{}{
		"to_email":            strings.Join(c.Recipients, ","),
		"subject":             c.Subject,
		"driver_name":         view.Driver,
		"truck_number":        view.TruckNumber,
		"inspection_date":     c.DateFormatted,
		"workshop_name":       c.WorkshopNames,
		"failed_items":        c.FormattedItems,
		"photo_gallery":       c.PhotoGalleryHTML,
		"total_issues":        c.TotalIssues,
		"critical_issues":     c.CriticalIssues,
		"fleet_manager_email": fleetManagerEmail,
	}
}
