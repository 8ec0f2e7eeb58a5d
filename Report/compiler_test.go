package Report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PreStart/Draft"
	"PreStart/Models"
)

func damagedView(failed map[string]string) Draft.View {
	answers := map[string]string{
		"tires": Draft.Pass, "lights": Draft.Pass, "brakes": Draft.Pass,
		"mirrors": Draft.Pass, "fluid-leaks": Draft.Pass, "engine": Draft.Pass,
		"body": Draft.Pass, "cargo": Draft.Pass, "horn": Draft.Pass, "wipers": Draft.Pass,
	}
	notes := map[string]string{}
	for id, note := range failed {
		answers[id] = Draft.Fail
		if note != "" {
			notes[id] = note
		}
	}
	return Draft.View{
		Step:        Draft.StepSummary,
		Driver:      "Gino Esposito",
		TruckNumber: "ABC123",
		Date:        "2025-03-09",
		Answers:     answers,
		Notes:       notes,
		Attachments: map[string][][]byte{},
		HasDamages:  len(failed) > 0,
	}
}

func TestOrdinalsFollowDeclarationOrder(t *testing.T) {
	// Answered wipers first, tires last - the report must still number tires
	// first because the checklist declares it first.
	view := damagedView(map[string]string{
		"wipers": "streaking badly",
		"tires":  "flat spot on left rear",
	})

	c := Compile(view, nil, "manager@example.com", nil)

	require.Len(t, c.FailedItems, 2)
	assert.Equal(t, "tires", c.FailedItems[0].Item.ID)
	assert.Equal(t, "wipers", c.FailedItems[1].Item.ID)
	assert.Contains(t, c.FormattedItems, "1. Tires & Wheels -")
	assert.Contains(t, c.FormattedItems, "2. Wipers & Washers -")
}

func TestCriticalMarkerAndNotes(t *testing.T) {
	view := damagedView(map[string]string{
		"brakes":  "grinding noise",
		"mirrors": "",
	})

	c := Compile(view, nil, "manager@example.com", nil)

	require.Len(t, c.FailedItems, 2)
	assert.Contains(t, c.FormattedItems, "CRITICAL")
	assert.Contains(t, c.FormattedItems, "grinding noise")
	assert.Contains(t, c.FormattedItems, "No notes provided")
	assert.Equal(t, 2, c.TotalIssues)
	assert.Equal(t, 1, c.CriticalIssues)

	// Mirrors is non-critical; its block must not carry the marker.
	blocks := strings.Split(c.FormattedItems, "\n\n")
	require.Len(t, blocks, 2)
	assert.NotContains(t, blocks[1], "CRITICAL")
}

func TestRecipientsDedupedWithFleetManager(t *testing.T) {
	view := damagedView(map[string]string{"horn": "dead"})
	workshops := []Models.Workshop{
		{DocID: "1", Name: "MF King Engineering Ltd", Email: "gino@mfking.co.nz"},
		{DocID: "2", Name: "North Shore Repairs", Email: "manager@example.com"},
	}

	c := Compile(view, workshops, "manager@example.com", nil)

	assert.ElementsMatch(t, []string{"gino@mfking.co.nz", "manager@example.com"}, c.Recipients)
	assert.Equal(t, "MF King Engineering Ltd, North Shore Repairs", c.WorkshopNames)
}

func TestSubjectAndDateFormatting(t *testing.T) {
	view := damagedView(map[string]string{"horn": "dead"})
	c := Compile(view, nil, "manager@example.com", nil)

	assert.Equal(t, "Vehicle Inspection Report - REGO: ABC123", c.Subject)
	assert.Equal(t, "09-03-2025", c.DateFormatted)
	assert.Contains(t, c.Body, "Inspection Date: 09-03-2025")

	assert.Equal(t, "not-a-date", FormatDate("not-a-date"))
}

func TestPhotoIndicatorSurfacesFailedUploads(t *testing.T) {
	view := damagedView(map[string]string{
		"brakes": "grinding noise",
		"horn":   "dead",
		"wipers": "worn",
	})
	view.Attachments = map[string][][]byte{
		"brakes": {[]byte("p1"), []byte("p2")},
		"horn":   {[]byte("p1"), []byte("p2")},
	}
	uploaded := UploadedPhotos{
		"brakes": {},
		"horn":   {"https://i.imgur.com/ok.jpg"},
	}

	c := Compile(view, nil, "manager@example.com", uploaded)

	// Captured but nothing uploaded is not the same as never captured.
	assert.Contains(t, c.FormattedItems, "2 photo(s) could not be uploaded")
	assert.Contains(t, c.FormattedItems, "https://i.imgur.com/ok.jpg (1 failed to upload)")
	assert.Contains(t, c.FormattedItems, "No photos provided")
}

func TestPhotoGallery(t *testing.T) {
	view := damagedView(map[string]string{"brakes": "grinding noise"})
	view.Attachments = map[string][][]byte{"brakes": {[]byte("p1"), []byte("p2")}}
	uploaded := UploadedPhotos{
		"brakes": {"https://i.imgur.com/a.jpg", "https://i.imgur.com/b.jpg"},
	}

	c := Compile(view, nil, "manager@example.com", uploaded)

	assert.Equal(t, 2, strings.Count(c.PhotoGalleryHTML, "<img "))
	assert.Contains(t, c.PhotoGalleryHTML, "https://i.imgur.com/a.jpg")
	assert.Contains(t, c.PhotoGalleryHTML, "https://i.imgur.com/b.jpg")
	assert.Contains(t, c.PhotoGalleryHTML, "Brakes - ")
}

func TestNoDamagesCompilesEmptyReport(t *testing.T) {
	view := damagedView(nil)
	c := Compile(view, nil, "manager@example.com", nil)

	assert.Empty(t, c.FailedItems)
	assert.Zero(t, c.TotalIssues)
	assert.Zero(t, c.CriticalIssues)
	assert.Empty(t, c.FormattedItems)
	assert.Contains(t, c.Body, "Workshop(s): Not selected")
}

func TestTemplateParams(t *testing.T) {
	view := damagedView(map[string]string{"brakes": "grinding noise"})
	workshops := []Models.Workshop{{DocID: "1", Name: "MF King Engineering Ltd", Email: "gino@mfking.co.nz"}}
	c := Compile(view, workshops, "manager@example.com", nil)

	params := c.TemplateParams(view, "manager@example.com")
	assert.Equal(t, "gino@mfking.co.nz,manager@example.com", params["to_email"])
	assert.Equal(t, "Gino Esposito", params["driver_name"])
	assert.Equal(t, "ABC123", params["truck_number"])
	assert.Equal(t, 1, params["total_issues"])
	assert.Equal(t, 1, params["critical_issues"])
}
