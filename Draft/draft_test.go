package Draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PreStart/Checklist"
)

// checklistDraft returns a draft already past the driver-info step.
func checklistDraft(t *testing.T) *Draft {
	t.Helper()
	d := New()
	require.NoError(t, d.SetDriverInfo("Gino Esposito", "ABC123"))
	require.NoError(t, d.BeginChecklist())
	return d
}

func answerAll(t *testing.T, d *Draft, verdict string) {
	t.Helper()
	for _, item := range Checklist.Items {
		require.NoError(t, d.Answer(item.ID, verdict))
	}
}

func TestHasDamages(t *testing.T) {
	t.Run("no answers", func(t *testing.T) {
		d := checklistDraft(t)
		assert.False(t, d.HasDamages())
	})

	t.Run("all pass", func(t *testing.T) {
		d := checklistDraft(t)
		answerAll(t, d, Pass)
		assert.False(t, d.HasDamages())
	})

	t.Run("all fail", func(t *testing.T) {
		d := checklistDraft(t)
		answerAll(t, d, Fail)
		assert.True(t, d.HasDamages())
	})

	t.Run("mixed", func(t *testing.T) {
		d := checklistDraft(t)
		answerAll(t, d, Pass)
		require.NoError(t, d.Answer("brakes", Fail))
		assert.True(t, d.HasDamages())
	})
}

func TestFailToPassPurgesNoteAndPhotos(t *testing.T) {
	d := checklistDraft(t)
	require.NoError(t, d.Answer("brakes", Fail))
	require.NoError(t, d.SetNote("brakes", "grinding noise"))
	require.NoError(t, d.Attach("brakes", []byte("photo-1")))
	require.NoError(t, d.Attach("brakes", []byte("photo-2")))

	view := d.Snapshot()
	assert.Equal(t, "grinding noise", view.Notes["brakes"])
	assert.Len(t, view.Attachments["brakes"], 2)

	require.NoError(t, d.Answer("brakes", Pass))

	view = d.Snapshot()
	_, hasNote := view.Notes["brakes"]
	_, hasPhotos := view.Attachments["brakes"]
	assert.False(t, hasNote)
	assert.False(t, hasPhotos)
}

func TestDriverInfoGuard(t *testing.T) {
	d := New()
	assert.ErrorIs(t, d.BeginChecklist(), ErrMissingDriverInfo)

	require.NoError(t, d.SetDriverInfo("Gino Esposito", ""))
	assert.ErrorIs(t, d.BeginChecklist(), ErrMissingDriverInfo)

	require.NoError(t, d.SetDriverInfo("Gino Esposito", "ABC123"))
	require.NoError(t, d.BeginChecklist())
	assert.Equal(t, StepChecklist, d.Step())

	// Driver info is locked once the checklist starts.
	assert.ErrorIs(t, d.SetDriverInfo("Someone Else", "XYZ789"), ErrWrongStep)
}

func TestFinishChecklistRequiresEveryAnswer(t *testing.T) {
	d := checklistDraft(t)
	_, err := d.FinishChecklist()
	assert.ErrorIs(t, err, ErrUnansweredItems)

	for _, item := range Checklist.Items[:len(Checklist.Items)-1] {
		require.NoError(t, d.Answer(item.ID, Pass))
	}
	_, err = d.FinishChecklist()
	assert.ErrorIs(t, err, ErrUnansweredItems)

	require.NoError(t, d.Answer(Checklist.Items[len(Checklist.Items)-1].ID, Pass))
	step, err := d.FinishChecklist()
	require.NoError(t, err)
	assert.Equal(t, StepSummary, step)
}

func TestDamagesRouteThroughWorkshopSelection(t *testing.T) {
	d := checklistDraft(t)
	answerAll(t, d, Pass)
	require.NoError(t, d.Answer("lights", Fail))

	step, err := d.FinishChecklist()
	require.NoError(t, err)
	assert.Equal(t, StepWorkshop, step)

	assert.ErrorIs(t, d.FinishWorkshopSelection(), ErrNoWorkshopSelected)

	require.NoError(t, d.ToggleWorkshop("ws-1"))
	require.NoError(t, d.FinishWorkshopSelection())
	assert.Equal(t, StepSummary, d.Step())
}

func TestToggleWorkshopFlips(t *testing.T) {
	d := checklistDraft(t)
	answerAll(t, d, Fail)
	_, err := d.FinishChecklist()
	require.NoError(t, err)

	require.NoError(t, d.ToggleWorkshop("ws-1"))
	require.NoError(t, d.ToggleWorkshop("ws-2"))
	require.NoError(t, d.ToggleWorkshop("ws-1"))

	view := d.Snapshot()
	assert.Equal(t, []string{"ws-2"}, view.SelectedWorkshops)
}

func TestAnswerValidation(t *testing.T) {
	d := checklistDraft(t)
	assert.ErrorIs(t, d.Answer("flux-capacitor", Fail), ErrUnknownItem)
	assert.ErrorIs(t, d.Answer("brakes", "maybe"), ErrInvalidAnswer)
	assert.ErrorIs(t, d.SetNote("brakes", "note"), ErrItemNotFailed)
	assert.ErrorIs(t, d.Attach("brakes", []byte("x")), ErrItemNotFailed)
}

func TestResetStartsOver(t *testing.T) {
	d := checklistDraft(t)
	answerAll(t, d, Fail)
	require.NoError(t, d.SetNote("brakes", "grinding noise"))
	require.NoError(t, d.Attach("brakes", []byte("photo")))

	d.Reset()

	view := d.Snapshot()
	assert.Equal(t, StepDriverInfo, view.Step)
	assert.Empty(t, view.Driver)
	assert.Empty(t, view.TruckNumber)
	assert.Empty(t, view.Answers)
	assert.Empty(t, view.Notes)
	assert.Empty(t, view.Attachments)
	assert.Empty(t, view.SelectedWorkshops)
	assert.NotEmpty(t, view.Date)
}

func TestArchivedDraftRefusesEverything(t *testing.T) {
	d := checklistDraft(t)
	answerAll(t, d, Pass)
	_, err := d.FinishChecklist()
	require.NoError(t, err)
	d.MarkArchived()

	assert.ErrorIs(t, d.Answer("brakes", Fail), ErrArchived)
	assert.ErrorIs(t, d.SetNote("brakes", "x"), ErrArchived)
	assert.ErrorIs(t, d.Attach("brakes", []byte("x")), ErrArchived)
	assert.ErrorIs(t, d.ToggleWorkshop("ws-1"), ErrArchived)
	_, err = d.FinishChecklist()
	assert.ErrorIs(t, err, ErrArchived)
}

func TestRegistrySessions(t *testing.T) {
	r := NewRegistry()
	id1, d1 := r.Start()
	id2, d2 := r.Start()
	assert.NotEqual(t, id1, id2)

	got, ok := r.Get(id1)
	require.True(t, ok)
	assert.Same(t, d1, got)

	got, ok = r.Get(id2)
	require.True(t, ok)
	assert.Same(t, d2, got)

	r.Drop(id1)
	_, ok = r.Get(id1)
	assert.False(t, ok)
}
