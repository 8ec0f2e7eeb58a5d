package Draft

import (
	"errors"
	"sync"
	"time"

	"PreStart/Checklist"
)

// Answer verdicts.
const (
	Pass = "pass"
	Fail = "fail"
)

// Step is the draft's position in the inspection workflow.
type Step string

const (
	StepDriverInfo Step = "driver-info"
	StepChecklist  Step = "checklist"
	StepWorkshop   Step = "workshop"
	StepSummary    Step = "summary"
	StepArchived   Step = "archived"
)

var (
	ErrMissingDriverInfo  = errors.New("driver name and truck number are required")
	ErrUnansweredItems    = errors.New("every checklist item needs an answer")
	ErrNoWorkshopSelected = errors.New("select at least one workshop")
	ErrWrongStep          = errors.New("not allowed at this step")
	ErrUnknownItem        = errors.New("unknown checklist item")
	ErrInvalidAnswer      = errors.New("answer must be pass or fail")
	ErrItemNotFailed      = errors.New("notes and photos only apply to failed items")
	ErrArchived           = errors.New("inspection already archived")
)

// Draft is the single in-progress inspection owned by one session. All methods
// are safe for concurrent use, but the exclusive-owner contract means only one
// caller holds a given session id.
type Draft struct {
	mu                sync.Mutex
	step              Step
	driver            string
	truckNumber       string
	date              string
	answers           map[string]string
	notes             map[string]string
	attachments       map[string][][]byte
	selectedWorkshops map[string]bool
}

// New returns an empty draft at the driver-info step with today's date.
func New() *Draft {
	d := &Draft{}
	d.reset()
	return d
}

func (d *Draft) reset() {
	d.step = StepDriverInfo
	d.driver = ""
	d.truckNumber = ""
	d.date = time.Now().Format("2006-01-02")
	d.answers = make(map[string]string)
	d.notes = make(map[string]string)
	d.attachments = make(map[string][][]byte)
	d.selectedWorkshops = make(map[string]bool)
}

// Reset starts a fresh inspection. Nothing from the prior draft is reused.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

// Step returns the draft's current workflow step.
func (d *Draft) Step() Step {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.step
}

// SetDriverInfo records who is inspecting which truck. Only valid before the
// checklist begins.
func (d *Draft) SetDriverInfo(driver, truckNumber string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.step == StepArchived {
		return ErrArchived
	}
	if d.step != StepDriverInfo {
		return ErrWrongStep
	}
	d.driver = driver
	d.truckNumber = truckNumber
	return nil
}

// BeginChecklist leaves the driver-info step. Refused until driver and truck
// number are set.
func (d *Draft) BeginChecklist() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.step == StepArchived {
		return ErrArchived
	}
	if d.step != StepDriverInfo {
		return ErrWrongStep
	}
	if d.driver == "" || d.truckNumber == "" {
		return ErrMissingDriverInfo
	}
	d.step = StepChecklist
	return nil
}

// Answer records pass or fail for a checklist item. Flipping a failed item back
// to pass purges its note and photos; there is no undo.
func (d *Draft) Answer(itemID, verdict string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.step == StepArchived {
		return ErrArchived
	}
	if d.step != StepChecklist {
		return ErrWrongStep
	}
	if !Checklist.IsValidID(itemID) {
		return ErrUnknownItem
	}
	if verdict != Pass && verdict != Fail {
		return ErrInvalidAnswer
	}
	d.answers[itemID] = verdict
	if verdict == Pass {
		delete(d.notes, itemID)
		delete(d.attachments, itemID)
	}
	return nil
}

// SetNote attaches free text to a failed item.
func (d *Draft) SetNote(itemID, note string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.step == StepArchived {
		return ErrArchived
	}
	if d.step != StepChecklist {
		return ErrWrongStep
	}
	if !Checklist.IsValidID(itemID) {
		return ErrUnknownItem
	}
	if d.answers[itemID] != Fail {
		return ErrItemNotFailed
	}
	d.notes[itemID] = note
	return nil
}

// Attach appends a processed photo to a failed item's list.
func (d *Draft) Attach(itemID string, photo []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.step == StepArchived {
		return ErrArchived
	}
	if d.step != StepChecklist {
		return ErrWrongStep
	}
	if !Checklist.IsValidID(itemID) {
		return ErrUnknownItem
	}
	if d.answers[itemID] != Fail {
		return ErrItemNotFailed
	}
	d.attachments[itemID] = append(d.attachments[itemID], photo)
	return nil
}

// HasDamages reports whether any item was answered fail.
func (d *Draft) HasDamages() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasDamages()
}

func (d *Draft) hasDamages() bool {
	for _, verdict := range d.answers {
		if verdict == Fail {
			return true
		}
	}
	return false
}

func (d *Draft) allAnswered() bool {
	for _, item := range Checklist.Items {
		if _, ok := d.answers[item.ID]; !ok {
			return false
		}
	}
	return true
}

// FinishChecklist leaves the checklist step once every item is answered. With
// damages the draft moves to workshop selection, otherwise straight to the
// summary. Returns the step it landed on.
func (d *Draft) FinishChecklist() (Step, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.step == StepArchived {
		return d.step, ErrArchived
	}
	if d.step != StepChecklist {
		return d.step, ErrWrongStep
	}
	if !d.allAnswered() {
		return d.step, ErrUnansweredItems
	}
	if d.hasDamages() {
		d.step = StepWorkshop
	} else {
		d.step = StepSummary
	}
	return d.step, nil
}

// ToggleWorkshop flips a workshop in or out of the selected set.
func (d *Draft) ToggleWorkshop(workshopID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.step == StepArchived {
		return ErrArchived
	}
	if d.step != StepWorkshop {
		return ErrWrongStep
	}
	if d.selectedWorkshops[workshopID] {
		delete(d.selectedWorkshops, workshopID)
	} else {
		d.selectedWorkshops[workshopID] = true
	}
	return nil
}

// FinishWorkshopSelection leaves the workshop step. Refused while no workshop
// is selected.
func (d *Draft) FinishWorkshopSelection() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.step == StepArchived {
		return ErrArchived
	}
	if d.step != StepWorkshop {
		return ErrWrongStep
	}
	if len(d.selectedWorkshops) == 0 {
		return ErrNoWorkshopSelected
	}
	d.step = StepSummary
	return nil
}

// MarkArchived freezes the draft after its record was committed.
func (d *Draft) MarkArchived() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.step = StepArchived
}

// View is a point-in-time copy of the draft, safe to read without holding the
// draft's lock.
type View struct {
	Step              Step
	Driver            string
	TruckNumber       string
	Date              string
	Answers           map[string]string
	Notes             map[string]string
	Attachments       map[string][][]byte
	SelectedWorkshops []string
	HasDamages        bool
}

// Snapshot copies the draft's current state.
func (d *Draft) Snapshot() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	answers := make(map[string]string, len(d.answers))
	for k, v := range d.answers {
		answers[k] = v
	}
	notes := make(map[string]string, len(d.notes))
	for k, v := range d.notes {
		notes[k] = v
	}
	attachments := make(map[string][][]byte, len(d.attachments))
	for k, photos := range d.attachments {
		attachments[k] = append([][]byte(nil), photos...)
	}
	selected := make([]string, 0, len(d.selectedWorkshops))
	for id := range d.selectedWorkshops {
		selected = append(selected, id)
	}

	return View{
		Step:              d.step,
		Driver:            d.driver,
		TruckNumber:       d.truckNumber,
		Date:              d.date,
		Answers:           answers,
		Notes:             notes,
		Attachments:       attachments,
		SelectedWorkshops: selected,
		HasDamages:        d.hasDamages(),
	}
}
