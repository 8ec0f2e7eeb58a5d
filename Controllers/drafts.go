package Controllers

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"PreStart/Attachments"
	"PreStart/Checklist"
	"PreStart/Draft"
	"PreStart/Inspection"
)

// DraftController drives the inspection workflow: one draft per session id,
// stepped through driver info, the checklist, workshop selection and finalize.
type DraftController struct {
	Registry *Draft.Registry
	Service  *Inspection.Service
}

func NewDraftController(registry *Draft.Registry, service *Inspection.Service) *DraftController {
	return &DraftController{Registry: registry, Service: service}
}

type draftResponse struct {
	SessionID         string            `json:"sessionId"`
	Step              Draft.Step        `json:"step"`
	Driver            string            `json:"driver"`
	TruckNumber       string            `json:"truckNumber"`
	Date              string            `json:"date"`
	Answers           map[string]string `json:"answers"`
	Notes             map[string]string `json:"notes"`
	PhotoCounts       map[string]int    `json:"photoCounts"`
	SelectedWorkshops []string          `json:"selectedWorkshops"`
	HasDamages        bool              `json:"hasDamages"`
}

func draftJSON(sessionID string, d *Draft.Draft) draftResponse {
	view := d.Snapshot()
	counts := make(map[string]int, len(view.Attachments))
	for itemID, photos := range view.Attachments {
		counts[itemID] = len(photos)
	}
	return draftResponse{
		SessionID:         sessionID,
		Step:              view.Step,
		Driver:            view.Driver,
		TruckNumber:       view.TruckNumber,
		Date:              view.Date,
		Answers:           view.Answers,
		Notes:             view.Notes,
		PhotoCounts:       counts,
		SelectedWorkshops: view.SelectedWorkshops,
		HasDamages:        view.HasDamages,
	}
}

func draftErrorStatus(err error) int {
	switch {
	case errors.Is(err, Draft.ErrWrongStep), errors.Is(err, Draft.ErrArchived):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

// GetChecklist returns the fixed checklist definition.
func (dc *DraftController) GetChecklist(c *fiber.Ctx) error {
	return c.JSON(Checklist.Items)
}

// StartDraft opens a fresh inspection session.
func (dc *DraftController) StartDraft(c *fiber.Ctx) error {
	id, d := dc.Registry.Start()
	return c.Status(fiber.StatusCreated).JSON(draftJSON(id, d))
}

func (dc *DraftController) draft(c *fiber.Ctx) (string, *Draft.Draft, error) {
	id := c.Params("id")
	d, ok := dc.Registry.Get(id)
	if !ok {
		return "", nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No inspection in progress for this session"})
	}
	return id, d, nil
}

// GetDraft returns the draft's current state.
func (dc *DraftController) GetDraft(c *fiber.Ctx) error {
	id, d, err := dc.draft(c)
	if d == nil {
		return err
	}
	return c.JSON(draftJSON(id, d))
}

type driverInfoInput struct {
	Driver      string `json:"driver" validate:"required"`
	TruckNumber string `json:"truckNumber" validate:"required"`
}

// SetDriverInfo records driver and truck, then advances to the checklist.
func (dc *DraftController) SetDriverInfo(c *fiber.Ctx) error {
	id, d, errResp := dc.draft(c)
	if d == nil {
		return errResp
	}
	var input driverInfoInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Driver name and truck number are required"})
	}
	if err := d.SetDriverInfo(input.Driver, input.TruckNumber); err != nil {
		return c.Status(draftErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if err := d.BeginChecklist(); err != nil {
		return c.Status(draftErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(draftJSON(id, d))
}

type answerInput struct {
	ItemID  string `json:"itemId" validate:"required"`
	Verdict string `json:"verdict" validate:"required,oneof=pass fail"`
}

// Answer records pass or fail for one checklist item.
func (dc *DraftController) Answer(c *fiber.Ctx) error {
	id, d, errResp := dc.draft(c)
	if d == nil {
		return errResp
	}
	var input answerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := d.Answer(input.ItemID, input.Verdict); err != nil {
		return c.Status(draftErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(draftJSON(id, d))
}

type noteInput struct {
	ItemID string `json:"itemId" validate:"required"`
	Note   string `json:"note"`
}

// SetNote attaches a free-text note to a failed item.
func (dc *DraftController) SetNote(c *fiber.Ctx) error {
	id, d, errResp := dc.draft(c)
	if d == nil {
		return errResp
	}
	var input noteInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := d.SetNote(input.ItemID, input.Note); err != nil {
		return c.Status(draftErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(draftJSON(id, d))
}

// AttachPhotos accepts multipart photo uploads for a failed item. Every file
// goes through the resize pipeline before it enters the draft.
func (dc *DraftController) AttachPhotos(c *fiber.Ctx) error {
	id, d, errResp := dc.draft(c)
	if d == nil {
		return errResp
	}
	itemID := c.FormValue("itemId")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "itemId is required"})
	}
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Expected multipart photo upload"})
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No photos in request"})
	}

	attached := 0
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			log.Printf("Skipping unreadable upload %s: %v", fileHeader.Filename, err)
			continue
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			log.Printf("Skipping unreadable upload %s: %v", fileHeader.Filename, err)
			continue
		}
		processed, err := Attachments.Process(data)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not process " + fileHeader.Filename})
		}
		if err := d.Attach(itemID, processed); err != nil {
			return c.Status(draftErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
		}
		attached++
	}
	if attached == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No readable photos in request"})
	}
	return c.JSON(draftJSON(id, d))
}

// FinishChecklist moves past the checklist once every item is answered.
func (dc *DraftController) FinishChecklist(c *fiber.Ctx) error {
	id, d, errResp := dc.draft(c)
	if d == nil {
		return errResp
	}
	if _, err := d.FinishChecklist(); err != nil {
		return c.Status(draftErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(draftJSON(id, d))
}

type toggleWorkshopInput struct {
	WorkshopID string `json:"workshopId" validate:"required"`
}

// ToggleWorkshop flips a workshop in or out of the selected set.
func (dc *DraftController) ToggleWorkshop(c *fiber.Ctx) error {
	id, d, errResp := dc.draft(c)
	if d == nil {
		return errResp
	}
	var input toggleWorkshopInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := d.ToggleWorkshop(input.WorkshopID); err != nil {
		return c.Status(draftErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(draftJSON(id, d))
}

// FinishWorkshops moves to the summary once a workshop is selected.
func (dc *DraftController) FinishWorkshops(c *fiber.Ctx) error {
	id, d, errResp := dc.draft(c)
	if d == nil {
		return errResp
	}
	if err := d.FinishWorkshopSelection(); err != nil {
		return c.Status(draftErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(draftJSON(id, d))
}

// Finalize runs the upload/compile/dispatch/archive flow. On a dispatch
// failure nothing is archived and the draft stays live; repeating the request
// retries the whole flow.
func (dc *DraftController) Finalize(c *fiber.Ctx) error {
	_, d, errResp := dc.draft(c)
	if d == nil {
		return errResp
	}
	record, err := dc.Service.Finalize(c.UserContext(), d)
	if err != nil {
		if errors.Is(err, Draft.ErrWrongStep) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to send report. Please check your connection and try again."})
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// ResetDraft abandons the current inspection and starts over. Nothing from the
// prior draft is reused.
func (dc *DraftController) ResetDraft(c *fiber.Ctx) error {
	id, d, errResp := dc.draft(c)
	if d == nil {
		return errResp
	}
	d.Reset()
	return c.JSON(draftJSON(id, d))
}
