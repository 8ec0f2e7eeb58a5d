package FiberConfig

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"

	"PreStart/Controllers"
	"PreStart/Draft"
	"PreStart/Inspection"
	"PreStart/Storage"
	"PreStart/middleware"
)

// Dependencies is everything the HTTP surface needs wired in.
type Dependencies struct {
	Drivers     Storage.DriverStore
	Workshops   Storage.WorkshopStore
	Inspections Storage.InspectionStore
	Registry    *Draft.Registry
	Service     *Inspection.Service
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	// Initialize handlers
	driverController := Controllers.NewDriverController(deps.Drivers)
	workshopController := Controllers.NewWorkshopController(deps.Workshops)
	inspectionController := Controllers.NewInspectionController(deps.Inspections)
	draftController := Controllers.NewDraftController(deps.Registry, deps.Service)

	// API group
	api := app.Group("/api")

	// Session routes
	api.Post("/login", Controllers.Login)
	api.Post("/logout", Controllers.Logout)
	api.Get("/user", middleware.Verify(0), Controllers.CurrentUser)
	api.Post("/register", middleware.Verify(3), Controllers.Register)

	// Checklist definition
	api.Get("/checklist", draftController.GetChecklist)

	// Driver roster
	drivers := api.Group("/drivers")
	drivers.Get("/", driverController.GetDrivers)
	drivers.Post("/", driverController.CreateDriver)
	drivers.Delete("/:id", driverController.DeleteDriver)

	// Workshop directory
	workshops := api.Group("/workshops")
	workshops.Get("/", workshopController.GetWorkshops)
	workshops.Post("/", workshopController.CreateWorkshop)
	workshops.Put("/:id", workshopController.UpdateWorkshop)
	workshops.Delete("/:id", workshopController.DeleteWorkshop)

	// Inspection workflow - one draft per session id
	drafts := api.Group("/drafts")
	drafts.Post("/", draftController.StartDraft)
	drafts.Get("/:id", draftController.GetDraft)
	drafts.Put("/:id/driver-info", draftController.SetDriverInfo)
	drafts.Post("/:id/answers", draftController.Answer)
	drafts.Put("/:id/notes", draftController.SetNote)
	drafts.Post("/:id/photos", draftController.AttachPhotos)
	drafts.Post("/:id/finish-checklist", draftController.FinishChecklist)
	drafts.Post("/:id/workshops", draftController.ToggleWorkshop)
	drafts.Post("/:id/finish-workshops", draftController.FinishWorkshops)
	drafts.Post("/:id/finalize", draftController.Finalize)
	drafts.Post("/:id/reset", draftController.ResetDraft)

	// Archived history
	inspections := api.Group("/inspections")
	inspections.Get("/", inspectionController.GetInspections)
	inspections.Get("/export", middleware.Verify(1), inspectionController.ExportInspections)
	inspections.Delete("/:id", middleware.Verify(1), inspectionController.DeleteInspection)

	// Request logs
	api.Get("/logs", middleware.Verify(3), Controllers.GetRequestLogs)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Dashboard with the most recent history
	app.Get("/", func(c *fiber.Ctx) error {
		records, err := deps.Inspections.List(c.UserContext())
		if err != nil {
			log.Println("Dashboard history unavailable:", err)
			records = nil
		}
		if len(records) > 20 {
			records = records[:20]
		}
		return c.Render("index", fiber.Map{"Inspections": records})
	})
}

// FiberConfig builds the app, mounts middleware and routes, and serves.
func FiberConfig(port string, deps Dependencies) {
	log.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
		// Multi-photo uploads come in as one multipart request
		BodyLimit: 32 * 1024 * 1024,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, deps)

	log.Fatal(app.Listen(":" + port))
}
