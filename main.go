package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"PreStart/Config"
	"PreStart/CronJobs"
	"PreStart/Draft"
	"PreStart/EmailJS"
	"PreStart/FiberConfig"
	"PreStart/Imgur"
	"PreStart/Inspection"
	"PreStart/Models"
	"PreStart/Storage"
	"PreStart/middleware"
)

func main() {
	setupLogging()
	cfg := Config.Load()
	middleware.SecretKey = cfg.JWTSecret

	// The embedded database always runs: users and request logs live there even
	// when the inspection data is on Firestore.
	if err := Models.Connect(cfg.SQLitePath); err != nil {
		log.Fatal("Failed to connect database:", err)
	}
	seedAdminUser()

	var (
		inspections Storage.InspectionStore
		drivers     Storage.DriverStore
		workshops   Storage.WorkshopStore
	)
	switch cfg.StorageBackend {
	case Config.BackendFirestore:
		client, err := Storage.NewFirestoreClient(context.Background(), cfg.FirebaseCredentials)
		if err != nil {
			log.Fatal("Failed to initialize Firestore:", err)
		}
		inspections = Storage.NewFirestoreInspectionStore(client)
		drivers = Storage.NewFirestoreDriverStore(client)
		workshops = Storage.NewFirestoreWorkshopStore(client)
	default:
		inspections = Storage.NewGormInspectionStore(Models.DB)
		drivers = Storage.NewGormDriverStore(Models.DB)
		workshops = Storage.NewGormWorkshopStore(Models.DB)
	}
	seedReferenceData(drivers, workshops)

	emailRelay := EmailJS.NewClient(cfg.EmailJSServiceID, cfg.EmailJSTemplateID, cfg.EmailJSUserID)
	imageHost := Imgur.NewClient(cfg.ImgurClientID)
	service := Inspection.NewService(inspections, workshops, imageHost, emailRelay, cfg.FleetManagerEmail)

	digest := CronJobs.NewDigestMailer(inspections, emailRelay, cfg.FleetManagerEmail)
	if err := digest.Start(); err != nil {
		log.Println("Failed to start digest scheduler:", err)
	}

	FiberConfig.FiberConfig(cfg.Port, FiberConfig.Dependencies{
		Drivers:     drivers,
		Workshops:   workshops,
		Inspections: inspections,
		Registry:    Draft.NewRegistry(),
		Service:     service,
	})
}

// seedReferenceData makes sure the app starts operable: at least one driver and
// one workshop must exist before an inspection can be completed.
func seedReferenceData(drivers Storage.DriverStore, workshops Storage.WorkshopStore) {
	ctx := context.Background()

	existing, err := drivers.List(ctx)
	if err != nil {
		log.Println("Could not check driver roster:", err)
	} else if len(existing) == 0 {
		if _, err := drivers.Add(ctx, &Models.Driver{Name: "Gino Esposito"}); err != nil {
			log.Println("Could not seed default driver:", err)
		} else {
			log.Println("Default driver created")
		}
	}

	existingWorkshops, err := workshops.List(ctx)
	if err != nil {
		log.Println("Could not check workshop directory:", err)
	} else if len(existingWorkshops) == 0 {
		defaultWorkshop := Models.Workshop{Name: "MF King Engineering Ltd", Email: "gino@mfking.co.nz"}
		if _, err := workshops.Add(ctx, &defaultWorkshop); err != nil {
			log.Println("Could not seed default workshop:", err)
		} else {
			log.Println("Default workshop created")
		}
	}
}

func seedAdminUser() {
	var count int64
	if err := Models.DB.Model(&Models.User{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	passwordByte, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	admin := Models.User{
		Name:       "Admin",
		Email:      "admin",
		Password:   passwordByte,
		Permission: 4,
	}
	if err := Models.DB.Create(&admin).Error; err != nil {
		log.Println("Could not seed admin user:", err)
		return
	}
	log.Println("Seeded admin user - change the default password")
}

func setupLogging() {
	// Create logs directory if it doesn't exist
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	logFile, err := os.OpenFile("logs/application.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime)
}
