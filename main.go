package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"casetrack/backend/database"
	"casetrack/backend/handlers"
	"casetrack/backend/middleware"
	"casetrack/backend/migrations"

	"github.com/gorilla/mux"
)

func main() {
	// Parse command line flags
	noExit := flag.Bool("no-exit", false, "Don't exit after database reset")
	resetDB := flag.Bool("reset-db", false, "Force reset the database")
	flag.Parse()

	// Check if we're running in database reset mode
	isResetDB := os.Getenv("RESET_DB") == "true" || *resetDB

	// Check environment
	isDevelopment := os.Getenv("APP_ENV") != "production" &&
		os.Getenv("ENVIRONMENT") != "production" &&
		os.Getenv("ENV") != "production"

	if isResetDB {
		log.Println("Running in database reset mode")
	}

	if isDevelopment {
		log.Println("Running in development environment")
	}

	// Initialize database
	err := database.InitDB()
	if err != nil {
		log.Fatal(err)
	}

	// Run migrations (including test data seeding if in dev/PR environment)
	err = migrations.RunMigrations(database.DB)
	if err != nil {
		log.Printf("Warning: Failed to run migrations: %v", err)
	}

	// If running in reset mode, exit after database setup is complete
	// unless --no-exit flag is provided
	if isResetDB && !*noExit {
		log.Println("Database reset completed successfully. Exiting.")
		return
	}

	// Initialize Firebase Admin SDK
	log.Println("Initializing Firebase Admin SDK...")
	err = middleware.InitializeFirebase()
	if err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	}

	// Create router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	// Serve static files from the "dist" directory for the frontend
	fs := http.FileServer(http.Dir("./dist"))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("", fs))
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Don't log asset requests
		if !strings.HasPrefix(r.URL.Path, "/assets/") {
			log.Printf("Serving index.html for path: %s", r.URL.Path)
		}
		http.ServeFile(w, r, "./dist/index.html")
	}).Methods("GET")

	// Configure the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start the server
	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// List views; each accepts an optional filters query parameter
	protectedRouter.HandleFunc("/tickets", handlers.GetTickets).Methods("GET")
	protectedRouter.HandleFunc("/tickets", handlers.AddTicket).Methods("POST")
	protectedRouter.HandleFunc("/stories", handlers.GetStories).Methods("GET")
	protectedRouter.HandleFunc("/stories", handlers.AddStory).Methods("POST")
	protectedRouter.HandleFunc("/testcases", handlers.GetTestCases).Methods("GET")
	protectedRouter.HandleFunc("/testcases", handlers.AddTestCase).Methods("POST")

	// Field metadata for the filter editor
	protectedRouter.HandleFunc("/fields", handlers.GetFields).Methods("GET")

	// Last-used filter slot
	protectedRouter.HandleFunc("/filters/last", handlers.GetLastFilter).Methods("GET")
	protectedRouter.HandleFunc("/filters/last", handlers.SaveLastFilter).Methods("PUT")

	// Filter presets
	protectedRouter.HandleFunc("/filters/presets", handlers.GetFilterPresets).Methods("GET")
	protectedRouter.HandleFunc("/filters/presets", handlers.CreateFilterPreset).Methods("POST")
	protectedRouter.HandleFunc("/filters/presets/{id}", handlers.GetFilterPreset).Methods("GET")
	protectedRouter.HandleFunc("/filters/presets/{id}", handlers.DeleteFilterPreset).Methods("DELETE")

	// User routes
	protectedRouter.HandleFunc("/users", handlers.GetUsers).Methods("GET")
}
