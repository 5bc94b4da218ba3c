package main

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/adityarawat/manch-ui/internal/auth"
	"github.com/adityarawat/manch-ui/internal/clickhouse"
	"github.com/adityarawat/manch-ui/internal/config"
	"github.com/adityarawat/manch-ui/internal/dal"
	"github.com/adityarawat/manch-ui/internal/game"
	"github.com/adityarawat/manch-ui/internal/handlers"
	"github.com/adityarawat/manch-ui/internal/logger"
	"github.com/adityarawat/manch-ui/internal/mocks"
	"github.com/adityarawat/manch-ui/internal/pubsub"
)

var (
	cfg          *config.Config
	templates    *template.Template
	dataStore    dal.MarketDAL
	gameRegistry *game.Registry
	api          *handlers.APIHandlers
	authProvider auth.AuthProvider
	ps           interface {
		Publish(pubsub.Event)
		Subscribe() chan pubsub.Event
		Unsubscribe(chan pubsub.Event)
	}
	chClient interface {
		GetAllPopularity() (map[string]int, error)
		SyncPopularity(func(string, int) error) error
		Close() error
	}
)

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.InitWithLevel(cfg.LogLevel)
	logger.Info("Starting Manch service", "environment", cfg.Environment)

	// Initialize the marketplace store
	switch cfg.DBDriver {
	case "memory":
		dataStore = dal.NewMemoryDAL()
		logger.Info("Using in-memory data store")
	case "sqlite":
		dataStore, err = dal.NewSQLiteDAL(cfg.SQLiteFile)
		if err != nil {
			logger.Error("Failed to initialize SQLite", "error", err)
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		logger.Info("Connected to SQLite database", "file", cfg.SQLiteFile)
	case "postgres":
		dataStore, err = dal.NewPostgresDAL(cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize Postgres", "error", err)
			log.Fatalf("Failed to initialize Postgres: %v", err)
		}
		logger.Info("Connected to Postgres database")
	default:
		logger.Error("Unknown DB_DRIVER", "driver", cfg.DBDriver)
		log.Fatalf("Unknown DB_DRIVER: %s (valid: memory, sqlite, postgres)", cfg.DBDriver)
	}

	// Pub/sub: embedded NATS in development, real NATS JetStream in production
	if cfg.IsDevelopment() {
		logger.Info("Starting embedded NATS server for local development")
		embeddedNats, err := pubsub.NewEmbeddedNATSPubSub(pubsub.EmbeddedNATSOptions{
			Port:       0, // Random available port
			Subject:    cfg.NATSSubject,
			StreamName: "MANCH_EVENTS",
			StoreDir:   "", // In-memory storage
		})
		if err != nil {
			logger.Error("Failed to initialize embedded NATS", "error", err)
			log.Fatalf("Failed to initialize embedded NATS: %v", err)
		}
		ps = embeddedNats
		logger.Info("Embedded NATS server ready", "url", embeddedNats.GetServerURL())
	} else {
		realNats, err := pubsub.NewNATSPubSub(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			logger.Error("Failed to initialize NATS", "error", err)
			log.Fatalf("Failed to initialize NATS: %v", err)
		}
		ps = realNats
		logger.Info("Connected to NATS", "url", cfg.NATSURL)
	}

	// ClickHouse feeds experience popularity; development runs against the
	// mock client so the sync path stays live without a warehouse
	if cfg.IsDevelopment() {
		chClient = mocks.NewMockClickHouseClient()
	} else {
		client, chErr := clickhouse.NewClient(cfg.ClickHouseAddr, cfg.ClickHouseDB, cfg.ClickHouseUser, cfg.ClickHousePassword)
		if chErr != nil {
			logger.Error("Failed to initialize ClickHouse", "error", chErr, "address", cfg.ClickHouseAddr)
			log.Fatalf("Failed to initialize ClickHouse: %v", chErr)
		}
		chClient = client
		logger.Info("Connected to ClickHouse", "address", cfg.ClickHouseAddr, "database", cfg.ClickHouseDB)
	}

	// Periodic popularity sync from ClickHouse into the catalog
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		syncPopularity()

		for range ticker.C {
			syncPopularity()
		}
	}()

	// Game sessions live in memory; sweep idle ones periodically
	gameRegistry = game.NewRegistry()
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			gameRegistry.Sweep(30 * time.Minute)
		}
	}()

	// Authentication: mock in development, Authentik OAuth2 in production
	if cfg.IsDevelopment() {
		logger.Info("Using mock authentication for local development")
		authProvider = auth.NewMockAuth()
	} else {
		if cfg.AuthentikBaseURL == "" || cfg.AuthentikClientID == "" || cfg.AuthentikClientSecret == "" {
			logger.Error("AUTHENTIK_BASE_URL, AUTHENTIK_CLIENT_ID, and AUTHENTIK_CLIENT_SECRET are required for production")
			log.Fatal("AUTHENTIK_BASE_URL, AUTHENTIK_CLIENT_ID, and AUTHENTIK_CLIENT_SECRET are required for production")
		}

		authProvider = auth.NewAuthentikAuth(&auth.AuthentikConfig{
			BaseURL:      cfg.AuthentikBaseURL,
			ClientID:     cfg.AuthentikClientID,
			ClientSecret: cfg.AuthentikClientSecret,
			RedirectURL:  cfg.AuthentikRedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
		})
		logger.Info("Connected to Authentik", "url", cfg.AuthentikBaseURL)
	}

	// Load templates
	templates, err = template.ParseGlob("templates/*.html")
	if err != nil {
		logger.Error("Failed to parse templates", "error", err)
		log.Fatalf("Failed to parse templates: %v", err)
	}
	logger.Info("Templates loaded successfully")

	// Set up HTTP routes
	mux := http.NewServeMux()

	// Static files
	fs := http.FileServer(http.Dir("static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	// Image serving from database (fallback to static files if not in DB)
	mux.HandleFunc("/images/", serveImageHandler)

	// Auth routes (public)
	mux.HandleFunc("/auth/login", authProvider.LoginHandler)
	mux.HandleFunc("/auth/callback", authProvider.CallbackHandler)
	mux.HandleFunc("/auth/logout", authProvider.LogoutHandler)

	// Page routes
	mux.HandleFunc("/", homeHandler)
	mux.HandleFunc("/experiences", experiencesHandler)
	mux.HandleFunc("/experiences/view", experienceHandler)
	mux.HandleFunc("/play", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/play/select", http.StatusSeeOther)
	})
	mux.HandleFunc("/play/select", playSelectHandler)
	mux.HandleFunc("/play/allocate", playAllocateHandler)
	mux.HandleFunc("/play/quiz", playQuizHandler)
	mux.HandleFunc("/play/results", playResultsHandler)
	mux.HandleFunc("/account", authProvider.Middleware(accountHandler))

	// API routes
	api = handlers.NewAPIHandlers(dataStore, gameRegistry, convertPubSub(ps))

	// Marketplace API
	mux.HandleFunc("/api/experiences", api.ListExperiences)
	mux.HandleFunc("/api/experiences/get", api.GetExperience)
	mux.HandleFunc("/api/inquiries/add", api.AddInquiry)
	mux.HandleFunc("/api/inquiries", authProvider.Middleware(api.ListInquiries))
	mux.HandleFunc("/api/profile", authProvider.Middleware(profileHandler))

	// Game API
	mux.HandleFunc("/api/game/state", api.GetGameState)
	mux.HandleFunc("/api/game/content", api.GameContent)
	mux.HandleFunc("/api/game/select", api.SelectCandidate)
	mux.HandleFunc("/api/game/draft", api.GetAllocationDraft)
	mux.HandleFunc("/api/game/draft/adjust", api.AdjustAllocationDraft)
	mux.HandleFunc("/api/game/draft/auto", api.AutoBalanceAllocationDraft)
	mux.HandleFunc("/api/game/allocate", api.AllocateMetrics)
	mux.HandleFunc("/api/game/answer", api.AnswerQuestion)
	mux.HandleFunc("/api/game/reset", api.ResetGame)
	mux.HandleFunc("/api/game/results", api.GameResults)

	// SSE for realtime updates
	mux.HandleFunc("/api/events", api.EventsSSE)

	// Health check endpoints
	mux.HandleFunc("/api/health", healthHandler)
	mux.HandleFunc("/healthz", livenessHandler) // Kubernetes liveness probe
	mux.HandleFunc("/readyz", readinessHandler) // Kubernetes readiness probe

	addr := "0.0.0.0:" + cfg.Port
	logger.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Server failed", "error", err)
		log.Fatal(err)
	}
}

func homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/experiences", http.StatusSeeOther)
}

func renderPage(w http.ResponseWriter, page string, data map[string]interface{}) {
	tmpl, err := template.ParseFiles("templates/base.html", "templates/"+page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func experiencesHandler(w http.ResponseWriter, r *http.Request) {
	experiences, err := dataStore.ListExperiences()
	if err != nil {
		http.Error(w, "Failed to load experiences", http.StatusInternalServerError)
		return
	}

	renderPage(w, "experiences.html", map[string]interface{}{
		"Experiences": experiences,
	})
}

func experienceHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	experience, err := dataStore.GetExperience(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	renderPage(w, "experience.html", map[string]interface{}{
		"Experience": experience,
	})
}

// gameStateFor resolves the session for this browser and returns its state
func gameStateFor(w http.ResponseWriter, r *http.Request) (string, *game.Store) {
	sessionID := api.GameSession(w, r)
	return sessionID, gameRegistry.Get(sessionID)
}

func playSelectHandler(w http.ResponseWriter, r *http.Request) {
	_, store := gameStateFor(w, r)

	renderPage(w, "select.html", map[string]interface{}{
		"Candidates": game.Candidates(),
		"State":      store.Snapshot(),
	})
}

func playAllocateHandler(w http.ResponseWriter, r *http.Request) {
	_, store := gameStateFor(w, r)
	state := store.Snapshot()

	if state.SelectedCandidateID == "" {
		http.Redirect(w, r, "/play/select", http.StatusSeeOther)
		return
	}
	if state.IsGameFinished {
		http.Redirect(w, r, "/play/results", http.StatusSeeOther)
		return
	}

	candidate, _ := game.CandidateByID(state.SelectedCandidateID)
	renderPage(w, "allocate.html", map[string]interface{}{
		"Candidate": candidate,
		"Metrics":   game.Metrics(),
		"Budget":    game.AllocationBudget,
		"MetricCap": game.PerMetricCap,
		"Draft":     store.DraftPoints(),
		"Remaining": store.DraftRemaining(),
		"State":     state,
	})
}

func playQuizHandler(w http.ResponseWriter, r *http.Request) {
	_, store := gameStateFor(w, r)
	state := store.Snapshot()

	if state.SelectedCandidateID == "" {
		http.Redirect(w, r, "/play/select", http.StatusSeeOther)
		return
	}
	if state.IsGameFinished {
		http.Redirect(w, r, "/play/results", http.StatusSeeOther)
		return
	}
	if !state.IsGameStarted {
		http.Redirect(w, r, "/play/allocate", http.StatusSeeOther)
		return
	}

	candidate, _ := game.CandidateByID(state.SelectedCandidateID)
	questions := game.QuestionsFor(state.SelectedCandidateID)
	renderPage(w, "quiz.html", map[string]interface{}{
		"Candidate":      candidate,
		"Metrics":        game.Metrics(),
		"Question":       questions[state.CurrentQuestionIndex],
		"QuestionNumber": state.CurrentQuestionIndex + 1,
		"QuestionCount":  len(questions),
		"State":          state,
	})
}

func playResultsHandler(w http.ResponseWriter, r *http.Request) {
	_, store := gameStateFor(w, r)
	state := store.Snapshot()

	if state.SelectedCandidateID == "" {
		http.Redirect(w, r, "/play/select", http.StatusSeeOther)
		return
	}
	if !state.IsGameFinished {
		http.Redirect(w, r, "/play/quiz", http.StatusSeeOther)
		return
	}

	candidate, _ := game.CandidateByID(state.SelectedCandidateID)
	renderPage(w, "results.html", map[string]interface{}{
		"Candidate": candidate,
		"Metrics":   game.Metrics(),
		"Result":    game.ComputeResult(state),
		"State":     state,
	})
}

func accountHandler(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r)

	var profile interface{}
	if p, err := dataStore.GetProfile(user.ID); err == nil {
		profile = p
	}

	renderPage(w, "account.html", map[string]interface{}{
		"User":    user,
		"Profile": profile,
		"IsAdmin": auth.IsAdmin(user),
	})
}

// profileHandler dispatches /api/profile by method
func profileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		api.SaveProfile(w, r)
		return
	}
	api.GetProfile(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if dataStore != nil {
		_, err := dataStore.ListExperiences()
		if err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "not_configured",
		}
	}

	if !cfg.IsDevelopment() {
		_, err := chClient.GetAllPopularity()
		if err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			checks["clickhouse"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
		} else {
			checks["clickhouse"] = map[string]interface{}{
				"status": "healthy",
			}
		}
	}

	if !cfg.IsDevelopment() && ps != nil {
		// Connection health is handled internally by the NATS client
		checks["nats"] = map[string]interface{}{
			"status": "healthy",
		}
	}

	checks["gameSessions"] = map[string]interface{}{
		"status": "healthy",
		"count":  gameRegistry.Len(),
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(response)
}

// livenessHandler handles Kubernetes liveness probes
func livenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
	})
}

// readinessHandler handles Kubernetes readiness probes; the catalog store
// must be reachable before serving traffic
func readinessHandler(w http.ResponseWriter, r *http.Request) {
	if dataStore != nil {
		_, err := dataStore.ListExperiences()
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":    "not_ready",
				"reason":    "database_unavailable",
				"timestamp": time.Now().Unix(),
			})
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now().Unix(),
	})
}

// serveImageHandler serves images from the database or falls back to static files
func serveImageHandler(w http.ResponseWriter, r *http.Request) {
	if pgDAL, ok := dataStore.(*dal.PostgresDAL); ok {
		imageData, err := pgDAL.GetExperienceImageByPath(r.URL.Path)
		if err == nil && len(imageData) > 0 {
			w.Header().Set("Content-Type", "image/png")
			w.Header().Set("Cache-Control", "public, max-age=31536000") // Cache for 1 year
			w.Write(imageData)
			return
		}
	}

	http.ServeFile(w, r, "static"+r.URL.Path)
}

// syncPopularity pulls the latest popularity scores from ClickHouse into the catalog
func syncPopularity() {
	logger.Info("Syncing experience popularity from ClickHouse")

	err := chClient.SyncPopularity(func(experienceID string, score int) error {
		_, err := dataStore.SetPopularity(experienceID, score)
		return err
	})
	if err != nil {
		logger.Error("Failed to sync popularity", "error", err)
	} else {
		logger.Info("Popularity synced successfully")
	}
}

// convertPubSub wraps the NATS pubsub in a local PubSub bridge: publishes go
// to NATS and NATS events come back to local subscribers
func convertPubSub(ps interface {
	Publish(pubsub.Event)
	Subscribe() chan pubsub.Event
	Unsubscribe(chan pubsub.Event)
}) *pubsub.PubSub {
	return pubsub.NewWithUpstream(ps)
}
