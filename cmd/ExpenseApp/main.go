package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	database "github.com/expenseapp/ExpenseApp/db"
	"github.com/expenseapp/ExpenseApp/internal/auth"
	"github.com/expenseapp/ExpenseApp/internal/finance/application"
	"github.com/expenseapp/ExpenseApp/internal/finance/infrastructure"
	"github.com/expenseapp/ExpenseApp/internal/finance/interfaces"
	"github.com/expenseapp/ExpenseApp/internal/media"
	"github.com/expenseapp/ExpenseApp/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router          *http.ServeMux
	dbService       *database.DBService
	authHandler     *auth.Handler
	userHandler     *user.Handler
	authService     auth.Service
	expenseHandler  *interfaces.ExpenseHandler
	incomeHandler   *interfaces.IncomeHandler
	limitHandler    *interfaces.SpendingLimitHandler
	plannerHandler  *interfaces.PlannerHandler
	categoryHandler *interfaces.CategoryHandler
}

func NewServer(
	dbService *database.DBService,
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	expenseHandler *interfaces.ExpenseHandler,
	incomeHandler *interfaces.IncomeHandler,
	limitHandler *interfaces.SpendingLimitHandler,
	plannerHandler *interfaces.PlannerHandler,
	categoryHandler *interfaces.CategoryHandler,
) *Server {
	return &Server{
		router:          http.NewServeMux(),
		dbService:       dbService,
		authHandler:     authHandler,
		userHandler:     userHandler,
		authService:     authService,
		expenseHandler:  expenseHandler,
		incomeHandler:   incomeHandler,
		limitHandler:    limitHandler,
		plannerHandler:  plannerHandler,
		categoryHandler: categoryHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/auth/2fa/verify", http.HandlerFunc(s.authHandler.HandleVerifyTwoFactor))
	publicRoutes.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))
	publicRoutes.Handle("GET /api/health", http.HandlerFunc(s.handleHealth))

	withSession := s.authService.SessionAuthMiddleware()

	// Protected routes (session cookie, with remember-me fallback)
	protectedRoutes := http.NewServeMux()

	// account
	protectedRoutes.Handle("GET /api/protected/profile", withSession(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))
	protectedRoutes.Handle("PUT /api/protected/account", withSession(http.HandlerFunc(s.userHandler.HandleUpdateAccount)))
	protectedRoutes.Handle("POST /api/protected/account/picture", withSession(http.HandlerFunc(s.userHandler.HandleUploadAvatar)))
	protectedRoutes.Handle("POST /api/protected/change-password", withSession(http.HandlerFunc(s.userHandler.HandleChangePassword)))

	// two-factor management
	protectedRoutes.Handle("POST /api/protected/2fa/register", withSession(http.HandlerFunc(s.authHandler.HandleSetupTwoFactor)))
	protectedRoutes.Handle("POST /api/protected/2fa/verify-registration", withSession(http.HandlerFunc(s.authHandler.HandleConfirmTwoFactor)))
	protectedRoutes.Handle("DELETE /api/protected/2fa/disable", withSession(http.HandlerFunc(s.authHandler.HandleDisableTwoFactor)))

	// EXPENSES API
	protectedRoutes.Handle("POST /api/protected/expenses", withSession(http.HandlerFunc(s.expenseHandler.CreateExpense)))
	protectedRoutes.Handle("GET /api/protected/expenses", withSession(http.HandlerFunc(s.expenseHandler.GetUserExpenses)))
	protectedRoutes.Handle("GET /api/protected/expenses/{expenseID}", withSession(http.HandlerFunc(s.expenseHandler.GetExpense)))
	protectedRoutes.Handle("PUT /api/protected/expenses/{expenseID}", withSession(http.HandlerFunc(s.expenseHandler.UpdateExpense)))
	protectedRoutes.Handle("DELETE /api/protected/expenses/{expenseID}", withSession(http.HandlerFunc(s.expenseHandler.DeleteExpense)))

	// INCOME API
	protectedRoutes.Handle("POST /api/protected/income", withSession(http.HandlerFunc(s.incomeHandler.CreateIncome)))
	protectedRoutes.Handle("GET /api/protected/income", withSession(http.HandlerFunc(s.incomeHandler.GetUserIncome)))
	protectedRoutes.Handle("GET /api/protected/income/{incomeID}", withSession(http.HandlerFunc(s.incomeHandler.GetIncome)))
	protectedRoutes.Handle("PUT /api/protected/income/{incomeID}", withSession(http.HandlerFunc(s.incomeHandler.UpdateIncome)))
	protectedRoutes.Handle("DELETE /api/protected/income/{incomeID}", withSession(http.HandlerFunc(s.incomeHandler.DeleteIncome)))

	// SPENDING LIMITS API
	protectedRoutes.Handle("POST /api/protected/limits", withSession(http.HandlerFunc(s.limitHandler.CreateLimit)))
	protectedRoutes.Handle("GET /api/protected/limits", withSession(http.HandlerFunc(s.limitHandler.GetUserLimits)))
	protectedRoutes.Handle("GET /api/protected/limits/{limitID}", withSession(http.HandlerFunc(s.limitHandler.GetLimit)))
	protectedRoutes.Handle("PUT /api/protected/limits/{limitID}", withSession(http.HandlerFunc(s.limitHandler.UpdateLimit)))
	protectedRoutes.Handle("DELETE /api/protected/limits/{limitID}", withSession(http.HandlerFunc(s.limitHandler.DeleteLimit)))

	// PLANNER API
	protectedRoutes.Handle("POST /api/protected/planner", withSession(http.HandlerFunc(s.plannerHandler.CreateItem)))
	protectedRoutes.Handle("GET /api/protected/planner", withSession(http.HandlerFunc(s.plannerHandler.GetUserItems)))
	protectedRoutes.Handle("GET /api/protected/planner/{itemID}", withSession(http.HandlerFunc(s.plannerHandler.GetItem)))
	protectedRoutes.Handle("PUT /api/protected/planner/{itemID}", withSession(http.HandlerFunc(s.plannerHandler.UpdateItem)))
	protectedRoutes.Handle("DELETE /api/protected/planner/{itemID}", withSession(http.HandlerFunc(s.plannerHandler.DeleteItem)))

	// CATEGORIES
	protectedRoutes.Handle("GET /api/protected/categories", withSession(http.HandlerFunc(s.categoryHandler.GetCategories)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(mediaRoot()))))
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func mediaRoot() string {
	root := os.Getenv("MEDIA_ROOT")
	if root == "" {
		root = "static"
	}
	return root
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := dbService.Migrate(); err != nil {
		log.Fatalf("Could not run migrations: %v", err)
	}

	mediaStore, err := media.NewStore(mediaRoot())
	if err != nil {
		log.Fatalf("Could not initialize media storage: %v", err)
	}

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService, mediaStore)

	sessionManager := auth.NewSessionManager()
	rememberManager := auth.NewRememberTokenManager()
	authenticator := &auth.Authenticator{}

	authService := auth.NewAuthService(userService, sessionManager, rememberManager, authenticator)
	authHandler := auth.NewHandler(authService)

	expenseRepo := infrastructure.NewExpenseRepository(dbService.DB)
	incomeRepo := infrastructure.NewIncomeRepository(dbService.DB)
	limitRepo := infrastructure.NewSpendingLimitRepository(dbService.DB)
	plannerRepo := infrastructure.NewPlannerItemRepository(dbService.DB)

	expenseService := application.NewExpenseService(expenseRepo, limitRepo)
	incomeService := application.NewIncomeService(incomeRepo)
	limitService := application.NewSpendingLimitService(limitRepo)
	plannerService := application.NewPlannerService(plannerRepo)

	expenseHandler := interfaces.NewExpenseHandler(expenseService, respondJSON, respondError)
	incomeHandler := interfaces.NewIncomeHandler(incomeService, respondJSON, respondError)
	limitHandler := interfaces.NewSpendingLimitHandler(limitService, respondJSON, respondError)
	plannerHandler := interfaces.NewPlannerHandler(plannerService, respondJSON, respondError)
	categoryHandler := interfaces.NewCategoryHandler(respondJSON, respondError)

	server := NewServer(dbService, authHandler, authService, userHandler, expenseHandler, incomeHandler, limitHandler, plannerHandler, categoryHandler)
	server.RegisterRoutes()

	if err := startSessionCleanupScheduler(authService); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	handler := loggingMiddleware(http.HandlerFunc(server.router.ServeHTTP))
	log.Println("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func startSessionCleanupScheduler(authService auth.Service) error {
	c := cron.New()
	_, err := c.AddFunc("@every 1h", func() {
		removed := authService.DeleteExpiredSessions()
		if removed > 0 {
			log.Printf("Removed %d expired sessions", removed)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
