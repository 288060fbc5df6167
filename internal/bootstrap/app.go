package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/evaluator"
	"interview-backend/internal/followup"
	"interview-backend/internal/interview"
	"interview-backend/internal/llm"
	openai "interview-backend/internal/llm/openai"
	"interview-backend/internal/questions"
	"interview-backend/internal/shared/config"
	"interview-backend/internal/shared/server"
	"interview-backend/internal/shared/storage/db"
	"interview-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	LLM    llm.Client

	UsersRepo    users.Repo
	UsersService *users.Service
	UsersHandler *users.Handler

	InterviewService *interview.Service
	InterviewHandler *interview.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	var userRepo users.Repo
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
	} else {
		userRepo = users.NewMemoryRepo()
	}
	userSvc := users.NewService(userRepo)

	rng := rand.New(&lockedSource{src: rand.NewSource(time.Now().UnixNano())})
	interviewSvc := &interview.Service{
		Generator:    questions.NewGenerator(llmClient, rng),
		Evaluator:    evaluator.New(llmClient, rng),
		FollowUp:     followup.NewEngine(rng),
		Sessions:     interview.NewStore(),
		TimerSeconds: cfg.QuestionTimerSeconds,
	}

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		LLM:              llmClient,
		UsersRepo:        userRepo,
		UsersService:     userSvc,
		UsersHandler:     users.NewHandler(userSvc),
		InterviewService: interviewSvc,
		InterviewHandler: interview.NewHandler(interviewSvc),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		InterviewHandler: app.InterviewHandler,
		UsersHandler:     app.UsersHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "openai" {
		return llm.Placeholder{}, nil
	}
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		log.Printf("bootstrap: OPENAI_API_KEY empty; question generation and evaluation run locally")
		return llm.Placeholder{}, nil
	}
	return openai.NewClient(apiKey, cfg.LLMModel)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

// lockedSource makes a rand.Source safe for the concurrent handlers that
// share the generator, evaluator, and follow-up engine.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}
