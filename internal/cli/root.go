package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/martijn/todolist/internal/adapter/quote"
	"github.com/martijn/todolist/internal/core/repository"
	"github.com/martijn/todolist/internal/core/service"
	"github.com/martijn/todolist/internal/infrastructure/redisstore"
	"github.com/martijn/todolist/internal/infrastructure/sqlite"
	"github.com/martijn/todolist/pkg/config"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	logFile *os.File
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "todolist",
	Short: "todolist - personal task lists",
	Long: `todolist is a small web application for personal to-do lists.

It provides:
- Account registration and cookie sessions
- Per-user tasks that can be added, completed and deleted
- A motivational quote above the task list
- User administration from the command line`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logFile, err = setupLogging(cfg.LogFile)
		if err != nil {
			return err
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yml)")
}

// setupLogging sends the standard logger to stderr and, when path is set,
// to the log file as well. The returned file is nil without a path.
func setupLogging(path string) (*os.File, error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetPrefix("[todolist] ")

	if path == "" {
		log.SetOutput(os.Stderr)
		return nil, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	log.SetOutput(io.MultiWriter(file, os.Stderr))
	return file, nil
}

// initServices initializes all services
func initServices(ctx context.Context) (*Services, error) {
	// Initialize database
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)

	var (
		sessionRepo repository.SessionRepository
		redisClient *redis.Client
	)
	switch cfg.SessionStore {
	case "redis":
		redisClient, err = redisstore.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		sessionRepo = redisstore.NewSessionRepository(redisClient)
	default:
		sessionRepo = sqlite.NewSessionRepository(db)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo)
	sessionService := service.NewSessionService(sessionRepo, userRepo, cfg.SessionSecret, cfg.JWTAlgorithm, cfg.SessionLifetime)
	taskService := service.NewTaskService(taskRepo)

	return &Services{
		DB:             db,
		Redis:          redisClient,
		UserRepo:       userRepo,
		AuthService:    authService,
		SessionService: sessionService,
		TaskService:    taskService,
		Quotes:         quote.NewClient(cfg.QuoteURL, cfg.QuoteTimeout),
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB             *sqlite.DB
	Redis          *redis.Client
	UserRepo       repository.UserRepository
	AuthService    *service.AuthService
	SessionService *service.SessionService
	TaskService    *service.TaskService
	Quotes         *quote.Client
}

// Close closes all resources
func (s *Services) Close() {
	if s.Redis != nil {
		s.Redis.Close()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
