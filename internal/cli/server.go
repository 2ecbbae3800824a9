package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-trivia-service/internal/app"
	"daily-trivia-service/internal/config"
	"daily-trivia-service/internal/domain"
	"daily-trivia-service/internal/infra/memory"
	pgstore "daily-trivia-service/internal/infra/postgres"
	rediscache "daily-trivia-service/internal/infra/redis"
	transport "daily-trivia-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the daily trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var source app.QuestionRepository = memory.NewStaticQuestionBank(sampleQuestions())
	if pool != nil {
		source = pgstore.NewQuestionBank(pool)
	}

	questionsTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	var questions app.QuestionRepository
	if redisClient != nil {
		questions = rediscache.NewQuestionCache(redisClient, source, questionsTTL)
	} else {
		questions = memory.NewQuestionCache(source, questionsTTL)
	}

	var board app.LeaderboardRepository = memory.NewLeaderboard()
	if pool != nil {
		board = pgstore.NewLeaderboard(pool)
	}

	service := app.NewGameService(questions, board)
	restHandler := transport.NewHandler(service)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	restHandler.Register(mux)
	mux.HandleFunc("/ws/play", wsHandler.ServeWS)

	server := &http.Server{
		Addr:    ":" + finalPort,
		Handler: mux,
		// No blanket read/write timeouts: a play-through keeps its
		// websocket open well past any sane request deadline.
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("starting daily trivia service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuestions seeds a playable set for today; swap in Postgres for real data.
func sampleQuestions() map[domain.Day][]domain.Question {
	today := domain.DayOf(time.Now())
	return map[domain.Day][]domain.Question{
		today: {
			{
				ID: 1, Text: "Which planet is known as the Red Planet?", Day: today,
				Options: []domain.Option{
					{ID: 1, Text: "Venus"},
					{ID: 2, Text: "Mars", IsCorrect: true},
					{ID: 3, Text: "Jupiter"},
				},
			},
			{
				ID: 2, Text: "What is the largest ocean on Earth?", Day: today,
				Options: []domain.Option{
					{ID: 4, Text: "Atlantic"},
					{ID: 5, Text: "Indian"},
					{ID: 6, Text: "Pacific", IsCorrect: true},
				},
			},
			{
				ID: 3, Text: "How many continents are there?", Day: today,
				Options: []domain.Option{
					{ID: 7, Text: "Five"},
					{ID: 8, Text: "Six"},
					{ID: 9, Text: "Seven", IsCorrect: true},
				},
			},
		},
	}
}
