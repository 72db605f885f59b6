// Command ratings-consumer follows the match-completed topic and logs each
// recorded result. It is the attachment point for downstream consumers such
// as notification fan-out or external leaderboard sync.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/infra"
	"github.com/strikeball/platform/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("ratings consumer failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	reader := infra.NewKafkaReader(cfg.KafkaBrokers, "ratings-consumer", service.TopicMatchCompleted)
	defer reader.Close()

	logger.Info("ratings-consumer starting", "brokers", cfg.KafkaBrokers, "topic", service.TopicMatchCompleted)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("ratings-consumer shutting down")
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		var match domain.Match
		if err := json.Unmarshal(msg.Value, &match); err != nil {
			logger.Error("skip malformed event", "offset", msg.Offset, "error", err)
			continue
		}

		logger.Info("match completed",
			"match_id", match.ID,
			"title", match.Title,
			"score_team1", match.ScoreTeam1,
			"score_team2", match.ScoreTeam2,
			"winner_team_id", match.WinnerTeamID,
		)
	}
}
