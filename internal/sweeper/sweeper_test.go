package sweeper

import (
	"context"
	"testing"

	"aura/pkg/chat"
	"aura/pkg/config"
)

func TestStartDisabledIsNoop(t *testing.T) {
	cancel, err := Start(context.Background(), config.SweepConfig{Enabled: false}, chat.NewEngine())
	if err != nil {
		t.Fatalf("disabled sweeper must not error: %v", err)
	}
	cancel()
}

func TestStartRejectsInvalidCron(t *testing.T) {
	_, err := Start(context.Background(), config.SweepConfig{Enabled: true, Cron: "not a cron"}, chat.NewEngine())
	if err == nil {
		t.Fatalf("expected error for invalid cron expression")
	}
}

func TestStartDefaultsCron(t *testing.T) {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	cancel, err := Start(ctx, config.SweepConfig{Enabled: true}, chat.NewEngine())
	if err != nil {
		t.Fatalf("empty cron should default: %v", err)
	}
	cancel()
}
