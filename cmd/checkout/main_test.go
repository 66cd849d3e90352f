package main

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-checkout/pkg/config"
	"go-checkout/pkg/logger"
)

func newObservedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{Logger: zap.New(core)}, logs
}

func demoConfig() *config.Config {
	return &config.Config{
		PaymentMethod:      "credit_card",
		DeliveryMethod:     "courier",
		NotificationMethod: "email",
	}
}

func TestRun_Success(t *testing.T) {
	// Arrange
	log, logs := newObservedLogger()

	// Act
	code := run(context.Background(), demoConfig(), log, false)

	// Assert
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if logs.FilterMessage("checkout completed").Len() != 1 {
		t.Errorf("expected one completed entry, got %v", logs.All())
	}
}

func TestRun_FailureIsLoggedBeforeExit(t *testing.T) {
	// Arrange
	log, logs := newObservedLogger()
	cfg := demoConfig()
	cfg.PaymentMethod = "cash"

	// Act
	code := run(context.Background(), cfg, log, false)

	// Assert
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if logs.FilterMessage("checkout failed").Len() != 1 {
		t.Errorf("expected the failure to be logged, got %v", logs.All())
	}
}

func TestRun_MissingRulePack(t *testing.T) {
	log, _ := newObservedLogger()
	cfg := demoConfig()
	cfg.DiscountRulesFile = filepath.Join(t.TempDir(), "missing.yaml")

	if code := run(context.Background(), cfg, log, false); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
}
