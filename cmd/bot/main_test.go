package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdemidoff/trading-ai-bot/internal/config"
	"github.com/kdemidoff/trading-ai-bot/internal/notifications"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.AI.Provider = "mock"
	return cfg
}

func TestBuildProviders_Mock(t *testing.T) {
	primary, fallback := buildProviders(testConfig())

	assert.Equal(t, "enhanced_mock", primary.Name())
	assert.Equal(t, "enhanced_mock", fallback.Name())
}

func TestBuildProviders_Claude(t *testing.T) {
	cfg := testConfig()
	cfg.AI.Provider = "claude"
	cfg.AI.APIKey = "test-key"

	primary, fallback := buildProviders(cfg)

	assert.Equal(t, "claude", primary.Name())
	assert.Equal(t, "enhanced_mock", fallback.Name())
}

func TestBuildNotifier(t *testing.T) {
	cfg := testConfig()
	notifier := buildNotifier(cfg)
	_, ok := notifier.(*notifications.NoopNotifier)
	require.True(t, ok, "expected noop notifier without a telegram token")

	cfg.Notifications.Enabled = true
	cfg.Notifications.TelegramToken = "token"
	cfg.Notifications.TelegramChat = "chat"
	notifier = buildNotifier(cfg)
	_, ok = notifier.(*notifications.TelegramNotifier)
	assert.True(t, ok)
}
