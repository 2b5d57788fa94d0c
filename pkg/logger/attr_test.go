package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()

	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	assert.Len(t, attr.Value.Group(), 2)
}

func TestAttrHelpers(t *testing.T) {
	t.Parallel()

	type tier string

	assert.Equal(t, slog.Any("error", errors.New("x")).Key, logger.Error(errors.New("x")).Key)
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.True(t, slog.String("request_id", "r").Equal(logger.RequestID("r")))
	assert.True(t, slog.String("component", "loader").Equal(logger.Component("loader")))
	assert.True(t, slog.String("target", "es2020").Equal(logger.Tier(tier("es2020"))))
	assert.True(t, slog.String("url", "https://x").Equal(logger.URL("https://x")))
	assert.True(t, slog.String("method", "track").Equal(logger.Method("track")))
	assert.True(t, slog.String("user_agent", "ua").Equal(logger.UserAgent("ua")))
	assert.True(t, slog.Duration("duration", time.Second).Equal(logger.Duration(time.Second)))
}
