package style_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/ui/style"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, style.Mark{Icon: "✓", Color: style.Green}, style.Outcome(domain.OutcomePass))
	assert.Equal(t, style.Mark{Icon: "○", Color: style.Yellow}, style.Outcome(domain.OutcomeSkip))
	assert.Equal(t, style.Mark{Icon: "~", Color: style.Slate}, style.Outcome(domain.OutcomeNotRun))
	for _, o := range []domain.Outcome{domain.OutcomeFail, domain.OutcomeCrash, domain.OutcomeTimeout} {
		assert.Equal(t, style.Red, style.Outcome(o).Color, o)
	}
	assert.Equal(t, "?", style.Outcome("bogus").Icon)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "✗", style.Level(slog.LevelError).Icon)
	assert.Equal(t, "!", style.Level(slog.LevelWarn).Icon)
	assert.Equal(t, "~", style.Level(slog.LevelDebug).Icon)
	assert.Empty(t, style.Level(slog.LevelInfo).Icon)
}
