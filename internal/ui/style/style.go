// Package style maps test outcomes and log levels to the icons and colors operators see.
package style

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/kiln/internal/core/domain"
)

// Palette.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Iris   = lipgloss.Color("#8B5CF6")
)

// Mark is an icon drawn in one color. An empty Icon marks plain text.
type Mark struct {
	Icon  string
	Color lipgloss.Color
}

var outcomes = map[domain.Outcome]Mark{
	domain.OutcomePass:    {"✓", Green},
	domain.OutcomeSkip:    {"○", Yellow},
	domain.OutcomeNotRun:  {"~", Slate},
	domain.OutcomeFail:    {"✗", Red},
	domain.OutcomeCrash:   {"✗", Red},
	domain.OutcomeTimeout: {"✗", Red},
}

// Outcome returns the mark a case result is printed with.
func Outcome(o domain.Outcome) Mark {
	if m, ok := outcomes[o]; ok {
		return m
	}
	return Mark{"?", Slate}
}

// Level returns the mark a log record is printed with. Info records carry no icon.
func Level(level slog.Level) Mark {
	switch {
	case level >= slog.LevelError:
		return Mark{"✗", Red}
	case level >= slog.LevelWarn:
		return Mark{"!", Yellow}
	case level < slog.LevelInfo:
		return Mark{"~", Iris}
	default:
		return Mark{"", Slate}
	}
}
