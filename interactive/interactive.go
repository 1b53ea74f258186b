package interactive

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/tmc/doublecheck/ui/keymap"
)

// ConfirmFn is called when a guarded button fires. id names the button.
type ConfirmFn func(ctx context.Context, id string) error

// Config defines parameters for creating an interactive session.
type Config struct {
	IdleLabel  string // Label of the guarded button while idle
	ArmedLabel string // Label of the guarded button while armed
	KeyMap     keymap.KeyMap
	Mouse      bool // Enable mouse cell motion reporting
	Debug      bool // Show the debug panel

	OnConfirm ConfirmFn
	Logger    *zap.Logger

	Stdin  io.Reader
	Stdout io.Writer
}

// Button ids.
const (
	DeleteButton = "delete"
	KeepButton   = "keep"
)

// Defaults
var (
	DefaultTitle     = "Press delete twice to confirm. Tab away or press esc to start over."
	DefaultKeepLabel = "Keep"
)

func (cfg Config) withDefaults() Config {
	if cfg.KeyMap.Activate.Keys() == nil {
		cfg.KeyMap = keymap.DefaultKeyMap()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.OnConfirm == nil {
		cfg.OnConfirm = func(context.Context, string) error { return nil }
	}
	return cfg
}
