package activity

import (
	"context"
	"strings"
)

const defaultChannel = "dashboard"

// Config toggles emission and sets the default channel.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter stamps the default channel on events and forwards them to hooks.
type Emitter struct {
	hooks  Hooks
	config Config
}

// NewEmitter builds an emitter. It is disabled when no hooks are provided.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	if strings.TrimSpace(cfg.Channel) == "" {
		cfg.Channel = defaultChannel
	}
	return &Emitter{hooks: hooks, config: cfg}
}

// Enabled reports whether Emit will reach any hook.
func (e *Emitter) Enabled() bool {
	return e != nil && e.config.Enabled && len(e.hooks) > 0
}

// Emit forwards evt when the emitter is enabled.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(evt.Channel) == "" {
		evt.Channel = e.config.Channel
	}
	return e.hooks.Notify(ctx, evt)
}
