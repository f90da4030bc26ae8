package commands

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-spa-dashboard/components/settings"
)

// SaveSettingsInput replaces the booking settings document. Reset ignores
// Document and restores the defaults.
type SaveSettingsInput struct {
	ActorID  string            `json:"actor_id"`
	Document settings.Document `json:"document"`
	Reset    bool              `json:"reset,omitempty"`
}

type settingsService interface {
	Save(ctx context.Context, actor string, doc settings.Document) (settings.Document, error)
	Reset(ctx context.Context, actor string) (settings.Document, error)
}

// SaveSettingsCommand wraps settings.Service.Save and Reset.
type SaveSettingsCommand struct {
	service   settingsService
	telemetry Telemetry
}

// NewSaveSettingsCommand creates the command.
func NewSaveSettingsCommand(service settingsService, telemetry Telemetry) *SaveSettingsCommand {
	return &SaveSettingsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveSettingsInput] = (*SaveSettingsCommand)(nil)

func (c *SaveSettingsCommand) Execute(ctx context.Context, msg SaveSettingsInput) error {
	if c.service == nil {
		return fmt.Errorf("%w: settings.save", errMissingService)
	}
	var (
		saved settings.Document
		err   error
	)
	if msg.Reset {
		saved, err = c.service.Reset(ctx, msg.ActorID)
	} else {
		saved, err = c.service.Save(ctx, msg.ActorID, msg.Document)
	}
	if err != nil {
		return err
	}
	summary := saved.Summarize()
	c.telemetry.Record(ctx, "spa.settings.save", map[string]any{
		"actor_id":      msg.ActorID,
		"reset":         msg.Reset,
		"open_days":     summary.OpenDays,
		"enabled_rooms": summary.EnabledRooms,
	})
	return nil
}
