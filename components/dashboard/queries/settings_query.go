package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-spa-dashboard/components/settings"
)

// SettingsInput is empty; the booking settings document is a singleton.
type SettingsInput struct{}

type settingsService interface {
	Get(ctx context.Context) (settings.Document, error)
}

// SettingsQuery loads the booking settings.
type SettingsQuery struct {
	service settingsService
}

// NewSettingsQuery builds the query.
func NewSettingsQuery(service settingsService) *SettingsQuery {
	return &SettingsQuery{service: service}
}

var _ gocommand.Querier[SettingsInput, settings.Document] = (*SettingsQuery)(nil)

func (q *SettingsQuery) Query(ctx context.Context, _ SettingsInput) (settings.Document, error) {
	if q.service == nil {
		return settings.Document{}, errors.New("settings query requires service")
	}
	return q.service.Get(ctx)
}
