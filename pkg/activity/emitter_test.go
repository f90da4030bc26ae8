package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterDefaultsChannelAndEmits(t *testing.T) {
	hook := &CaptureHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true})
	require.True(t, em.Enabled())

	err := em.Emit(context.Background(), Event{
		Verb:       "settings.update",
		ObjectType: "settings",
		ObjectID:   "booking",
	})
	require.NoError(t, err)
	require.Len(t, hook.Events, 1)
	assert.Equal(t, "dashboard", hook.Events[0].Channel)
	assert.False(t, hook.Events[0].OccurredAt.IsZero())
}

func TestEmitterKeepsExplicitChannel(t *testing.T) {
	hook := &CaptureHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true, Channel: "spa"})

	require.NoError(t, em.Emit(context.Background(), Event{Verb: "v", ObjectType: "o"}))
	require.NoError(t, em.Emit(context.Background(), Event{Verb: "v", ObjectType: "o", Channel: "sms"}))
	assert.Equal(t, "spa", hook.Events[0].Channel)
	assert.Equal(t, "sms", hook.Events[1].Channel)
}

func TestEmitterDisabled(t *testing.T) {
	assert.False(t, NewEmitter(nil, Config{Enabled: true}).Enabled())

	hook := &CaptureHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: false})
	require.NoError(t, em.Emit(context.Background(), Event{Verb: "v", ObjectType: "o"}))
	assert.Empty(t, hook.Events)

	var nilEmitter *Emitter
	assert.False(t, nilEmitter.Enabled())
	assert.NoError(t, nilEmitter.Emit(context.Background(), Event{Verb: "v", ObjectType: "o"}))
}

func TestHooksJoinErrors(t *testing.T) {
	boom := errors.New("boom")
	capture := &CaptureHook{}
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return boom }),
		nil,
		capture,
	}

	err := hooks.Notify(context.Background(), Event{Verb: "v", ObjectType: "o"})
	require.ErrorIs(t, err, boom)
	assert.Len(t, capture.Events, 1, "later hooks still run")
}
