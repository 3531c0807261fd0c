package tabsync

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-device-trust/internal/flow"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/models"
)

// Subscriber is the subscription side of [Bus].
type Subscriber interface {
	Subscribe(origin string, keys ...string) (<-chan models.StorageEvent, func())
}

// Dispatcher accepts flow events; implemented by [flow.Controller].
type Dispatcher interface {
	Dispatch(ev flow.Event) error
}

// SessionClearer forgets the user binding of a tab.
type SessionClearer interface {
	ClearDeviceSession(ctx context.Context) error
}

// Listener makes one tab follow login and logout performed in other tabs.
type Listener struct {
	origin    string
	bus       Subscriber
	identity  SessionClearer
	flow      Dispatcher
	nav       flow.Navigator
	dashboard string
	logger    *logger.Logger
}

func NewListener(origin string, bus Subscriber, identity SessionClearer, dispatcher Dispatcher, nav flow.Navigator, dashboard string, log *logger.Logger) *Listener {
	return &Listener{
		origin:    origin,
		bus:       bus,
		identity:  identity,
		flow:      dispatcher,
		nav:       nav,
		dashboard: dashboard,
		logger:    log,
	}
}

// Run implements [workers.Worker].
func (l *Listener) Run(ctx context.Context) error {
	events, cancel := l.bus.Subscribe(l.origin, models.KeyAuthenticatedUser, models.KeyLogoutState)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			l.handle(ctx, ev)
		}
	}
}

func (l *Listener) handle(ctx context.Context, ev models.StorageEvent) {
	if ev.Removed || ev.NewValue != "true" {
		return
	}

	switch ev.Key {
	case models.KeyAuthenticatedUser:
		l.logger.Info().Str("func", "Listener.handle").Str("from", ev.Origin).Msg("signed in from another tab")
		if l.nav.Current() != l.dashboard {
			l.nav.Navigate(l.dashboard)
		}
		l.dispatch(flow.RemoteLogin{})

	case models.KeyLogoutState:
		l.logger.Info().Str("func", "Listener.handle").Str("from", ev.Origin).Msg("signed out from another tab")
		if err := l.identity.ClearDeviceSession(ctx); err != nil {
			l.logger.Err(err).Str("func", "Listener.handle").Msg("failed to clear session after remote logout")
		}
		l.dispatch(flow.RemoteLogout{})
		if l.nav.Current() != flow.LoginPath {
			l.nav.Navigate(flow.LoginPath)
		}
	}
}

func (l *Listener) dispatch(ev flow.Event) {
	if err := l.flow.Dispatch(ev); err != nil && !errors.Is(err, flow.ErrBusy) {
		l.logger.Err(err).Str("func", "Listener.dispatch").Type("event", ev).Msg("flow rejected cross-tab event")
	}
}
