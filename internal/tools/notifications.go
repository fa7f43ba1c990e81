package tools

import (
	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// ListNotifications reads the Notification Center's currently visible
// groups, matching the PlatformAdapter interface directly since every
// backend advertises at least the PLATFORM_NOT_SUPPORTED default.
func (rt *Runtime) ListNotifications(appSubstring, textSubstring string, limit int) (*model.Envelope, error) {
	items, err := rt.Adapter.ListNotifications(adapter.NotificationFilter{
		AppSubstring:  appSubstring,
		TextSubstring: textSubstring,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}
	return rt.Envelope("list-notifications", map[string]any{"notifications": items}), nil
}

// notificationActor is satisfied by concrete adapters (currently only
// the darwin Notification Center session) that support index-addressed
// interaction beyond the read-only ListNotifications every adapter
// implements; an adapter that doesn't implement it reports
// PLATFORM_NOT_SUPPORTED rather than panicking on a failed assertion.
type notificationActor interface {
	NotificationAction(index int, label string) error
	DismissNotification(index int) error
	DismissAllNotifications() error
}

func (rt *Runtime) asNotificationActor() (notificationActor, error) {
	na, ok := rt.Adapter.(notificationActor)
	if !ok {
		return nil, desktoperr.New(desktoperr.PlatformNotSupported, "notification interaction is not supported on this host")
	}
	return na, nil
}

func (rt *Runtime) NotificationAction(index int, label string) (*model.Envelope, error) {
	na, err := rt.asNotificationActor()
	if err != nil {
		return nil, err
	}
	if err := na.NotificationAction(index, label); err != nil {
		return nil, err
	}
	return rt.Envelope("notification-action", map[string]any{"index": index, "label": label}), nil
}

func (rt *Runtime) DismissNotification(index int) (*model.Envelope, error) {
	na, err := rt.asNotificationActor()
	if err != nil {
		return nil, err
	}
	if err := na.DismissNotification(index); err != nil {
		return nil, err
	}
	return rt.Envelope("dismiss-notification", map[string]any{"index": index}), nil
}

func (rt *Runtime) DismissAllNotifications() (*model.Envelope, error) {
	na, err := rt.asNotificationActor()
	if err != nil {
		return nil, err
	}
	if err := na.DismissAllNotifications(); err != nil {
		return nil, err
	}
	return rt.Envelope("dismiss-all-notifications", nil), nil
}
