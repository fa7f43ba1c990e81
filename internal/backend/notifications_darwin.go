//go:build darwin

package backend

import (
	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/surface"
	pkgelement "github.com/lahfir/agent-desktop-sub000/pkg/element"
)

// notificationCenterProcessNames lists the processes that have owned the
// Notification Center's accessibility tree across macOS releases; newer
// systems fold it into NotificationCenter, older ones exposed it under
// SystemUIServer. Both are tried so this keeps working across versions
// without a version check.
var notificationCenterProcessNames = []string{"NotificationCenter", "SystemUIServer"}

func (b *Backend) notificationCenterLocator() surface.Locator {
	return func() (adapter.Element, error) {
		for _, name := range notificationCenterProcessNames {
			app, err := b.finder.ApplicationByName(name)
			if err != nil {
				continue
			}
			if err := app.LoadChildren(); err != nil {
				continue
			}
			if win := childWithRole(app, pkgelement.RoleWindow); win != nil {
				return adapter.WrapElement(win), nil
			}
		}
		return nil, desktoperr.New(desktoperr.ElementNotFound, "notification center window not found")
	}
}

// notificationCenterOpener implements the darwin default resolved by the
// Open Question on opening the center: press the menu-bar status item
// that hosts it. macOS does not expose a stable accessibility identifier
// for this item across releases, so this presses the rightmost item of
// SystemUIServer's menu bar, which is where the Notification Center /
// Control Center entry point has lived since its introduction; this is
// the "pluggable, version-sensitive" surface the Surface Engine's Open
// Question explicitly calls out, not a hard platform guarantee.
func (b *Backend) notificationCenterOpener() surface.Opener {
	return func(ad adapter.PlatformAdapter) error {
		app, err := b.finder.ApplicationByName("SystemUIServer")
		if err != nil {
			return desktoperr.New(desktoperr.PlatformNotSupported, "SystemUIServer process not found")
		}
		if err := app.LoadChildren(); err != nil {
			return desktoperr.New(desktoperr.ActionFailed, "could not read SystemUIServer menu bar")
		}
		menuBar := childWithRole(app, pkgelement.RoleMenuBar)
		if menuBar == nil {
			return desktoperr.New(desktoperr.ActionFailed, "SystemUIServer has no menu bar")
		}
		if err := menuBar.LoadChildren(); err != nil || len(menuBar.Children) == 0 {
			return desktoperr.New(desktoperr.ActionFailed, "SystemUIServer menu bar has no status items")
		}
		item := menuBar.Children[len(menuBar.Children)-1]
		return item.PerformAction("AXPress")
	}
}

func childWithRole(el *pkgelement.Element, role pkgelement.Role) *pkgelement.Element {
	for _, c := range el.Children {
		if c.Role == role {
			return c
		}
	}
	return nil
}

// ListNotifications opens a scoped Notification Center session (per
// spec.md §4.6's protocol), lists the visible notification groups
// filtered per filter, then always closes the session, restoring the
// previously frontmost application.
func (b *Backend) ListNotifications(filter adapter.NotificationFilter) ([]model.NotificationInfo, error) {
	session, err := surface.Open(b, b.notificationCenterLocator(), b.notificationCenterOpener())
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return session.List(filter), nil
}

// NotificationAction presses the named action button on the notification
// at the given 1-based index (as returned by ListNotifications).
func (b *Backend) NotificationAction(index int, label string) error {
	session, err := surface.Open(b, b.notificationCenterLocator(), b.notificationCenterOpener())
	if err != nil {
		return err
	}
	defer session.Close()
	return session.PressAction(index, label)
}

// DismissNotification closes the single notification at index.
func (b *Backend) DismissNotification(index int) error {
	session, err := surface.Open(b, b.notificationCenterLocator(), b.notificationCenterOpener())
	if err != nil {
		return err
	}
	defer session.Close()
	return session.Dismiss(index)
}

// DismissAllNotifications clears every notification currently shown, via
// the Notification Center's own "Clear All" control when present.
func (b *Backend) DismissAllNotifications() error {
	session, err := surface.Open(b, b.notificationCenterLocator(), b.notificationCenterOpener())
	if err != nil {
		return err
	}
	defer session.Close()
	return session.DismissAll()
}
