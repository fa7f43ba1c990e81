package surface

import (
	"strings"

	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/wait"
	"github.com/lahfir/agent-desktop-sub000/pkg/logging"
)

var log = logging.WithPrefix("surface")

// notificationCenterPollInterval matches spec.md §4.6 step 2's
// "2s deadline at 50ms intervals" readiness poll.
const (
	notificationCenterPollInterval = 50_000_000  // 50ms, in time.Duration units via wait package
	notificationGroupDepth         = 10
)

// Locator resolves the notification-center process's element root. Its
// implementation is platform-specific (finding and attaching to the
// system notification UI process) and is supplied by the adapter
// backend; this package only drives the session protocol and tree walk.
type Locator func() (adapter.Element, error)

// Opener triggers the platform's notification-center UI to open when it
// is not already visible. Per SPEC_FULL.md's Open Question resolution,
// the darwin default presses the menu-bar clock; other platforms supply
// their own or report PLATFORM_NOT_SUPPORTED.
type Opener func(ad adapter.PlatformAdapter) error

// NcSession is a scoped Notification Center UI driving session: it
// records the frontmost application on open and restores it (plus
// dismisses the center, if this session opened it) on Close, which must
// run on every exit path including the caller's own failure.
type NcSession struct {
	ad        adapter.PlatformAdapter
	root      adapter.Element
	frontmost adapter.Element
	openedBy  bool
	groups    []adapter.Element
}

// Open implements steps 1-2 of the Notification Center protocol: record
// the frontmost app, then, if the center isn't already open, trigger
// opener and poll locate for readiness.
func Open(ad adapter.PlatformAdapter, locate Locator, opener Opener) (*NcSession, error) {
	frontmost, _ := ad.FocusedApplication()

	root, err := locate()
	openedBy := false
	if err != nil || !hasVisibleContent(root) {
		if opener == nil {
			return nil, desktoperr.New(desktoperr.PlatformNotSupported, "notification center cannot be opened on this platform")
		}
		if err := opener(ad); err != nil {
			return nil, desktoperr.Newf(desktoperr.ActionFailed, "could not open notification center: %v", err)
		}
		openedBy = true
		werr := wait.Until(func() (bool, error) {
			root, err = locate()
			return err == nil && hasVisibleContent(root), nil
		}, 50_000_000, 2_000_000_000, "notification center to open")
		if werr != nil {
			return nil, desktoperr.New(desktoperr.Timeout, "notification center did not open in time")
		}
	}

	return &NcSession{ad: ad, root: root, frontmost: frontmost, openedBy: openedBy}, nil
}

func hasVisibleContent(root adapter.Element) bool {
	return root != nil && len(root.Children()) > 0
}

// List implements steps 3-4: a bounded depth-first walk collecting
// notification groups, then caller-filter application. The surviving
// group elements are cached on the session, keyed by the same 1-based
// index returned in the result, so PressAction/Dismiss can later act on
// a specific notification without re-walking the tree.
func (s *NcSession) List(filter adapter.NotificationFilter) []model.NotificationInfo {
	var infos []model.NotificationInfo
	var elements []adapter.Element
	collectGroups(s.root, 0, &infos, &elements)
	filteredInfos, filteredElements := applyFilter(infos, elements, filter)
	s.groups = filteredElements
	return filteredInfos
}

// groupAt returns the cached element for a 1-based notification index,
// calling List with no filter first if it has not been populated yet.
func (s *NcSession) groupAt(index int) (adapter.Element, error) {
	if s.groups == nil {
		s.List(adapter.NotificationFilter{})
	}
	if index < 1 || index > len(s.groups) {
		return nil, desktoperr.Newf(desktoperr.InvalidArgs, "no notification at index %d", index)
	}
	return s.groups[index-1], nil
}

// PressAction presses the named action button (case-insensitive, as
// shown in the notification's Actions list) on the notification at
// index.
func (s *NcSession) PressAction(index int, label string) error {
	el, err := s.groupAt(index)
	if err != nil {
		return err
	}
	want := strings.ToLower(strings.TrimSpace(label))
	for _, c := range el.Children() {
		a := c.Attrs()
		if a.Role != "AXButton" {
			continue
		}
		btnLabel := a.Title
		if btnLabel == "" {
			btnLabel = a.Description
		}
		if strings.ToLower(strings.TrimSpace(btnLabel)) == want {
			return c.PerformNative("AXPress")
		}
	}
	return desktoperr.Newf(desktoperr.ElementNotFound, "notification has no action labeled %q", label)
}

// Dismiss closes the single notification at index via its close/clear
// control, falling back to an AXCancel on the group itself.
func (s *NcSession) Dismiss(index int) error {
	el, err := s.groupAt(index)
	if err != nil {
		return err
	}
	for _, c := range el.Children() {
		a := c.Attrs()
		if a.Role == "AXButton" && isCloseButton(firstNonEmptyAttr(a)) {
			return c.PerformNative("AXPress")
		}
	}
	return el.PerformNative("AXCancel")
}

func firstNonEmptyAttr(a adapter.ElementAttrs) string {
	if a.Title != "" {
		return a.Title
	}
	return a.Description
}

// DismissAll clears every notification currently shown via the
// Notification Center's own "Clear All" control, when present; absent
// that control it dismisses each listed notification individually.
func (s *NcSession) DismissAll() error {
	if s.groups == nil {
		s.List(adapter.NotificationFilter{})
	}
	if clearAll := findClearAllControl(s.root); clearAll != nil {
		return clearAll.PerformNative("AXPress")
	}
	for i := range s.groups {
		if err := s.Dismiss(i + 1); err != nil {
			return err
		}
	}
	return nil
}

func findClearAllControl(el adapter.Element) adapter.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.Children() {
		a := c.Attrs()
		if a.Role == "AXButton" {
			l := strings.ToLower(strings.TrimSpace(a.Title))
			if l == "clear all" || l == "clear" {
				return c
			}
		}
		if found := findClearAllControl(c); found != nil {
			return found
		}
	}
	return nil
}

// collectGroups walks depth-first to notificationGroupDepth, treating
// any generic-group element whose direct children include at least one
// static text and one button as a notification. Static-text values are
// concatenated: the first becomes the app name, the second the title,
// and any remaining joined into the body; button labels other than a
// close/clear control become the notification's actions.
func collectGroups(el adapter.Element, depth int, out *[]model.NotificationInfo, elements *[]adapter.Element) {
	if el == nil || depth > notificationGroupDepth {
		return
	}
	if info, ok := groupAsNotification(el); ok {
		info.Index = len(*out) + 1
		*out = append(*out, info)
		*elements = append(*elements, el)
	}
	for _, c := range el.Children() {
		collectGroups(c, depth+1, out, elements)
	}
}

func groupAsNotification(el adapter.Element) (model.NotificationInfo, bool) {
	if el.Attrs().Role != "AXGroup" {
		return model.NotificationInfo{}, false
	}
	var texts []string
	var actions []string
	for _, c := range el.Children() {
		a := c.Attrs()
		switch a.Role {
		case "AXStaticText":
			if v := strings.TrimSpace(textOf(a)); v != "" {
				texts = append(texts, v)
			}
		case "AXButton":
			label := a.Title
			if label == "" {
				label = a.Description
			}
			if isCloseButton(label) {
				continue
			}
			actions = append(actions, label)
		}
	}
	if len(texts) == 0 || len(actions) == 0 {
		return model.NotificationInfo{}, false
	}
	info := model.NotificationInfo{Actions: actions}
	switch {
	case len(texts) == 1:
		info.Title = texts[0]
	case len(texts) == 2:
		info.App = texts[0]
		info.Title = texts[1]
	default:
		info.App = texts[0]
		info.Title = texts[1]
		info.Body = strings.Join(texts[2:], " ")
	}
	return info, true
}

func textOf(a adapter.ElementAttrs) string {
	if a.Value != "" {
		return a.Value
	}
	return a.Title
}

func isCloseButton(label string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	return l == "close" || l == "clear" || l == "clear all" || l == "dismiss" || l == "x"
}

// applyFilter narrows by app substring, text substring across
// title/body/app, and a result-count limit, re-indexing the survivors
// and carrying their backing elements along in the same order.
func applyFilter(groups []model.NotificationInfo, elements []adapter.Element, filter adapter.NotificationFilter) ([]model.NotificationInfo, []adapter.Element) {
	var out []model.NotificationInfo
	var outElements []adapter.Element
	for i, g := range groups {
		if filter.AppSubstring != "" && !containsFold(g.App, filter.AppSubstring) {
			continue
		}
		if filter.TextSubstring != "" &&
			!containsFold(g.Title, filter.TextSubstring) &&
			!containsFold(g.Body, filter.TextSubstring) &&
			!containsFold(g.App, filter.TextSubstring) {
			continue
		}
		out = append(out, g)
		outElements = append(outElements, elements[i])
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	for i := range out {
		out[i].Index = i + 1
	}
	return out, outElements
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Close implements step 5: if this session opened the center, dismiss
// it with a synthesized escape key; then, regardless, re-activate the
// previously frontmost application. Safe to call multiple times and
// must run on every exit path, including the caller's own failure.
func (s *NcSession) Close() {
	if s == nil {
		return
	}
	if s.openedBy {
		combo := model.KeyCombo{Key: "escape"}
		if err := s.ad.ExecuteAction(adapter.NullNativeHandle(), model.NewPressKey(combo)); err != nil {
			log.Debug("notification center dismiss failed: %v", err)
		}
	}
	if s.frontmost != nil {
		if err := s.frontmost.SetAttr("AXFrontmost", true); err != nil {
			log.Debug("restoring frontmost app failed: %v", err)
		}
	}
}
