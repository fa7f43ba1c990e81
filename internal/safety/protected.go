package safety

import (
	"strings"

	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// protectedCombos are the five key combinations refused at the
// dispatcher boundary before any native call is attempted.
var protectedCombos = []string{
	"cmd+q",
	"cmd+shift+q",
	"cmd+alt+esc",
	"cmd+ctrl+q",
	"cmd+shift+delete",
}

// IsProtectedCombo reports whether combo matches one of the refused
// key combinations, compared case-insensitively and independent of
// modifier order.
func IsProtectedCombo(combo model.KeyCombo) bool {
	given := normalizeCombo(combo)
	for _, p := range protectedCombos {
		if given == p {
			return true
		}
	}
	return false
}

func normalizeCombo(combo model.KeyCombo) string {
	mods := make([]string, 0, len(combo.Modifiers))
	order := map[model.Modifier]int{model.ModCmd: 0, model.ModCtrl: 1, model.ModAlt: 2, model.ModShift: 3}
	present := map[model.Modifier]bool{}
	for _, m := range combo.Modifiers {
		present[m] = true
	}
	for _, m := range []model.Modifier{model.ModCmd, model.ModCtrl, model.ModAlt, model.ModShift} {
		if present[m] {
			mods = append(mods, string(m))
			_ = order
		}
	}
	out := ""
	for _, m := range mods {
		out += m + "+"
	}
	return out + strings.ToLower(combo.Key)
}

// protectedProcessNames are refused as close/kill targets at minimum:
// the host's login window, window server, dock, launcher, and system
// file manager — per-OS process names for the same logical role.
var protectedProcessNames = map[string]bool{
	// darwin
	"loginwindow":  true,
	"windowserver": true,
	"dock":         true,
	"finder":       true,
	"systemuiserver": true,
	// windows
	"winlogon.exe":  true,
	"explorer.exe":  true,
	"dwm.exe":       true,
	"csrss.exe":     true,
	// linux
	"gdm":      true,
	"gnome-shell": true,
	"nautilus": true,
}

// IsProtectedProcess reports whether name (case-insensitive) refers to
// a process the dispatcher refuses to close/kill.
func IsProtectedProcess(name string) bool {
	return protectedProcessNames[strings.ToLower(name)]
}
