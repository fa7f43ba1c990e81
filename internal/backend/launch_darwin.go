//go:build darwin

package backend

import (
	"os/exec"
	"strings"
	"time"

	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// commonAppAliases maps the lowercase names agents are likely to say
// to the macOS application name 'open -a' expects, grounded on the
// teacher's internal/tools/app_launch_darwin.go mapping table.
var commonAppAliases = map[string]string{
	"chrome":        "Google Chrome",
	"google chrome": "Google Chrome",
	"firefox":       "Firefox",
	"safari":        "Safari",
	"terminal":      "Terminal",
	"iterm":         "iTerm",
	"vscode":        "Visual Studio Code",
	"code":          "Visual Studio Code",
	"finder":        "Finder",
	"mail":          "Mail",
	"notes":         "Notes",
	"calendar":      "Calendar",
	"messages":      "Messages",
	"preview":       "Preview",
	"textedit":      "TextEdit",
	"calculator":    "Calculator",
	"system settings": "System Settings",
	"slack":         "Slack",
	"spotify":       "Spotify",
}

// LaunchApp opens nameOrPath via the 'open -a' command, resolving a few
// common aliases first, then waits briefly and resolves the launched
// process through the accessibility finder so the caller gets back a
// pid, not just a name echo.
func (b *Backend) LaunchApp(nameOrPath string) (model.AppInfo, error) {
	name := nameOrPath
	if mapped, ok := commonAppAliases[strings.ToLower(nameOrPath)]; ok {
		name = mapped
	}

	if err := exec.Command("open", "-a", name).Run(); err != nil {
		return model.AppInfo{}, desktoperr.Newf(desktoperr.AppNotFound,
			"could not launch %q: %v", nameOrPath, err).
			WithSuggestion("check the application is installed and the name is spelled as it appears in Finder")
	}

	app, err := b.finder.WaitForApplication(name, 3*time.Second)
	if err != nil {
		// best-effort: the open succeeded even if we couldn't resolve
		// the resulting process within the wait window.
		return model.AppInfo{Name: name}, nil
	}
	return model.AppInfo{Name: firstNonEmpty(app.Title, app.Name), PID: app.PID}, nil
}
