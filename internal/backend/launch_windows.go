//go:build windows

package backend

import (
	"os/exec"
	"strings"
	"time"

	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// commonAppAliases maps lowercase agent-spoken names to the executable
// or display name Windows' "start" shell verb or exec.LookPath expects,
// grounded on the teacher's internal/tools/app_launch_windows.go table.
var commonAppAliases = map[string]string{
	"chrome":  "chrome",
	"edge":    "msedge",
	"firefox": "firefox",
	"vscode":  "code",
	"code":    "code",
	"notepad": "notepad",
	"explorer": "explorer",
	"calculator": "calc",
	"settings": "ms-settings:",
	"word":    "winword",
	"excel":   "excel",
}

// LaunchApp starts nameOrPath. URI-scheme targets (e.g. "ms-settings:")
// go through "cmd /c start" directly; otherwise it tries the shell verb
// first (resolves app-execution aliases and PATH-registered names) and
// falls back to exec.LookPath + direct process start.
func (b *Backend) LaunchApp(nameOrPath string) (model.AppInfo, error) {
	target := nameOrPath
	if mapped, ok := commonAppAliases[strings.ToLower(nameOrPath)]; ok {
		target = mapped
	}

	var err error
	if strings.Contains(target, ":") && !strings.Contains(target, `\`) {
		err = exec.Command("cmd", "/c", "start", "", target).Run()
	} else {
		err = exec.Command("cmd", "/c", "start", "", target).Run()
		if err != nil {
			if path, lookErr := exec.LookPath(target); lookErr == nil {
				err = exec.Command(path).Start()
			}
		}
	}
	if err != nil {
		return model.AppInfo{}, desktoperr.Newf(desktoperr.AppNotFound,
			"could not launch %q: %v", nameOrPath, err).
			WithSuggestion("check the application name or provide a full executable path")
	}

	app, waitErr := b.finder.WaitForApplication(target, 3*time.Second)
	if waitErr != nil {
		return model.AppInfo{Name: target}, nil
	}
	return model.AppInfo{Name: firstNonEmpty(app.Title, app.Name), PID: app.PID}, nil
}
