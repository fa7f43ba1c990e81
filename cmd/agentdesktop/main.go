// Command agentdesktop is the CLI entrypoint: one subcommand per verb,
// each printing a single JSON envelope to stdout and exiting 0 on
// success, 1 on a domain error, 2 on an argument-parse error.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lahfir/agent-desktop-sub000/internal/backend"
	"github.com/lahfir/agent-desktop-sub000/internal/config"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/tools"
	"github.com/lahfir/agent-desktop-sub000/pkg/logging"
	"github.com/spf13/cobra"
)

const (
	exitOK        = 0
	exitDomain    = 1
	exitArgsError = 2
)

var rt *tools.Runtime

func main() {
	config.LoadDotEnv()
	logging.SetLevel(logging.ParseLevel(config.LogLevel()))

	root := &cobra.Command{
		Use:           "agentdesktop",
		Short:         "Accessibility-tree based desktop automation engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initRuntime()
		},
	}

	root.AddCommand(
		newSnapshotCmd(),
		newFindCmd(),
		newGetCmd(),
		newIsCheckedCmd(),
		newDiffSnapshotCmd(),
		newClickCmd(),
		newDoubleClickCmd(),
		newTripleClickCmd(),
		newRightClickCmd(),
		newExpandCmd(),
		newCollapseCmd(),
		newToggleCmd(),
		newCheckCmd(),
		newUncheckCmd(),
		newSetValueCmd(),
		newClearCmd(),
		newSetFocusCmd(),
		newSelectCmd(),
		newScrollCmd(),
		newScrollToCmd(),
		newTypeTextCmd(),
		newPressKeyCmd(),
		newKeyDownCmd(),
		newKeyUpCmd(),
		newHoverCmd(),
		newDragCmd(),
		newMouseClickCmd(),
		newMouseDownCmd(),
		newMouseUpCmd(),
		newMouseMoveCmd(),
		newListWindowsCmd(),
		newListAppsCmd(),
		newFocusWindowCmd(),
		newMoveWindowCmd(),
		newResizeWindowCmd(),
		newRestoreWindowCmd(),
		newMinimizeWindowCmd(),
		newMaximizeWindowCmd(),
		newCloseWindowCmd(),
		newLaunchCmd(),
		newCloseAppCmd(),
		newListSurfacesCmd(),
		newListNotificationsCmd(),
		newNotificationActionCmd(),
		newDismissNotificationCmd(),
		newDismissAllNotificationsCmd(),
		newClipboardGetCmd(),
		newClipboardSetCmd(),
		newClipboardClearCmd(),
		newScreenshotCmd(),
		newWaitCmd(),
		newStatusCmd(),
		newPermissionsCmd(),
		newVersionCmd(),
		newBatchCmd(),
	)

	if err := root.Execute(); err != nil {
		// cobra's own flag-parsing failures land here (SilenceErrors
		// suppresses its default printing; we still want the envelope),
		// as do domain errors from initRuntime, which keep their code.
		if _, ok := desktoperr.As(err); ok {
			emitFailure("agentdesktop", err)
			os.Exit(exitCodeFor(err))
		}
		emitFailure("agentdesktop", desktoperr.Newf(desktoperr.InvalidArgs, "%v", err))
		os.Exit(exitArgsError)
	}
}

func initRuntime() error {
	if rt != nil {
		return nil
	}
	ad, err := backend.New()
	if err != nil {
		return err
	}
	stateDir, err := config.StateDir()
	if err != nil {
		return err
	}
	rt = tools.NewRuntime(ad, stateDir)
	return nil
}

// run executes fn and terminates the process with the envelope JSON
// and the exit code its outcome maps to; it never returns.
func run(command string, fn func() (*model.Envelope, error)) {
	env, err := fn()
	if err != nil {
		emitFailure(command, err)
		os.Exit(exitCodeFor(err))
	}
	emit(env)
	if env.OK {
		os.Exit(exitOK)
	}
	os.Exit(exitDomain)
}

func exitCodeFor(err error) int {
	if de, ok := desktoperr.As(err); ok && de.Code == desktoperr.InvalidArgs {
		return exitArgsError
	}
	return exitDomain
}

func emit(env *model.Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode envelope: %v\n", err)
		os.Exit(exitDomain)
	}
	fmt.Println(string(b))
}

func emitFailure(command string, err error) {
	e := model.Failure(command, desktoperr.ToPayload(err))
	emit(&e)
}
