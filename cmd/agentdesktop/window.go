package main

import (
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/spf13/cobra"
)

func newListWindowsCmd() *cobra.Command {
	var app string
	var focusedOnly bool
	cmd := &cobra.Command{
		Use:   "list-windows",
		Short: "List open windows, optionally filtered by app and focus state",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("list-windows", func() (*model.Envelope, error) { return rt.ListWindows(app, focusedOnly) })
			return nil
		},
	}
	cmd.Flags().StringVar(&app, "app", "", "application name to filter by")
	cmd.Flags().BoolVar(&focusedOnly, "focused-only", false, "only list the focused window")
	return cmd
}

func newListAppsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-apps",
		Short: "List running applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("list-apps", func() (*model.Envelope, error) { return rt.ListApps() })
			return nil
		},
	}
	return cmd
}

func windowOpCmd(use, short, command string, fn func(windowID string) (*model.Envelope, error)) *cobra.Command {
	var windowID string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			run(command, func() (*model.Envelope, error) { return fn(windowID) })
			return nil
		},
	}
	cmd.Flags().StringVar(&windowID, "window-id", "", "window id")
	return cmd
}

func newFocusWindowCmd() *cobra.Command {
	return windowOpCmd("focus-window", "Raise and focus a window", "focus-window",
		func(id string) (*model.Envelope, error) { return rt.FocusWindow(id) })
}

func newRestoreWindowCmd() *cobra.Command {
	return windowOpCmd("restore-window", "Restore a minimized or zoomed window", "restore-window",
		func(id string) (*model.Envelope, error) { return rt.RestoreWindow(id) })
}

func newMinimizeWindowCmd() *cobra.Command {
	return windowOpCmd("minimize-window", "Minimize a window", "minimize-window",
		func(id string) (*model.Envelope, error) { return rt.MinimizeWindow(id) })
}

func newMaximizeWindowCmd() *cobra.Command {
	return windowOpCmd("maximize-window", "Maximize (zoom) a window", "maximize-window",
		func(id string) (*model.Envelope, error) { return rt.MaximizeWindow(id) })
}

func newCloseWindowCmd() *cobra.Command {
	return windowOpCmd("close-window", "Close a window via its close button", "close-window",
		func(id string) (*model.Envelope, error) { return rt.CloseWindow(id) })
}

func newMoveWindowCmd() *cobra.Command {
	var windowID string
	var x, y int
	cmd := &cobra.Command{
		Use:   "move-window",
		Short: "Move a window to an absolute screen position",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("move-window", func() (*model.Envelope, error) { return rt.MoveWindow(windowID, x, y) })
			return nil
		},
	}
	cmd.Flags().StringVar(&windowID, "window-id", "", "window id")
	cmd.Flags().IntVar(&x, "x", 0, "target x coordinate")
	cmd.Flags().IntVar(&y, "y", 0, "target y coordinate")
	return cmd
}

func newResizeWindowCmd() *cobra.Command {
	var windowID string
	var width, height int
	cmd := &cobra.Command{
		Use:   "resize-window",
		Short: "Resize a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("resize-window", func() (*model.Envelope, error) { return rt.ResizeWindow(windowID, width, height) })
			return nil
		},
	}
	cmd.Flags().StringVar(&windowID, "window-id", "", "window id")
	cmd.Flags().IntVar(&width, "width", 0, "target width")
	cmd.Flags().IntVar(&height, "height", 0, "target height")
	return cmd
}

func newLaunchCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Launch an application by name or path",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("launch", func() (*model.Envelope, error) { return rt.Launch(name) })
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "application name or path")
	return cmd
}

func newCloseAppCmd() *cobra.Command {
	var app string
	cmd := &cobra.Command{
		Use:   "close-app",
		Short: "Terminate a running application by pid or name",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("close-app", func() (*model.Envelope, error) { return rt.CloseApp(app) })
			return nil
		},
	}
	cmd.Flags().StringVar(&app, "app", "", "process id or application name")
	return cmd
}
