package main

import (
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/spf13/cobra"
)

func newClipboardGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard-get",
		Short: "Read the current clipboard text",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("clipboard-get", func() (*model.Envelope, error) { return rt.ClipboardGet() })
			return nil
		},
	}
	return cmd
}

func newClipboardSetCmd() *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "clipboard-set",
		Short: "Write text to the clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("clipboard-set", func() (*model.Envelope, error) { return rt.ClipboardSet(text) })
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text to write to the clipboard")
	return cmd
}

func newClipboardClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard-clear",
		Short: "Clear the clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("clipboard-clear", func() (*model.Envelope, error) { return rt.ClipboardClear() })
			return nil
		},
	}
	return cmd
}

func newScreenshotCmd() *cobra.Command {
	var target, windowID, format string
	var screenIndex int
	cmd := &cobra.Command{
		Use:   "screenshot",
		Short: "Capture a screen, window, or the full virtual desktop as a base64-encoded image",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("screenshot", func() (*model.Envelope, error) {
				return rt.Screenshot(target, windowID, format, screenIndex)
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "screen", "screen|window|full_screen")
	cmd.Flags().StringVar(&windowID, "window-id", "", "window id, required when target=window")
	cmd.Flags().StringVar(&format, "format", "png", "png|jpg")
	cmd.Flags().IntVar(&screenIndex, "screen-index", 0, "screen index, used when target=screen")
	return cmd
}
