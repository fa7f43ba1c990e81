package main

import (
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/spf13/cobra"
)

func newPressKeyCmd() *cobra.Command {
	var combo string
	cmd := &cobra.Command{
		Use:   "press",
		Short: "Press a key combination (e.g. cmd+s) on whatever currently holds focus",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("press", func() (*model.Envelope, error) { return rt.PressKey(combo) })
			return nil
		},
	}
	cmd.Flags().StringVar(&combo, "combo", "", "key combo, e.g. cmd+shift+s")
	return cmd
}

func newKeyDownCmd() *cobra.Command {
	var combo string
	cmd := &cobra.Command{
		Use:   "key-down",
		Short: "Press and hold a key combination without releasing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("key-down", func() (*model.Envelope, error) { return rt.KeyDown(combo) })
			return nil
		},
	}
	cmd.Flags().StringVar(&combo, "combo", "", "key combo, e.g. shift")
	return cmd
}

func newKeyUpCmd() *cobra.Command {
	var combo string
	cmd := &cobra.Command{
		Use:   "key-up",
		Short: "Release a previously held key combination",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("key-up", func() (*model.Envelope, error) { return rt.KeyUp(combo) })
			return nil
		},
	}
	cmd.Flags().StringVar(&combo, "combo", "", "key combo, e.g. shift")
	return cmd
}

func newHoverCmd() *cobra.Command {
	var handle string
	var x, y float64
	var durationMs int
	cmd := &cobra.Command{
		Use:   "hover",
		Short: "Move the pointer over an element (or explicit x,y) and optionally hold",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("hover", func() (*model.Envelope, error) { return rt.Hover(handle, x, y, durationMs) })
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "element handle (@eN), optional")
	cmd.Flags().Float64Var(&x, "x", 0, "x coordinate, used when handle is omitted")
	cmd.Flags().Float64Var(&y, "y", 0, "y coordinate, used when handle is omitted")
	cmd.Flags().IntVar(&durationMs, "duration-ms", 0, "milliseconds to hold position")
	return cmd
}

func newDragCmd() *cobra.Command {
	var fromHandle, toHandle string
	var fromX, fromY, toX, toY float64
	var durationMs int
	cmd := &cobra.Command{
		Use:   "drag",
		Short: "Synthesize a press-move-release gesture between two points",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("drag", func() (*model.Envelope, error) {
				return rt.Drag(fromHandle, fromX, fromY, toHandle, toX, toY, durationMs)
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&fromHandle, "from-handle", "", "source element handle, optional")
	cmd.Flags().Float64Var(&fromX, "from-x", 0, "source x, used when from-handle is omitted")
	cmd.Flags().Float64Var(&fromY, "from-y", 0, "source y, used when from-handle is omitted")
	cmd.Flags().StringVar(&toHandle, "to-handle", "", "destination element handle, optional")
	cmd.Flags().Float64Var(&toX, "to-x", 0, "destination x, used when to-handle is omitted")
	cmd.Flags().Float64Var(&toY, "to-y", 0, "destination y, used when to-handle is omitted")
	cmd.Flags().IntVar(&durationMs, "duration-ms", 150, "gesture duration in milliseconds")
	return cmd
}
