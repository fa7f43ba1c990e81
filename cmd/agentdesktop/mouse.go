package main

import (
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/spf13/cobra"
)

func mouseCmd(use, short, command string, fn func(button string, x, y float64) (*model.Envelope, error)) *cobra.Command {
	var button string
	var x, y float64
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			run(command, func() (*model.Envelope, error) { return fn(button, x, y) })
			return nil
		},
	}
	cmd.Flags().StringVar(&button, "button", "left", "left|right|middle")
	cmd.Flags().Float64Var(&x, "x", 0, "x coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "y coordinate")
	return cmd
}

func newMouseClickCmd() *cobra.Command {
	return mouseCmd("mouse-click", "Click at raw screen coordinates, bypassing element resolution", "mouse-click",
		func(b string, x, y float64) (*model.Envelope, error) { return rt.MouseClick(b, x, y) })
}

func newMouseDownCmd() *cobra.Command {
	return mouseCmd("mouse-down", "Press a mouse button at raw screen coordinates", "mouse-down",
		func(b string, x, y float64) (*model.Envelope, error) { return rt.MouseDown(b, x, y) })
}

func newMouseUpCmd() *cobra.Command {
	return mouseCmd("mouse-up", "Release a mouse button at raw screen coordinates", "mouse-up",
		func(b string, x, y float64) (*model.Envelope, error) { return rt.MouseUp(b, x, y) })
}

func newMouseMoveCmd() *cobra.Command {
	var x, y float64
	cmd := &cobra.Command{
		Use:   "mouse-move",
		Short: "Move the pointer to raw screen coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("mouse-move", func() (*model.Envelope, error) { return rt.MouseMove(x, y) })
			return nil
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "x coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "y coordinate")
	return cmd
}
