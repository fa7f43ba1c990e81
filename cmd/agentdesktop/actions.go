package main

import (
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/spf13/cobra"
)

func handleCmd(use, short, command string, fn func(handle string) (*model.Envelope, error)) *cobra.Command {
	var handle string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			run(command, func() (*model.Envelope, error) { return fn(handle) })
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "element handle (@eN)")
	return cmd
}

func newClickCmd() *cobra.Command {
	return handleCmd("click", "Click an element, trying its role's chain of fallback strategies", "click",
		func(h string) (*model.Envelope, error) { return rt.Click(h) })
}
func newDoubleClickCmd() *cobra.Command {
	return handleCmd("double-click", "Double-click an element", "double-click",
		func(h string) (*model.Envelope, error) { return rt.DoubleClick(h) })
}
func newTripleClickCmd() *cobra.Command {
	return handleCmd("triple-click", "Triple-click an element", "triple-click",
		func(h string) (*model.Envelope, error) { return rt.TripleClick(h) })
}
func newRightClickCmd() *cobra.Command {
	return handleCmd("right-click", "Right-click (secondary click) an element", "right-click",
		func(h string) (*model.Envelope, error) { return rt.RightClick(h) })
}
func newExpandCmd() *cobra.Command {
	return handleCmd("expand", "Expand a disclosure/outline element", "expand",
		func(h string) (*model.Envelope, error) { return rt.Expand(h) })
}
func newCollapseCmd() *cobra.Command {
	return handleCmd("collapse", "Collapse a disclosure/outline element", "collapse",
		func(h string) (*model.Envelope, error) { return rt.Collapse(h) })
}
func newToggleCmd() *cobra.Command {
	return handleCmd("toggle", "Toggle a checkbox/switch element", "toggle",
		func(h string) (*model.Envelope, error) { return rt.Toggle(h) })
}
func newCheckCmd() *cobra.Command {
	return handleCmd("check", "Set a checkbox/switch element checked, idempotently", "check",
		func(h string) (*model.Envelope, error) { return rt.Check(h) })
}
func newUncheckCmd() *cobra.Command {
	return handleCmd("uncheck", "Set a checkbox/switch element unchecked, idempotently", "uncheck",
		func(h string) (*model.Envelope, error) { return rt.Uncheck(h) })
}
func newClearCmd() *cobra.Command {
	return handleCmd("clear", "Clear a text field's value", "clear",
		func(h string) (*model.Envelope, error) { return rt.Clear(h) })
}
func newSetFocusCmd() *cobra.Command {
	return handleCmd("set-focus", "Move keyboard focus to an element", "set-focus",
		func(h string) (*model.Envelope, error) { return rt.SetFocus(h) })
}
func newScrollToCmd() *cobra.Command {
	return handleCmd("scroll-to", "Scroll an element into view", "scroll-to",
		func(h string) (*model.Envelope, error) { return rt.ScrollTo(h) })
}

func newSetValueCmd() *cobra.Command {
	var handle, value string
	cmd := &cobra.Command{
		Use:   "set-value",
		Short: "Set a text field or combobox's value",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("set-value", func() (*model.Envelope, error) { return rt.SetValue(handle, value) })
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "element handle (@eN)")
	cmd.Flags().StringVar(&value, "value", "", "value to set")
	return cmd
}

func newSelectCmd() *cobra.Command {
	var handle, text string
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select an item by its visible text within a combobox/menu/list",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("select", func() (*model.Envelope, error) { return rt.Select(handle, text) })
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "element handle (@eN)")
	cmd.Flags().StringVar(&text, "text", "", "item text to select")
	return cmd
}

func newScrollCmd() *cobra.Command {
	var handle, direction string
	var amount int
	cmd := &cobra.Command{
		Use:   "scroll",
		Short: "Scroll an element a number of ticks in a cardinal direction",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("scroll", func() (*model.Envelope, error) {
				return rt.Scroll(handle, model.ScrollDirection(direction), amount)
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "element handle (@eN)")
	cmd.Flags().StringVar(&direction, "direction", "down", "up|down|left|right")
	cmd.Flags().IntVar(&amount, "amount", 1, "number of scroll ticks")
	return cmd
}

func newTypeTextCmd() *cobra.Command {
	var handle, text string
	cmd := &cobra.Command{
		Use:   "type",
		Short: "Type literal text into a handle, or into whatever currently holds focus if handle is omitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("type-text", func() (*model.Envelope, error) { return rt.TypeText(handle, text) })
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "element handle (@eN), optional")
	cmd.Flags().StringVar(&text, "text", "", "text to type")
	return cmd
}
