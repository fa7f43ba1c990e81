package main

import (
	"encoding/json"

	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/tools"
	"github.com/spf13/cobra"
)

func newWaitCmd() *cobra.Command {
	var args tools.WaitArgs
	var hasMenu bool
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Poll a condition (element, window title, text, or menu visibility) until it holds or a timeout elapses",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			if cmd.Flags().Changed("has-menu") {
				args.HasMenu = &hasMenu
			}
			run("wait", func() (*model.Envelope, error) { return rt.Wait(args) })
			return nil
		},
	}
	cmd.Flags().StringVar(&args.Handle, "element", "", "wait for this handle to resolve")
	cmd.Flags().StringVar(&args.WindowTitle, "window-title", "", "wait for a window whose title contains this substring")
	cmd.Flags().StringVar(&args.App, "app", "", "application name, used by window-title/text/has-menu")
	cmd.Flags().StringVar(&args.Text, "text", "", "wait for this text to appear in the target app's tree")
	cmd.Flags().BoolVar(&hasMenu, "has-menu", false, "wait for the target app to have (or not have) an open menu")
	cmd.Flags().IntVar(&args.SleepMs, "sleep-ms", 0, "plain sleep for this many milliseconds")
	cmd.Flags().IntVar(&args.TimeoutMs, "timeout", 0, "timeout in milliseconds (0 = default)")
	return cmd
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether the accessibility backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("status", func() (*model.Envelope, error) { return rt.Status() })
			return nil
		},
	}
	return cmd
}

func newPermissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Report the host accessibility permission status",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("permissions", func() (*model.Envelope, error) { return rt.Permissions() })
			return nil
		},
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Report the command surface's envelope version",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("version", func() (*model.Envelope, error) { return tools.Version(), nil })
			return nil
		},
	}
	return cmd
}

func newBatchCmd() *cobra.Command {
	var stepsJSON string
	var stopOnError bool
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run a JSON array of {command, args} steps in order, collecting one envelope per step",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			run("batch", func() (*model.Envelope, error) {
				steps, err := parseBatchSteps(stepsJSON)
				if err != nil {
					return nil, err
				}
				return rt.Batch(tools.BatchArgs{Steps: steps, StopOnError: stopOnError})
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&stepsJSON, "steps", "", `JSON array, e.g. [{"command":"click","args":{"handle":"@e1"}}]`)
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "halt the batch at the first failing step")
	return cmd
}

// batchStep is the wire shape of one --steps array entry.
type batchStep struct {
	Command string            `json:"command"`
	Args    map[string]string `json:"args"`
}

func parseBatchSteps(raw string) ([]tools.Step, error) {
	if raw == "" {
		return nil, desktoperr.New(desktoperr.InvalidArgs, "--steps is required")
	}
	var decoded []batchStep
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, desktoperr.Newf(desktoperr.InvalidArgs, "--steps is not a valid JSON array: %v", err)
	}
	steps := make([]tools.Step, 0, len(decoded))
	for _, s := range decoded {
		steps = append(steps, tools.Step{Command: s.Command, Args: s.Args})
	}
	return steps, nil
}
