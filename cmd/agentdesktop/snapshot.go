package main

import (
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/tools"
	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	var args tools.SnapshotArgs
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture the accessibility tree of a window and allocate element handles",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			run("snapshot", func() (*model.Envelope, error) { return rt.Snapshot(args) })
			return nil
		},
	}
	cmd.Flags().StringVar(&args.App, "app", "", "application name to target")
	cmd.Flags().StringVar(&args.WindowID, "window-id", "", "explicit window id to target")
	cmd.Flags().IntVar(&args.MaxDepth, "max-depth", 0, "maximum tree depth (0 = default)")
	cmd.Flags().BoolVar(&args.IncludeBounds, "include-bounds", false, "include element bounds in the tree")
	cmd.Flags().BoolVar(&args.InteractiveOnly, "interactive-only", false, "prune branches with no interactive descendant")
	return cmd
}

func newDiffSnapshotCmd() *cobra.Command {
	var args tools.SnapshotArgs
	cmd := &cobra.Command{
		Use:   "diff-snapshot",
		Short: "Diff the current tree against the last stored snapshot",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			run("diff-snapshot", func() (*model.Envelope, error) { return rt.DiffSnapshot(args) })
			return nil
		},
	}
	cmd.Flags().StringVar(&args.App, "app", "", "application name to target")
	cmd.Flags().StringVar(&args.WindowID, "window-id", "", "explicit window id to target")
	cmd.Flags().BoolVar(&args.InteractiveOnly, "interactive-only", false, "prune branches with no interactive descendant")
	return cmd
}

func newFindCmd() *cobra.Command {
	var handle string
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Report a handle's current role, name, and value",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			run("find", func() (*model.Envelope, error) { return rt.Find(handle) })
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "element handle (@eN)")
	return cmd
}

func newGetCmd() *cobra.Command {
	var handle string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Read a handle's current live value",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			run("get", func() (*model.Envelope, error) { return rt.Get(handle) })
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "element handle (@eN)")
	return cmd
}

func newIsCheckedCmd() *cobra.Command {
	var handle string
	cmd := &cobra.Command{
		Use:   "is-checked",
		Short: "Report a toggleable handle's current checked state",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			run("is-checked", func() (*model.Envelope, error) { return rt.IsChecked(handle) })
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "element handle (@eN)")
	return cmd
}
