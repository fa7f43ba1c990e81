package main

import (
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/spf13/cobra"
)

func newListSurfacesCmd() *cobra.Command {
	var pid int
	cmd := &cobra.Command{
		Use:   "list-surfaces",
		Short: "List the open menus, sheets, popovers, and alerts for an application",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("list-surfaces", func() (*model.Envelope, error) { return rt.ListSurfaces(pid) })
			return nil
		},
	}
	cmd.Flags().IntVar(&pid, "pid", 0, "application process id (defaults to the frontmost app)")
	return cmd
}

func newListNotificationsCmd() *cobra.Command {
	var app, text string
	var limit int
	cmd := &cobra.Command{
		Use:   "list-notifications",
		Short: "List the Notification Center's currently visible notification groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("list-notifications", func() (*model.Envelope, error) {
				return rt.ListNotifications(app, text, limit)
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&app, "app", "", "filter by source app substring")
	cmd.Flags().StringVar(&text, "text", "", "filter by title/body/app substring")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of notifications to return (0 = no limit)")
	return cmd
}

func newNotificationActionCmd() *cobra.Command {
	var index int
	var label string
	cmd := &cobra.Command{
		Use:   "notification-action",
		Short: "Press an action button on a listed notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("notification-action", func() (*model.Envelope, error) {
				return rt.NotificationAction(index, label)
			})
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "1-based notification index from list-notifications")
	cmd.Flags().StringVar(&label, "label", "", "action button label")
	return cmd
}

func newDismissNotificationCmd() *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:   "dismiss-notification",
		Short: "Dismiss a single listed notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("dismiss-notification", func() (*model.Envelope, error) { return rt.DismissNotification(index) })
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "1-based notification index from list-notifications")
	return cmd
}

func newDismissAllNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dismiss-all-notifications",
		Short: "Dismiss every visible notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			run("dismiss-all-notifications", func() (*model.Envelope, error) { return rt.DismissAllNotifications() })
			return nil
		},
	}
	return cmd
}
