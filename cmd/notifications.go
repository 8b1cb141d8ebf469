package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/shared"
	"github.com/urfave/cli/v3"
)

func (r *Runner) journalReady() error {
	if r.journal == nil {
		return fmt.Errorf("%w: notification journal not available, run 'musicadm setup database'", shared.ErrServiceUnavailable)
	}
	return nil
}

// NotificationsList prints the most recent notifications, newest first.
func (r *Runner) NotificationsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.journalReady(); err != nil {
		return err
	}

	notifications, err := r.journal.List(ctx, cmd.Int("limit"))
	if err != nil {
		return err
	}

	return r.writeResult(cmd, notifications, func() error {
		if len(notifications) == 0 {
			return r.writePlain("No notifications.\n")
		}

		rows := make([][]string, len(notifications))
		for i, n := range notifications {
			status := "-"
			if n.Status > 0 {
				status = fmt.Sprint(n.Status)
			}
			rows[i] = []string{
				n.CreatedAt.Local().Format("02/01/2006 15:04:05"),
				string(n.Level),
				status,
				n.Message,
			}
		}
		return r.writePlain("%s\n", formatter.Table([]string{"Time", "Level", "Status", "Message"}, rows))
	})
}

// NotificationsClear deletes the notification history.
func (r *Runner) NotificationsClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.journalReady(); err != nil {
		return err
	}

	n, err := r.journal.Clear(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("notification journal cleared", "deleted", n)
	return r.writePlain("✓ Cleared %d notification(s)\n", n)
}
