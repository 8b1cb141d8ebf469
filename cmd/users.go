package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/services"
	"github.com/desertthunder/musicadm/internal/shared"
	"github.com/urfave/cli/v3"
)

// UsersList prints a page of users.
func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}

	users, err := r.svc.Users.List(ctx, services.ListOptions{Skip: cmd.Int("skip"), Limit: cmd.Int("limit")})
	if err != nil {
		return err
	}

	return r.writeResult(cmd, users, func() error {
		if len(users) == 0 {
			return r.writePlain("No users found.\n")
		}
		r.writePlain("%s\n", formatter.UsersTable(users))
		return r.writePlain("%d user(s)\n", len(users))
	})
}

// UsersGet prints a single user.
func (r *Runner) UsersGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	user, err := r.svc.Users.Get(ctx, id)
	if err != nil {
		return err
	}

	return r.writeResult(cmd, user, func() error {
		return r.writePlain("%s\n", formatter.UsersTable([]models.User{*user}))
	})
}

// UsersCreate validates the flags locally and creates a user.
func (r *Runner) UsersCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}

	req := models.CreateUserRequest{Name: cmd.String("name"), Email: cmd.String("email")}.Clean()
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := r.svc.Users.Create(ctx, req)
	if err != nil {
		return err
	}

	r.notify(ctx, services.LevelSuccess, "user created: %s (#%d)", user.Name, user.ID)
	return r.writeResult(cmd, user, func() error {
		return r.writePlain("%s\n", formatter.UsersTable([]models.User{*user}))
	})
}

// UsersUpdate sends only the fields passed as flags.
func (r *Runner) UsersUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if cmd.IsSet("name") {
		req.Name = models.Ptr(cmd.String("name"))
	}
	if cmd.IsSet("email") {
		req.Email = models.Ptr(cmd.String("email"))
	}
	if req.IsEmpty() {
		return fmt.Errorf("%w: pass --name or --email", shared.ErrMissingArgument)
	}

	req = req.Clean()
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := r.svc.Users.Update(ctx, id, req)
	if err != nil {
		return err
	}

	r.notify(ctx, services.LevelSuccess, "user updated: %s (#%d)", user.Name, user.ID)
	return r.writeResult(cmd, user, func() error {
		return r.writePlain("%s\n", formatter.UsersTable([]models.User{*user}))
	})
}

// UsersDelete deletes a user. The API removes the user's favorites with it.
func (r *Runner) UsersDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	if err := r.svc.Users.Delete(ctx, id); err != nil {
		return err
	}

	r.notify(ctx, services.LevelSuccess, "user #%d deleted", id)
	return nil
}
