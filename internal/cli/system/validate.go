package system

import (
	"fmt"

	"github.com/julianstephens/onehabit/internal/cli"
	"github.com/julianstephens/onehabit/internal/models"
)

// ValidateCmd checks stored records for integrity problems
type ValidateCmd struct {
	All bool `help:"Check every user, not just you."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	users, err := c.users(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, u := range users {
		result, err := ctx.Tracker.Check(u.ID)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", u.Name, err)
		}
		if len(users) > 1 {
			ctx.Printf("%s: ", u.Name)
		}
		ctx.Println(result.FormatReport())
		if result.HasConflicts() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("validation found problems for %d user(s)", failed)
	}
	return nil
}

func (c *ValidateCmd) users(ctx *cli.Context) ([]models.User, error) {
	if !c.All {
		u, err := ctx.CurrentUser()
		if err != nil {
			return nil, err
		}
		return []models.User{u}, nil
	}
	users, err := ctx.Tracker.Users()
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no users found")
	}
	return users, nil
}
