package pairs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/onehabit/internal/cli"
	"github.com/julianstephens/onehabit/internal/constants"
	"github.com/julianstephens/onehabit/internal/render"
	"github.com/julianstephens/onehabit/internal/tracker"
)

type PairCmd struct {
	Create PairCreateCmd `cmd:"" help:"Start a pair and get an invite code."`
	Join   PairJoinCmd   `cmd:"" help:"Join your partner's pair."`
	Leave  PairLeaveCmd  `cmd:"" help:"Leave your pair."`
	Info   PairInfoCmd   `cmd:"" help:"Show your pair."`
	Sync   PairSyncCmd   `cmd:"" help:"Show whether you and your partner did a shared habit today."`
}

// newInviteCode returns six upper-case hex characters
func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:constants.InviteCodeLength]
}

type PairCreateCmd struct {
	Code string `arg:"" optional:"" help:"Six-character invite code (default: random)."`
}

func (c *PairCreateCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	code := c.Code
	if code == "" {
		code = newInviteCode()
	}
	pair, err := ctx.Tracker.CreatePair(user.ID, code)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ctx.Printf("Created pair. Invite code: %s\n", pair.InviteCode)
	ctx.Printf("Your partner can join with: onehabit pair join %s\n", pair.InviteCode)
	return nil
}

type PairJoinCmd struct {
	Code string `arg:"" help:"Invite code from your partner."`
}

func (c *PairJoinCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker.JoinPair(user.ID, strings.TrimSpace(c.Code)); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	info, err := ctx.Tracker.PairInfo(user.ID)
	if err != nil {
		return err
	}
	for _, m := range info.Members {
		if m.ID != user.ID {
			ctx.Printf("Joined pair with %s\n", m.Label())
			return nil
		}
	}
	ctx.Println("Joined pair")
	return nil
}

type PairLeaveCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *PairLeaveCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	if !user.InPair() {
		return tracker.ErrNotPaired
	}

	if !c.Yes {
		ok, err := ctx.Prompter.Confirm("Leave your pair?",
			"Shared habits stay linked to the pair, but you will no longer see your partner's habits.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Tracker.LeavePair(user.ID); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ctx.Println("Left pair.")
	return nil
}

type PairInfoCmd struct{}

func (c *PairInfoCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	info, err := ctx.Tracker.PairInfo(user.ID)
	if errors.Is(err, tracker.ErrNotPaired) {
		ctx.Println("You are not in a pair. Start one with 'onehabit pair create'.")
		return nil
	}
	if err != nil {
		return err
	}

	ctx.Printf("Invite code: %s\n", info.Pair.InviteCode)
	ctx.Printf("Members (%d/%d):\n", len(info.Members), constants.MaxPairMembers)
	for _, m := range info.Members {
		you := ""
		if m.ID == user.ID {
			you = " (you)"
		}
		ctx.Printf("  %s%s\n", m.Label(), you)
	}
	return nil
}

type PairSyncCmd struct {
	Habit string `arg:"" help:"Shared habit ID or title."`
}

func (c *PairSyncCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(user, c.Habit)
	if err != nil {
		return err
	}
	report, err := ctx.Tracker.PartnerSync(habit.ID, user.ID)
	if err != nil {
		return fmt.Errorf("partner sync for %q: %w", habit.Title, err)
	}
	ctx.Println(render.Sync(habit.Title, report.Partner.Label(), report.SyncStatus))
	return nil
}
