package goals

import (
	"fmt"
	"strings"

	"github.com/julianstephens/onehabit/internal/cli"
	"github.com/julianstephens/onehabit/internal/models"
	"github.com/julianstephens/onehabit/internal/render"
	"github.com/julianstephens/onehabit/internal/tracker"
	"github.com/julianstephens/onehabit/internal/validation"
)

type GoalCmd struct {
	Add      GoalAddCmd      `cmd:"" help:"Add a goal for this month."`
	List     GoalListCmd     `cmd:"" help:"List goals for a month."`
	Progress GoalProgressCmd `cmd:"" help:"Set a goal's progress by hand."`
	Recalc   GoalRecalcCmd   `cmd:"" help:"Recount goal progress from check-ins."`
	Edit     GoalEditCmd     `cmd:"" help:"Edit a goal."`
	Delete   GoalDeleteCmd   `cmd:"" help:"Delete a goal."`
	Summary  GoalSummaryCmd  `cmd:"" help:"Summarize a month's goals."`
	Suggest  GoalSuggestCmd  `cmd:"" help:"Suggest goals from your habits."`
}

// resolveGoal finds one of the user's goals in month by ID or title
func resolveGoal(ctx *cli.Context, user models.User, ref, month string) (models.MonthlyGoal, error) {
	goals, err := ctx.Tracker.Goals(user.ID, month)
	if err != nil {
		return models.MonthlyGoal{}, err
	}
	for _, g := range goals {
		if g.ID == ref {
			return g, nil
		}
	}
	for _, g := range goals {
		if strings.EqualFold(g.Title, ref) {
			return g, nil
		}
	}
	return models.MonthlyGoal{}, fmt.Errorf("goal %q not found", ref)
}

type GoalAddCmd struct {
	Title       string   `arg:"" optional:"" help:"Goal title (omit to fill in a form)."`
	Target      float64  `help:"Target value."`
	Unit        string   `help:"Unit of the target (default: check-ins)."`
	Description string   `help:"Longer description."`
	Habits      []string `name:"habit" help:"Related habit ID or title; check-ins on these count toward the goal. Repeatable."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	in := tracker.GoalInput{
		Title:       c.Title,
		Description: c.Description,
		TargetValue: c.Target,
		Unit:        c.Unit,
	}
	if in.Title == "" {
		if err := ctx.Prompter.GoalForm(&in); err != nil {
			return err
		}
	}
	for _, ref := range c.Habits {
		habit, err := ctx.ResolveHabit(user, ref)
		if err != nil {
			return err
		}
		in.RelatedHabits = append(in.RelatedHabits, habit.ID)
	}

	goal, err := ctx.Tracker.CreateGoal(user.ID, in)
	if err != nil {
		return err
	}
	if len(goal.RelatedHabits) > 0 {
		if _, err := ctx.Tracker.RecalculateGoal(goal.ID, user.ID); err != nil {
			return err
		}
	}
	ctx.PerformAutomaticBackup()

	ctx.Printf("Added goal for %s: %s (ID: %s)\n", goal.Month, goal.Title, goal.ID)
	return nil
}

type GoalListCmd struct {
	Month string `help:"Month in YYYY-MM format (default: this month)."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	goals, err := ctx.Tracker.Goals(user.ID, c.Month)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		ctx.Println("No goals found.")
		return nil
	}
	for _, g := range goals {
		ctx.Printf("%s  %s\n", g.ID, render.Goal(g))
	}
	return nil
}

type GoalProgressCmd struct {
	Goal  string  `arg:"" help:"Goal ID or title."`
	Value float64 `arg:"" help:"Current value."`
	Month string  `help:"Month of the goal (default: this month)."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	goal, err := resolveGoal(ctx, user, c.Goal, c.Month)
	if err != nil {
		return err
	}
	p, err := ctx.Tracker.SetGoalProgress(goal.ID, user.ID, c.Value)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ctx.Printf("%s: %.0f/%.0f %s (%.0f%%)\n", goal.Title, p.CurrentValue, goal.TargetValue, goal.Unit, p.Percent)
	if p.Completed && !goal.Completed {
		ctx.Println("Goal completed!")
	}
	return nil
}

type GoalRecalcCmd struct {
	Goal  string `arg:"" optional:"" help:"Goal ID or title (default: every goal with related habits)."`
	Month string `help:"Month in YYYY-MM format (default: this month)."`
}

func (c *GoalRecalcCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	if c.Goal != "" {
		goal, err := resolveGoal(ctx, user, c.Goal, c.Month)
		if err != nil {
			return err
		}
		p, err := ctx.Tracker.RecalculateGoal(goal.ID, user.ID)
		if err != nil {
			return err
		}
		ctx.PerformAutomaticBackup()
		ctx.Printf("%s: %.0f/%.0f %s (%.0f%%)\n", goal.Title, p.CurrentValue, goal.TargetValue, goal.Unit, p.Percent)
		return nil
	}

	goals, err := ctx.Tracker.RecalculateGoals(user.ID, c.Month)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	ctx.Printf("Recalculated %d goal(s)\n", len(goals))
	for _, g := range goals {
		ctx.Println(render.Goal(g))
	}
	return nil
}

type GoalEditCmd struct {
	Goal        string   `arg:"" help:"Goal ID or title."`
	Month       string   `help:"Month of the goal (default: this month)."`
	Title       *string  `help:"New title."`
	Description *string  `help:"New description."`
	Target      *float64 `help:"New target value."`
	Unit        *string  `help:"New unit."`
}

func (c *GoalEditCmd) Run(ctx *cli.Context) error {
	if c.Title == nil && c.Description == nil && c.Target == nil && c.Unit == nil {
		ctx.Println("No changes specified. Use --title, --description, --target or --unit.")
		return nil
	}
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	goal, err := resolveGoal(ctx, user, c.Goal, c.Month)
	if err != nil {
		return err
	}
	goal, err = ctx.Tracker.UpdateGoal(goal.ID, user.ID, tracker.GoalUpdate{
		Title:       c.Title,
		Description: c.Description,
		TargetValue: c.Target,
		Unit:        c.Unit,
	})
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ctx.Println("Updated goal:")
	ctx.Println(render.Goal(goal))
	return nil
}

type GoalDeleteCmd struct {
	Goal  string `arg:"" help:"Goal ID or title."`
	Month string `help:"Month of the goal (default: this month)."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	goal, err := resolveGoal(ctx, user, c.Goal, c.Month)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteGoal(goal.ID, user.ID); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	ctx.Printf("Deleted goal: %s\n", goal.Title)
	return nil
}

type GoalSummaryCmd struct {
	Month string `help:"Month in YYYY-MM format (default: this month)."`
}

func (c *GoalSummaryCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	month := c.Month
	if month == "" {
		today, err := ctx.Tracker.Today(user)
		if err != nil {
			return err
		}
		month = today.Format("2006-01")
	} else if err := validation.ValidateMonth(month); err != nil {
		return err
	}

	summary, err := ctx.Tracker.GoalSummary(user.ID, month)
	if err != nil {
		return err
	}
	ctx.Println(render.GoalSummary(month, summary))
	return nil
}

type GoalSuggestCmd struct {
	Accept []int `help:"Create the suggestions with these numbers."`
}

func (c *GoalSuggestCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	suggestions, err := ctx.Tracker.GoalSuggestions(user.ID)
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		ctx.Println("No suggestions yet. Add a habit first.")
		return nil
	}

	if len(c.Accept) == 0 {
		for i, s := range suggestions {
			ctx.Printf("%d. %s (target %.0f %s)\n   %s\n", i+1, s.Title, s.TargetValue, s.Unit, s.Description)
		}
		ctx.Println("\nCreate one with: onehabit goal suggest --accept <number>")
		return nil
	}

	for _, n := range c.Accept {
		if n < 1 || n > len(suggestions) {
			return fmt.Errorf("%w: no suggestion %d", tracker.ErrInvalidInput, n)
		}
		s := suggestions[n-1]
		goal, err := ctx.Tracker.CreateGoal(user.ID, tracker.GoalInput{
			Title:         s.Title,
			Description:   s.Description,
			TargetValue:   s.TargetValue,
			Unit:          s.Unit,
			RelatedHabits: s.RelatedHabits,
		})
		if err != nil {
			return err
		}
		ctx.Printf("Added goal: %s\n", goal.Title)
	}
	ctx.PerformAutomaticBackup()
	return nil
}
