package system

import (
	"github.com/julianstephens/onehabit/internal/cli"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized onehabit storage at: %s\n", ctx.Store.GetConfigPath())
	ctx.Println("Next: onehabit user add <name>")
	return nil
}

// migrator is implemented by stores with versioned schemas
type migrator interface {
	Migrate(logFn func(string)) (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		ctx.Println("This storage backend has no migrations.")
		return nil
	}
	applied, err := m.Migrate(func(msg string) { ctx.Println(msg) })
	if err != nil {
		return err
	}
	if applied > 0 {
		ctx.Printf("✓ Applied %d migration(s)\n", applied)
	}
	return nil
}
