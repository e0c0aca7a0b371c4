package system

import (
	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/tui"
)

type DashboardCmd struct {
	Workers int `help:"Compute up to N habits concurrently." default:"0"`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	m := tui.NewModel(ctx.Store, ctx.Aggregator(c.Workers), ctx.Today(), ctx.DefaultRange())
	return tui.Run(m)
}
