package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/sysinfo"
)

// ShowInfo prints the host hardware the renderer will run on.
func ShowInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	info, err := sysinfo.Collect()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"CPU", info.CPUModel},
		{"Clock", fmt.Sprintf("%.2f GHz", info.ClockGHz)},
		{"Cores", fmt.Sprintf("%d physical, %d logical", info.PhysicalCores, info.LogicalCores)},
		{"Memory", fmt.Sprintf("%.1f GiB total, %.1f GiB free", info.TotalRAMGiB, info.FreeRAMGiB)},
		{"Platform", info.Platform},
		{"Go", fmt.Sprintf("%s (GOMAXPROCS %d)", info.GoVersion, info.GOMAXPROCS)},
	})
	table.Render()
	return nil
}
