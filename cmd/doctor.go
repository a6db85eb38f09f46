package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/storage"
)

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored collections for damage",
	Long: `Read every collection straight from the database and report whether
it decodes, how many records it holds, and any duplicate keys.

Exits non-zero when a collection is damaged.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := storage.CheckIntegrity(ctx.Store, ctx.Now())
	ctx.Debugf("integrity check at %s: healthy=%t", ctx.DataPath(), report.Healthy)

	var damaged error
	if !report.Healthy {
		damaged = errors.NewSystemErrorWithOp("doctor", "store has damaged collections", errors.ErrDatabaseCorrupted)
	}

	if ctx.IsJSON() {
		if err := ctx.JSONFormatter().PrintIntegrity(report); err != nil {
			return err
		}
		if damaged != nil {
			return &reportedError{err: damaged}
		}
		return nil
	}
	ctx.CLIFormatter().PrintIntegrity(report)
	return damaged
}
