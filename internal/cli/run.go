package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go-metcolour"
	"github.com/anatolykoptev/go-metcolour/internal/config"
)

func newRunCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Classify every image of a department and write images.json",
		Example: `  metcolour run --department 11 --limit 20
  METCOLOUR_DEPARTMENT=11 metcolour run --concurrency 4 --dedup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if cfg.Department < 1 {
				return fmt.Errorf("--%s is required", config.KeyDepartment)
			}

			lib := cfg.Library()
			lib.Logger = a.logger

			results, err := lib.ProcessDepartment(cmd.Context(), cfg.Department, cfg.BatchOpts())
			if err != nil {
				return err
			}

			path, err := metcolour.WriteResults(cfg.OutputDir, results)
			if err != nil {
				return err
			}
			if !a.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Success! Check out %q (%d images).\n", path, len(results))
			}
			return nil
		},
	}
}

func newObjectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "object <id>",
		Short: "Classify a single catalog object and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid object id %q: %w", args[0], err)
			}

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			lib := cfg.Library()
			lib.Logger = a.logger

			res, err := lib.Process(cmd.Context(), id)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
