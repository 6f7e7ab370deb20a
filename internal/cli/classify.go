package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go-metcolour"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <r,g,b>...",
		Short: "Classify a palette given on the command line",
		Example: `  metcolour classify 200,10,10 1,1,1 150,20,5
  Red`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			palette := make(metcolour.Palette, 0, len(args))
			for _, arg := range args {
				c, err := parseRGB(arg)
				if err != nil {
					return err
				}
				palette = append(palette, c)
			}

			primary, err := metcolour.ClassifyPalette(palette)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), primary)
			return nil
		},
	}
}

// parseRGB parses "R,G,B" (spaces allowed around values).
func parseRGB(s string) (metcolour.RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return metcolour.RGB{}, fmt.Errorf("invalid colour %q: want R,G,B", s)
	}
	var c metcolour.RGB
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return metcolour.RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		c[i] = v
	}
	return c, nil
}
