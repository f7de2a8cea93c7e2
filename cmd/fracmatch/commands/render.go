package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DoyleJ11/fracmatch/internal/engine"
	"github.com/DoyleJ11/fracmatch/internal/fraction"
	"github.com/DoyleJ11/fracmatch/internal/render"
)

func renderCmd() *cobra.Command {
	var (
		shape string
		color string
	)
	cmd := &cobra.Command{
		Use:   "render <numerator>/<denominator>",
		Short: "Print a fraction drawing as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFraction(args[0])
			if err != nil {
				return err
			}
			s, ok := fraction.ParseShape(shape)
			if !ok {
				return fmt.Errorf("unknown shape %q", shape)
			}
			if err := render.Render(f, s, color).WriteSVG(cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVar(&shape, "shape", string(fraction.ShapeCircle), "circle or bar")
	cmd.Flags().StringVar(&color, "color", engine.Palette[0], "fill color")
	return cmd
}

func parseFraction(s string) (fraction.Fraction, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return fraction.Fraction{}, fmt.Errorf("fraction %q: want n/d", s)
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return fraction.Fraction{}, fmt.Errorf("fraction %q: %w", s, err)
	}
	d, err := strconv.Atoi(den)
	if err != nil {
		return fraction.Fraction{}, fmt.Errorf("fraction %q: %w", s, err)
	}
	f := fraction.New(n, d)
	if !f.Valid() {
		return fraction.Fraction{}, fmt.Errorf("fraction %q: numerator must be >= 0 and denominator > 0", s)
	}
	return f, nil
}
