package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) bindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bind <posed.obj> <reference.obj>",
		Short: "Pair the seam curves of a posed mesh against another instance of it",
		Long: "bind analyses the posed mesh, then pairs its flattened perimeter curves using the UV layout\n" +
			"of the reference instance, such as a deformed or edited copy.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			posed, err := loadMesh(args[0])
			if err != nil {
				return err
			}
			ref, err := loadMesh(args[1])
			if err != nil {
				return err
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}
			res, err := engine.Analyze(posed)
			if err != nil {
				return err
			}
			pairs, err := engine.Bind(res.Flat, ref, res.Curves)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "mesh %s against %s: %d curves, %d pairs\n", posed.Name(), ref.Name(), len(res.Curves), len(pairs))
			printPairs(w, pairs)
			return nil
		},
	}
}
