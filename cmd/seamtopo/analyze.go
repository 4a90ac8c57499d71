package main

import (
	"fmt"
	"io"

	"github.com/fine-structures/seamtopo/libseam"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/spf13/cobra"
)

func (c *cli) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <mesh.obj>",
		Short: "Find and pair the seam curves of a posed mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			X, err := loadMesh(args[0])
			if err != nil {
				return err
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}
			res, err := engine.Analyze(X)
			if err != nil {
				return err
			}
			edges, _ := cmd.Flags().GetBool("edges")
			printResult(cmd.OutOrStdout(), res, edges)
			return nil
		},
	}
	cmd.Flags().Bool("edges", false, "list the border edges of each curve")
	return cmd
}

func printResult(w io.Writer, res *libseam.Result, edges bool) {
	fmt.Fprintf(w, "mesh %s: %d border uvs, %d anchors, %d curves, %d pairs\n",
		res.Posed.Name(), res.Border.UVs.Len(), len(res.Anchors), len(res.Curves), len(res.Pairs))
	for _, pc := range res.Curves {
		form := "open"
		if pc.Closed() {
			form = "closed"
		}
		pair := "-"
		if pc.PairID != seam.NoPair {
			pair = fmt.Sprint(pc.PairID)
		}
		fmt.Fprintf(w, "curve %d %s shell=%d uvs=%v anchors=%v pair=%s\n",
			pc.ID, form, pc.Arc.Shell, pc.Arc.Path, pc.Anchors.Sorted(), pair)
		if edges {
			fmt.Fprintf(w, "  edges %v\n", pc.Edges.Sorted())
		}
	}
	printPairs(w, res.Pairs)
}

func printPairs(w io.Writer, pairs []seam.CurvePair) {
	for _, pair := range pairs {
		fmt.Fprintf(w, "pair %d: curves %d and %d at (%.4g, %.4g, %.4g)\n",
			pair.ID, pair.A, pair.B, pair.Pointer.X, pair.Pointer.Y, pair.Pointer.Z)
	}
}
