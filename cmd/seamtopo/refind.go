package main

import (
	"fmt"

	"github.com/fine-structures/seamtopo/libseam"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (c *cli) refindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refind <master.obj> <target.obj>",
		Short: "Re-find the seam anchors of one mesh on another instance by UV coordinate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			master, err := loadMesh(args[0])
			if err != nil {
				return err
			}
			target, err := loadMesh(args[1])
			if err != nil {
				return err
			}
			_, _, anchors, err := libseam.MasterPoints(master)
			if err != nil {
				return err
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}
			matches, err := engine.ReFind(anchors, target)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			var missing []seam.UVID
			for _, uv := range anchors.Keys().Sorted() {
				if found, ok := matches[uv]; ok {
					fmt.Fprintf(w, "uv %d -> %d\n", uv, found)
				} else {
					fmt.Fprintf(w, "uv %d -> none\n", uv)
					missing = append(missing, uv)
				}
			}
			fmt.Fprintf(w, "%d of %d anchors re-found\n", len(matches), len(anchors))

			if require, _ := cmd.Flags().GetBool("require"); require && len(missing) > 0 {
				return errors.Wrapf(seam.ErrToleranceMiss, "anchors %v", missing)
			}
			return nil
		},
	}
	cmd.Flags().Bool("require", false, "fail unless every anchor is re-found")
	return cmd
}
