package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDemoCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Insert, look up and update a handful of keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tbl := s.table

			for i := 0; i < 10; i++ {
				tbl.Insert(fmt.Sprintf("key-%d", i), fmt.Sprintf("%d", i*100))
			}
			fmt.Fprintf(out, "Inserted %d key-value pairs\n", tbl.Count())

			for i := 0; i < 15; i += 2 {
				key := fmt.Sprintf("key-%d", i)
				if v, ok := tbl.Search(key); ok {
					fmt.Fprintf(out, "%s => %s\n", key, v)
				} else {
					fmt.Fprintf(out, "%s not found\n", key)
				}
			}

			tbl.Insert("key-2", "999")
			if v, ok := tbl.Search("key-2"); ok {
				fmt.Fprintf(out, "Updated key-2 => %s\n", v)
			}

			tbl.Remove("key-4")
			renderStats(out, tbl.Stats())
			return s.close(out)
		},
	}
}
