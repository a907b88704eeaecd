package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/theflywheel/slowhash"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run [script]",
		Short: "Execute table commands from a script file or stdin",
		Long: `Execute table commands, one per line:

  insert <key> <value>   store value under key
  search <key>           print the value stored under key
  remove <key>           delete key
  stats                  print occupancy
  dump                   print every entry, sorted by key

Blank lines and lines starting with # are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "opening script")
				}
				defer f.Close()
				in = f
			}

			s, err := newSession(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := execScript(s.table, in, out); err != nil {
				_ = s.close(out)
				return err
			}
			return s.close(out)
		},
	}
}

// execScript runs every command read from r against tbl and writes results to w.
func execScript(tbl *slowhash.Table, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := execLine(tbl, line, w); err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
	}
	return errors.Wrap(sc.Err(), "reading script")
}

func execLine(tbl *slowhash.Table, line string, w io.Writer) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "insert":
		key, value, ok := strings.Cut(rest, " ")
		if !ok || key == "" {
			return errors.New("usage: insert <key> <value>")
		}
		tbl.Insert(key, strings.TrimSpace(value))
	case "search":
		if rest == "" {
			return errors.New("usage: search <key>")
		}
		if v, ok := tbl.Search(rest); ok {
			fmt.Fprintf(w, "%s => %s\n", rest, v)
		} else {
			fmt.Fprintf(w, "%s not found\n", rest)
		}
	case "remove":
		if rest == "" {
			return errors.New("usage: remove <key>")
		}
		tbl.Remove(rest)
	case "stats":
		renderStats(w, tbl.Stats())
	case "dump":
		var entries []slowhash.Entry
		tbl.Range(func(k, v string) bool {
			entries = append(entries, slowhash.Entry{Key: k, Value: v})
			return true
		})
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
		for _, e := range entries {
			fmt.Fprintf(w, "%s => %s\n", e.Key, e.Value)
		}
	default:
		return errors.Newf("unknown command %q", cmd)
	}
	return nil
}

func renderStats(w io.Writer, st slowhash.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Capacity", "Count", "Tombstones", "Base Size", "Load"})
	table.Append([]string{
		humanize.Comma(int64(st.Capacity)),
		humanize.Comma(int64(st.Count)),
		humanize.Comma(int64(st.Tombstones)),
		humanize.Comma(int64(st.BaseSize)),
		fmt.Sprintf("%d%%", st.LoadPercent),
	})
	table.Render()
}
