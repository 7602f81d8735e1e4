// Command nwk applies one tree operation to a Newick file and prints the
// result to standard output.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jhbadger/newick"
	"github.com/jhbadger/newick/align"
	"github.com/jhbadger/newick/draw"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nwk",
		Short:         "manipulate phylogenetic trees in Newick format",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newReorderCmd(),
		newUnrootCmd(),
		newRerootCmd(),
		newMidpointCmd(),
		newDistCmd(),
		newCompareCmd(),
		newAliasCmd(),
		newUnAliasCmd(),
		newDrawCmd(),
	)
	return root
}

// readTree parses the single tree in the named file.
func readTree(path string) (*newick.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return newick.NewReader(f).ReadTree()
}

func printTree(t *newick.Tree) {
	fmt.Println(t.Newick(true, newick.LabelName))
}

func newReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder FILE",
		Short: "sort children by name at every level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(args[0])
			if err != nil {
				return err
			}
			printTree(t.Reorder())
			return nil
		},
	}
}

func newUnrootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unroot FILE",
		Short: "convert a bifurcating root to the unrooted form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(args[0])
			if err != nil {
				return err
			}
			printTree(t.Unroot())
			return nil
		},
	}
}

func newRerootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reroot FILE TAXON",
		Short: "reroot the tree on the branch above the named taxon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(args[0])
			if err != nil {
				return err
			}
			outgroup := t.FindNode(args[1])
			if outgroup == nil {
				return fmt.Errorf("taxon %q not found", args[1])
			}
			printTree(t.Reroot(outgroup))
			return nil
		},
	}
}

func newMidpointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "midpoint FILE",
		Short: "reroot the tree at the midpoint of its longest path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(args[0])
			if err != nil {
				return err
			}
			printTree(t.MidpointRoot())
			return nil
		},
	}
}

func newDistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dist FILE",
		Short: "print the pairwise patristic distance matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(args[0])
			if err != nil {
				return err
			}
			matrix := t.DistanceMatrix()
			taxa := make([]string, 0, len(matrix))
			for name := range matrix {
				taxa = append(taxa, name)
			}
			sort.Strings(taxa)

			w := table.NewWriter()
			w.SetOutputMirror(cmd.OutOrStdout())
			header := table.Row{""}
			for _, name := range taxa {
				header = append(header, name)
			}
			w.AppendHeader(header)
			for _, from := range taxa {
				row := table.Row{from}
				for _, to := range taxa {
					row = append(row, fmt.Sprintf("%g", matrix[from][to]))
				}
				w.AppendRow(row)
			}
			w.Render()
			return nil
		},
	}
}

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare FILE1 FILE2",
		Short: "report the clades each tree has that the other lacks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t1, err := readTree(args[0])
			if err != nil {
				return err
			}
			t2, err := readTree(args[1])
			if err != nil {
				return err
			}
			only1, only2, err := t1.CompareTopology(t2)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Clades only in %s:\n", args[0])
			for _, clade := range only1 {
				fmt.Fprintf(out, "  %s\n", strings.Join(clade, ", "))
			}
			fmt.Fprintf(out, "Clades only in %s:\n", args[1])
			for _, clade := range only2 {
				fmt.Fprintf(out, "  %s\n", strings.Join(clade, ", "))
			}
			return nil
		},
	}
}

func newAliasCmd() *cobra.Command {
	var long bool
	var mapFile string
	cmd := &cobra.Command{
		Use:   "alias FILE",
		Short: "replace taxon names with generated SEQ aliases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(args[0])
			if err != nil {
				return err
			}
			var sink *os.File
			if mapFile != "" {
				sink, err = os.Create(mapFile)
				if err != nil {
					return err
				}
				defer sink.Close()
			}
			if sink != nil {
				_, err = t.Alias(long, sink)
			} else {
				_, err = t.Alias(long, nil)
			}
			if err != nil {
				return err
			}
			printTree(t)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false,
		"size aliases to the longest taxon name")
	cmd.Flags().StringVarP(&mapFile, "map", "m", "",
		"write the alias map to this file")
	return cmd
}

func newUnAliasCmd() *cobra.Command {
	var re bool
	var fastaFile string
	cmd := &cobra.Command{
		Use:   "unalias FILE [MAPFILE]",
		Short: "restore names from an alias map or FASTA annotations",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(args[0])
			if err != nil {
				return err
			}
			var names map[string]string
			switch {
			case fastaFile != "":
				f, err := os.Open(fastaFile)
				if err != nil {
					return err
				}
				defer f.Close()
				names, err = align.Annotations(f)
				if err != nil {
					return err
				}
			case len(args) == 2:
				names, err = readAliasMap(args[1])
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("either MAPFILE or --fasta is required")
			}
			if re {
				t.ReAlias(names)
			} else {
				t.UnAlias(names)
			}
			printTree(t)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&re, "re", "r", false,
		"apply the map in reverse, restoring aliases")
	cmd.Flags().StringVarP(&fastaFile, "fasta", "f", "",
		"harvest the name map from this FASTA file's headers")
	return cmd
}

func newDrawCmd() *cobra.Command {
	var out string
	var width, height int
	cmd := &cobra.Command{
		Use:   "draw FILE",
		Short: "render the tree as an SVG phylogram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			draw.SVG(f, t, draw.Options{Width: width, Height: height})
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "tree.svg", "output SVG file")
	cmd.Flags().IntVar(&width, "width", 640, "canvas width in pixels")
	cmd.Flags().IntVar(&height, "height", 480, "canvas height in pixels")
	return cmd
}

// readAliasMap reads "alias<TAB>original" lines, as written by alias -m.
func readAliasMap(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed alias map line %q", line)
		}
		names[parts[0]] = parts[1]
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
