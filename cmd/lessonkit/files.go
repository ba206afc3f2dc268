package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lessonkit/internal/fileops"
)

func filesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Small file utilities",
	}

	files := func() *fileops.Files { return fileops.New(a.fs) }

	printLines := func(cmd *cobra.Command, lines []string) {
		for _, l := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
	}

	var n int
	head := &cobra.Command{
		Use:   "head <file>",
		Short: "Print the first lines of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := files().Head(args[0], n)
			if err != nil {
				return err
			}
			printLines(cmd, lines)
			return nil
		},
	}
	head.Flags().IntVarP(&n, "lines", "n", 10, "number of lines")

	tail := &cobra.Command{
		Use:   "tail <file>",
		Short: "Print the last lines of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := files().Tail(args[0], n)
			if err != nil {
				return err
			}
			printLines(cmd, lines)
			return nil
		},
	}
	tail.Flags().IntVarP(&n, "lines", "n", 10, "number of lines")

	count := &cobra.Command{
		Use:   "count <file>",
		Short: "Count lines, words and bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := files()
			lines, err := f.CountLines(args[0])
			if err != nil {
				return err
			}
			words, err := f.CountWords(args[0])
			if err != nil {
				return err
			}
			size, err := f.Size(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d lines, %d words, %d bytes\n", lines, words, size)
			return nil
		},
	}

	longest := &cobra.Command{
		Use:   "longest <file>",
		Short: "Print the longest words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := files().LongestWords(args[0])
			if err != nil {
				return err
			}
			printLines(cmd, words)
			return nil
		},
	}

	freq := &cobra.Command{
		Use:   "freq <file>",
		Short: "Print word frequencies, most common first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := files().WordFrequency(args[0])
			if err != nil {
				return err
			}
			words := make([]string, 0, len(counts))
			for w := range counts {
				words = append(words, w)
			}
			sort.Slice(words, func(i, j int) bool {
				if counts[words[i]] != counts[words[j]] {
					return counts[words[i]] > counts[words[j]]
				}
				return words[i] < words[j]
			})
			for _, w := range words {
				fmt.Fprintf(cmd.OutOrStdout(), "%8d  %s\n", counts[w], w)
			}
			return nil
		},
	}

	appendCmd := &cobra.Command{
		Use:   "append <file> <text...>",
		Short: "Append a line and print the file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := files().Append(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	copyCmd := &cobra.Command{
		Use:   "copy <src> <dst>",
		Short: "Copy a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return files().Copy(args[0], args[1])
		},
	}

	var sep string
	combine := &cobra.Command{
		Use:   "combine <file1> <file2>",
		Short: "Join the files line by line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := files().CombineLines(args[0], args[1], sep)
			if err != nil {
				return err
			}
			printLines(cmd, lines)
			return nil
		},
	}
	combine.Flags().StringVar(&sep, "sep", " ", "separator between the two lines")

	var perLine int
	var dir string
	alphabet := &cobra.Command{
		Use:   "alphabet <file>",
		Short: "Write the alphabet, or with --dir one file per letter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir != "" {
				created, err := files().GenerateAlphaFiles(dir, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %d files in %s\n", len(created), dir)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("alphabet needs a file or --dir")
			}
			return files().WriteAlphabet(args[0], perLine)
		},
	}
	alphabet.Flags().IntVar(&perLine, "per-line", 2, "letters per line")
	alphabet.Flags().StringVar(&dir, "dir", "", "create A.txt through Z.txt in this directory")

	random := &cobra.Command{
		Use:   "random <file>",
		Short: "Print a random line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := files().RandomLine(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	characters := &cobra.Command{
		Use:   "characters <file...>",
		Short: "Print the characters of the files; missing files are skipped",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chars, err := files().Characters(args...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q\n", chars)
			return nil
		},
	}

	cmd.AddCommand(head, tail, count, longest, freq, appendCmd, copyCmd, combine, alphabet, random, characters)
	return cmd
}
