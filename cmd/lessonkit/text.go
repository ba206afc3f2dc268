package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lessonkit/internal/textutil"
)

func textCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Validate and extract things from text",
	}

	email := &cobra.Command{
		Use:   "email <address>",
		Short: "Validate an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := textutil.ValidateEmail(args[0])
			out := cmd.OutOrStdout()
			status := "invalid"
			if res.Valid {
				status = "valid"
			}
			fmt.Fprintf(out, "%s: %s\n", status, res.Message)
			for _, s := range res.Suggestions {
				fmt.Fprintf(out, "  - %s\n", s)
			}
			return nil
		},
	}

	var format string
	var lenient bool
	phone := &cobra.Command{
		Use:   "phone <number>",
		Short: "Format a phone number (formats: " + strings.Join(textutil.PhoneFormatNames(), ", ") + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatted, padded, err := textutil.FormatPhone(args[0], format, !lenient)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatted)
			if padded {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: number was padded with leading zeros")
			}
			return nil
		},
	}
	phone.Flags().StringVarP(&format, "format", "f", "us", "output format")
	phone.Flags().BoolVar(&lenient, "lenient", false, "pad short numbers with zeros instead of failing")

	var minYear, maxYear int
	extract := &cobra.Command{
		Use:   "dates [file]",
		Short: "Extract dates from text; reads stdin without a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readText(cmd, args)
			if err != nil {
				return err
			}
			for _, d := range textutil.ExtractDates(text, minYear, maxYear) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%-12s\t%s\n", d.Date.Format("2006-01-02"), d.Format, d.Text)
			}
			return nil
		},
	}
	extract.Flags().IntVar(&minYear, "min-year", 1900, "earliest accepted year")
	extract.Flags().IntVar(&maxYear, "max-year", 2100, "latest accepted year")

	var caseSensitive bool
	find := &cobra.Command{
		Use:   "find <word> [file]",
		Short: "Print the byte offsets of whole-word occurrences",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readText(cmd, args[1:])
			if err != nil {
				return err
			}
			positions := textutil.FindWordOccurrences(text, args[0], caseSensitive)
			fmt.Fprintf(cmd.OutOrStdout(), "%d occurrences: %v\n", len(positions), positions)
			return nil
		},
	}
	find.Flags().BoolVarP(&caseSensitive, "case-sensitive", "c", false, "match case")

	cmd.AddCommand(email, phone, extract, find)
	return cmd
}

// readText reads the file named in args, or stdin when args is empty.
func (a *app) readText(cmd *cobra.Command, args []string) (string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	in, err := a.openInput(cmd, path)
	if err != nil {
		return "", err
	}
	defer func() { _ = in.Close() }()
	b, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
