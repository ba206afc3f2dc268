package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lessonkit/internal/password"
)

func passwordCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Generate, rate and hash passwords",
	}

	var length, count int
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate random passwords with every character class",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for range count {
				pw, err := password.Generate(length)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), pw)
			}
			return nil
		},
	}
	generate.Flags().IntVarP(&length, "length", "l", 16, "password length")
	generate.Flags().IntVarP(&count, "count", "n", 1, "number of passwords")

	check := &cobra.Command{
		Use:   "check <password>",
		Short: "Rate a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := password.CheckStrength(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Strength: %s (score %d, entropy %.1f bits)\n", s.Level, s.Score, s.Entropy)
			if len(s.Issues) > 0 {
				fmt.Fprintf(out, "Issues: %s\n", strings.Join(s.Issues, "; "))
			}
			for _, sug := range s.Suggestions {
				fmt.Fprintf(out, "  - %s\n", sug)
			}
			return nil
		},
	}

	var cost int
	var verify string
	hash := &cobra.Command{
		Use:   "hash <password>",
		Short: "Hash a password with bcrypt, or check it against --verify",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := password.NewHasher(cost)
			if verify != "" {
				err := h.Compare(verify, args[0])
				if errors.Is(err, password.ErrMismatch) {
					fmt.Fprintln(cmd.OutOrStdout(), "no match")
					return err
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "match")
				return nil
			}
			hashed, err := h.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return nil
		},
	}
	hash.Flags().IntVar(&cost, "cost", 0, "bcrypt cost (default bcrypt.DefaultCost)")
	hash.Flags().StringVar(&verify, "verify", "", "existing hash to compare the password against")

	cmd.AddCommand(generate, check, hash)
	return cmd
}
