package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/service"
)

func rosterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the crew roster database",
	}

	// withRoster opens the database for the duration of fn.
	withRoster := func(cmd *cobra.Command, fn func(service.RosterService) error) error {
		svc, closeDB, err := a.openRoster(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()
		return fn(svc)
	}

	var species string
	list := &cobra.Command{
		Use:   "list",
		Short: "List members, optionally of one species",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRoster(cmd, func(svc service.RosterService) error {
				var (
					members []*domain.RosterMember
					err     error
				)
				if species != "" {
					members, err = svc.FindBySpecies(cmd.Context(), species)
				} else {
					members, err = svc.List(cmd.Context())
				}
				if err != nil {
					return err
				}
				return printMembers(cmd.OutOrStdout(), members)
			})
		},
	}
	list.Flags().StringVar(&species, "species", "", "only list members of this species")

	find := &cobra.Command{
		Use:   "find <name>",
		Short: "Find a member by exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoster(cmd, func(svc service.RosterService) error {
				m, err := svc.FindByName(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printMembers(cmd.OutOrStdout(), []*domain.RosterMember{m})
			})
		},
	}

	var name string
	var age int
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a member",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRoster(cmd, func(svc service.RosterService) error {
				m, err := svc.Create(cmd.Context(), name, species, age)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s with id %d\n", m.Name, m.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "member name")
	add.Flags().StringVar(&species, "species", "", "member species")
	add.Flags().IntVar(&age, "age", 0, "member age")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("species")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a member; a backup is taken first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMemberID(args[0])
			if err != nil {
				return err
			}
			var u domain.RosterUpdate
			if cmd.Flags().Changed("name") {
				u.Name = &name
			}
			if cmd.Flags().Changed("species") {
				u.Species = &species
			}
			if cmd.Flags().Changed("age") {
				u.Age = &age
			}
			return withRoster(cmd, func(svc service.RosterService) error {
				m, err := svc.Update(cmd.Context(), id, u)
				if err != nil {
					return err
				}
				return printMembers(cmd.OutOrStdout(), []*domain.RosterMember{m})
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "new name")
	update.Flags().StringVar(&species, "species", "", "new species")
	update.Flags().IntVar(&age, "age", 0, "new age")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a member; a backup is taken first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMemberID(args[0])
			if err != nil {
				return err
			}
			return withRoster(cmd, func(svc service.RosterService) error {
				m, err := svc.Delete(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (id %d)\n", m.Name, m.ID)
				return nil
			})
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print roster statistics as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRoster(cmd, func(svc service.RosterService) error {
				s, err := svc.Statistics(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), s)
			})
		},
	}

	backup := &cobra.Command{
		Use:   "backup",
		Short: "Copy the database into the backup directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRoster(cmd, func(svc service.RosterService) error {
				path, err := svc.Backup(cmd.Context())
				if err != nil {
					return err
				}
				if path == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "Backup skipped for in-memory database")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
				return nil
			})
		},
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in crew into an empty roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRoster(cmd, func(svc service.RosterService) error {
				n, err := svc.Seed(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d members\n", n)
				return nil
			})
		},
	}

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import members from a YAML list in one transaction; reads stdin without a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			in, err := a.openInput(cmd, path)
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()
			return withRoster(cmd, func(svc service.RosterService) error {
				members, err := svc.Import(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d members\n", len(members))
				return nil
			})
		},
	}

	cmd.AddCommand(list, find, add, update, del, stats, backup, seed, importCmd)
	return cmd
}

func parseMemberID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, s)
	}
	return id, nil
}

func printMembers(w io.Writer, members []*domain.RosterMember) error {
	if len(members) == 0 {
		_, err := fmt.Fprintln(w, "(no members)")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tAGE")
	for _, m := range members {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", m.ID, m.Name, m.Species, m.Age)
	}
	return tw.Flush()
}
