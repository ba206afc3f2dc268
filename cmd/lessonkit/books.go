package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/platform/jsonfile"
	"github.com/phrazzld/lessonkit/internal/service"
)

func booksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the book catalogue stored in the data directory",
	}

	open := func() (*service.LibraryService, error) {
		path, err := a.dataPath(booksFile)
		if err != nil {
			return nil, err
		}
		return service.NewLibraryService(jsonfile.NewBookStore(a.fs, path, a.logger), nil, a.logger)
	}

	var (
		title, author, genre, isbn string
		year                       int
		rating                     float64
	)
	bookFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&title, "title", "", "book title")
		c.Flags().StringVar(&author, "author", "", "author")
		c.Flags().IntVar(&year, "year", 0, "publication year")
		c.Flags().StringVar(&genre, "genre", "", "genre")
		c.Flags().StringVar(&isbn, "isbn", "", "ISBN")
		c.Flags().Float64Var(&rating, "rating", 0, "rating between 0 and 10")
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := open()
			if err != nil {
				return err
			}
			b := domain.Book{Title: title, Author: author, Year: year, Genre: genre}
			if cmd.Flags().Changed("isbn") {
				b.ISBN = &isbn
			}
			if cmd.Flags().Changed("rating") {
				b.Rating = &rating
			}
			created, err := lib.Create(cmd.Context(), b)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q with id %d\n", created.Title, created.ID)
			return nil
		},
	}
	bookFlags(add)
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("author")
	_ = add.MarkFlagRequired("year")

	list := &cobra.Command{
		Use:   "list",
		Short: "List every book",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := open()
			if err != nil {
				return err
			}
			books, err := lib.List(cmd.Context())
			if err != nil {
				return err
			}
			return printBooks(cmd.OutOrStdout(), books)
		},
	}

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search titles, authors and genres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := open()
			if err != nil {
				return err
			}
			books, err := lib.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printBooks(cmd.OutOrStdout(), books)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print one book as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			lib, err := open()
			if err != nil {
				return err
			}
			b, err := lib.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), b)
		},
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var u domain.BookUpdate
			flags := cmd.Flags()
			if flags.Changed("title") {
				u.Title = &title
			}
			if flags.Changed("author") {
				u.Author = &author
			}
			if flags.Changed("year") {
				u.Year = &year
			}
			if flags.Changed("genre") {
				u.Genre = &genre
			}
			if flags.Changed("isbn") {
				u.ISBN = &isbn
			}
			if flags.Changed("rating") {
				u.Rating = &rating
			}
			lib, err := open()
			if err != nil {
				return err
			}
			b, err := lib.Update(cmd.Context(), id, u)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), b)
		},
	}
	bookFlags(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			lib, err := open()
			if err != nil {
				return err
			}
			b, err := lib.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", b.Title)
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print catalogue statistics as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := open()
			if err != nil {
				return err
			}
			s, err := lib.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}

	cmd.AddCommand(add, list, search, get, update, del, stats)
	return cmd
}

func studentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "students",
		Short: "List students with their average grade; sample records are created on first use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.dataPath(studentsFile)
			if err != nil {
				return err
			}
			svc, err := service.NewStudentService(jsonfile.NewStudentStore(a.fs, path, a.logger), a.logger)
			if err != nil {
				return err
			}
			students, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tAGE\tAVERAGE")
			for _, s := range students {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\n", s.ID, s.Name, s.Age, s.Average)
			}
			return tw.Flush()
		},
	}
}

func printBooks(w io.Writer, books []domain.Book) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "(no books)")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tYEAR\tGENRE")
	for _, b := range books {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", b.ID, b.Title, b.Author, b.Year, b.Genre)
	}
	return tw.Flush()
}
