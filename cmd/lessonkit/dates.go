package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lessonkit/internal/dates"
)

// dateTimeLayout is the input layout for meeting and timezone commands.
const dateTimeLayout = "2006-01-02 15:04"

func datesCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Calendar arithmetic helpers",
	}

	var on string
	// reference parses --on, defaulting to today.
	reference := func() (time.Time, error) {
		if on == "" {
			return dates.Civil(time.Now()), nil
		}
		return dates.ParseDate(on)
	}

	age := &cobra.Command{
		Use:   "age <birthdate>",
		Short: "Age in years, months and days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := dates.ParseDate(args[0])
			if err != nil {
				return err
			}
			ref, err := reference()
			if err != nil {
				return err
			}
			a, err := dates.CalculateAge(birth, ref)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d years, %d months, %d days (%d days total)\n", a.Years, a.Months, a.Days, a.TotalDays)
			return nil
		},
	}
	age.Flags().StringVar(&on, "on", "", "reference date (YYYY-MM-DD, default today)")

	birthday := &cobra.Command{
		Use:   "birthday <birthdate>",
		Short: "Days until the next birthday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := dates.ParseDate(args[0])
			if err != nil {
				return err
			}
			ref, err := reference()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d days\n", dates.DaysUntilNextBirthday(birth, ref))
			return nil
		},
	}
	birthday.Flags().StringVar(&on, "on", "", "reference date (YYYY-MM-DD, default today)")

	addMonths := &cobra.Command{
		Use:   "add-months <date> <months>",
		Short: "Shift a date by whole months, clamping to the month end",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dates.ParseDate(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid month count %q: %w", args[1], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dates.AddMonths(d, n).Format(time.DateOnly))
			return nil
		},
	}

	lastDay := &cobra.Command{
		Use:   "last-day <year> <month>",
		Short: "Last day of a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q: %w", args[0], err)
			}
			month, err := strconv.Atoi(args[1])
			if err != nil || month < 1 || month > 12 {
				return fmt.Errorf("invalid month %q", args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), dates.LastDayOfMonth(year, time.Month(month)))
			return nil
		},
	}

	var hours, minutes int
	meeting := &cobra.Command{
		Use:   "meeting <\"YYYY-MM-DD HH:MM\">",
		Short: "When a meeting of the given length ends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(dateTimeLayout, args[0])
			if err != nil {
				return fmt.Errorf("invalid start %q, use %q: %w", args[0], dateTimeLayout, err)
			}
			end, err := dates.MeetingEnd(start, hours, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), end.Format(dateTimeLayout))
			return nil
		},
	}
	meeting.Flags().IntVar(&hours, "hours", 1, "meeting hours")
	meeting.Flags().IntVar(&minutes, "minutes", 0, "meeting minutes")

	var from, to string
	convert := &cobra.Command{
		Use:   "convert <\"YYYY-MM-DD HH:MM\">",
		Short: "Convert a wall clock time between IANA timezones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := time.Parse(dateTimeLayout, args[0])
			if err != nil {
				return fmt.Errorf("invalid time %q, use %q: %w", args[0], dateTimeLayout, err)
			}
			converted, err := dates.ConvertTimezone(t, from, to)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), converted.Format(dateTimeLayout+" MST"))
			return nil
		},
	}
	convert.Flags().StringVar(&from, "from", "UTC", "source timezone")
	convert.Flags().StringVar(&to, "to", "UTC", "target timezone")
	_ = convert.MarkFlagRequired("to")

	remaining := &cobra.Command{
		Use:   "remaining <date>",
		Short: "Time left until a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := dates.ParseDate(args[0])
			if err != nil {
				return err
			}
			left := dates.RemainingUntil(target, time.Now())
			if left < 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has passed\n", args[0])
				return nil
			}
			days := int(left.Hours()) / 24
			fmt.Fprintf(cmd.OutOrStdout(), "%d days, %d hours, %d minutes\n", days, int(left.Hours())%24, int(left.Minutes())%60)
			return nil
		},
	}

	cmd.AddCommand(age, birthday, addMonths, lastDay, meeting, convert, remaining)
	return cmd
}
