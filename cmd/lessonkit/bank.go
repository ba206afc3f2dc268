package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/platform/bolt"
	"github.com/phrazzld/lessonkit/internal/service"
)

func bankCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Operate the persistent bank ledger",
	}

	withLedger := func(cmd *cobra.Command, fn func(service.LedgerService, *bolt.EventLog) error) error {
		svc, eventLog, closeDB, err := a.openLedger(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()
		return fn(svc, eventLog)
	}

	var holder, balance, overdraft string
	open := &cobra.Command{
		Use:   "open <number>",
		Short: "Open an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseID(args[0])
			if err != nil {
				return err
			}
			bal, err := domain.ParseMoney(balance)
			if err != nil {
				return err
			}
			limit, err := domain.ParseMoney(overdraft)
			if err != nil {
				return err
			}
			return withLedger(cmd, func(svc service.LedgerService, _ *bolt.EventLog) error {
				acc, err := svc.OpenAccount(cmd.Context(), number, holder, bal, limit)
				if err != nil {
					return err
				}
				return printAccounts(cmd.OutOrStdout(), []domain.Account{acc})
			})
		},
	}
	open.Flags().StringVar(&holder, "holder", "", "account holder")
	open.Flags().StringVar(&balance, "balance", "0", "opening balance")
	open.Flags().StringVar(&overdraft, "overdraft", "0", "overdraft limit")
	_ = open.MarkFlagRequired("holder")

	moneyCmd := func(use, short string, op func(service.LedgerService, context.Context, int, decimal.Decimal) (domain.Account, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <number> <amount>",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				number, err := parseID(args[0])
				if err != nil {
					return err
				}
				amount, err := domain.ParseMoney(args[1])
				if err != nil {
					return err
				}
				return withLedger(cmd, func(svc service.LedgerService, _ *bolt.EventLog) error {
					acc, err := op(svc, cmd.Context(), number, amount)
					if err != nil {
						return err
					}
					return printAccounts(cmd.OutOrStdout(), []domain.Account{acc})
				})
			},
		}
	}
	deposit := moneyCmd("deposit", "Credit an account", service.LedgerService.Deposit)
	withdraw := moneyCmd("withdraw", "Debit an account within its overdraft limit", service.LedgerService.Withdraw)

	transfer := &cobra.Command{
		Use:   "transfer <from> <to> <amount>",
		Short: "Move money between accounts; a failed credit is rolled back",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseID(args[0])
			if err != nil {
				return err
			}
			to, err := parseID(args[1])
			if err != nil {
				return err
			}
			amount, err := domain.ParseMoney(args[2])
			if err != nil {
				return err
			}
			return withLedger(cmd, func(svc service.LedgerService, _ *bolt.EventLog) error {
				res, err := svc.Transfer(cmd.Context(), from, to, amount)
				if err != nil {
					return err
				}
				return printAccounts(cmd.OutOrStdout(), []domain.Account{res.From, res.To})
			})
		},
	}

	freezeCmd := func(use string, frozen bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <number>",
			Short: strings.ToUpper(use[:1]) + use[1:] + " an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				number, err := parseID(args[0])
				if err != nil {
					return err
				}
				return withLedger(cmd, func(svc service.LedgerService, _ *bolt.EventLog) error {
					acc, err := svc.SetFrozen(cmd.Context(), number, frozen)
					if err != nil {
						return err
					}
					return printAccounts(cmd.OutOrStdout(), []domain.Account{acc})
				})
			},
		}
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLedger(cmd, func(svc service.LedgerService, _ *bolt.EventLog) error {
				return printAccounts(cmd.OutOrStdout(), svc.Accounts(cmd.Context()))
			})
		},
	}

	var limit int
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Print the most recent ledger events, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLedger(cmd, func(_ service.LedgerService, eventLog *bolt.EventLog) error {
				evs, err := eventLog.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, e := range evs {
					fmt.Fprintf(out, "%s  %-22s %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Type, e.Payload)
				}
				return nil
			})
		},
	}
	eventsCmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of events to print")

	cmd.AddCommand(open, deposit, withdraw, transfer, freezeCmd("freeze", true), freezeCmd("unfreeze", false), list, eventsCmd)
	return cmd
}

func printAccounts(w io.Writer, accounts []domain.Account) error {
	if len(accounts) == 0 {
		_, err := fmt.Fprintln(w, "(no accounts)")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "NUMBER\tHOLDER\tBALANCE\tOVERDRAFT\tFROZEN\t")
	for _, acc := range accounts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			acc.Number, acc.Holder, acc.PrettyBalance(), domain.FormatMoney(acc.OverdraftLimit), strconv.FormatBool(acc.Frozen))
	}
	return tw.Flush()
}
