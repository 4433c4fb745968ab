package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
)

const cliUser = "ledgerctl"

func newLockDateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock-date",
		Short: "Inspect and move an owner's period lock date",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show OWNER_ID",
		Short: "Show the lock date setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			setting, err := svc.LockDate.GetSetting(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.ToLockDateResponse(setting))
		},
	})

	var period string
	set := &cobra.Command{
		Use:   "set OWNER_ID YYYY-MM-DD",
		Short: "Close every period on or before the given date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse(dto.DateLayout, args[1])
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", args[1], err)
			}
			return updateLockDate(cmd, a, args[0], &date, period)
		},
	}
	set.Flags().StringVar(&period, "period", "", "label recorded as the last closed period")
	cmd.AddCommand(set)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear OWNER_ID",
		Short: "Reopen every period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateLockDate(cmd, a, args[0], nil, "")
		},
	})
	return cmd
}

func updateLockDate(cmd *cobra.Command, a *app, ownerID string, date *time.Time, period string) error {
	svc, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	current, err := svc.LockDate.GetSetting(cmd.Context(), ownerID)
	if err != nil {
		return err
	}
	next := *current
	next.OwnerID = ownerID
	next.LockDate = date
	next.LastClosedPeriod = period
	next.UpdatedBy = cliUser

	saved, err := svc.LockDate.UpdateSetting(cmd.Context(), next)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), dto.ToLockDateResponse(saved))
}
