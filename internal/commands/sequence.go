package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
)

func newSequenceCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Inspect and reserve entry numbers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show OWNER_ID",
		Short: "Show the last issued number and the next entry number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			current, err := svc.Sequence.Current(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			preview, err := svc.Sequence.PreviewNext(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.SequenceStatusResponse{Current: current, NextPreview: preview})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reserve OWNER_ID COUNT",
		Short: "Reserve a contiguous block of numbers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			numbers, err := svc.Sequence.ReserveBlock(cmd.Context(), args[0], count)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.ToReserveSequencesResponse(numbers))
		},
	})
	return cmd
}
