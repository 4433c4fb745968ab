package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
)

func newEntriesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Read and reverse journal entries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show OWNER_ID ENTRY_ID",
		Short: "Print one entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			entry, err := svc.Query.GetEntry(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.ToJournalEntryResponse(entry))
		},
	})

	var params dto.ListEntriesParams
	var token string
	list := &cobra.Command{
		Use:   "list OWNER_ID",
		Short: "Print one page of entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := params.ToFilter()
			if err != nil {
				return err
			}
			var next *string
			if token != "" {
				next = &token
			}
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			page, err := svc.Query.ListEntries(cmd.Context(), args[0], filter, params.Limit, next)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.ListEntriesResponse{
				Entries:   dto.ToJournalEntryResponses(page.Entries),
				NextToken: page.NextToken,
			})
		},
	}
	list.Flags().StringVar((*string)(&params.Status), "status", "", "POSTED or REVERSED")
	list.Flags().StringVar((*string)(&params.SourceType), "source-type", "", "filter by source type")
	list.Flags().StringVar(&params.DateFrom, "from", "", "inclusive start date (YYYY-MM-DD)")
	list.Flags().StringVar(&params.DateTo, "to", "", "inclusive end date (YYYY-MM-DD)")
	list.Flags().StringVar((*string)(&params.Order), "order", string(domain.OrderDateDesc), "date_desc, date_asc, sequence_desc or sequence_asc")
	list.Flags().IntVar(&params.Limit, "limit", domain.DefaultPageSize, "page size")
	list.Flags().StringVar(&token, "next-token", "", "token printed by the previous page")
	cmd.AddCommand(list)

	var reason, reversalType string
	reverse := &cobra.Command{
		Use:   "reverse OWNER_ID ENTRY_ID",
		Short: "Reverse one entry, dated today",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			result := svc.Reversal.Reverse(cmd.Context(), domain.ReversalRequest{
				OwnerID:      args[0],
				EntryID:      args[1],
				Reason:       reason,
				ReversalType: domain.ReversalType(reversalType),
				RequestedBy:  cliUser,
			})
			if err := printJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Success {
				return errors.New(result.Error)
			}
			return nil
		},
	}
	reverse.Flags().StringVar(&reason, "reason", "", "reason recorded on both entries")
	reverse.Flags().StringVar(&reversalType, "type", string(domain.ReversalVoid), "void or correction")
	_ = reverse.MarkFlagRequired("reason")
	cmd.AddCommand(reverse)

	return cmd
}
