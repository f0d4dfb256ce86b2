package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) pendingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Work the pending request queue",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List queued requests, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := a.rt()
			if err != nil {
				return err
			}
			requests, err := runtime.Resolution.ListPending(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(requests) == 0 {
				printNotice(out, "No pending requests")
				return nil
			}
			renderPendingRequests(out, requests)
			return nil
		},
	}

	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a request and record it as a precedent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			runtime, err := a.rt()
			if err != nil {
				return err
			}
			precedent, err := runtime.Resolution.Approve(cmd.Context(), id)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Approved request #%d (precedent #%d)", id, precedent.ID))
			return nil
		},
	}

	var reasons string
	disapprove := &cobra.Command{
		Use:   "disapprove <id> --reasons <text>",
		Short: "Disapprove a request; the reasons are emailed to the requester",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(reasons) == "" {
				return fmt.Errorf("--reasons must not be blank")
			}
			runtime, err := a.rt()
			if err != nil {
				return err
			}
			if err := runtime.Resolution.Disapprove(cmd.Context(), id, reasons); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Disapproved request #%d", id))
			return nil
		},
	}
	disapprove.Flags().StringVar(&reasons, "reasons", "", "reasons sent to the requester")
	_ = disapprove.MarkFlagRequired("reasons")

	cmd.AddCommand(list, approve, disapprove)
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
