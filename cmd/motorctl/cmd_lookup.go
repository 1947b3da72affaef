package main

import (
	"strings"

	"github.com/spf13/cobra"

	challanmodels "motorhub/internal/challan/models"
	insurancemodels "motorhub/internal/insurance/models"
	"motorhub/pkg/platform/httputil"
)

func newInsuranceCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insurance",
		Short: "Insurance policy lookups and renewals",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "search REGISTRATION",
		Short: "Look up the insurance policy of a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			report, err := s.app.Insurance.Search(s.ctx, s.owner, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	})

	var plan string
	var term int
	var addOns []string
	renew := &cobra.Command{
		Use:   "renew REGISTRATION",
		Short: "Look up a vehicle and renew its policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &insurancemodels.RenewalRequest{
				Registration: args[0],
				PlanType:     insurancemodels.PlanType(plan),
				TermYears:    term,
				AddOns:       addOns,
			}
			if err := httputil.PrepareRequest(req); err != nil {
				return err
			}

			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if _, err := s.app.Insurance.Search(s.ctx, s.owner, req.Registration); err != nil {
				return err
			}
			resp, err := s.app.Insurance.RenewPolicy(s.ctx, s.owner, *req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	renew.Flags().StringVar(&plan, "plan", string(insurancemodels.PlanComprehensive), "plan type: comprehensive or third_party")
	renew.Flags().IntVar(&term, "term", 1, "term in years (1-3)")
	renew.Flags().StringSliceVar(&addOns, "add-on", nil, "add-on cover, repeatable")
	cmd.AddCommand(renew)

	return cmd
}

func newChallanCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challan",
		Short: "Traffic challan lookups and payments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "search REGISTRATION",
		Short: "List the challans issued to a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			report, err := s.app.Challan.Search(s.ctx, s.owner, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	})

	var ids []string
	var method string
	pay := &cobra.Command{
		Use:   "pay REGISTRATION",
		Short: "Look up a vehicle and pay some of its pending challans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &challanmodels.PaymentRequest{
				Registration: args[0],
				ChallanIDs:   ids,
				Method:       challanmodels.PaymentMethod(strings.ToLower(method)),
			}
			if err := httputil.PrepareRequest(req); err != nil {
				return err
			}

			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if _, err := s.app.Challan.Search(s.ctx, s.owner, req.Registration); err != nil {
				return err
			}
			resp, err := s.app.Challan.PayChallan(s.ctx, s.owner, *req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	pay.Flags().StringSliceVar(&ids, "id", nil, "challan ID to pay, repeatable")
	pay.Flags().StringVar(&method, "method", string(challanmodels.MethodUPI), "payment method: upi, card or netbanking")
	cmd.AddCommand(pay)

	return cmd
}
