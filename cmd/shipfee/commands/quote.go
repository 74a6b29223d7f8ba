package commands

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"shipfee/internal/pkg/httpclient"
	"shipfee/internal/service/shipping/application"
	"shipfee/internal/service/shipping/client"
	"shipfee/internal/service/shipping/domain"
	"shipfee/internal/service/shipping/infrastructure/rule"
)

func quoteCmd() *cobra.Command {
	var (
		cartPath string
		method   string
		remote   string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote shipping for a cart JSON file (same body as POST /shipping/quote)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readQuoteRequest(cmd, cartPath)
			if err != nil {
				return err
			}
			if method != "" {
				req.Method = method
			}

			tracer := otel.Tracer("shipfee")
			var resp *application.QuoteResponse
			if remote != "" {
				resp, err = client.NewQuoteClient(httpclient.NewClient(tracer), remote).Quote(cmd.Context(), req)
			} else {
				resp, err = quoteLocally(cmd, req)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}

	cmd.Flags().StringVar(&cartPath, "cart", "-", "cart JSON file, - for stdin")
	cmd.Flags().StringVarP(&method, "method", "m", "", "override delivery method (standard|express|rush)")
	cmd.Flags().StringVar(&remote, "remote", "", "shipping-service base URL; empty computes locally")
	return cmd
}

func quoteLocally(cmd *cobra.Command, req *application.QuoteRequest) (*application.QuoteResponse, error) {
	validator, err := rule.NewCELFeeTableValidator()
	if err != nil {
		return nil, err
	}
	holder, err := application.NewFeeTableHolder(cfg.Shipping.FeeTable, validator, domain.NewVietnameseNormalizer())
	if err != nil {
		return nil, err
	}
	svc := application.NewQuoteService(holder, otel.Tracer("shipfee"), application.WithMarket(cfg.Shipping.Market))
	return svc.Quote(cmd.Context(), req)
}

func readQuoteRequest(cmd *cobra.Command, path string) (*application.QuoteRequest, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open cart")
		}
		defer f.Close()
		r = f
	}

	var req application.QuoteRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, errors.Wrap(err, "decode cart")
	}
	return &req, nil
}
