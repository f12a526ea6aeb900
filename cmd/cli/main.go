package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/tradebook/internal/adapter/http/dto"
	"github.com/iho/tradebook/internal/domain"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tradebook-cli",
		Short:         "Tradebook CLI tool",
		Long:          `A command line interface for the Tradebook back office.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Tradebook API")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	cmd.AddCommand(wordsCmd(), invoiceCmd(), accountsCmd(), readyCmd())
	return cmd
}

func wordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words <amount>",
		Short: "Spell out an amount the way invoices print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			words := domain.DecimalInWords(amount)
			if words == "" {
				return fmt.Errorf("amount %s cannot be expressed in words", args[0])
			}
			fmt.Println(words)
			return nil
		},
	}
}

func invoiceCmd() *cobra.Command {
	var (
		tradeType string
		accountID int64
		tradeID   int64
	)

	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Print the invoice of a posted trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("type", tradeType)
			q.Set("account", strconv.FormatInt(accountID, 10))
			q.Set("format", "text")

			body, err := get(fmt.Sprintf("/api/v1/trades/%d/invoice?%s", tradeID, q.Encode()))
			if err != nil {
				return err
			}
			fmt.Print(string(body))
			return nil
		},
	}

	cmd.Flags().StringVar(&tradeType, "type", "sales", "Trade type")
	cmd.Flags().Int64Var(&accountID, "account", 0, "Party account id")
	cmd.Flags().Int64Var(&tradeID, "trs", 0, "Transaction number")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("trs")

	return cmd
}

func accountsCmd() *cobra.Command {
	var group int

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/accounts"
			if group > 0 {
				path += "?group=" + strconv.Itoa(group)
			}

			body, err := get(path)
			if err != nil {
				return err
			}

			var resp dto.ListAccountsResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tGROUP\tOPENING")
			for _, a := range resp.Accounts {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", a.ID, truncate(a.Name, 32), a.GroupID, a.OpeningBalance.StringFixed(2))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&group, "group", 0, "Only list accounts of this group")
	return cmd
}

func readyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check that the API and its backends are up",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/ready")
			if err != nil {
				return err
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			printJSON(result)
			return nil
		},
	}
}

func get(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.Message != "" {
				return nil, fmt.Errorf("request failed (status %d): %s: %s", resp.StatusCode, apiErr.Error, apiErr.Message)
			}
			return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, errors.New("request failed: " + resp.Status)
	}

	return body, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to encode output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
