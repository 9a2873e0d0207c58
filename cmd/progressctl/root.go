package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cexll/boardrelay/internal/config"
	"github.com/cexll/boardrelay/internal/monday"
	"github.com/cexll/boardrelay/internal/progress"
	"github.com/cexll/boardrelay/internal/relay"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// previewer computes a parent status without writing it.
type previewer interface {
	Preview(ctx context.Context, itemID string) (*relay.UpdateResult, error)
}

var (
	loadDotEnv = godotenv.Load
	// newPreviewer builds the updater from the environment; replaced in tests.
	newPreviewer = defaultPreviewer
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "progressctl",
		Short:        "Inspect parent progress computed from subitem statuses",
		SilenceUsage: true,
	}
	root.AddCommand(newPreviewCmd(), newClassifyCmd())
	return root
}

func newPreviewCmd() *cobra.Command {
	var (
		itemID  string
		policy  string
		asJSON  bool
		weights string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Compute the parent status for an item without writing it",
		Long: `Fetch an item (or a subitem's parent) and its subitems from the board API,
compute progress with the selected policy and print the status that would be written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPreviewer(policy, weights)
			if err != nil {
				return err
			}
			result, err := p.Preview(cmd.Context(), itemID)
			if err != nil {
				return fmt.Errorf("preview item %s: %w", itemID, err)
			}
			return printResult(cmd.OutOrStdout(), result, asJSON)
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "item or subitem id")
	cmd.Flags().StringVar(&policy, "policy", "", "progress policy: color-label or status-weight (default from PROGRESS_POLICY)")
	cmd.Flags().StringVar(&weights, "weights", "", "YAML file with status weights (default from STATUS_WEIGHTS_FILE)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <progress>",
		Short: "Print the parent status for a progress value (0-100)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("progress must be an integer: %w", err)
			}
			if value < 0 || value > 100 {
				return fmt.Errorf("progress must be between 0 and 100, got %d", value)
			}
			fmt.Fprintln(cmd.OutOrStdout(), progress.Classify(value))
			return nil
		},
	}
}

func defaultPreviewer(policyName, weightsFile string) (previewer, error) {
	_ = loadDotEnv()

	cfg, err := config.LoadBoardOnly()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if policyName == "" {
		policyName = cfg.ProgressPolicy
	}
	weights := cfg.StatusWeights
	if weightsFile != "" {
		if weights, err = config.LoadStatusWeights(weightsFile); err != nil {
			return nil, err
		}
	}

	policy, err := progress.PolicyByName(policyName, weights)
	if err != nil {
		return nil, err
	}

	api := monday.NewClient(cfg.MondayAPIKey, monday.Options{
		Endpoint:   cfg.MondayAPIURL,
		APIVersion: cfg.MondayAPIVersion,
		Timeout:    cfg.HTTPTimeout,
	})
	return relay.NewUpdater(api, policy), nil
}

func printResult(w io.Writer, result *relay.UpdateResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			ItemID       string `json:"itemId"`
			BoardID      string `json:"boardId"`
			ColumnID     string `json:"columnId"`
			Progress     int    `json:"progress"`
			ParentStatus string `json:"parentStatus"`
		}{result.ItemID, result.BoardID, result.ColumnID, result.Progress, result.ParentStatus.String()})
	}

	fmt.Fprintf(w, "Item:     %s (board %s)\n", result.ItemID, result.BoardID)
	fmt.Fprintf(w, "Column:   %s\n", result.ColumnID)
	fmt.Fprintf(w, "Progress: %d%%\n", result.Progress)
	fmt.Fprintf(w, "Status:   %s\n", result.ParentStatus)
	return nil
}
