package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/cexll/boardrelay/internal/monday"
	"github.com/cexll/boardrelay/internal/progress"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SubitemStatus describes one subitem's status column.
type SubitemStatus struct {
	Status string `json:"status,omitempty" jsonschema:"Display text of the subitem's status column"`
	Label  string `json:"label,omitempty" jsonschema:"Status label, optionally in the form name||percentage%"`
	Color  string `json:"color,omitempty" jsonschema:"Color of the status label"`
}

// CalculateProgressParams defines the input of calculate_progress.
type CalculateProgressParams struct {
	Subitems []SubitemStatus `json:"subitems" jsonschema:"The parent's subitems"`
	Policy   string          `json:"policy,omitempty" jsonschema:"color-label (default) or status-weight"`
	Weights  map[string]int  `json:"weights,omitempty" jsonschema:"Status text to weight overrides for the status-weight policy"`
}

type CalculateProgressResult struct {
	Progress     int    `json:"progress"`
	ParentStatus string `json:"parentStatus"`
	Policy       string `json:"policy"`
}

// ClassifyProgressParams defines the input of classify_progress.
type ClassifyProgressParams struct {
	Progress int `json:"progress" jsonschema:"Progress value between 0 and 100"`
}

type ClassifyProgressResult struct {
	ParentStatus string `json:"parentStatus"`
}

// HandleCalculateProgress handles the calculate_progress tool call
func HandleCalculateProgress(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params CalculateProgressParams,
) (*mcp.CallToolResult, CalculateProgressResult, error) {
	log.Printf("[MCP Progress Server] calculate_progress: %d subitems, policy=%q", len(params.Subitems), params.Policy)

	policy, err := progress.PolicyByName(params.Policy, params.Weights)
	if err != nil {
		return nil, CalculateProgressResult{}, err
	}
	for status, weight := range params.Weights {
		if weight < 0 || weight > 100 {
			return nil, CalculateProgressResult{}, fmt.Errorf("weight for %q must be between 0 and 100", status)
		}
	}

	value := policy.Compute(toItems(params.Subitems))
	result := CalculateProgressResult{
		Progress:     value,
		ParentStatus: progress.Classify(value).String(),
		Policy:       policy.Name(),
	}
	return textResult(result), result, nil
}

// HandleClassifyProgress handles the classify_progress tool call
func HandleClassifyProgress(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params ClassifyProgressParams,
) (*mcp.CallToolResult, ClassifyProgressResult, error) {
	if params.Progress < 0 || params.Progress > 100 {
		return nil, ClassifyProgressResult{}, fmt.Errorf("progress must be between 0 and 100, got %d", params.Progress)
	}

	result := ClassifyProgressResult{ParentStatus: progress.Classify(params.Progress).String()}
	return textResult(result), result, nil
}

// toItems maps tool input onto subitems with a single "status" column.
func toItems(subitems []SubitemStatus) []monday.Item {
	items := make([]monday.Item, 0, len(subitems))
	for _, s := range subitems {
		col := monday.ColumnValue{
			ID:    progress.StatusColumnID,
			Text:  s.Status,
			Label: s.Label,
		}
		if col.Text == "" {
			col.Text = s.Label
		}
		if s.Color != "" {
			col.LabelStyle = &monday.LabelStyle{Color: s.Color}
		}
		items = append(items, monday.Item{ColumnValues: []monday.ColumnValue{col}})
	}
	return items
}

func textResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}
