package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/gpugrade/core"
	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	history contract.HistoryStore
}

type scoreFailure struct {
	Index int    `json:"index"`
	RowID string `json:"row_id"`
	Error string `json:"error"`
}

type scoreResponse struct {
	Mode        schema.NormalizationMode   `json:"mode"`
	Rows        []schema.EnrichedScoredRow `json:"rows"`
	Failures    []scoreFailure             `json:"failures"`
	GradeCounts map[schema.Grade]int       `json:"grade_counts"`
}

func (h *toolHandler) handleScoreDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.DatasetPath = request.GetString("path", "")
	if cfg.DatasetPath == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	if b := request.GetString("bounds", ""); b != "" {
		cfg.BoundsPolicy = schema.BoundsPolicy(b)
	}
	if n := request.GetString("normalization", ""); n != "" {
		cfg.Normalization = schema.NormalizationMode(n)
	}
	if p := request.GetString("on_error", ""); p != "" {
		cfg.FailurePolicy = schema.FailurePolicy(p)
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	if err := contract.RevalidateScoring(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, err := core.NewExecutor(cfg, h.history).Run(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	resp := scoreResponse{
		Mode:        result.Mode,
		Rows:        schema.RankScoredRows(result.Scored, cfg.ResultLimit),
		Failures:    make([]scoreFailure, len(result.Failures)),
		GradeCounts: result.GradeCounts(),
	}
	for i, f := range result.Failures {
		resp.Failures[i] = scoreFailure{Index: f.Index, RowID: f.RowID, Error: f.Message()}
	}
	return jsonResult(resp)
}

func (h *toolHandler) handleGradeScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	score, err := request.RequireFloat("score")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"score": score,
		"grade": core.ScoreToGrade(score),
	})
}

func (h *toolHandler) handleDescribeConfiguration(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conf, err := core.ConfigurationFrom(h.baseCfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid configuration: %v", err)), nil
	}
	return jsonResult(core.BuildAttributesRenderModel(conf))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
