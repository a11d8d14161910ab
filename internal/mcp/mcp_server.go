// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gpugrade MCP server without starting it.
func NewMCPServer(baseCfg *contract.Config, history contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"gpugrade Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		history: history,
	}

	s.AddTool(mcp.NewTool("score_dataset",
		mcp.WithDescription("Normalize and score every GPU offer in a dataset (csv, json, xlsx or parquet) and return the ranked rows with letter grades."),
		mcp.WithString("path", mcp.Description("Path to the dataset file."), mcp.Required()),
		mcp.WithString("bounds", mcp.Description("How out-of-range numeric values are handled. Defaults to 'strict'."), mcp.Enum("strict", "clamp", "extrapolate")),
		mcp.WithString("normalization", mcp.Description("Use the configured bounds (static) or derive them from the dataset (batch)."), mcp.Enum("static", "batch")),
		mcp.WithString("on_error", mcp.Description("Skip invalid rows or abort the batch. Defaults to 'skip'."), mcp.Enum("skip", "abort")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked rows returned.")),
	), h.handleScoreDataset)

	s.AddTool(mcp.NewTool("grade_score",
		mcp.WithDescription("Map a composite score to its letter grade (A >= 90, B >= 80, C >= 70, D >= 60, otherwise F)."),
		mcp.WithNumber("score", mcp.Description("The composite score."), mcp.Required()),
	), h.handleGradeScore)

	s.AddTool(mcp.NewTool("describe_configuration",
		mcp.WithDescription("Describe the active attributes, weights, scoring formula, score range and grade table."),
	), h.handleDescribeConfiguration)

	return s
}

// StartMCPServer serves the gpugrade tools over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, history contract.HistoryStore) error {
	s := NewMCPServer(baseCfg, history)
	return server.ServeStdio(s)
}
