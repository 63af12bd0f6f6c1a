package api

import "github.com/seojinpark/nabi/internal/history"

// CommandRequest is the request body for processing a command.
type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResponse wraps the dispatcher's text result.
type CommandResponse struct {
	Result string `json:"result"`
}

// SummaryRequest is the request body for saving a titled summary page.
type SummaryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HistoryResponse wraps recent command log entries.
type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
}
