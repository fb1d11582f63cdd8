package client

import "github.com/CHANDRIKA5189/v0-image-caption-generation/internal/domain"

// Display renders orchestrator output. Methods are called from the
// goroutine running Submit, never while the orchestrator lock is held, so
// implementations may call back into the orchestrator.
type Display interface {
	// Clear drops any error or result from a previous cycle
	Clear()
	// ShowLoading is called when the caption request is sent
	ShowLoading()
	ShowError(message string)
	ShowResult(result *Result)
	ShowHistory(entries []domain.HistoryEntry)
}

// NopDisplay discards everything.
type NopDisplay struct{}

func (NopDisplay) Clear()                            {}
func (NopDisplay) ShowLoading()                      {}
func (NopDisplay) ShowError(string)                  {}
func (NopDisplay) ShowResult(*Result)                {}
func (NopDisplay) ShowHistory([]domain.HistoryEntry) {}
