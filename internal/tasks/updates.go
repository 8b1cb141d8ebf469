package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data, e.g. an [ImportResult]
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	Aggregate
	ValidateRows
	CreateSongs
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case Aggregate:
		return "aggregate"
	case ValidateRows:
		return "validate_rows"
	case CreateSongs:
		return "create_songs"
	default:
		return "unknown"
	}
}

func fetchCatalogUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: "Fetching users, songs and favorites...",
	}
}

func aggregateUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Aggregate,
		Step:    1,
		Total:   1,
		Message: "Computing dashboard statistics...",
	}
}

func validateRowsUpdate(valid, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateRows,
		Step:    valid,
		Total:   total,
		Message: fmt.Sprintf("%d of %d rows passed validation", valid, total),
	}
}

func songCreatedUpdate(step, total int, res ImportResult) ProgressUpdate {
	msg := fmt.Sprintf("Created %s - %s", res.Request.Artist, res.Request.Title)
	if res.Err != nil {
		msg = fmt.Sprintf("Failed %s - %s: %v", res.Request.Artist, res.Request.Title, res.Err)
	}
	return ProgressUpdate{
		Phase:   CreateSongs,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    res,
	}
}
