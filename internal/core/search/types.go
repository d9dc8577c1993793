// Package search talks to the drug-highlighting backend that produces the
// reports edited in rxmark.
package search

import "context"

// Request is the body sent to the backend.
type Request struct {
	Text  string `json:"text"`
	Fuzzy bool   `json:"fuzzy,omitempty"`
}

// Drug is one row of the obligations table returned alongside the report.
type Drug struct {
	TradeName        string `json:"trade_name"`
	INN              string `json:"inn,omitempty"`
	Obligation       string `json:"obligation,omitempty"`
	SourceCountries  string `json:"source_countries,omitempty"`
	Receiver         string `json:"receiver,omitempty"`
	DeadlineToSubmit string `json:"deadline_to_submit,omitempty"`
	Format           string `json:"format,omitempty"`
	OtherProcedures  string `json:"other_procedures,omitempty"`
	TypeOfEvent      string `json:"type_of_event,omitempty"`
}

// Result is the backend response: the report markup and the matched drugs.
type Result struct {
	HighlightedText string `json:"highlighted_text"`
	Drugs           []Drug `json:"drugs"`
}

// Client finds medications in free text.
type Client interface {
	Find(ctx context.Context, req Request) (Result, error)
}
