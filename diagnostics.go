package stockbook

import (
	"fmt"

	"github.com/rs/zerolog"
)

// IssueKind classifies a data quality problem found while reading or
// replaying the ledger.
type IssueKind string

const (
	IssueUnparseable   IssueKind = "unparseable" // a field could not be read and was defaulted
	IssueUnknownAction IssueKind = "unknown-action"
	IssueOversell      IssueKind = "oversell" // a sell exceeded the available lots
)

// Issue is one data quality problem. It never stops a report.
type Issue struct {
	Kind       IssueKind
	Date       Date
	Instrument string
	Field      string // Field is the offending field, for unparseable values.
	Detail     string

	// oversell figures
	Requested Quantity
	Available Quantity
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueOversell:
		return fmt.Sprintf("%s: sell of %s %s exceeds holding %s, %s dropped", i.Date, i.Requested, i.Instrument, i.Available, i.Dropped())
	case IssueUnparseable:
		return fmt.Sprintf("%s: field %s %q could not be parsed, defaulted to 0", i.Date, i.Field, i.Detail)
	default:
		return fmt.Sprintf("%s: %s %s", i.Date, i.Kind, i.Detail)
	}
}

// Dropped returns the quantity of an oversell that could not be matched.
func (i Issue) Dropped() Quantity { return i.Requested.Sub(i.Available) }

// Diagnostics collects issues so that silent data problems remain observable.
// The zero value is ready to use and discards log output.
type Diagnostics struct {
	Issues []Issue
	log    *zerolog.Logger
}

// NewDiagnostics returns a collector that also logs every issue at warn level.
func NewDiagnostics(log zerolog.Logger) *Diagnostics {
	return &Diagnostics{log: &log}
}

// Add records an issue. A nil collector ignores it.
func (d *Diagnostics) Add(i Issue) {
	if d == nil {
		return
	}
	d.Issues = append(d.Issues, i)
	if d.log == nil {
		return
	}
	d.log.Warn().
		Str("kind", string(i.Kind)).
		Str("date", i.Date.String()).
		Str("instrument", i.Instrument).
		Msg(i.String())
}

// Count returns the number of issues of a kind.
func (d *Diagnostics) Count(kind IssueKind) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, i := range d.Issues {
		if i.Kind == kind {
			n++
		}
	}
	return n
}

// Oversells returns the oversell issues.
func (d *Diagnostics) Oversells() []Issue {
	if d == nil {
		return nil
	}
	var res []Issue
	for _, i := range d.Issues {
		if i.Kind == IssueOversell {
			res = append(res, i)
		}
	}
	return res
}
