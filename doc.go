// Package statement parses and validates broker Activity Statement exports.
//
// An Activity Statement is a single delimited file multiplexing many logical
// tables: trades, dividends, withholding taxes, interest, fees, open positions,
// forex balances, cash report, securities lending and net asset value. Every row
// starts with the name of its table and a role marker ("Header" or "Data").
//
// Parsing runs as a pipeline, each stage reading only the output of the previous one:
//   - Row normalization: the content is decoded and split into rows of equal width
//     (see NormalizeRows).
//   - Routing: rows are dispatched to their Section by label and role marker
//     (see Route).
//   - Column resolution: each logical field of a section is located in the header
//     row, or at a static default column when the header does not name it
//     (see ResolveColumns).
//   - Record building: data rows become typed records, amounts and dates being read
//     by the locale tolerant CoerceAmount and CoerceDate.
//   - Validation: net asset value reconciliation, section presence, date audit and
//     section checksums (see Validate).
//
// Parsing never stops on malformed content. Every guess the engine had to make is
// reported as a Diagnostic in the Result, and callers decide which severities
// block their own processing. The only failure is content that is not text at
// all (ErrUndecodable).
//
// A parse holds no global state: concurrent parses, even of the same content, need no
// coordination.
package statement
