// Package stockbook keeps the books of a personal stock portfolio traded on
// the Taiwan stock exchange.
//
// The ledger is an append-only list of transactions, each carrying its fees
// and signed net cash flow computed at entry time. Reports are derived from a
// snapshot of the ledger by a stateless Accountant:
//   - Fees: brokerage commission with per account discount, transaction tax,
//     and the net cash convention of each action.
//   - Ordering: a deterministic replay order where lots are always created
//     before being consumed on the same day.
//   - FIFO lots: every buy opens a lot at its fully loaded unit cost, every
//     sell consumes the oldest lots first.
//   - Realized gains of sells and dividends, current inventory with
//     unrealized gains at given market prices, and cash balances per account.
//
// Raw, hand edited ledgers are accepted: unreadable values default to zero
// and are reported as Diagnostics rather than errors.
//
// This package serves as the foundational logic for the `sbk` command-line
// tool.
package stockbook
