// Package models defines the core domain records for Contry.
//
// # Records
//
//   - Member: a person taking part in a ledger
//   - Expense: an amount paid by one member and split evenly among participants
//   - MemberBalance: the derived paid/owed totals for one member
//   - Session: a ledger hosted by the server for the lifetime of the process
//
// Expenses refer to members by name, which is unique within a ledger. Each
// member still carries a generated ID so storage never keys on display names.
//
// Records are plain values. Totals are never cached on a Member; they are
// derived from the expense list on every read (see package ledger).
package models
