// Package models defines the core domain types for splitledger.
//
// The engine revolves around four entities:
//   - Member: a registered user, resolved through the member directory
//   - Group: a named set of members with admin/member roles
//   - GroupExpense: an expense paid by one member and split among others
//   - Split: one member's share of an expense, with a settlement status
//
// Monetary amounts are always integer counts of minor currency units
// (Money). Split decomposition never uses floating point, so the sum
// of a GroupExpense's splits plus the payer's implicit share always
// equals the expense amount exactly.
//
// A Split's status is the only mutable field after creation. It moves
// through the settlement lifecycle (pending -> requested ->
// confirmed/rejected) and nothing else; see split.go for the
// transition rules.
package models
