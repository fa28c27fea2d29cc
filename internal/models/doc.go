// Package models defines the core domain models for Ledgerwise.
//
// # Models
//
//   - Expense: a single spend, either personal or charged to a group
//   - Group: a shared ledger with members and pending invites
//   - User: a registered account
//   - Invite: a pending group invitation as seen by the invitee
//
// # Design Principles
//
// 1. **Identity by name**: users are keyed by their case-sensitive username
// 2. **No back-pointers**: relationships use ID strings instead of pointers
// 3. **Derived membership**: a user's groups are read from group membership, never stored twice
// 4. **Exact money**: amounts are decimal.Decimal, never float64
package models
