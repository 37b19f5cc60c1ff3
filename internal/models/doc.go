// Package models defines the core domain models for grocer.
//
// # Documents
//
// Each model maps onto one persisted document:
//   - User: users.json, one record per registered account
//   - Item: items.json, the store catalog
//   - LedgerEntry: bills.json, one entry per customer who has ever purchased
//
// Bills and their lines live inside a LedgerEntry and are never stored on their own.
//
// # Design Principles
//
// 1. **Stable identifiers**: Users and items carry a UUID assigned at creation. Lookups after creation use the ID,
// never a composite of mutable fields.
// 2. **Whole-document writes**: Documents are loaded fully, changed in memory and rewritten wholesale.
// 3. **Snapshot lines**: A bill line copies the item name, unit and rate at purchase time so later catalog
// edits do not rewrite history.
package models
