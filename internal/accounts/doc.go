// Package accounts persists reader accounts and their soft-delete lifecycle.
//
// Deactivating an account stamps it rather than deleting it; the account
// stays recoverable for a grace period, after which a periodic sweep removes
// it permanently.
package accounts
