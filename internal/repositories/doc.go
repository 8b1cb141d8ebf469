// Package repositories implements SQLite persistence for client-side state.
//
// The catalog itself is never cached locally: users, songs and favorites live only on the remote API.
// What is stored here is the [NotificationJournal], a history of user-facing notifications
// raised while talking to the API, so the CLI can show recent failures after the fact.
//
// Sequence numbers provide stable ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
