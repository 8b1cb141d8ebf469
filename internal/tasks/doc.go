// Package tasks runs catalog operations that span several API calls, with real-time progress reporting.
//
// # Core Operations
//
// [CatalogEngine] exposes two operations:
//
//  1. [CatalogEngine.Dashboard] : catalog overview
//     - Lists users, songs and favorites concurrently (limit 100 each) with an errgroup
//     - Counts each resource
//     - Ranks the top 5 songs by favorite count and the top 5 artists by song count
//     - Joins the first 5 favorites with their songs as recent activity
//
//  2. [CatalogEngine.ImportSongs] : bulk song creation from parsed CSV rows
//     - Validates every row locally with the same rules as the create form
//     - Creates valid rows with a bounded worker pool sharing one rate limiter
//     - Reports per-row results; one failed row never stops the import
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Dependencies
//
// The engine depends on the narrow [UserLister], [SongStore] and [FavoriteLister] interfaces,
// satisfied by the resource services in the services package.
package tasks
