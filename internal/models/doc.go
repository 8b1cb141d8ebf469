// Package models defines the catalog records exchanged with the music catalog API.
//
// The package contains two categories of types:
//
// 1. Resources: records returned by the service, with wire names matching the backend
//   - [User] : registered listener with name and email
//   - [Song] : catalog entry with duration in whole seconds and optional album, year and genre
//   - [Favorite] : association of one user with one song
//   - [FavoriteWithSong] : favorite with the full [Song] embedded for display
//
// 2. Requests: payloads sent to the service on create and partial update
//   - [CreateUserRequest], [UpdateUserRequest]
//   - [CreateSongRequest], [UpdateSongRequest]
//   - [CreateFavoriteRequest]
//
// Requests carry a Validate method used as the form gate before anything is sent.
// Validation failures are [ValidationError] values and never reach the API error normalizer.
//
// [Timestamp] tolerates the timezone-less ISO layout the backend emits for its date columns.
package models
