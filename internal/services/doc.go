// Package services talks to the music catalog REST API.
//
// # Client
//
// [Client] is built once from [ClientOpts] and shared by every resource service.
// It sets Content-Type and Accept to application/json, encodes request bodies,
// and decodes responses. Contexts flow into each request so callers can cancel.
//
// # Error Normalization
//
// Every failed request is converted by [Normalize] into an [APIError]:
//   - 400 : detail or message from the body, else "invalid or duplicate data"
//   - 404 : detail from the body, else "resource not found"
//   - 422 : FastAPI validation entries joined as "loc → path: msg", else detail, message or "validation error"
//   - 500 : "internal server error"
//   - no response : "could not connect to server" with Status 0
//   - anything else : "server error, try again"
//
// The client logs the failure at error level and forwards it to the injected [Notifier]
// before returning it. APIError matches the sentinels in shared with [errors.Is]:
//   - [shared.ErrBadRequest], [shared.ErrNotFound], [shared.ErrValidation]
//   - [shared.ErrServer], [shared.ErrUnreachable], [shared.ErrAPIRequest]
//
// # Resource Services
//
// [UserService], [SongService] and [FavoriteService] map one method to one endpoint.
// List calls take [ListOptions] whose limit is capped at [MaxLimit]. List responses are
// read from a {"data": [...]} envelope or a bare array depending on the configured envelope mode.
package services
