// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is organized in four tabs:
//  1. Dashboard : catalog counts, top songs, top artists and recent favorites
//  2. Users : browse, create, edit and delete users
//  3. Songs : browse, create, edit, delete and sort songs
//  4. Favorites : favorites of the selected user, add by song and remove by pair
//
// The [Model] implements the standard Init/Update/View pattern. API calls run as commands bound to a context
// that is canceled when the program quits, and reloading a tab cancels its previous load.
// Notifications reach the status line through [ProgramNotifier] and clear themselves after a few seconds.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
