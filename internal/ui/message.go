package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/services"
	"github.com/desertthunder/musicadm/internal/tasks"
)

// noticeTTL is how long a notification stays on the status line.
const noticeTTL = 4 * time.Second

type dashboardLoadedMsg struct {
	result *tasks.DashboardResult
	err    error
}

type usersLoadedMsg struct {
	users []models.User
	err   error
}

type songsLoadedMsg struct {
	songs []models.Song
	err   error
}

type favoritesLoadedMsg struct {
	userID    int64
	favorites []models.FavoriteWithSong
	err       error
}

// mutationDoneMsg reports a finished create, update or delete. reload names the tab to refresh on success.
type mutationDoneMsg struct {
	reload      Tab
	success     string
	deletedUser int64
	err         error
}

// noticeMsg carries a notification into the update loop.
type noticeMsg services.Notification

type clearNoticeMsg struct {
	id string
}

func clearNoticeAfter(id string) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}
