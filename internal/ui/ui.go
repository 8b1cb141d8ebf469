package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/services"
	"github.com/desertthunder/musicadm/internal/tasks"
)

// Tab is one of the top-level screens.
type Tab int

const (
	DashboardTab Tab = iota
	UsersTab
	SongsTab
	FavoritesTab
)

var tabs = []Tab{DashboardTab, UsersTab, SongsTab, FavoritesTab}

func (t Tab) String() string {
	switch t {
	case DashboardTab:
		return "Dashboard"
	case UsersTab:
		return "Users"
	case SongsTab:
		return "Songs"
	case FavoritesTab:
		return "Favorites"
	default:
		return "?"
	}
}

// mode is the interaction layered on top of the active tab.
type mode int

const (
	browseMode mode = iota
	formMode
	confirmMode
	pickMode
)

var sortCycle = []formatter.SortField{"", formatter.SortTitle, formatter.SortArtist, formatter.SortDuration, formatter.SortYear}

type confirmation struct {
	prompt string
	action tea.Cmd
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	cancel       context.CancelFunc
	loads        map[Tab]context.CancelFunc
	svc          *services.Services
	engine       *tasks.CatalogEngine
	notifier     services.Notifier
	width        int
	height       int
	tab          Tab
	mode         mode
	loading      map[Tab]bool
	dashboard    *tasks.DashboardResult
	users        list.Model
	songs        list.Model
	favorites    list.Model
	picker       list.Model
	songData     []models.Song
	favoriteData []models.FavoriteWithSong
	selectedUser *models.User
	sortField    formatter.SortField
	sortDesc     bool
	form         *form
	confirm      *confirmation
	notice       *services.Notification
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model. Its context is canceled when the program quits, aborting in-flight requests.
//
// notifier receives the success notifications raised by the model; API failures reach the status line through
// the client's own notifier, usually a [ProgramNotifier].
func NewModel(ctx context.Context, svc *services.Services, notifier services.Notifier) *Model {
	ctx, cancel := context.WithCancel(ctx)
	if notifier == nil {
		notifier = services.NopNotifier{}
	}

	return &Model{
		ctx:       ctx,
		cancel:    cancel,
		loads:     map[Tab]context.CancelFunc{},
		svc:       svc,
		engine:    tasks.FromServices(svc),
		notifier:  notifier,
		tab:       DashboardTab,
		loading:   map[Tab]bool{},
		users:     newList("Users", nil, 0, 0),
		songs:     newList("Songs", nil, 0, 0),
		favorites: newList("Favorites", nil, 0, 0),
		picker:    newList("Add a favorite", nil, 0, 0),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init loads the dashboard, users and songs.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadDashboard(), m.loadUsers(), m.loadSongs())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := max(msg.Width-4, 20), max(msg.Height-8, 5)
		m.users.SetSize(w, h)
		m.songs.SetSize(w, h)
		m.favorites.SetSize(w, h)
		m.picker.SetSize(w, h)
		return m, nil

	case noticeMsg:
		n := services.Notification(msg)
		m.notice = &n
		return m, clearNoticeAfter(n.ID)

	case clearNoticeMsg:
		if m.notice != nil && m.notice.ID == msg.id {
			m.notice = nil
		}
		return m, nil

	case dashboardLoadedMsg:
		if canceled(msg.err) {
			return m, nil
		}
		m.loading[DashboardTab] = false
		if msg.err == nil {
			m.dashboard = msg.result
		}
		return m, nil

	case usersLoadedMsg:
		if canceled(msg.err) {
			return m, nil
		}
		m.loading[UsersTab] = false
		if msg.err != nil {
			return m, nil
		}
		return m, m.users.SetItems(userItems(msg.users))

	case songsLoadedMsg:
		if canceled(msg.err) {
			return m, nil
		}
		m.loading[SongsTab] = false
		if msg.err != nil {
			return m, nil
		}
		m.songData = msg.songs
		return m, m.applySort()

	case favoritesLoadedMsg:
		if canceled(msg.err) {
			return m, nil
		}
		m.loading[FavoritesTab] = false
		if msg.err != nil || m.selectedUser == nil || m.selectedUser.ID != msg.userID {
			return m, nil
		}
		m.favoriteData = msg.favorites
		return m, m.favorites.SetItems(favoriteItems(msg.favorites))

	case mutationDoneMsg:
		return m, m.handleMutation(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		switch m.mode {
		case formMode:
			return m, m.handleFormKeys(msg)
		case confirmMode:
			return m, m.handleConfirmKeys(msg)
		case pickMode:
			return m, m.handlePickKeys(msg)
		default:
			return m, m.handleBrowseKeys(msg)
		}
	}

	return m, m.updateActive(msg)
}

func (m *Model) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}

func (m *Model) handleMutation(msg mutationDoneMsg) tea.Cmd {
	if msg.err != nil {
		if m.mode == formMode && m.form != nil {
			m.form.setErrors(msg.err)
		}
		if m.mode == confirmMode {
			m.mode, m.confirm = browseMode, nil
		}
		return nil
	}

	m.mode, m.form, m.confirm = browseMode, nil, nil
	cmds := []tea.Cmd{m.notify(services.LevelSuccess, msg.success), m.loadDashboard()}
	switch msg.reload {
	case UsersTab:
		if m.selectedUser != nil && m.selectedUser.ID == msg.deletedUser {
			m.selectedUser = nil
			m.favoriteData = nil
			cmds = append(cmds, m.favorites.SetItems(nil))
		}
		cmds = append(cmds, m.loadUsers())
	case SongsTab:
		cmds = append(cmds, m.loadSongs())
	case FavoritesTab:
		cmds = append(cmds, m.loadFavorites())
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) tea.Cmd {
	if l := m.activeList(); l != nil && l.FilterState() == list.Filtering {
		return m.updateActive(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.nextTab):
		return m.switchTab(tabs[(int(m.tab)+1)%len(tabs)])
	case key.Matches(msg, m.keys.prevTab):
		return m.switchTab(tabs[(int(m.tab)+len(tabs)-1)%len(tabs)])
	case key.Matches(msg, m.keys.reload):
		return m.reload(m.tab)
	}

	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(tabs) {
		return m.switchTab(tabs[n-1])
	}

	switch m.tab {
	case UsersTab:
		switch {
		case key.Matches(msg, m.keys.create):
			return m.openForm(newUserForm(nil))
		case key.Matches(msg, m.keys.edit):
			if u := m.currentUser(); u != nil {
				return m.openForm(newUserForm(u))
			}
		case key.Matches(msg, m.keys.remove):
			if u := m.currentUser(); u != nil {
				m.askConfirm(fmt.Sprintf("Delete user %q? Their favorites go with them.", u.Name), m.deleteUser(*u))
			}
			return nil
		case key.Matches(msg, m.keys.favorites), key.Matches(msg, m.keys.enter):
			if u := m.currentUser(); u != nil {
				m.selectedUser = u
				m.favoriteData = nil
				m.favorites.Title = fmt.Sprintf("Favorites of %s", u.Name)
				m.tab = FavoritesTab
				return tea.Batch(m.favorites.SetItems(nil), m.loadFavorites())
			}
			return nil
		}
	case SongsTab:
		switch {
		case key.Matches(msg, m.keys.create):
			return m.openForm(newSongForm(nil))
		case key.Matches(msg, m.keys.edit):
			if s := m.currentSong(); s != nil {
				return m.openForm(newSongForm(s))
			}
		case key.Matches(msg, m.keys.remove):
			if s := m.currentSong(); s != nil {
				m.askConfirm(fmt.Sprintf("Delete song %q by %s?", s.Title, s.Artist), m.deleteSong(*s))
			}
			return nil
		case key.Matches(msg, m.keys.sort):
			m.sortField = nextSort(m.sortField)
			return m.applySort()
		case key.Matches(msg, m.keys.order):
			m.sortDesc = !m.sortDesc
			return m.applySort()
		}
	case FavoritesTab:
		switch {
		case key.Matches(msg, m.keys.add):
			return m.openPicker()
		case key.Matches(msg, m.keys.remove):
			if f := m.currentFavorite(); f != nil && m.selectedUser != nil {
				m.askConfirm(fmt.Sprintf("Remove %q from the favorites of %s?", f.Song.Title, m.selectedUser.Name), m.removeFavorite(m.selectedUser.ID, f.SongID))
			}
			return nil
		}
	}

	return m.updateActive(msg)
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.back):
		m.mode, m.form = browseMode, nil
		return nil
	case key.Matches(msg, m.keys.submit), msg.String() == "enter" && m.form.onLastField():
		return m.submitForm()
	}
	return m.form.Update(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.yes):
		action := m.confirm.action
		m.confirm.prompt = "Working..."
		return action
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.mode, m.confirm = browseMode, nil
	}
	return nil
}

func (m *Model) handlePickKeys(msg tea.KeyMsg) tea.Cmd {
	if m.picker.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.back):
			m.mode = browseMode
			return nil
		case key.Matches(msg, m.keys.enter):
			item, ok := m.picker.SelectedItem().(songItem)
			if !ok || m.selectedUser == nil {
				return nil
			}
			req := models.CreateFavoriteRequest{UserID: m.selectedUser.ID, SongID: item.song.ID}
			if err := req.Validate(); err != nil {
				return m.notify(services.LevelWarn, err.Error())
			}
			m.mode = browseMode
			return m.mutate(FavoritesTab, fmt.Sprintf("added %q to favorites", item.song.Title), func(ctx context.Context) error {
				_, err := m.svc.Favorites.Create(ctx, req)
				return err
			})
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return cmd
}

func (m *Model) submitForm() tea.Cmd {
	f := m.form
	switch f.kind {
	case userForm:
		if !f.editing() {
			req, err := f.userCreate()
			if err != nil {
				f.setErrors(err)
				return nil
			}
			return m.mutate(UsersTab, "user created", func(ctx context.Context) error {
				_, err := m.svc.Users.Create(ctx, req)
				return err
			})
		}
		req, err := f.userUpdate()
		if err != nil {
			f.setErrors(err)
			return nil
		}
		if req.IsEmpty() {
			m.mode, m.form = browseMode, nil
			return m.notify(services.LevelInfo, "nothing to update")
		}
		id := f.id
		return m.mutate(UsersTab, "user updated", func(ctx context.Context) error {
			_, err := m.svc.Users.Update(ctx, id, req)
			return err
		})

	case songForm:
		if !f.editing() {
			req, err := f.songCreate()
			if err != nil {
				f.setErrors(err)
				return nil
			}
			return m.mutate(SongsTab, "song created", func(ctx context.Context) error {
				_, err := m.svc.Songs.Create(ctx, req)
				return err
			})
		}
		req, err := f.songUpdate()
		if err != nil {
			f.setErrors(err)
			return nil
		}
		if req.IsEmpty() {
			m.mode, m.form = browseMode, nil
			return m.notify(services.LevelInfo, "nothing to update")
		}
		id := f.id
		return m.mutate(SongsTab, "song updated", func(ctx context.Context) error {
			_, err := m.svc.Songs.Update(ctx, id, req)
			return err
		})
	}
	return nil
}

func (m *Model) openForm(f *form) tea.Cmd {
	m.form = f
	m.mode = formMode
	return textinput.Blink
}

func (m *Model) askConfirm(prompt string, action tea.Cmd) {
	m.confirm = &confirmation{prompt: prompt, action: action}
	m.mode = confirmMode
}

func (m *Model) openPicker() tea.Cmd {
	if m.selectedUser == nil {
		return m.notify(services.LevelWarn, "select a user first (Users tab, f)")
	}

	taken := make(map[int64]bool, len(m.favoriteData))
	for _, f := range m.favoriteData {
		taken[f.SongID] = true
	}
	var available []models.Song
	for _, s := range m.songData {
		if !taken[s.ID] {
			available = append(available, s)
		}
	}
	if len(available) == 0 {
		return m.notify(services.LevelInfo, "every song is already a favorite")
	}

	m.picker.Title = fmt.Sprintf("Add a favorite for %s", m.selectedUser.Name)
	m.picker.ResetFilter()
	m.mode = pickMode
	return m.picker.SetItems(songItems(available))
}

func (m *Model) switchTab(t Tab) tea.Cmd {
	m.tab = t
	if t == FavoritesTab && m.selectedUser == nil {
		if u := m.currentUser(); u != nil {
			m.selectedUser = u
			m.favorites.Title = fmt.Sprintf("Favorites of %s", u.Name)
			return m.loadFavorites()
		}
	}
	return nil
}

func (m *Model) reload(t Tab) tea.Cmd {
	switch t {
	case DashboardTab:
		return m.loadDashboard()
	case UsersTab:
		return m.loadUsers()
	case SongsTab:
		return m.loadSongs()
	case FavoritesTab:
		return m.loadFavorites()
	}
	return nil
}

func (m *Model) activeList() *list.Model {
	switch m.tab {
	case UsersTab:
		return &m.users
	case SongsTab:
		return &m.songs
	case FavoritesTab:
		return &m.favorites
	}
	return nil
}

func (m *Model) updateActive(msg tea.Msg) tea.Cmd {
	if m.mode == pickMode {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return cmd
	}
	if m.mode == formMode && m.form != nil {
		return m.form.Update(msg)
	}
	l := m.activeList()
	if l == nil {
		return nil
	}
	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	return cmd
}

func (m *Model) currentUser() *models.User {
	if item, ok := m.users.SelectedItem().(userItem); ok {
		u := item.user
		return &u
	}
	return nil
}

func (m *Model) currentSong() *models.Song {
	if item, ok := m.songs.SelectedItem().(songItem); ok {
		s := item.song
		return &s
	}
	return nil
}

func (m *Model) currentFavorite() *models.FavoriteWithSong {
	if item, ok := m.favorites.SelectedItem().(favoriteItem); ok {
		f := item.favorite
		return &f
	}
	return nil
}

func (m *Model) applySort() tea.Cmd {
	songs := append([]models.Song(nil), m.songData...)
	formatter.SortSongs(songs, m.sortField, m.sortDesc)

	title := "Songs"
	if m.sortField != "" {
		dir := "asc"
		if m.sortDesc {
			dir = "desc"
		}
		title = fmt.Sprintf("Songs by %s (%s)", m.sortField, dir)
	}
	m.songs.Title = title
	return m.songs.SetItems(songItems(songs))
}

func nextSort(f formatter.SortField) formatter.SortField {
	for i, s := range sortCycle {
		if s == f {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return ""
}

// notify shows n on the status line and forwards it to the model's notifier.
func (m *Model) notify(level services.Level, message string) tea.Cmd {
	n := services.NewNotification(level, message)
	m.notice = &n
	m.notifier.Notify(m.ctx, n)
	return clearNoticeAfter(n.ID)
}

// loadCtx returns a context for loading t, canceling the previous load of the same tab.
func (m *Model) loadCtx(t Tab) context.Context {
	if cancel, ok := m.loads[t]; ok {
		cancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.loads[t] = cancel
	m.loading[t] = true
	return ctx
}

func (m *Model) loadDashboard() tea.Cmd {
	ctx := m.loadCtx(DashboardTab)
	return func() tea.Msg {
		result, err := m.engine.Dashboard(ctx, nil)
		return dashboardLoadedMsg{result: result, err: err}
	}
}

func (m *Model) loadUsers() tea.Cmd {
	ctx := m.loadCtx(UsersTab)
	return func() tea.Msg {
		users, err := m.svc.Users.List(ctx, services.ListOptions{Limit: services.MaxLimit})
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m *Model) loadSongs() tea.Cmd {
	ctx := m.loadCtx(SongsTab)
	return func() tea.Msg {
		songs, err := m.svc.Songs.List(ctx, services.SongFilter{ListOptions: services.ListOptions{Limit: services.MaxLimit}})
		return songsLoadedMsg{songs: songs, err: err}
	}
}

func (m *Model) loadFavorites() tea.Cmd {
	if m.selectedUser == nil {
		return nil
	}
	ctx := m.loadCtx(FavoritesTab)
	userID := m.selectedUser.ID
	return func() tea.Msg {
		favorites, err := m.svc.Favorites.ListByUser(ctx, userID)
		return favoritesLoadedMsg{userID: userID, favorites: favorites, err: err}
	}
}

func (m *Model) mutate(reload Tab, success string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return mutationDoneMsg{reload: reload, success: success, err: fn(ctx)}
	}
}

func (m *Model) deleteUser(u models.User) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		err := m.svc.Users.Delete(ctx, u.ID)
		return mutationDoneMsg{reload: UsersTab, success: fmt.Sprintf("user deleted: %s", u.Name), deletedUser: u.ID, err: err}
	}
}

func (m *Model) deleteSong(s models.Song) tea.Cmd {
	return m.mutate(SongsTab, fmt.Sprintf("song deleted: %s", s.Title), func(ctx context.Context) error {
		return m.svc.Songs.Delete(ctx, s.ID)
	})
}

func (m *Model) removeFavorite(userID, songID int64) tea.Cmd {
	return m.mutate(FavoritesTab, "favorite removed", func(ctx context.Context) error {
		return m.svc.Favorites.DeleteByUserSong(ctx, userID, songID)
	})
}

// canceled reports whether err comes from a load superseded by a newer one or from quitting.
func canceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// View renders the UI based on the active tab and mode.
func (m *Model) View() string {
	var body string
	switch m.mode {
	case formMode:
		body = m.form.View()
	case confirmMode:
		body = m.renderConfirm()
	case pickMode:
		body = m.picker.View()
	default:
		body = m.renderTab()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		"",
		body,
		"",
		m.renderStatus(),
		m.renderHelp(),
	)
}

func (m *Model) renderTabs() string {
	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.tab {
			rendered[i] = styles.activeTab.Render(label)
		} else {
			rendered[i] = styles.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderTab() string {
	switch m.tab {
	case DashboardTab:
		return m.renderDashboard()
	case UsersTab:
		return m.users.View()
	case SongsTab:
		return m.songs.View()
	case FavoritesTab:
		if m.selectedUser == nil {
			return styles.help.Render("No user selected. Pick one in the Users tab and press f.")
		}
		if len(m.favoriteData) == 0 && !m.loading[FavoritesTab] {
			return styles.title.Render(m.favorites.Title) + "\n" + styles.help.Render("No favorites yet. Press a to add one.")
		}
		return m.favorites.View()
	}
	return ""
}

func (m *Model) renderDashboard() string {
	d := m.dashboard
	if d == nil {
		if m.loading[DashboardTab] {
			return styles.help.Render("Loading dashboard...")
		}
		return styles.help.Render("Dashboard unavailable. Press r to retry.")
	}

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.stat.Render(fmt.Sprintf("%d\nusers", d.Users)),
		styles.stat.Render(fmt.Sprintf("%d\nsongs", d.Songs)),
		styles.stat.Render(fmt.Sprintf("%d\nfavorites", d.Favorites)),
	)

	topSongs := make([][]string, len(d.TopSongs))
	for i, r := range d.TopSongs {
		topSongs[i] = []string{strconv.Itoa(i + 1), r.Song.Title, r.Song.Artist, strconv.Itoa(r.Favorites)}
	}
	topArtists := make([][]string, len(d.TopArtists))
	for i, r := range d.TopArtists {
		topArtists[i] = []string{strconv.Itoa(i + 1), r.Artist, strconv.Itoa(r.Songs)}
	}
	recent := make([][]string, len(d.Recent))
	for i, f := range d.Recent {
		recent[i] = []string{f.Song.Title, f.Song.Artist, strconv.FormatInt(f.UserID, 10), formatter.FormatDate(f.AddedAt.Time)}
	}

	rankings := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.label.Render("Top songs")+"\n"+formatter.Table([]string{"#", "Title", "Artist", "Favs"}, topSongs),
		"  ",
		styles.label.Render("Top artists")+"\n"+formatter.Table([]string{"#", "Artist", "Songs"}, topArtists),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		stats,
		"",
		rankings,
		"",
		styles.label.Render("Recent activity"),
		formatter.Table([]string{"Song", "Artist", "User", "Added"}, recent),
	)
}

func (m *Model) renderConfirm() string {
	title := styles.warn.Render(m.confirm.prompt)
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n\n%s", title, helpView)
}

func (m *Model) renderStatus() string {
	if m.notice != nil {
		return styles.notice(*m.notice)
	}
	if m.loading[m.tab] {
		return styles.help.Render("Loading...")
	}
	return ""
}

func (m *Model) renderHelp() string {
	var keys []key.Binding
	switch m.mode {
	case formMode:
		keys = []key.Binding{m.keys.submit, m.keys.back}
	case confirmMode:
		return ""
	case pickMode:
		keys = []key.Binding{m.keys.enter, m.keys.back}
	default:
		switch m.tab {
		case UsersTab:
			keys = []key.Binding{m.keys.create, m.keys.edit, m.keys.remove, m.keys.favorites}
		case SongsTab:
			keys = []key.Binding{m.keys.create, m.keys.edit, m.keys.remove, m.keys.sort, m.keys.order}
		case FavoritesTab:
			keys = []key.Binding{m.keys.add, m.keys.remove}
		}
		keys = append(keys, m.keys.nextTab, m.keys.reload, m.keys.quit)
	}
	return m.help.ShortHelpView(keys)
}
