package services

// Services bundles the resource services built on one [Client].
type Services struct {
	Client    *Client
	Users     *UserService
	Songs     *SongService
	Favorites *FavoriteService
}

// New builds every resource service on top of c.
func New(c *Client) *Services {
	return &Services{
		Client:    c,
		Users:     NewUserService(c),
		Songs:     NewSongService(c),
		Favorites: NewFavoriteService(c),
	}
}
