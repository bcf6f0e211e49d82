package cli

type Options struct {
	ConfigURL string       `short:"c" long:"config" description:"config URL (file://, mem://, ...)" required:"true"`
	Debug     bool         `short:"d" long:"debug" description:"debug logging"`
	Login     LoginOptions `command:"login" description:"start a session"`
	Get       GetOptions   `command:"get" description:"GET a portal URL with automatic token refresh"`
	Refresh   struct{}     `command:"refresh" description:"refresh the token pair"`
	Status    struct{}     `command:"status" description:"show session state"`
	Logout    struct{}     `command:"logout" description:"clear the session"`
}

type LoginOptions struct {
	Username string `short:"u" long:"username" description:"username" required:"true"`
	Password string `short:"p" long:"password" description:"password" env:"PORTAL_PASSWORD"`
}

type GetOptions struct {
	Args struct {
		URL string `positional-arg-name:"url" required:"yes"`
	} `positional-args:"yes"`
}
