package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/viant/portalauth"
	"github.com/viant/portalauth/client/auth/flow"
	"github.com/viant/portalauth/client/auth/store"
	"github.com/viant/portalauth/config"
	"github.com/viant/portalauth/internal/logging"
)

func Run(args []string) error {
	return RunWithWriter(context.Background(), args, os.Stdout)
}

// RunWithWriter parses args and executes the selected command, writing results to out.
func RunWithWriter(ctx context.Context, args []string, out io.Writer) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}
	if parser.Active == nil {
		return errors.New("command was empty")
	}
	cfg, err := config.Load(ctx, options.ConfigURL)
	if err != nil {
		return err
	}
	if options.Debug {
		cfg.Debug = true
	}
	logging.Setup(os.Stderr, cfg.Debug)
	client, err := portalauth.NewClient(ctx, &portalauth.ClientOptions{Config: cfg})
	if err != nil {
		return err
	}
	defer client.Close()
	return (&Service{client: client, out: out}).Execute(ctx, parser.Active.Name, options)
}

// Service executes commands against a portal client.
type Service struct {
	client *portalauth.Client
	out    io.Writer
}

func (s *Service) Execute(ctx context.Context, command string, options *Options) error {
	switch command {
	case "login":
		if options.Login.Password == "" {
			return errors.New("password was empty, use --password or PORTAL_PASSWORD")
		}
		if _, err := s.client.Login(ctx, options.Login.Username, options.Login.Password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		_, _ = fmt.Fprintf(s.out, "logged in as %v\n", options.Login.Username)
		return nil
	case "get":
		return s.get(ctx, options.Get.Args.URL)
	case "refresh":
		token, err := s.client.Coordinator.Refresh(ctx)
		if err != nil {
			return err
		}
		s.printExpiry(token)
		return nil
	case "status":
		return s.status(ctx)
	case "logout":
		s.client.Logout(ctx)
		_, _ = fmt.Fprintln(s.out, "logged out")
		return nil
	}
	return fmt.Errorf("unsupported command: %v", command)
}

func (s *Service) get(ctx context.Context, URL string) error {
	req, err := newRequest(ctx, URL)
	if err != nil {
		return err
	}
	resp, err := s.client.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if _, err = io.Copy(s.out, resp.Body); err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%v: %v", URL, resp.Status)
	}
	return nil
}

func (s *Service) status(ctx context.Context) error {
	credentials, err := store.Load(ctx, s.client.Store)
	if err != nil {
		return err
	}
	if credentials.AccessToken == "" {
		_, _ = fmt.Fprintln(s.out, "not logged in")
		return nil
	}
	if credentials.User != "" {
		_, _ = fmt.Fprintf(s.out, "user: %v\n", credentials.User)
	}
	s.printExpiry(credentials.AccessToken)
	return nil
}

func (s *Service) printExpiry(accessToken string) {
	if expiry, ok := flow.TokenExpiry(accessToken); ok {
		_, _ = fmt.Fprintf(s.out, "access token expires at %v\n", expiry.Format(time.RFC3339))
		return
	}
	_, _ = fmt.Fprintln(s.out, "access token present")
}
