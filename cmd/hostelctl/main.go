// hostelctl is a command-line client for the hostel management API. It
// holds its session the same way the web frontend does: an HTTP-only token
// cookie plus a readable user projection, mirrored into a local session
// file, reconciled at startup.
package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hostelhub/hostel-api/internal/client"
	"github.com/hostelhub/hostel-api/internal/client/session"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var serverURL string

	root := &cobra.Command{
		Use:   "hostelctl",
		Short: "Client for the hostel management API",
		Long: `hostelctl talks to the hostel management backend the way the web
frontend does: sessions ride in cookies and a bearer header, and the local
auth state survives restarts in a cookie jar file plus a session file.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:4000", "base URL of the hostel API")

	app := &appContext{serverURL: &serverURL}

	root.AddCommand(
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newDashboardCmd(app),
		newRoomsCmd(app),
	)
	return root
}

// appContext lazily builds the API client so flag parsing happens first.
type appContext struct {
	serverURL *string
	client    *client.Client
}

// Client assembles the session store over both durable copies, hydrates it,
// and returns the API client. Hydration runs before any command logic so no
// decision is ever made in the hydrating state.
func (a *appContext) Client() (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	base, err := url.Parse(*a.serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(configDir, "hostelctl")

	jar, err := client.NewPersistentJar(filepath.Join(dir, "cookies.json"), base)
	if err != nil {
		return nil, err
	}

	cookieStore := session.NewCookieStore(jar, base)
	fileStore := session.NewFileStore(filepath.Join(dir, "session.json"))
	store := session.NewStore(cookieStore, fileStore, func(route string) {
		fmt.Fprintf(os.Stderr, "session ended, back to %s\n", route)
	})
	store.Hydrate()

	a.client = client.New(base, jar, store)
	return a.client, nil
}
