// Package cmd holds the CLI surface. Every command talks to the backend
// through the same session-aware client stack the app screens use, and
// navigation rules decide which commands a session may run.
package cmd

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sentirsebien/go-client/announcements"
	"github.com/sentirsebien/go-client/appointments"
	"github.com/sentirsebien/go-client/clients"
	"github.com/sentirsebien/go-client/clinic"
	"github.com/sentirsebien/go-client/internal/config"
	"github.com/sentirsebien/go-client/navigator"
	"github.com/sentirsebien/go-client/payments"
	"github.com/sentirsebien/go-client/posts"
	"github.com/sentirsebien/go-client/queries"
	"github.com/sentirsebien/go-client/rest"
	"github.com/sentirsebien/go-client/session"
	"github.com/sentirsebien/go-client/tokenstore"
	"github.com/sentirsebien/go-client/users"
)

// app bundles the wired client stack the commands share.
type app struct {
	cfg       config.Config
	session   *session.Controller
	navigator *navigator.Navigator

	users         *users.Client
	appointments  *appointments.Client
	clinic        *clinic.Client
	payments      *payments.Client
	announcements *announcements.Client
	posts         *posts.Client
	queries       *queries.Client
	clients       *clients.Client
}

var application *app

var rootCmd = &cobra.Command{
	Use:   "sentirsebien",
	Short: "Client for the Sentirse Bien wellness clinic",
	Long: `sentirsebien talks to the Sentirse Bien clinic API: book and pay
appointments, raise queries, browse announcements and manage the clinic
when your account has staff roles. Sessions persist between runs; log in
once and subsequent commands reuse the stored tokens.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

func initApp(cmd *cobra.Command, args []string) error {
	if application != nil {
		return nil
	}

	// A missing .env is fine, the defaults point at a local backend.
	_ = godotenv.Load()

	cfg := config.New()
	store, err := tokenstore.NewFileRepo(cfg.GetDataFolder())
	if err != nil {
		return err
	}
	restClient, err := rest.New(cfg)
	if err != nil {
		return err
	}
	controller, err := session.NewController(store, restClient)
	if err != nil {
		return err
	}
	controller.Initialize(cmd.Context())

	application = &app{
		cfg:           cfg,
		session:       controller,
		navigator:     navigator.New(controller),
		users:         users.NewClient(restClient),
		appointments:  appointments.NewClient(restClient),
		clinic:        clinic.NewClient(restClient),
		payments:      payments.NewClient(restClient),
		announcements: announcements.NewClient(restClient),
		posts:         posts.NewClient(restClient),
		queries:       queries.NewClient(restClient),
		clients:       clients.NewClient(restClient),
	}
	return nil
}

// goTo routes through the navigator so commands inherit the same
// reachability rules as the app screens.
func (a *app) goTo(screen navigator.Screen) error {
	_, err := a.navigator.Go(screen)
	return err
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
