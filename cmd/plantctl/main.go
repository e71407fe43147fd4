// Command plantctl drives the leafkeeper backend from a terminal: sign in,
// browse the catalog, manage plants, reminders and proxies, and run the
// plant doctor. Session state lives in a SQLite file under --data-dir.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	client "github.com/leafkeeper/leafkeeper-client"
	"github.com/leafkeeper/leafkeeper-client/internal/config"
	"github.com/leafkeeper/leafkeeper-client/internal/store"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app holds per-invocation state shared by subcommands. The client and
// session are opened lazily so commands such as devserver never touch the
// local store.
type app struct {
	cfg *config.Config

	apiURL       string
	diagnosisURL string
	dataDir      string
	debug        bool

	client  *client.Client
	session *client.Session
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "plantctl",
		Short:         "plantctl manages plants, reminders and proxies on a leafkeeper backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.apiURL, "api", "", "Gateway base URL (default $LEAFKEEPER_API_URL)")
	pf.StringVar(&a.diagnosisURL, "diagnosis-api", "", "Diagnosis service base URL (default $LEAFKEEPER_DIAGNOSIS_URL)")
	pf.StringVar(&a.dataDir, "data-dir", "", "Directory for local session state (default ~/.leafkeeper)")
	pf.BoolVarP(&a.debug, "debug", "d", false, "Log every HTTP exchange")

	rootCmd.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newUserCmd(a),
		newSpeciesCmd(a),
		newPlantsCmd(a),
		newRemindersCmd(a),
		newProxiesCmd(a),
		newDiagnoseCmd(a),
		newBookmarksCmd(a),
		newRecentCmd(a),
		newDevserverCmd(),
		newMetricsCmd(),
	)
	return rootCmd
}

// configure loads the environment, applies flag overrides and initialises
// logging.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.diagnosisURL != "" {
		cfg.DiagnosisURL = a.diagnosisURL
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.debug {
		cfg.Debug = true
	}
	if err := cfg.Resolve(); err != nil {
		return err
	}
	cfg.Init()
	a.cfg = cfg
	log.Debug().Str("command", cmd.CommandPath()).Str("api_url", cfg.APIURL).Msg("plantctl starting")
	return nil
}

// open returns the client and a restored session backed by the SQLite store.
func (a *app) open(ctx context.Context) (*client.Client, *client.Session, error) {
	if a.client != nil {
		return a.client, a.session, nil
	}
	path, err := store.DBPath(a.cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	kv, err := client.OpenSQLiteStore(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open local state: %w", err)
	}
	a.client = client.NewFromConfig(a.cfg, client.WithStore(kv))
	a.session = client.NewSession(a.client)
	a.session.Restore(ctx)
	return a.client, a.session, nil
}

// requireSession is open plus a check that someone is signed in.
func (a *app) requireSession(ctx context.Context) (*client.Client, *client.Session, error) {
	c, s, err := a.open(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !s.IsAuthenticated() {
		return nil, nil, fmt.Errorf("%w: run `plantctl login` first", client.ErrNotAuthenticated)
	}
	return c, s, nil
}

func (a *app) close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func parseSpeciesID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid species id %q", s)
	}
	return id, nil
}

// optString returns a pointer to v when the named flag was set.
func optString(cmd *cobra.Command, name, v string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

// optBool returns a pointer to v when the named flag was set.
func optBool(cmd *cobra.Command, name string, v bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
