// Package cli implements the pacsadmin command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wizardpacs/adminkit/pkg/apierror"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
)

var errNotLoggedIn = errors.New("not logged in, run 'pacsadmin login' first")

// Streams are the standard streams of one invocation.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Option customizes the root command, mostly for tests.
type Option func(*settings)

type settings struct {
	environment map[string]string
	version     string
}

// WithEnvironment replaces the process environment as the config source.
func WithEnvironment(env map[string]string) Option {
	return func(s *settings) {
		s.environment = env
	}
}

// WithVersion sets the string printed by "version".
func WithVersion(v string) Option {
	return func(s *settings) {
		s.version = v
	}
}

type rootFlags struct {
	envFile     string
	verbose     bool
	colorMode   string
	output      string
	metricsFile string
}

// state is what one invocation builds. The app is nil until a command that
// needs it starts.
type state struct {
	flags rootFlags
	app   *app
}

// finish writes the metrics file and releases storage. It runs whether or
// not the command failed.
func (st *state) finish() error {
	if st.app == nil {
		return nil
	}
	defer st.app.close()
	if st.flags.metricsFile != "" {
		return prometheus.WriteToTextfile(st.flags.metricsFile, st.app.registry)
	}
	return nil
}

// reported tells whether any failure was already shown as a notice.
func (st *state) reported() bool {
	return st.app != nil && st.app.notices.Len() > 0
}

func newRoot(s *settings) (*cobra.Command, *state) {
	st := &state{}

	root := &cobra.Command{
		Use:   "pacsadmin",
		Short: "Administration CLI for the PACS platform",
		Long: `pacsadmin talks to the PACS administration API.

The session is kept between invocations in the configured storage backend
(a file under ~/.pacsadmin by default). Every request carries the session
credential and the selected organization.

Example usage:
  pacsadmin login -u admin@example.com --password-stdin
  pacsadmin org use "Clinica Norte"
  pacsadmin studies search --modality CT
  pacsadmin dashboard`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoApp] == "true" {
				return nil
			}
			flags := st.flags
			if flags.output != outputTable && flags.output != outputJSON {
				return fmt.Errorf("invalid output %q: must be table or json", flags.output)
			}
			useColors, err := resolveColors(flags.colorMode, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cfg, err := loadConfig(flags.envFile, s.environment)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			p := &printer{
				out:       cmd.OutOrStdout(),
				err:       cmd.ErrOrStderr(),
				useColors: useColors,
				json:      flags.output == outputJSON,
			}
			st.app, err = newApp(cmd.Context(), cfg, p, flags.verbose)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&st.flags.envFile, "env-file", ".env", "dotenv file read before the environment (ignored if missing)")
	pf.BoolVarP(&st.flags.verbose, "verbose", "v", false, "log every API call")
	pf.StringVar(&st.flags.colorMode, "color", colorAuto, "color mode: auto, always, never")
	pf.StringVarP(&st.flags.output, "output", "o", outputTable, "output format: table or json")
	pf.StringVar(&st.flags.metricsFile, "metrics-file", "", "write request metrics in Prometheus text format to this file")

	appOf := func() *app { return st.app }
	root.AddCommand(
		newLoginCommand(appOf),
		newLogoutCommand(appOf),
		newWhoamiCommand(appOf),
		newOrgCommand(appOf),
		newOrgsCommand(appOf),
		newUsersCommand(appOf),
		newStudiesCommand(appOf),
		newNodesCommand(appOf),
		newDashboardCommand(appOf),
		newVersionCommand(s.version),
	)
	return root, st
}

// annotationNoApp marks commands that run without config or a session.
const annotationNoApp = "pacsadmin/no-app"

// Execute runs pacsadmin with args and returns the process exit code.
func Execute(ctx context.Context, args []string, streams Streams, opts ...Option) int {
	s := &settings{version: "dev"}
	for _, opt := range opts {
		opt(s)
	}
	if streams.In == nil {
		streams.In = os.Stdin
	}
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.Err == nil {
		streams.Err = os.Stderr
	}

	// Keep *os.File so color detection still sees a terminal.
	if _, ok := streams.Out.(*os.File); !ok {
		streams.Out = &lockedWriter{w: streams.Out}
	}
	if _, ok := streams.Err.(*os.File); !ok {
		streams.Err = &lockedWriter{w: streams.Err}
	}

	root, st := newRoot(s)
	root.SetArgs(args)
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	err := root.ExecuteContext(ctx)
	if ferr := st.finish(); ferr != nil && err == nil {
		err = ferr
	}
	if err == nil {
		return 0
	}

	if f, ok := apierror.AsFailure(err); ok {
		// Invalid is the one kind the pipeline never announces.
		if f.Kind == apierror.Invalid || !st.reported() {
			fmt.Fprintf(streams.Err, "Error: %s\n", f.UserMessage())
		}
		return 1
	}
	fmt.Fprintf(streams.Err, "Error: %v\n", err)
	return 1
}
