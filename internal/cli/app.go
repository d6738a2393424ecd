package cli

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wizardpacs/adminkit/pkg/apiclient"
	"github.com/wizardpacs/adminkit/pkg/logger"
	"github.com/wizardpacs/adminkit/pkg/notify"
	"github.com/wizardpacs/adminkit/pkg/pacs"
	"github.com/wizardpacs/adminkit/pkg/requestid"
	"github.com/wizardpacs/adminkit/pkg/session"
	"github.com/wizardpacs/adminkit/pkg/storage"
	"github.com/wizardpacs/adminkit/pkg/tenant"
)

// app is the wiring shared by every command of one invocation.
type app struct {
	cfg      Config
	logger   *slog.Logger
	printer  *printer
	registry *prometheus.Registry
	notices  *notify.Recorder

	store  *session.Store
	api    *apiclient.Client
	auth   *pacs.Authenticator
	client *pacs.Client
	orgs   *tenant.Resolver

	closeStorage func()
}

func newApp(ctx context.Context, cfg Config, p *printer, verbose bool) (*app, error) {
	logOpts := []logger.Option{
		logger.WithOutput(p.err),
		logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
	}
	if verbose {
		logOpts = append(logOpts, logger.WithLevel(slog.LevelDebug))
	}
	log, err := logger.FromConfig(cfg.logger(), "pacsadmin", logOpts...)
	if err != nil {
		return nil, err
	}

	adapter, closeStorage, err := storage.Open(ctx, cfg.Storage, storage.WithLogger(log))
	if err != nil {
		return nil, err
	}

	store := session.New(adapter, session.WithLogger(log))
	store.Restore()

	a := &app{
		cfg:          cfg,
		logger:       log,
		printer:      p,
		registry:     prometheus.NewRegistry(),
		notices:      &notify.Recorder{},
		store:        store,
		closeStorage: closeStorage,
	}

	notifier := notify.NewMulti([]notify.Notifier{a.display(), a.notices}, notify.WithMultiLogger(log))
	api, err := apiclient.New(cfg.API, store,
		apiclient.WithNotifier(notifier),
		apiclient.WithLogger(log),
		apiclient.WithMetrics(a.registry),
	)
	if err != nil {
		closeStorage()
		return nil, err
	}

	a.api = api
	a.auth = pacs.NewAuthenticator(api, store,
		pacs.WithIdentityPath(cfg.IdentityPath),
		pacs.WithLogger(log),
	)
	a.client = pacs.NewClient(api)
	a.orgs = tenant.NewResolver(a.client.Organizations(), tenant.WithLogger(log))

	// A forced logout mid-command is worth telling the user about.
	store.Subscribe(func(ev session.Event) {
		if ev.Kind == session.EventInvalidated {
			a.orgs.Invalidate()
			p.Warning("Session ended (%s). Run 'pacsadmin login' to sign in again.", ev.Reason)
		}
	})
	return a, nil
}

// display renders notices on stderr, colored when the printer is.
func (a *app) display() notify.Notifier {
	if !a.printer.useColors {
		return notify.NewWriter(a.printer.err)
	}
	return notify.NotifierFunc(func(_ context.Context, n notify.Notice) error {
		switch n.Severity {
		case notify.SeverityError:
			a.printer.Error("%s", n.Message)
		default:
			a.printer.Warning("%s", n.Message)
		}
		return nil
	})
}

func (a *app) close() {
	if a.closeStorage != nil {
		a.closeStorage()
	}
}
