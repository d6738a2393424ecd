package cli

import (
	"bufio"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wizardpacs/adminkit/pkg/session"
)

func requireLogin(a *app) error {
	if !a.store.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

type whoami struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username,omitempty"`
	Email        string    `json:"email,omitempty"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	Organization string    `json:"organization,omitempty"`
	Since        time.Time `json:"since"`
}

func whoamiOf(s session.Session) whoami {
	w := whoami{
		ID:           s.Identity.ID,
		Name:         s.Identity.DisplayName,
		Username:     s.Identity.Username,
		Email:        s.Identity.Email,
		Role:         s.Identity.Role,
		Active:       s.Identity.Active,
		Organization: s.TenantScope,
	}
	if s.Credential != nil {
		w.Since = s.Credential.AcquiredAt
	}
	return w
}

func printWhoami(p *printer, s session.Session) error {
	w := whoamiOf(s)
	if p.json {
		return p.JSON(w)
	}
	p.Info("%s (%s)", w.Name, w.Role)
	if w.Username != "" {
		p.Info("  username:     %s", w.Username)
	}
	if w.Email != "" {
		p.Info("  email:        %s", w.Email)
	}
	org := w.Organization
	if org == "" {
		org = "(none)"
	}
	p.Info("  organization: %s", org)
	if !w.Since.IsZero() {
		p.Info("  since:        %s", w.Since.Local().Format(time.RFC1123))
	}
	return nil
}

func newLoginCommand(appOf func() *app) *cobra.Command {
	var (
		username      string
		password      string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Example: `  pacsadmin login -u admin@example.com --password-stdin < password.txt
  echo "$PACS_PASSWORD" | pacsadmin login -u admin --password-stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			if username == "" {
				return errors.New("--username is required")
			}
			if passwordStdin {
				line, err := readLine(cmd)
				if err != nil {
					return err
				}
				password = line
			}
			if password == "" {
				return errors.New("a password is required, pass it with --password-stdin")
			}

			snap, err := a.auth.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			a.orgs.Invalidate()
			if a.printer.json {
				return a.printer.JSON(whoamiOf(snap))
			}
			a.printer.Success("Logged in as %s (%s)", snap.Identity.DisplayName, snap.Identity.Role)
			if snap.TenantScope != "" {
				a.printer.Info("Organization: %s", snap.TenantScope)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username or email")
	cmd.Flags().StringVar(&password, "password", "", "password (visible in the process list, prefer --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func readLine(cmd *cobra.Command) (string, error) {
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no password on stdin")
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}

func newLogoutCommand(appOf func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			if !a.store.IsAuthenticated() {
				a.printer.Info("Not logged in.")
				return nil
			}
			a.auth.Logout()
			a.orgs.Invalidate()
			a.printer.Success("Logged out.")
			return nil
		},
	}
}

func newWhoamiCommand(appOf func() *app) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			if err := requireLogin(a); err != nil {
				return err
			}
			if check {
				ok, err := a.auth.Check(cmd.Context())
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("session check failed")
				}
			}
			return printWhoami(a.printer, a.store.Snapshot())
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "ask the server whether the session is still valid")
	return cmd
}
