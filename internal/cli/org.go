package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newOrgCommand(appOf func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Select the organization requests are scoped to",
	}

	var clearScope bool
	use := &cobra.Command{
		Use:   "use <id|name>",
		Short: "Scope later requests to an organization",
		Example: `  pacsadmin org use "Clinica Norte"
  pacsadmin org use 4f1c2a77-0d9e-4c1b-9a51-7f3e0b1d2c44
  pacsadmin org use --clear`,
		Args: func(cmd *cobra.Command, args []string) error {
			if clearScope {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			if clearScope {
				a.store.SetTenantScope("")
				a.printer.Success("Organization cleared.")
				return nil
			}
			if err := requireLogin(a); err != nil {
				return err
			}
			org, err := a.orgs.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.store.SetTenantScope(org.ID)
			a.printer.Success("Using organization %s (%s)", org.Name, org.ID)
			return nil
		},
	}
	use.Flags().BoolVar(&clearScope, "clear", false, "send requests without an organization")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the selected organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			scope := a.store.Snapshot().TenantScope
			if a.printer.json {
				return a.printer.JSON(map[string]string{"organization": scope})
			}
			if scope == "" {
				return errors.New("no organization selected")
			}
			a.printer.Info("%s", scope)
			return nil
		},
	}

	cmd.AddCommand(use, show)
	return cmd
}

func newOrgsCommand(appOf func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgs",
		Short: "Organizations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List organizations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			if err := requireLogin(a); err != nil {
				return err
			}
			orgs, err := a.client.ListOrganizations(cmd.Context())
			if err != nil {
				return err
			}
			current := a.store.Snapshot().TenantScope
			rows := make([][]string, 0, len(orgs))
			for _, o := range orgs {
				marker := ""
				if o.ID == current {
					marker = "*"
				}
				rows = append(rows, []string{marker, o.ID, o.Name, o.ContactEmail})
			}
			return a.printer.Table(orgs, []string{"", "ID", "Name", "Contact"}, rows)
		},
	})
	return cmd
}
