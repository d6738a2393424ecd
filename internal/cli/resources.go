package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wizardpacs/adminkit/pkg/pacs"
)

func newUsersCommand(appOf func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Users of the selected organization",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			if err := requireLogin(a); err != nil {
				return err
			}
			users, err := a.client.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{u.ID, u.Username, u.Name, u.Email, u.Role, yesNo(u.Active)})
			}
			return a.printer.Table(users, []string{"ID", "Username", "Name", "Email", "Role", "Active"}, rows)
		},
	})
	return cmd
}

func newStudiesCommand(appOf func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studies",
		Short: "Imaging studies",
	}

	var (
		search pacs.StudySearch
		date   string
	)
	searchCmd := &cobra.Command{
		Use:     "search",
		Short:   "Search studies",
		Example: `  pacsadmin studies search --patient-id P-1001 --modality CT --date 2026-02-14`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			if err := requireLogin(a); err != nil {
				return err
			}
			if date != "" {
				d, err := time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("invalid --date %q, use YYYY-MM-DD", date)
				}
				search.StudyDate = d
			}
			studies, err := a.client.SearchStudies(cmd.Context(), search)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(studies))
			for _, s := range studies {
				rows = append(rows, []string{
					s.StudyDate, s.PatientID, s.PatientName, s.Modality,
					s.StudyDescription, s.AccessionNumber, strconv.Itoa(s.NumberOfInstances),
				})
			}
			return a.printer.Table(studies, []string{"Date", "Patient ID", "Patient", "Modality", "Description", "Accession", "Images"}, rows)
		},
	}
	f := searchCmd.Flags()
	f.StringVar(&search.PatientID, "patient-id", "", "patient identifier")
	f.StringVar(&search.PatientName, "patient-name", "", "patient name")
	f.StringVar(&search.Modality, "modality", "", "modality, e.g. CT or MR")
	f.StringVar(&search.AccessionNumber, "accession", "", "accession number")
	f.StringVar(&date, "date", "", "study date (YYYY-MM-DD)")

	cmd.AddCommand(searchCmd)
	return cmd
}

func newNodesCommand(appOf func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "DICOM nodes",
	}

	var activeOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List DICOM nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			if err := requireLogin(a); err != nil {
				return err
			}
			nodes, err := a.client.ListNodes(cmd.Context(), activeOnly)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(nodes))
			for _, n := range nodes {
				rows = append(rows, []string{
					n.ID, n.AETitle, n.Hostname + ":" + strconv.Itoa(n.Port), n.NodeType, yesNo(n.Active),
				})
			}
			return a.printer.Table(nodes, []string{"ID", "AE Title", "Address", "Type", "Active"}, rows)
		},
	}
	list.Flags().BoolVar(&activeOnly, "active", false, "only active nodes")

	var all bool
	echo := &cobra.Command{
		Use:   "echo <id>",
		Short: "Run a DICOM C-ECHO against a node",
		Example: `  pacsadmin nodes echo 3c0e7b1a-5f7d-4f67-8d0a-2c9b1e6f4a10
  pacsadmin nodes echo --all`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			if err := requireLogin(a); err != nil {
				return err
			}
			if all {
				res, err := a.client.BatchEcho(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(res.Results))
				for _, name := range slices.Sorted(maps.Keys(res.Results)) {
					rows = append(rows, []string{name, yesNo(res.Results[name])})
				}
				if err := a.printer.Table(res, []string{"Node", "Echo OK"}, rows); err != nil {
					return err
				}
				if !a.printer.json {
					a.printer.Info("%d of %d nodes answered", res.SuccessCount, res.TotalTested)
				}
				return nil
			}

			res, err := a.client.EchoNode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.printer.json {
				return a.printer.JSON(res)
			}
			if !res.Success {
				return fmt.Errorf("echo failed: %s", res.Message)
			}
			a.printer.Success("%s", res.Message)
			return nil
		},
	}
	echo.Flags().BoolVar(&all, "all", false, "echo every active node")

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable or disable a DICOM node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			if err := requireLogin(a); err != nil {
				return err
			}
			n, err := a.client.ToggleNode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.printer.json {
				return a.printer.JSON(n)
			}
			state := "disabled"
			if n.Active {
				state = "enabled"
			}
			a.printer.Success("Node %s %s", n.AETitle, state)
			return nil
		},
	}

	cmd.AddCommand(list, echo, toggle)
	return cmd
}
