package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wizardpacs/adminkit/pkg/pacs"
)

type dashboard struct {
	Organization string            `json:"organization,omitempty"`
	Studies      *pacs.StudyStats  `json:"studies,omitempty"`
	Nodes        *pacs.NodeStats   `json:"nodes,omitempty"`
	Engine       pacs.EngineStatus `json:"engine,omitempty"`
}

func newDashboardCommand(appOf func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Study, node and engine statistics at a glance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appOf()
			if err := requireLogin(a); err != nil {
				return err
			}
			ctx := cmd.Context()
			d := dashboard{Organization: a.store.Snapshot().TenantScope}

			// No shared context: one failing section must not cancel the others.
			var g errgroup.Group
			g.Go(func() (err error) {
				d.Studies, err = a.client.StudyStats(ctx)
				return err
			})
			g.Go(func() (err error) {
				d.Nodes, err = a.client.NodeStats(ctx)
				return err
			})
			g.Go(func() (err error) {
				d.Engine, err = a.client.EngineStatus(ctx)
				return err
			})
			err := g.Wait()

			if a.printer.json {
				if jerr := a.printer.JSON(d); jerr != nil {
					return jerr
				}
				return err
			}
			renderDashboard(a.printer, d)
			return err
		},
	}
}

func renderDashboard(p *printer, d dashboard) {
	if d.Organization != "" {
		p.Info("Organization: %s", d.Organization)
	}

	p.Header("Studies")
	if d.Studies != nil {
		p.Info("  total: %d", d.Studies.TotalStudies)
	} else {
		p.Info("  unavailable")
	}

	p.Header("DICOM nodes")
	if n := d.Nodes; n != nil {
		p.Info("  total: %d  active: %d  inactive: %d", n.TotalNodes, n.ActiveNodes, n.InactiveNodes)
		p.Info("  SCU: %d  SCP: %d  both: %d", n.SCUNodes, n.SCPNodes, n.BothNodes)
	} else {
		p.Info("  unavailable")
	}

	p.Header("PACS engine")
	if d.Engine == nil {
		p.Info("  unavailable")
		return
	}
	keys := make([]string, 0, len(d.Engine))
	for k := range d.Engine {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.Info("  %s: %s", k, formatValue(d.Engine[k]))
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
