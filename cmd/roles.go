package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/shouni/go-redset-kit/pkg/catalog"

	"github.com/spf13/cobra"
)

// rolesCmd は、アーキタイプごとの役割カタログを一覧表示するのだ。API は呼ばないのだ。
var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "アーキタイプと役割カタログを表示するのだ。",
	RunE:  rolesCommand,
}

func rolesCommand(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	kinds := catalog.Kinds()
	if opts.Archetype != "" {
		a, err := catalog.Lookup(catalog.Kind(opts.Archetype))
		if err != nil {
			return err
		}
		kinds = []catalog.Kind{a.Kind}
	}

	for _, k := range kinds {
		a := catalog.MustLookup(k)
		fmt.Fprintf(w, "# %s (%s)\taspect=%s\titems=%d-%d\tcontinuity=%t\n",
			a.Kind, a.Label, a.DefaultAspectRatio, a.ItemRange.Min, a.ItemRange.Max, a.AllowContinuity)
		if !a.Roles.IsEnum() {
			fmt.Fprintf(w, "  %s\t%s, %s, ...\n", a.Roles.Cover, a.PageRole(1), a.PageRole(2))
			continue
		}
		for _, name := range a.Roles.Enum {
			desc := ""
			if r, ok := catalog.FindRole(name); ok {
				desc = r.Description
			}
			fmt.Fprintf(w, "  %s\t%s\n", name, desc)
		}
	}
	return w.Flush()
}
