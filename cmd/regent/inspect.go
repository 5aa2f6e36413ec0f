package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vk/regentgo/internal/ctxlog"
	"github.com/vk/regentgo/internal/locator"
	"github.com/vk/regentgo/internal/registry"
)

// newInspectCmd loads descriptor documents into a fresh registry and prints
// the resulting descriptor table.
func newInspectCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <path>...",
		Short: "Load descriptor documents and print the resolved descriptors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := ctxlog.FromContext(ctx)

			reg := registry.New(registry.Options{
				SearchRoots: v.GetStringSlice("search-path"),
			})

			for _, path := range args {
				docs, err := collectDocuments(path)
				if err != nil {
					return err
				}
				for _, doc := range docs {
					ids, err := reg.Load(ctx, "", doc, "")
					if err != nil {
						return fmt.Errorf("loading %s: %w", doc, err)
					}
					logger.Debug("Loaded descriptor document.", "path", doc, "descriptors", len(ids))
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tATTRS\tOPS\tNOTIFS")
			for _, d := range reg.Descriptors() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
					d.Name, d.Type, len(d.Attributes), len(d.Operations), len(d.Notifications))
			}
			return w.Flush()
		},
	}
}

// collectDocuments expands a path into descriptor document files: a file is
// taken as-is, a directory is searched recursively.
func collectDocuments(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return locator.FindDocuments(path, ".hcl", ".yaml", ".yml")
}
