package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vk/regentgo/internal/descriptor"
	"github.com/vk/regentgo/internal/docparse"
	"github.com/vk/regentgo/internal/yamldoc"
)

// newValidateCmd parses descriptor documents without committing anything,
// reporting the first violation per file.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>...",
		Short: "Check descriptor documents against the document grammar",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			failed := 0

			for _, path := range args {
				docs, err := collectDocuments(path)
				if err != nil {
					return err
				}
				for _, doc := range docs {
					src, err := os.ReadFile(doc)
					if err != nil {
						return err
					}

					acc := &descriptor.List{}
					switch filepath.Ext(doc) {
					case ".yaml", ".yml":
						err = yamldoc.Parse(ctx, doc, src, acc)
					default:
						err = docparse.Parse(ctx, doc, src, acc)
					}

					if err != nil {
						failed++
						fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", doc, err)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d components)\n", doc, acc.Len())
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d document(s) failed validation", failed)
			}
			return nil
		},
	}
}
