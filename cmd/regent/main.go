// Command regent inspects and validates managed-component descriptor
// documents. It is also the composition root example for embedding the
// registry: the process-wide Registry instance is created here, never inside
// the library packages.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vk/regentgo/internal/ctxlog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "regent",
		Short:         "Managed-component descriptor registry tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "info", "Logging level: debug, info, warn, error.")
	root.PersistentFlags().String("log-format", "text", "Log output format: text or json.")
	root.PersistentFlags().StringSlice("search-path", nil, "Root directories searched for namespace descriptor documents.")

	v.SetEnvPrefix("REGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range []string{"log-level", "log-format", "search-path"} {
		if err := v.BindPFlag(name, root.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger := ctxlog.New(v.GetString("log-level"), v.GetString("log-format"), cmd.ErrOrStderr())
		cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	}

	root.AddCommand(newInspectCmd(v))
	root.AddCommand(newValidateCmd())
	return root
}
