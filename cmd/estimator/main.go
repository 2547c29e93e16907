// Command estimator prices furniture and signage quotes from the command line
// and edits the materials catalog of a running server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Simplici0/baogia/internal/catalog"
)

const defaultServer = "http://localhost:8080"

// app carries the settings shared by every subcommand.
type app struct {
	v *viper.Viper
}

func (a *app) client() *catalog.Client {
	return catalog.NewClient(a.v.GetString("server"), nil)
}

func (a *app) timeout() time.Duration {
	if d := a.v.GetDuration("timeout"); d > 0 {
		return d
	}
	return 15 * time.Second
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("BAOGIA")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "estimator",
		Short:         "Báo giá nội thất và bảng hiệu",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("server", defaultServer, "base URL of the estimator server (env BAOGIA_SERVER)")
	root.PersistentFlags().Duration("timeout", 15*time.Second, "request timeout")
	_ = a.v.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	_ = a.v.BindPFlag("timeout", root.PersistentFlags().Lookup("timeout"))

	root.AddCommand(newQuoteCmd(a), newMaterialsCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
