package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/daliphone/money-marketing-room/internal/app"
	"github.com/daliphone/money-marketing-room/internal/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var deps *app.Deps
	root := &cobra.Command{
		Use:           "board",
		Short:         "📢 Marketing schedule board",
		Long:          "Inspect and extend the marketing schedule sheet from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			d, err := app.Build(cfg)
			if err != nil {
				return err
			}
			deps = d
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if deps != nil {
				deps.Close()
			}
		},
	}

	cli := &CLI{deps: func() *app.Deps { return deps }, out: os.Stdout}
	root.AddCommand(
		cli.todayCommand(),
		cli.planningCommand(),
		cli.archivedCommand(),
		cli.listCommand(),
		cli.rangeCommand(),
		cli.addCommand(),
		cli.seedCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
