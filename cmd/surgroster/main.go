// Command surgroster builds and solves a monthly surgery-duty roster.
package main

import (
	"os"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
)

func main() {
	defer log.Flush()

	root := &cobra.Command{
		Use:   "surgroster",
		Short: "Builds and solves a monthly surgery-duty roster",
	}
	root.AddCommand(newGenerateCommand())

	if err := root.Execute(); err != nil {
		log.Errorf("surgroster: %v", err)
		os.Exit(exitCodeFor(err))
	}
}
