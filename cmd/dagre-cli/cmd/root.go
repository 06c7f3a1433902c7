package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/graphlayout/dagre/pkg/utils"
)

var (
	// Global flags
	verbose bool
	logger  utils.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dagre-cli",
	Short: "A directed-graph layered-layout tool",
	Long: `dagre-cli computes a layered layout for a directed graph: it assigns
each node a rank and order, then coordinates, using network simplex
ranking, barycenter-sweep crossing minimization, and Brandes-Koepf
coordinate assignment.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	binName := BinName()
	rootCmd.Example = `  # Lay out a graph read from a JSON file
  ` + binName + ` layout ./graph.json -o ./layout.json

  # Lay out top-to-bottom with custom separations, writing to stdout
  ` + binName + ` layout ./graph.json --rankdir tb --node-sep 60 --edge-sep 20`
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}
