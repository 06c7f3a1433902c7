package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphlayout/dagre/internal/adapter"
	"github.com/graphlayout/dagre/pkg/model"
	"github.com/graphlayout/dagre/pkg/writer"
)

var (
	layoutOutput   string
	layoutRankDir  string
	layoutNodeSep  int
	layoutEdgeSep  int
	layoutRankSep  int
	layoutPretty   bool
	layoutMaxNodes int
)

// layoutCmd represents the layout command
var layoutCmd = &cobra.Command{
	Use:   "layout <file.json>",
	Short: "Compute a layered layout for a graph",
	Long: `layout reads a graph (nodes and edges) from a JSON file, runs the
ranking, crossing-minimization, and coordinate-assignment pipeline over it,
and writes the resulting node positions and edge routes as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	binName := BinName()
	layoutCmd.Example = `  # Lay out a graph, writing the result to a file
  ` + binName + ` layout ./graph.json -o ./layout.json

  # Lay out bottom-to-top with custom separations, to stdout
  ` + binName + ` layout ./graph.json --rankdir bt --node-sep 60 --edge-sep 20`

	layoutCmd.Flags().StringVarP(&layoutOutput, "output", "o", "", "Output file (default: stdout)")
	layoutCmd.Flags().StringVar(&layoutRankDir, "rankdir", "", "Rank direction: tb, bt, lr, rl (overrides the input file's rank_dir)")
	layoutCmd.Flags().IntVar(&layoutNodeSep, "node-sep", 0, "Separation between adjacent nodes in the same rank (overrides input)")
	layoutCmd.Flags().IntVar(&layoutEdgeSep, "edge-sep", 0, "Separation between adjacent edges in the same rank (overrides input)")
	layoutCmd.Flags().IntVar(&layoutRankSep, "rank-sep", 0, "Separation between adjacent ranks (overrides input)")
	layoutCmd.Flags().BoolVar(&layoutPretty, "pretty", false, "Pretty-print the output JSON")
	layoutCmd.Flags().IntVar(&layoutMaxNodes, "max-nodes", 0, "Reject graphs larger than this many nodes (0 = unlimited)")
}

func runLayout(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	inputFile := args[0]

	in, err := readGraphInputFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read graph input: %w", err)
	}

	if layoutRankDir != "" {
		in.RankDir = layoutRankDir
	}
	if layoutNodeSep > 0 {
		in.NodeSep = layoutNodeSep
	}
	if layoutEdgeSep > 0 {
		in.EdgeSep = layoutEdgeSep
	}
	if layoutRankSep > 0 {
		in.RankSep = layoutRankSep
	}

	h, err := model.GraphInputToHostGraph(in)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}

	log.Info("Laying out %d nodes, %d edges (rankdir=%s)", h.NodeCount(), h.EdgeCount(), in.RankDir)

	ctx := context.Background()
	layoutResult, err := adapter.Run(ctx, h, adapter.Options{
		NodeSep:  in.NodeSep,
		EdgeSep:  in.EdgeSep,
		RankSep:  in.RankSep,
		MaxNodes: layoutMaxNodes,
	})
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}

	phases := make([]model.PhaseResult, len(layoutResult.Phases))
	for i, ph := range layoutResult.Phases {
		phases[i] = model.PhaseResult{Caption: ph.Caption, Nanos: ph.Duration.Nanoseconds()}
	}

	result := model.HostGraphToResult(h, "", "cli", in.RankDir, phases, layoutResult.Total.Nanoseconds())
	for _, w := range layoutResult.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
		log.Warn("%s", w.Error())
	}

	if err := writeLayoutResult(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	log.Info("Layout complete in %s", layoutResult.Total)
	return nil
}

func readGraphInputFile(path string) (*model.GraphInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var in model.GraphInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("invalid graph JSON: %w", err)
	}
	return &in, nil
}

func writeLayoutResult(result *model.LayoutResult) error {
	w := writer.NewJSONWriter[*model.LayoutResult]()
	if layoutPretty {
		w = writer.NewPrettyJSONWriter[*model.LayoutResult]()
	}

	if layoutOutput == "" {
		return w.Write(result, os.Stdout)
	}
	return w.WriteToFile(result, layoutOutput)
}
