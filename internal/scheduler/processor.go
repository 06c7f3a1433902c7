package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/graphlayout/dagre/internal/adapter"
	"github.com/graphlayout/dagre/internal/repository"
	"github.com/graphlayout/dagre/internal/storage"
	"github.com/graphlayout/dagre/pkg/config"
	"github.com/graphlayout/dagre/pkg/model"
	"github.com/graphlayout/dagre/pkg/utils"
	"github.com/graphlayout/dagre/pkg/writer"
)

// DefaultTaskProcessor implements TaskProcessor by laying out a job's graph
// and persisting the result.
type DefaultTaskProcessor struct {
	config  *config.Config
	storage storage.Storage
	repos   *repository.Repositories
	logger  utils.Logger
}

// ProcessorConfig holds processor configuration.
type ProcessorConfig struct {
	Config  *config.Config
	Storage storage.Storage
	Repos   *repository.Repositories
	Logger  utils.Logger
}

// NewDefaultTaskProcessor creates a new DefaultTaskProcessor.
func NewDefaultTaskProcessor(cfg *ProcessorConfig) *DefaultTaskProcessor {
	if cfg.Logger == nil {
		cfg.Logger = utils.NewDefaultLogger(utils.LevelInfo, nil)
	}

	return &DefaultTaskProcessor{
		config:  cfg.Config,
		storage: cfg.Storage,
		repos:   cfg.Repos,
		logger:  cfg.Logger,
	}
}

// Process downloads the job's graph input, lays it out, and saves the
// resulting node/edge placement.
func (p *DefaultTaskProcessor) Process(ctx context.Context, task *Task) error {
	p.logger.Info("Starting layout for job %s (graph: %s)", task.UUID, task.RequestParams.GraphKey)

	timer := utils.NewTimer(task.UUID, utils.WithLogger(p.logger))
	defer timer.PrintSummary()

	jobDir := p.config.GetTaskDir(task.UUID)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return fmt.Errorf("failed to create job directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(jobDir); err != nil {
			p.logger.Warn("Failed to clean up job directory %s: %v", jobDir, err)
		}
	}()

	localFile := filepath.Join(jobDir, filepath.Base(task.RequestParams.GraphKey))
	download := timer.Start("download")
	err := p.downloadGraphFile(ctx, task, localFile)
	download.Stop()
	if err != nil {
		return fmt.Errorf("failed to download graph input: %w", err)
	}

	parse := timer.Start("parse")
	in, err := p.readGraphInput(localFile, task.RequestParams)
	parse.Stop()
	if err != nil {
		return fmt.Errorf("failed to parse graph input: %w", err)
	}

	h, err := model.GraphInputToHostGraph(in)
	if err != nil {
		return fmt.Errorf("failed to build host graph: %w", err)
	}

	layout := timer.Start("layout")
	layoutResult, err := adapter.Run(ctx, h, adapter.Options{
		NodeSep:  task.RequestParams.NodeSep,
		EdgeSep:  task.RequestParams.EdgeSep,
		RankSep:  task.RequestParams.RankSep,
		MaxNodes: p.config.Analysis.MaxNodes,
	})
	layout.Stop()
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}

	phases := make([]model.PhaseResult, len(layoutResult.Phases))
	for i, ph := range layoutResult.Phases {
		phases[i] = model.PhaseResult{Caption: ph.Caption, Nanos: ph.Duration.Nanoseconds()}
	}

	result := model.HostGraphToResult(h, task.UUID, p.config.Analysis.Version, in.RankDir, phases, layoutResult.Total.Nanoseconds())
	result.LaidOutAt = time.Now()
	for _, w := range layoutResult.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
		p.logger.Warn("job %s: %s", task.UUID, w.Error())
	}

	save := timer.Start("save")
	err = p.saveResult(ctx, task, result)
	save.Stop()
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	if err := p.repos.Job.UpdateJobStatus(ctx, task.ID, model.JobStatusCompleted); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	p.logger.Info("Job %s laid out successfully (%d nodes, %d edges)", task.UUID, len(result.Nodes), len(result.Edges))
	return nil
}

// downloadGraphFile downloads the job's graph input from storage.
func (p *DefaultTaskProcessor) downloadGraphFile(ctx context.Context, task *Task, localPath string) error {
	return p.storage.DownloadFile(ctx, task.RequestParams.GraphKey, localPath)
}

// readGraphInput reads and parses the graph input file.
func (p *DefaultTaskProcessor) readGraphInput(localFile string, req model.LayoutRequest) (*model.GraphInput, error) {
	data, err := os.ReadFile(localFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty input file")
	}

	var in model.GraphInput
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode graph input: %w", err)
	}

	if req.RankDir != "" {
		in.RankDir = req.RankDir
	}
	if req.NodeSep > 0 {
		in.NodeSep = req.NodeSep
	}
	if req.EdgeSep > 0 {
		in.EdgeSep = req.EdgeSep
	}
	if req.RankSep > 0 {
		in.RankSep = req.RankSep
	}

	return &in, nil
}

// saveResult persists the layout result and uploads a gzipped JSON copy to
// storage, so large layouts don't sit in object storage uncompressed.
func (p *DefaultTaskProcessor) saveResult(ctx context.Context, task *Task, result *model.LayoutResult) error {
	var buf bytes.Buffer
	if err := writer.NewGzipWriter[*model.LayoutResult]().Write(result, &buf); err != nil {
		return fmt.Errorf("failed to compress result: %w", err)
	}

	key := fmt.Sprintf("%s/result.json.gz", task.UUID)
	if err := p.storage.Upload(ctx, key, &buf); err != nil {
		p.logger.Warn("Failed to upload result artifact: %v", err)
	}

	return p.repos.Result.SaveResult(ctx, result)
}
