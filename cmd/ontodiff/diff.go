package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontodiff/config"
	"github.com/c360studio/ontodiff/diff"
	"github.com/c360studio/ontodiff/export"
	"github.com/c360studio/ontodiff/metric"
	"github.com/c360studio/ontodiff/ontology"
	"github.com/c360studio/ontodiff/publish"
	"github.com/c360studio/ontodiff/report"
)

// diffFlags are the command-line overrides of a diff run.
type diffFlags struct {
	output        string
	language      string
	inputFormat   string
	out           string
	exportAdded   string
	exportRemoved string
	exportFormat  string
	metricsFile   string
	publish       bool
}

func (f *diffFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Report format (text, markdown, json)")
	cmd.Flags().StringVar(&f.language, "lang", "", "Label language tag")
	cmd.Flags().StringVar(&f.inputFormat, "format", "", "Force input format (turtle, ntriples, nquads, rdfxml)")
	cmd.Flags().StringVar(&f.out, "out", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&f.exportAdded, "export-added", "", "Write added relations as RDF to this file")
	cmd.Flags().StringVar(&f.exportRemoved, "export-removed", "", "Write removed relations as RDF to this file")
	cmd.Flags().StringVar(&f.exportFormat, "export-format", "", "RDF export format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	cmd.Flags().BoolVar(&f.publish, "publish", false, "Publish the JSON report to NATS")
}

// apply lays the flags over cfg and revalidates it.
func (f *diffFlags) apply(cfg *config.Config) error {
	if f.output != "" {
		cfg.Output.Format = f.output
	}
	if f.language != "" {
		cfg.Output.Language = f.language
	}
	if f.inputFormat != "" {
		cfg.Input.Format = f.inputFormat
	}
	if f.exportFormat != "" {
		cfg.Export.Format = f.exportFormat
	}
	if f.metricsFile != "" {
		cfg.Metrics.Textfile = f.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if f.publish && cfg.NATS.URL == "" {
		return fmt.Errorf("--publish requires nats.url in the configuration")
	}
	return nil
}

func (a *app) diffCmd() *cobra.Command {
	var flags diffFlags

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two versions of an ontology",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(a.cfg); err != nil {
				return err
			}

			pub, err := a.publisher(flags.publish)
			if err != nil {
				return err
			}
			defer pub.Close()

			d := &differ{
				cfg:       a.cfg,
				flags:     flags,
				logger:    a.logger,
				recorder:  metric.NewRecorder(),
				publisher: pub,
			}
			_, err = d.run(cmd.Context(), splitPatterns(args[0]), splitPatterns(args[1]), cmd.OutOrStdout())
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

// publisher connects to NATS when enabled, or returns a no-op publisher.
func (a *app) publisher(enabled bool) (publish.Publisher, error) {
	if !enabled {
		return publish.Nop{}, nil
	}
	p, err := publish.Connect(publish.Config{
		URL:     a.cfg.NATS.URL,
		Subject: a.cfg.NATS.Subject,
		Timeout: a.cfg.NATS.Timeout,
		Logger:  a.logger,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// differ runs one diff and fans its outcome out to every configured sink.
// The recorder and publisher outlive a single run in watch mode.
type differ struct {
	cfg       *config.Config
	flags     diffFlags
	logger    *slog.Logger
	recorder  *metric.Recorder
	publisher publish.Publisher
}

func (d *differ) run(ctx context.Context, oldPatterns, newPatterns []string, stdout io.Writer) (*report.Report, error) {
	rep, err := d.compare(ctx, oldPatterns, newPatterns, stdout)
	if err != nil {
		d.recorder.ObserveFailure()
		if werr := d.writeMetrics(); werr != nil {
			d.logger.Warn("Failed to write metrics", slog.String("error", werr.Error()))
		}
		return nil, err
	}
	return rep, d.writeMetrics()
}

func (d *differ) compare(ctx context.Context, oldPatterns, newPatterns []string, stdout io.Writer) (*report.Report, error) {
	start := time.Now()

	format, err := ontology.ParseFormat(d.cfg.Input.Format)
	if err != nil {
		return nil, err
	}
	loader := ontology.NewLoader(format, d.logger)
	oldSnap, newSnap, err := loader.LoadPair(ctx, oldPatterns, newPatterns)
	if err != nil {
		return nil, err
	}
	d.recorder.ObserveSnapshots(oldSnap.Graph.Len(), newSnap.Graph.Len())

	result := diff.RunLang(oldSnap.Graph, newSnap.Graph, d.cfg.Output.Language)
	rep := report.Build(result, oldSnap.Graph, newSnap.Graph,
		report.Inputs{Old: oldSnap.Files, New: newSnap.Files},
		report.Options{
			Domains:           d.cfg.Groups.DomainOf(),
			Prefixes:          d.cfg.Prefixes,
			DescriptionLength: d.cfg.Output.DescriptionLength,
		})

	if err := d.writeReport(rep, stdout); err != nil {
		return nil, err
	}
	if err := d.exportEdges(d.flags.exportAdded, result.AddedEdges, result); err != nil {
		return nil, err
	}
	if err := d.exportEdges(d.flags.exportRemoved, result.RemovedEdges, result); err != nil {
		return nil, err
	}
	if err := d.publisher.Publish(ctx, rep); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	d.recorder.ObserveRun(result, elapsed, time.Now())
	d.logger.Info("Diff complete",
		slog.String("run_id", rep.RunID),
		slog.Int("new", rep.Summary.NewClasses),
		slog.Int("removed", rep.Summary.RemovedClasses),
		slog.Int("modified", rep.Summary.ModifiedClasses),
		slog.Duration("duration", elapsed))
	return rep, nil
}

func (d *differ) writeReport(rep *report.Report, stdout io.Writer) error {
	if d.flags.out == "" {
		return report.Render(stdout, rep, d.cfg.Output.Format)
	}
	f, err := os.Create(d.flags.out)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := report.Render(f, rep, d.cfg.Output.Format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// exportEdges writes edges as RDF to path.
func (d *differ) exportEdges(path string, edges diff.EdgeSet, result *diff.Result) error {
	if path == "" {
		return nil
	}
	format, err := d.exportFormat(path)
	if err != nil {
		return err
	}

	exp := export.NewExporter(d.cfg.Prefixes)
	exp.AddEdges(edges)
	exp.AddLabels(edges, result.Labels(), d.cfg.Output.Language)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := exp.Write(f, format); err != nil {
		f.Close()
		return err
	}
	d.logger.Debug("Exported relations", slog.String("path", path), slog.Int("triples", exp.Len()))
	return f.Close()
}

// exportFormat picks the export format: --export-format when given, else
// the extension of path when recognised, else the configured format.
func (d *differ) exportFormat(path string) (export.Format, error) {
	if d.flags.exportFormat == "" {
		if format, ok := export.FormatForPath(path); ok {
			return format, nil
		}
	}
	return export.ParseFormat(d.cfg.Export.Format)
}

func (d *differ) writeMetrics() error {
	if d.cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := d.recorder.WriteTextfile(d.cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
