package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/godilite/survey-stats/internal/app"
	"github.com/godilite/survey-stats/internal/loader"
	"github.com/godilite/survey-stats/internal/query"
	"github.com/godilite/survey-stats/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newAnswerCmd() *cobra.Command {
	var file, sheet string
	cmd := &cobra.Command{
		Use:   "answer",
		Short: "Answer one query (q1..q13) read from standard input",
		Long: `Reads a single query name from standard input and prints its answer
on one line:

  q1, q2     most / least chosen code       CODE|count|percent
  q3..q8     top question for SS..STS       Qn|count|percent
  q9         questions containing STS       Qa:percent|Qb:percent
  q10        overall mean score             mean
  q11, q12   highest / lowest question mean Qn:mean
  q13        category distribution          positif=n:p|netral=n:p|negatif=n:p`,
		Example: `  echo q1 | survey answer --file data_kuesioner.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnswer(cmd.InOrStdin(), cmd.OutOrStdout(), file, sheet)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "questionnaire file (.xlsx or .csv)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name (default first sheet)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readQuery(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read query: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func runAnswer(in io.Reader, out io.Writer, file, sheet string) error {
	name, err := readQuery(in)
	if err != nil {
		return err
	}
	if !query.Known(name) {
		return fmt.Errorf("%w: %q (want one of %s)", query.ErrUnknownQuery, name, strings.Join(query.Names(), ", "))
	}

	m, err := loader.LoadFile(file, loader.WithSheet(sheet))
	if err != nil {
		return err
	}
	logger.Debug("loaded responses",
		zap.String("file", file),
		zap.Int("respondents", m.Respondents()),
		zap.Int("questions", m.NumQuestions()))

	line, err := query.Answer(service.NewAggregator(m), name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, line)
	return err
}

func newReportCmd() *cobra.Command {
	var file, sheet, dataset, format string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print every statistic for a file or stored dataset",
		Example: `  survey report --file data_kuesioner.xlsx
  survey report --dataset kuesioner --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := loadReport(cmd.Context(), file, sheet, dataset)
			if err != nil {
				return err
			}
			return writeFormatted(cmd.OutOrStdout(), format, report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "questionnaire file (.xlsx or .csv)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name (default first sheet)")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "stored dataset name")
	cmd.Flags().StringVarP(&format, "format", "o", "json", "output format: json or yaml")
	cmd.MarkFlagsMutuallyExclusive("file", "dataset")
	cmd.MarkFlagsOneRequired("file", "dataset")
	return cmd
}

func loadReport(ctx context.Context, file, sheet, dataset string) (service.Report, error) {
	if file != "" {
		m, err := loader.LoadFile(file, loader.WithSheet(sheet))
		if err != nil {
			return service.Report{}, err
		}
		return service.NewAggregator(m).Report(), nil
	}

	db, repo, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		return service.Report{}, err
	}
	defer db.Close()
	return service.NewSurveyService(repo, logger).GetReport(ctx, dataset)
}

func writeFormatted(out io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: want json or yaml", format)
	}
}

func newImportCmd() *cobra.Command {
	var file, sheet, dataset string
	cmd := &cobra.Command{
		Use:     "import",
		Short:   "Validate a questionnaire file and store it as a dataset",
		Example: `  survey import --file data_kuesioner.xlsx --dataset kuesioner`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataset == "" {
				dataset = cfg.DefaultDataset
			}
			db, repo, err := app.OpenDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			info, err := app.ImportFile(cmd.Context(), repo, file, sheet, dataset, logger)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %s: %d respondents, %s (%s)\n",
				info.Name, info.Respondents, strings.Join(info.Questions, ","), info.ImportID)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "questionnaire file (.xlsx or .csv)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name (default first sheet)")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset name (default $DEFAULT_DATASET)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDatasetsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List stored datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, repo, err := app.OpenDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			datasets, err := service.NewSurveyService(repo, logger).ListDatasets(cmd.Context())
			if err != nil {
				return err
			}
			return writeFormatted(cmd.OutOrStdout(), format, datasets)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "yaml", "output format: json or yaml")
	return cmd
}
