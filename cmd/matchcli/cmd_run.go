package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	excelize "github.com/xuri/excelize/v2"

	"match-service/internal/config"
	"match-service/internal/fileio"
	"match-service/internal/match/model"
	"match-service/internal/match/service"
)

type runFlags struct {
	workbook  string
	out       string
	job       string
	left      string
	right     string
	leftCol   string
	rightCol  string
	threshold int
	limit     int
	mode      string
	sd        []string
	headerRow int
}

func newRunCommand(env *cliEnv) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match two sheets and append the result sheets to the workbook",
		Example: `  matchcli run --workbook book.xlsx --left Customers --right Vendors \
    --left-col Name --right-col Name --threshold 60 --limit 2 \
    --sd 90:Name:Name --sd 80:City:City:skip --sd 85:Phone:Phone
  matchcli run --job job.yaml --out result.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := buildJob(cmd, f)
			if err != nil {
				return err
			}
			req, err := job.Request(env.cfg)
			if err != nil {
				return err
			}
			return runJob(cmd, env, job, req, f.headerRow)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.workbook, "workbook", "", "Workbook (.xlsx) with both sheets")
	fl.StringVar(&f.out, "out", "", "Save result here instead of overwriting the workbook")
	fl.StringVar(&f.job, "job", "", "YAML job file; explicit flags override its fields")
	fl.StringVar(&f.left, "left", "", "Left sheet")
	fl.StringVar(&f.right, "right", "", "Right sheet")
	fl.StringVar(&f.leftCol, "left-col", "", "Match column of the left sheet")
	fl.StringVar(&f.rightCol, "right-col", "", "Match column of the right sheet")
	fl.IntVar(&f.threshold, "threshold", 0, "Similarity threshold 0..100 (default DEFAULT_THRESHOLD)")
	fl.IntVar(&f.limit, "limit", 0, "Max matches per left row 1..10 (default DEFAULT_LIMIT)")
	fl.StringVar(&f.mode, "mode", "", "similarity | keyword")
	fl.StringArrayVar(&f.sd, "sd", nil, "Self-decide criterion THRESHOLD:LEFT_COL:RIGHT_COL[:skip], exactly 3")
	fl.IntVar(&f.headerRow, "header-row", 1, "Header row number (1-based)")
	return cmd
}

// buildJob: файл задания (если есть), поверх него явно заданные флаги.
func buildJob(cmd *cobra.Command, f runFlags) (*config.Job, error) {
	job := &config.Job{}
	if f.job != "" {
		var err error
		if job, err = config.LoadJob(f.job); err != nil {
			return nil, err
		}
	}
	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("workbook") {
		job.Workbook = f.workbook
	}
	if set("out") {
		job.Out = f.out
	}
	if set("left") {
		job.Left = f.left
	}
	if set("right") {
		job.Right = f.right
	}
	if set("left-col") {
		job.LeftColumn = f.leftCol
	}
	if set("right-col") {
		job.RightColumn = f.rightCol
	}
	if set("threshold") {
		job.Threshold = &f.threshold
	}
	if set("limit") {
		job.Limit = &f.limit
	}
	if set("mode") {
		job.Mode = f.mode
	}
	if set("sd") {
		if len(f.sd) != len(model.Criteria{}) {
			return nil, fmt.Errorf("%w: --sd must be given exactly %d times, got %d", config.ErrJob, len(model.Criteria{}), len(f.sd))
		}
		job.SelfDecide = job.SelfDecide[:0]
		for _, s := range f.sd {
			c, err := parseCriterion(s)
			if err != nil {
				return nil, err
			}
			job.SelfDecide = append(job.SelfDecide, c)
		}
	}
	if job.Workbook == "" {
		return nil, fmt.Errorf("%w: --workbook is required", config.ErrJob)
	}
	return job, nil
}

// parseCriterion: "90:Name:Name" или "80:City:City:skip"
func parseCriterion(s string) (model.Criterion, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return model.Criterion{}, fmt.Errorf("%w: --sd %q: want THRESHOLD:LEFT:RIGHT[:skip]", config.ErrJob, s)
	}
	th, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return model.Criterion{}, fmt.Errorf("%w: --sd %q: bad threshold", config.ErrJob, s)
	}
	c := model.Criterion{
		Threshold:   th,
		LeftColumn:  strings.TrimSpace(parts[1]),
		RightColumn: strings.TrimSpace(parts[2]),
	}
	if len(parts) == 4 {
		if !strings.EqualFold(strings.TrimSpace(parts[3]), "skip") {
			return model.Criterion{}, fmt.Errorf("%w: --sd %q: unknown flag %q", config.ErrJob, s, parts[3])
		}
		c.IgnoreIfBothBlank = true
	}
	return c, nil
}

func runJob(cmd *cobra.Command, env *cliEnv, job *config.Job, req model.Request, headerRow int) error {
	start := time.Now()
	log := env.logger.With().Str("workbook", job.Workbook).Logger()

	book, err := excelize.OpenFile(job.Workbook)
	if err != nil {
		return err
	}
	wb, err := fileio.ReadWorkbook(book, headerRow)
	_ = book.Close()
	if err != nil {
		return err
	}

	opts, err := service.NewOptions(env.cfg.Scorer, env.cfg.PairScorer, &log)
	if err != nil {
		return err
	}
	opts.Progress = func(p model.Progress) {
		log.Debug().Msgf("Row Matches Found: %d | Row: %d/%d", p.Matches, p.Processed, p.Total)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	res, err := service.Run(ctx, service.Sheets(wb.Tables()), req, opts)
	if err != nil {
		return err
	}

	names, err := fileio.AppendToFile(job.Workbook, job.Out, res.Tables())
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Row Matches Found: %d\n", res.Matches)
	for _, n := range names {
		fmt.Fprintf(out, "sheet: %s\n", n)
	}
	for _, l := range []model.Label{model.DefiniteMatch, model.LikelyMatch, model.PossibleMatch, model.NotAMatch} {
		if n, ok := res.Decisions[l.String()]; ok {
			fmt.Fprintf(out, "%s: %d\n", l, n)
		}
	}
	log.Info().Strs("sheets", names).Int("matches", res.Matches).Dur("elapsed", time.Since(start)).Msg("run done")
	return nil
}
