package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"runsheet/internal/csvexport"
	"runsheet/internal/domain"
	"runsheet/internal/ledger"
	"runsheet/internal/names"
	"runsheet/internal/notify/noop"
	"runsheet/internal/port"
	"runsheet/internal/service"
	badgerstore "runsheet/internal/storage/badger"
	"runsheet/internal/xlsxexport"
)

// replayFixture is the file format read by replay. A bare list of analyses is also accepted.
type replayFixture struct {
	Prospect   string       `yaml:"prospect"`
	TotalAcres float64      `yaml:"total_acres"`
	Rows       []fixtureRow `yaml:"rows"`
}

type fixtureRow struct {
	Content  string          `yaml:"content"`
	Analysis domain.Analysis `yaml:"analysis"`
}

type replayOptions struct {
	acres        float64
	xlsxPath     string
	csvPath      string
	autoNew      bool
	nicknameFile string
}

func newReplayCmd() *cobra.Command {
	var opts replayOptions
	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Apply a YAML or JSON list of row analyses and print the resulting ownership",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := loadFixture(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("acres") || fixture.TotalAcres == 0 {
				fixture.TotalAcres = opts.acres
			}
			summary, err := replay(cmd.Context(), fixture, opts, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return writeExports(summary, opts)
		},
	}
	cmd.Flags().Float64Var(&opts.acres, "acres", 0, "tract size in acres (0 takes it from the patent)")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "write the final ownership to this .xlsx file")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "write the final ownership to this .csv file")
	cmd.Flags().BoolVar(&opts.autoNew, "auto-new", false, "treat every possible name match as a new owner without asking")
	cmd.Flags().StringVar(&opts.nicknameFile, "nicknames", "", "YAML file extending the nickname table")
	return cmd
}

func loadFixture(path string) (*replayFixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parseFixture(raw)
}

func parseFixture(raw []byte) (*replayFixture, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, errors.New("parsing fixture: empty document")
	}

	var fixture replayFixture
	if node.Content[0].Kind == yaml.SequenceNode {
		var analyses []domain.Analysis
		if err := node.Content[0].Decode(&analyses); err != nil {
			return nil, fmt.Errorf("parsing fixture: %w", err)
		}
		for _, a := range analyses {
			fixture.Rows = append(fixture.Rows, fixtureRow{Analysis: a})
		}
	} else if err := node.Content[0].Decode(&fixture); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	if len(fixture.Rows) == 0 {
		return nil, errors.New("parsing fixture: no rows")
	}
	for i := range fixture.Rows {
		fixture.Rows[i].Content = rowText(i+1, &fixture.Rows[i])
	}
	return &fixture, nil
}

// rowText flattens a fixture row to a single runsheet line so segmentation keeps one row per entry.
func rowText(n int, r *fixtureRow) string {
	text := r.Content
	if strings.TrimSpace(text) == "" {
		a := &r.Analysis
		text = fmt.Sprintf("%s %s to %s", a.DocumentType, strings.Join(a.Grantors, ", "), strings.Join(a.Grantees, ", "))
		if a.Description != "" {
			text += ": " + a.Description
		}
	}
	text = strings.NewReplacer("\r", " ", "\n", " ", `\n`, " ", `\r`, " ", "|", "/").Replace(text)
	if strings.TrimSpace(text) == "" {
		text = "Row " + strconv.Itoa(n)
	}
	return text
}

// replay drives a session over an in-memory store, answering each analysis from the fixture.
func replay(ctx context.Context, fixture *replayFixture, opts replayOptions, in io.Reader, out io.Writer) (*domain.OwnershipSummary, error) {
	var extra []map[string][]string
	if opts.nicknameFile != "" {
		nicknames, err := names.LoadNicknames(opts.nicknameFile)
		if err != nil {
			return nil, err
		}
		extra = append(extra, nicknames)
	}

	db, err := badgerstore.Open("")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var confirmer port.MatchConfirmer
	if !opts.autoNew {
		confirmer = newPromptConfirmer(in, out)
	}
	svc := service.NewSessionService(
		ledger.New(ledger.Config{}, names.NewResolver(extra...)),
		&fixtureProvider{rows: fixture.Rows},
		badgerstore.NewCheckpointStore(db),
		noop.NewNoopNotifier(),
		confirmer,
	)

	lines := make([]string, len(fixture.Rows))
	for i := range fixture.Rows {
		lines[i] = fixture.Rows[i].Content
	}
	session, err := svc.Create(ctx, &service.CreateSessionInput{
		Text:       strings.Join(lines, "\n"),
		Prospect:   fixture.Prospect,
		TotalAcres: fixture.TotalAcres,
	})
	if err != nil {
		return nil, err
	}
	if len(session.Rows) != len(fixture.Rows) {
		return nil, fmt.Errorf("fixture has %d rows but segmented into %d", len(fixture.Rows), len(session.Rows))
	}

	for _, row := range session.Rows {
		if _, err := svc.AnalyzeRow(ctx, session.ID, row.RowNumber); err != nil {
			return nil, fmt.Errorf("row %d: %w", row.RowNumber, err)
		}
		res, err := svc.ApproveRow(ctx, session.ID, row.RowNumber, &service.ApproveInput{TreatAllAsNew: opts.autoNew})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.RowNumber, err)
		}
		fmt.Fprintf(out, "row %d applied: %s\n", row.RowNumber, row.Content)
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
	}

	summary, err := svc.Summary(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	printSummary(out, summary)
	return summary, nil
}

func printSummary(out io.Writer, s *domain.OwnershipSummary) {
	fmt.Fprintf(out, "\nOwnership (%s acres, %d/%d rows approved)\n",
		csvexport.FormatAcres(s.TotalAcres), s.ApprovedRows, s.TotalRows)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OWNER\tSURFACE %\tMINERAL %\tNET SURFACE AC\tNET MINERAL AC\tLEASE")
	for _, o := range s.Owners {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", o.Name,
			csvexport.FormatPercent(o.SurfacePercentage), csvexport.FormatPercent(o.MineralPercentage),
			csvexport.FormatAcres(o.NetSurfaceAcres), csvexport.FormatAcres(o.NetMineralAcres), o.CurrentLeaseStatus)
	}
	fmt.Fprintf(tw, "TOTAL\t%s\t%s\t\t\t\n",
		csvexport.FormatPercent(s.TotalSurfacePercentage), csvexport.FormatPercent(s.TotalMineralPercentage))
	tw.Flush()

	if len(s.UnresolvedTransfers) > 0 {
		fmt.Fprintln(out, "\nUnresolved transfers:")
		for _, p := range s.UnresolvedTransfers {
			fmt.Fprintf(out, "  row %d: %s -> %s (surface %s%%, mineral %s%%)\n", p.RowIndex, p.GrantorName, p.GranteeName,
				csvexport.FormatPercent(p.SurfacePercentage), csvexport.FormatPercent(p.MineralPercentage))
		}
	}
}

func writeExports(summary *domain.OwnershipSummary, opts replayOptions) error {
	if opts.xlsxPath != "" {
		f, err := os.Create(opts.xlsxPath)
		if err != nil {
			return err
		}
		if err := xlsxexport.Write(f, summary); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", opts.xlsxPath, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	if opts.csvPath != "" {
		f, err := os.Create(opts.csvPath)
		if err != nil {
			return err
		}
		w := csvexport.NewWriter(f)
		if _, err := f.Write(csvexport.BOM); err != nil {
			f.Close()
			return err
		}
		if err := w.WriteSummary(summary); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", opts.csvPath, err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return nil
}

// fixtureProvider answers analysis requests from recorded analyses.
type fixtureProvider struct {
	rows []fixtureRow
}

func (p *fixtureProvider) Analyze(_ context.Context, req port.AnalysisRequest) (*port.AnalysisOutput, error) {
	if req.RowNumber < 1 || req.RowNumber > len(p.rows) {
		return nil, fmt.Errorf("no recorded analysis for row %d", req.RowNumber)
	}
	a := p.rows[req.RowNumber-1].Analysis
	return &port.AnalysisOutput{Analysis: a.Clone(), ModelUsed: "fixture"}, nil
}

// promptConfirmer asks on the terminal which existing owner, if any, each grantee is.
type promptConfirmer struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewScanner(in), out: out}
}

func (p *promptConfirmer) Confirm(_ context.Context, candidates []domain.GranteeMatches) (*domain.MatchConfirmation, error) {
	conf := &domain.MatchConfirmation{Matches: map[string]string{}}
	for _, gm := range candidates {
		fmt.Fprintf(p.out, "%q may already be an owner:\n", gm.GranteeName)
		for i, m := range gm.Matches {
			fmt.Fprintf(p.out, "  [%d] %s (%s: %s)\n", i+1, m.OwnerName, m.Confidence, m.Reason)
		}
		fmt.Fprint(p.out, "  choose a number, or press enter for a new owner: ")

		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return nil, err
			}
			return nil, io.ErrUnexpectedEOF
		}
		answer := strings.TrimSpace(p.in.Text())
		if answer == "" || strings.EqualFold(answer, "n") {
			continue
		}
		choice, err := strconv.Atoi(answer)
		if err != nil || choice < 1 || choice > len(gm.Matches) {
			return nil, fmt.Errorf("invalid choice %q for %q", answer, gm.GranteeName)
		}
		conf.Matches[gm.GranteeName] = gm.Matches[choice-1].OwnerName
	}
	return conf, nil
}
