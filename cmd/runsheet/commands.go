package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"runsheet/internal/auth"
	"runsheet/internal/config"
	"runsheet/internal/segmenter"
)

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "runsheet",
		Short:        "Offline tools for runsheet chain-of-title review",
		SilenceUsage: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	root.AddCommand(newSegmentCmd(), newReplayCmd(), newTokenCmd())
	return root
}

func newSegmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "segment FILE",
		Short: "Split a runsheet text file into numbered rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			rows := segmenter.Segment(string(raw))
			if len(rows) == 0 {
				return fmt.Errorf("%s: no rows found", args[0])
			}
			for _, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", r.RowNumber, r.Content)
			}
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		name    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token signed with RUNSHEET_AUTH_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cfg.Auth.Secret == "" {
				return fmt.Errorf("RUNSHEET_AUTH_SECRET is not set")
			}
			token, err := auth.NewJWTVerifier(cfg.Auth.Secret, cfg.Auth.Issuer).Issue(subject, name, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject (required)")
	cmd.Flags().StringVar(&name, "name", "", "display name carried in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
