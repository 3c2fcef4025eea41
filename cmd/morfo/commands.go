package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kittclouds/morfo/pkg/chunker"
	"github.com/kittclouds/morfo/pkg/resources"
)

func (a *app) tagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag [tokens...]",
		Short: "Tag tokens with part-of-speech labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := documents(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			tagged, err := p.Tagger().TagBatch(cmd.Context(), docs, a.cfg.Workers)
			if err != nil {
				return err
			}
			for _, t := range tagged {
				if err := writeJSON(cmd.OutOrStdout(), t); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) chunkCmd() *cobra.Command {
	var tree bool
	cmd := &cobra.Command{
		Use:   "chunk [tokens...]",
		Short: "Group tagged tokens into phrases",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := documents(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			results, err := p.AnalyzeBatch(cmd.Context(), docs, a.cfg.Workers)
			if err != nil {
				return err
			}
			for _, r := range results {
				if tree {
					fmt.Fprintln(cmd.OutOrStdout(), chunker.Forest(r.Forest))
					continue
				}
				if err := writeJSON(cmd.OutOrStdout(), r.Forest); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "print bracketed trees instead of JSON")
	return cmd
}

func (a *app) parseCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "parse [tokens...]",
		Short: "Split into sentences and extract dependency components",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := documents(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			results, err := p.AnalyzeBatch(cmd.Context(), docs, a.cfg.Workers)
			if err != nil {
				return err
			}
			for _, r := range results {
				var v any = r.Sentences
				if full {
					v = r
				}
				if err := writeJSON(cmd.OutOrStdout(), v); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "include tokens and forest in the output")
	return cmd
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file.yaml]",
		Short: "Replace the database resources with a YAML seed (embedded defaults if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var seed *resources.Seed
			var err error
			if len(args) == 1 {
				raw, rerr := os.ReadFile(args[0])
				if rerr != nil {
					return fmt.Errorf("read seed: %w", rerr)
				}
				seed, err = resources.Parse(raw)
			} else {
				seed, err = resources.DefaultSeed()
			}
			if err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Seed(seed); err != nil {
				return err
			}
			st, err := s.Stats()
			if err != nil {
				return err
			}
			a.logger.Info("seeded", "db", a.cfg.DB, "entries", st.Entries, "patterns", st.Patterns,
				"idioms", st.Idioms, "bigrams", st.Bigrams)
			return writeJSON(cmd.OutOrStdout(), st)
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var importFile string
	cmd := &cobra.Command{
		Use:   "export [file.json]",
		Short: "Write the database resources as JSON (or restore them with --import)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if importFile != "" {
				raw, err := os.ReadFile(importFile)
				if err != nil {
					return fmt.Errorf("read export: %w", err)
				}
				return s.Import(raw)
			}

			out, err := s.Export()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return os.WriteFile(args[0], out, 0o644)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVar(&importFile, "import", "", "restore from a JSON export instead")
	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count the rows of each resource table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := s.Stats()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), st)
		},
	}
}
