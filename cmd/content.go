package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/progress"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/store"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Read and write section documents from the command line",
}

var contentGetCmd = &cobra.Command{
	Use:   "get <section>",
	Short: "Print a section document as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, ok := content.Lookup(args[0])
		if !ok {
			return unknownSection(args[0])
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)
		st, err := newStore(cfg)
		if err != nil {
			return err
		}

		raw, err := store.Load[json.RawMessage](cmd.Context(), st, section)
		if err != nil {
			return err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return fmt.Errorf("formatting %s: %w", section.Key, err)
		}
		out.WriteByte('\n')
		_, err = out.WriteTo(cmd.OutOrStdout())
		return err
	},
}

var contentDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write section documents to YAML files",
	Long: `Fetches every section whose key matches --only and writes it to
<out>/<section>.yml. The files can be edited and sent back with "content push".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		only, _ := cmd.Flags().GetString("only")
		outDir, _ := cmd.Flags().GetString("out")
		if !doublestar.ValidatePattern(only) {
			return fmt.Errorf("invalid --only pattern %q", only)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)
		st, err := newStore(cfg)
		if err != nil {
			return err
		}

		var selected []content.Section
		for _, sec := range content.Sections() {
			if ok, _ := doublestar.Match(only, sec.Key); ok {
				selected = append(selected, sec)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("no sections match %q", only)
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}

		reporter := progress.NewReporter("Dumping sections")
		reporter.Start(len(selected))
		defer reporter.Finish()

		for i, sec := range selected {
			path, err := dumpSection(cmd.Context(), st, sec, outDir)
			if err != nil {
				return fmt.Errorf("dumping %s: %w", sec.Key, err)
			}
			reporter.Update(i+1, path)
		}
		return nil
	},
}

func dumpSection(ctx context.Context, st *store.Store, sec content.Section, outDir string) (string, error) {
	doc, _ := content.NewDocument(sec.Key)
	if err := st.Client().Get(ctx, sec.ReadPath, doc); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	path := filepath.Join(outDir, sec.Key+".yml")
	return path, os.WriteFile(path, data, 0o644)
}

var contentPushCmd = &cobra.Command{
	Use:   "push <section> <file.yml>",
	Short: "Replace a section document with the contents of a YAML file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, ok := content.Lookup(args[0])
		if !ok {
			return unknownSection(args[0])
		}
		if !section.Editable() {
			return fmt.Errorf("section %q is read-only", section.Key)
		}

		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		doc, _ := content.NewDocument(section.Key)
		if err := yaml.Unmarshal(data, doc); err != nil {
			return fmt.Errorf("parsing %s: %w", args[1], err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := setupLogging(cfg)
		st, err := newStore(cfg)
		if err != nil {
			return err
		}

		if err := st.Save(cmd.Context(), section, doc, nil); err != nil {
			return fmt.Errorf("saving %s: %w", section.Key, err)
		}
		log.Info().Str("section", section.Key).Str("file", args[1]).Msg("section saved")
		return nil
	},
}

func unknownSection(key string) error {
	keys := make([]string, 0)
	for _, s := range content.Sections() {
		keys = append(keys, s.Key)
	}
	return fmt.Errorf("unknown section %q (known: %v)", key, keys)
}

func init() {
	contentDumpCmd.Flags().String("only", "*", "glob selecting section keys")
	contentDumpCmd.Flags().String("out", "content", "output directory")
	contentCmd.AddCommand(contentGetCmd, contentDumpCmd, contentPushCmd)
	rootCmd.AddCommand(contentCmd)
}
