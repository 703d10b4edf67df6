package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kkm-horikawa/sqlpretty/pkg/formatter"
	"github.com/kkm-horikawa/sqlpretty/pkg/guard"
	"github.com/kkm-horikawa/sqlpretty/pkg/logger"
)

var formatCmd = &cobra.Command{
	Use:   "format [flags] [sql-file]",
	Short: "Format a SQL statement for display",
	Long: `Format reads SQL from a file (or stdin when no file is given) and
prints it re-indented with uppercased keywords.

Input over the configured limits is not formatted; instead a short
reason and a bounded preview are printed. Use --max-length 0 and
--max-tokens 0 to disable the limits explicitly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().Bool("simplify", false, "collapse select columns to an ellipsis")
	formatCmd.Flags().Bool("html", false, "render for an HTML display context")
	formatCmd.Flags().Int("max-length", guard.DefaultMaxLength, "maximum input length in bytes (0 = no limit)")
	formatCmd.Flags().Int("max-tokens", guard.DefaultMaxTokens, "maximum token count (0 = no limit)")
	formatCmd.Flags().Int("preview-length", guard.DefaultPreviewLength, "bytes of raw input shown in a degraded preview")
	formatCmd.Flags().Int("cache-size", formatter.DefaultCacheCapacity, "result cache capacity (0 = no caching)")
	formatCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")

	_ = viper.BindPFlag("simplify", formatCmd.Flags().Lookup("simplify"))
	_ = viper.BindPFlag("html", formatCmd.Flags().Lookup("html"))
	_ = viper.BindPFlag("max-length", formatCmd.Flags().Lookup("max-length"))
	_ = viper.BindPFlag("max-tokens", formatCmd.Flags().Lookup("max-tokens"))
	_ = viper.BindPFlag("preview-length", formatCmd.Flags().Lookup("preview-length"))
	_ = viper.BindPFlag("cache-size", formatCmd.Flags().Lookup("cache-size"))
	_ = viper.BindPFlag("output", formatCmd.Flags().Lookup("output"))
}

func runFormat(cmd *cobra.Command, args []string) error {
	logLevel := slog.LevelWarn
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	} else if viper.GetBool("verbose") {
		logLevel = slog.LevelInfo
	}
	log := logger.NewWithLevel(logLevel)
	slog.SetDefault(log.GetSlogLogger())

	sql, err := readInput(args)
	if err != nil {
		return err
	}
	slog.Debug("read input", "size", len(sql))

	f := formatter.New(
		formatter.WithLimits(guard.Limits{
			MaxLength:     viper.GetInt("max-length"),
			MaxTokens:     viper.GetInt("max-tokens"),
			PreviewLength: viper.GetInt("preview-length"),
		}),
		formatter.WithCacheCapacity(viper.GetInt("cache-size")),
		formatter.WithLogger(log),
	)

	res := f.Format(cmd.Context(), sql, formatter.Options{
		Simplify: viper.GetBool("simplify"),
		HTML:     viper.GetBool("html"),
	})

	return writeResult(cmd.OutOrStdout(), res, viper.GetString("output"))
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", errors.Wrapf(err, "failed to read SQL file: %s", args[0])
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "failed to read stdin")
	}
	return string(data), nil
}

func writeResult(w io.Writer, res formatter.Result, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		return yaml.NewEncoder(w).Encode(res)
	case "text":
		switch res.Kind {
		case formatter.Formatted:
			fmt.Fprintln(w, res.Text)
		case formatter.Degraded:
			fmt.Fprintf(w, "-- formatting skipped: %s\n", res.Reason)
			fmt.Fprintln(w, res.Preview)
		default:
			fmt.Fprintf(w, "-- formatting failed: %s\n", res.Reason)
		}
		return nil
	default:
		return errors.Errorf("unknown output format: %s", output)
	}
}
