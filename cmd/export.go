/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/wordbook/internal/adapter/mapping"
	adapterrepo "github.com/eslsoft/wordbook/internal/adapter/repository"
	"github.com/eslsoft/wordbook/internal/infrastructure/config"
	"github.com/eslsoft/wordbook/internal/infrastructure/database"
)

const (
	exportUserKey    = "export.user"
	exportOutputKey  = "export.output"
	exportGzipKey    = "export.gzip"
	exportStartIDKey = "export.start_id"
	exportEndIDKey   = "export.end_id"
)

// exportCmd dumps one user's vocabulary as NDJSON, optionally bounded by an
// inclusive id range (the same range the quiz and export UI select).
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's words as NDJSON",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		userID := viper.GetInt64(exportUserKey)
		if userID <= 0 {
			return fmt.Errorf("--user is required")
		}

		outputPath := viper.GetString(exportOutputKey)
		gzipEnabled := viper.GetBool(exportGzipKey)
		startID := viper.GetInt64(exportStartIDKey)
		endID := viper.GetInt64(exportEndIDKey)
		if startID <= 0 {
			startID = 1
		}
		if endID <= 0 {
			endID = math.MaxInt64
		}
		if startID > endID {
			return fmt.Errorf("--start-id must be less than or equal to --end-id")
		}

		if outputPath == "" {
			outputPath = defaultExportFilename(userID, gzipEnabled)
		}
		if !gzipEnabled && outputPath != "-" && strings.HasSuffix(strings.ToLower(outputPath), ".gz") {
			gzipEnabled = true
		}

		pool, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()

		var writer io.Writer = cmd.OutOrStdout()
		if outputPath != "-" {
			file, ferr := os.Create(outputPath)
			if ferr != nil {
				return fmt.Errorf("create output file: %w", ferr)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			writer = file
		}
		if gzipEnabled {
			gz := gzip.NewWriter(writer)
			defer func() {
				if cerr := gz.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			writer = gz
		}

		repo := adapterrepo.NewWordRepository(pool)
		words, err := repo.RangeByID(ctx, userID, startID, endID)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(writer)
		for _, word := range words {
			if err := encoder.Encode(mapping.ToAPIWord(word)); err != nil {
				return fmt.Errorf("encode word: %w", err)
			}
		}

		cmd.PrintErrf("exported %d words\n", len(words))
		return nil
	},
}

func defaultExportFilename(userID int64, gzipEnabled bool) string {
	name := fmt.Sprintf("wordbook-%d-%s.ndjson", userID, time.Now().Format("20060102-150405"))
	if gzipEnabled {
		name += ".gz"
	}
	return name
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Int64("user", 0, "id of the user to export")
	exportCmd.Flags().String("output", "", "output path ('-' for stdout)")
	exportCmd.Flags().Bool("gzip", false, "gzip the output")
	exportCmd.Flags().Int64("start-id", 0, "lower id bound (inclusive)")
	exportCmd.Flags().Int64("end-id", 0, "upper id bound (inclusive)")

	bindFlagToViper(exportUserKey, exportCmd.Flags().Lookup("user"))
	bindFlagToViper(exportOutputKey, exportCmd.Flags().Lookup("output"))
	bindFlagToViper(exportGzipKey, exportCmd.Flags().Lookup("gzip"))
	bindFlagToViper(exportStartIDKey, exportCmd.Flags().Lookup("start-id"))
	bindFlagToViper(exportEndIDKey, exportCmd.Flags().Lookup("end-id"))
}
