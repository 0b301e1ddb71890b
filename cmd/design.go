package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/oligodesigner/oligod/config"
	"github.com/oligodesigner/oligod/internal/design"
	"github.com/oligodesigner/oligod/internal/pool"
)

var designIn string
var designOut string

// designCmd represents the design command
var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Assign pooled sequences to the domains of a design request",
	Long: `Read a design request (domains and strands) from a JSON file, assign a
compatible sequence to every domain, derive the strand sequences and
write the validated result.

Domains with linked complements get paired assignments; without them
every assigned sequence is checked for cross-dimer formation against
every other.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		defer logger.Sync()

		req := readRequest(designIn)

		c := config.New()
		designer, closeStore, err := newDesigner(c, logger)
		if err != nil {
			log.Fatalf("failed to wire designer: %v", err)
		}
		defer closeStore()

		resp, err := designer.Run(cmd.Context(), req)
		if err != nil {
			writeDesignError(err)
			return
		}

		writeResponse(designOut, resp)
	},
}

func init() {
	designCmd.Flags().StringVarP(&designIn, "in", "i", "", "input JSON file with the design request")
	designCmd.Flags().StringVarP(&designOut, "out", "o", "", "output file name (stdout when empty)")
	designCmd.MarkFlagRequired("in")

	RootCmd.AddCommand(designCmd)
}

func readRequest(path string) *design.Request {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read request file %s: %v", path, err)
	}

	req := &design.Request{}
	if err := json.Unmarshal(b, req); err != nil {
		log.Fatalf("failed to parse request file %s: %v", path, err)
	}
	return req
}

func writeResponse(path string, resp *design.Response) {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("failed to create output file %s: %v", path, err)
		}
		defer f.Close()
		out = f
	}

	writeJSON(out, resp)
}

// writeDesignError reports a failed design as {error, details} and
// exits nonzero
func writeDesignError(err error) {
	var (
		assignErr    *design.AssignmentError
		exhaustedErr *pool.ExhaustedError
	)

	msg := "design failed"
	switch {
	case errors.As(err, &assignErr):
		msg = "failed to design domain sequences"
	case errors.As(err, &exhaustedErr):
		msg = fmt.Sprintf("sequence pool exhausted for length %d", exhaustedErr.Length)
	case errors.Is(err, design.ErrInvalidInput):
		msg = "invalid design request"
	}

	writeJSON(os.Stdout, map[string]string{
		"error":   msg,
		"details": err.Error(),
	})
	os.Exit(1)
}
