package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/oligodesigner/oligod/config"
)

var validateIn string
var validateOut string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the sequences a request already carries, generating nothing",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		defer logger.Sync()

		req := readRequest(validateIn)

		c := config.New()
		designer, closeStore, err := newDesigner(c, logger)
		if err != nil {
			log.Fatalf("failed to wire designer: %v", err)
		}
		defer closeStore()

		resp, err := designer.ValidateOnly(req)
		if err != nil {
			writeDesignError(err)
			return
		}

		writeResponse(validateOut, resp)
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateIn, "in", "i", "", "input JSON file with domains and strands")
	validateCmd.Flags().StringVarP(&validateOut, "out", "o", "", "output file name (stdout when empty)")
	validateCmd.MarkFlagRequired("in")

	RootCmd.AddCommand(validateCmd)
}
