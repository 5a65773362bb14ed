package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"filedesk/internal/cli"
	"filedesk/internal/model"
)

func uploadCmd() *cobra.Command {
	var (
		mandate        string
		submissionType string
		companyName    string
		description    string
		noWait         bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file.pdf>",
		Short: "File a PDF submission",
		Long: `Upload a PDF filing tagged with mandate metadata. The filing starts in
Processing and completes after the simulated processing delay; by default
the command waits for completion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.requireUser(ctx)
			if err != nil {
				return err
			}

			path := args[0]
			content, err := os.ReadFile(path) // #nosec G304
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			details := model.FilingDetails{
				Mandate:        model.Mandate(mandate),
				SubmissionType: submissionType,
				CompanyName:    companyName,
				Description:    description,
			}

			record, done, err := a.filings.Upload(ctx, details, filepath.Base(path), content, user.Email())
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Filed %s (request %s)", record.Filename, record.RequestID())))

			if noWait {
				fmt.Println(cli.FormatInfo("Processing continues in the background of this run."))
				return nil
			}

			if err := waitForProcessing(done, a.scheduler.Delay()); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Processing completed"))
			return nil
		},
	}

	cmd.Flags().StringVar(&mandate, "mandate", "", "filing mandate (ACFR, SBC, MBRS)")
	cmd.Flags().StringVar(&submissionType, "submission-type", "", "type of submission (required for MBRS: FS-MFRS, FS-MPERS)")
	cmd.Flags().StringVar(&companyName, "company", "", "company name")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "do not wait for processing to complete")
	_ = cmd.MarkFlagRequired("mandate")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

// waitForProcessing renders a progress bar over the processing delay and
// returns once the status flip has been written.
func waitForProcessing(done <-chan struct{}, delay time.Duration) error {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("Processing"),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)

	tick := time.NewTicker(delay / 100)
	defer tick.Stop()

	for {
		select {
		case <-done:
			_ = bar.Finish()
			return nil
		case <-tick.C:
			_ = bar.Add(1)
		}
	}
}
