package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillbox/quill/internal/api"
	"github.com/quillbox/quill/internal/importer"
	"github.com/quillbox/quill/internal/validation"
)

var importCmd = &cobra.Command{
	Use:   "import <archive.zip>",
	Short: "Bulk-import stories from a ZIP of documents",
	Long: "Uploads a ZIP archive of documents for server-side import and follows\n" +
		"the job until it completes, fails or is cancelled.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importNoWait bool

func init() {
	importCmd.Flags().BoolVar(&importNoWait, "no-wait", false, "Upload and print the job ID without polling")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	client := newAPIClient()
	filename := filepath.Base(path)

	if importNoWait {
		if err := validation.ValidateImportArchive(filename, info.Size()); err != nil {
			return err
		}
		job, err := client.UploadImportArchive(cmd.Context(), filename, f)
		if err != nil {
			return err
		}
		fmt.Println(renderSuccess(fmt.Sprintf("upload accepted, job #%d", job.JobID)))
		return nil
	}

	policy := importer.Policy{
		Interval:      cfg.Import.PollInterval,
		BackoffFactor: cfg.Import.BackoffFactor,
		MaxInterval:   cfg.Import.MaxInterval,
		MaxAttempts:   cfg.Import.MaxAttempts,
		Timeout:       cfg.Import.Timeout,
	}

	tracker := importer.NewTracker(client, policy, importer.WithUpdateHandler(printImportProgress))
	if err := tracker.Start(cmd.Context(), filename, info.Size(), f); err != nil {
		return err
	}

	snap, err := tracker.Wait(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println()
	return summarizeImport(snap)
}

func printImportProgress(snap importer.Snapshot) {
	switch snap.State {
	case importer.Uploading:
		fmt.Print("\ruploading archive...")
	case importer.Polling:
		if snap.Job != nil {
			fmt.Printf("\r%s  %s", renderProgressBar(snap.Job.Progress, 30),
				mutedStyle.Render(fmt.Sprintf("%d/%d files", snap.Job.ProcessedFiles, snap.Job.TotalDocuments)))
		}
	}
}

func summarizeImport(snap importer.Snapshot) error {
	if snap.Err != nil {
		return snap.Err
	}
	job := snap.Job
	if job == nil {
		return fmt.Errorf("import finished without a job snapshot")
	}

	switch {
	case job.Status == api.ImportCompleted && job.FailedFiles == 0:
		fmt.Println(renderSuccess(fmt.Sprintf("imported %d stories from %d files", job.CreatedStories, job.ProcessedFiles)))
	case job.Status == api.ImportCompleted:
		fmt.Println(renderSuccess(fmt.Sprintf("imported %d stories, %d files failed", job.CreatedStories, job.FailedFiles)))
	default:
		fmt.Println(errorStyle.Render(fmt.Sprintf("import %s", strings.ToLower(string(job.Status)))))
	}

	for _, msg := range job.Errors {
		fmt.Println(mutedStyle.Render("  - " + msg))
	}
	if job.Status != api.ImportCompleted {
		return fmt.Errorf("import did not complete cleanly")
	}
	return nil
}
