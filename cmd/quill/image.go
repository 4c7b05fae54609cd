package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Story image operations",
}

var imageUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image and print its URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageUpload,
}

var imageStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether image uploads are enabled on the server",
	RunE:  runImageStatus,
}

func init() {
	imageCmd.AddCommand(imageUploadCmd, imageStatusCmd)
	rootCmd.AddCommand(imageCmd)
}

func runImageUpload(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	result, err := newAPIClient().UploadImage(cmd.Context(), filepath.Base(path), f)
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("upload rejected: %s", result.Message)
	}
	fmt.Println(renderSuccess("uploaded"))
	fmt.Println(result.ImageURL)
	return nil
}

func runImageStatus(cmd *cobra.Command, _ []string) error {
	config, err := newAPIClient().GetImageConfig(cmd.Context())
	if err != nil {
		return err
	}
	if config.Enabled {
		fmt.Println(renderSuccess("image uploads are enabled"))
	} else {
		fmt.Println(mutedStyle.Render("image uploads are disabled on this server"))
	}
	return nil
}
