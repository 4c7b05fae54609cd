package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translation helpers",
}

var translateTextCmd = &cobra.Command{
	Use:   "text <text...>",
	Short: "Translate a snippet of text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTranslateText,
}

var translateStoryCmd = &cobra.Command{
	Use:   "story <story-id>",
	Short: "Translate a story's content",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranslateStory,
}

var translateDetectCmd = &cobra.Command{
	Use:   "detect <text...>",
	Short: "Detect the language of a snippet of text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTranslateDetect,
}

var translateLanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List languages the server can translate between",
	RunE:  runTranslateLanguages,
}

var (
	translateSource string
	translateTarget string
)

func init() {
	translateTextCmd.Flags().StringVar(&translateSource, "from", "auto", "Source language code")
	translateTextCmd.Flags().StringVar(&translateTarget, "to", "", "Target language code (required)")
	if err := translateTextCmd.MarkFlagRequired("to"); err != nil {
		panic(fmt.Sprintf("failed to mark to flag as required: %v", err))
	}

	translateStoryCmd.Flags().StringVar(&translateTarget, "to", "", "Target language code (required)")
	if err := translateStoryCmd.MarkFlagRequired("to"); err != nil {
		panic(fmt.Sprintf("failed to mark to flag as required: %v", err))
	}

	translateCmd.AddCommand(translateTextCmd, translateStoryCmd, translateDetectCmd, translateLanguagesCmd)
	rootCmd.AddCommand(translateCmd)
}

func runTranslateText(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	result, err := newAPIClient().TranslateText(cmd.Context(), text, translateSource, translateTarget)
	if err != nil {
		return err
	}
	fmt.Println(result.TranslatedText)
	return nil
}

func runTranslateStory(cmd *cobra.Command, args []string) error {
	id, err := parseStoryID(args[0])
	if err != nil {
		return err
	}
	result, err := newAPIClient().TranslateStory(cmd.Context(), id, translateTarget)
	if err != nil {
		return err
	}
	if result.TranslatedContent != "" {
		fmt.Println(result.TranslatedContent)
	} else {
		fmt.Println(result.TranslatedText)
	}
	return nil
}

func runTranslateDetect(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	result, err := newAPIClient().DetectLanguage(cmd.Context(), text)
	if err != nil {
		return err
	}
	fmt.Println(result.DetectedLanguage)
	return nil
}

func runTranslateLanguages(cmd *cobra.Command, _ []string) error {
	result, err := newAPIClient().GetSupportedLanguages(cmd.Context())
	if err != nil {
		return err
	}

	codes := append([]string(nil), result.SupportedLanguages...)
	sort.Strings(codes)
	for _, code := range codes {
		if name, ok := result.LanguageNames[code]; ok {
			fmt.Printf("%s  %s\n", titleStyle.Render(code), name)
		} else {
			fmt.Println(titleStyle.Render(code))
		}
	}
	return nil
}
