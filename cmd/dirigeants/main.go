package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"dirigeants"
	"dirigeants/helper"
	"dirigeants/model"
	"dirigeants/naf"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := helper.NewConfiguration()
	if err != nil {
		return err
	}

	scraper, err := dirigeants.NewScraper(config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	color.Cyan("dirigeants — export des dirigeants du registre des entreprises")

	codes := naf.LoadCodesOrDefault(config.NAFTablePath, scraper.Log())
	choices := naf.Choices(codes)

	selectPrompt := promptui.Select{
		Label:             "NAF code",
		Items:             choices,
		Size:              12,
		StartInSearchMode: len(choices) > 12,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(choices[index]), strings.ToLower(input))
		},
	}
	idx, _, err := selectPrompt.Run()
	if err != nil {
		return fmt.Errorf("prompt aborted: %w", err)
	}

	departementPrompt := promptui.Prompt{
		Label:    "Departement code (e.g. 75, empty for all)",
		Validate: validateDepartement,
	}
	departement, err := departementPrompt.Run()
	if err != nil {
		return fmt.Errorf("prompt aborted: %w", err)
	}

	allowEI := confirm("Include Entrepreneur Individuel")
	checkNames := confirm("Check name origins")

	if checkNames {
		switch {
		case config.OpenAIAPIKey != "":
			if err := scraper.UseDefaultClassifier(); err != nil {
				return err
			}
		case confirm("No OPENAI_API_KEY set, use the local model instead"):
			if err := scraper.UseLocalClassifier(); err != nil {
				return err
			}
		default:
			checkNames = false
		}
	}

	query := model.SearchQuery{
		NAF:                         codes[idx].Code,
		Departement:                 departement,
		AllowEntrepreneurIndividuel: allowEI,
	}

	runConfig := model.DefaultRunConfig()
	runConfig.CheckNames = checkNames
	runConfig.OutputDir = config.OutputDir

	result, err := scraper.Run(ctx, query, runConfig)
	if err != nil {
		return err
	}

	for _, pageErr := range result.PageErrors {
		color.Yellow("warning: incomplete listing, %v", pageErr)
	}
	color.Green("Export complete: %s (%d companies, %d dirigeants)",
		result.OutputPath, result.Companies, result.Dirigeants)

	return nil
}

// validateDepartement accepts an empty value or a 2-3 character department
// code (digits, or 2A/2B for Corsica).
func validateDepartement(input string) error {
	if input == "" {
		return nil
	}
	if len(input) < 2 || len(input) > 3 {
		return fmt.Errorf("department code must be 2 or 3 characters")
	}
	upper := strings.ToUpper(input)
	if upper == "2A" || upper == "2B" {
		return nil
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return fmt.Errorf("department code must be numeric")
		}
	}
	return nil
}

func confirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}
