package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/utsavgifts/catalogd/internal/cli"
	"github.com/utsavgifts/catalogd/internal/model"
	"github.com/utsavgifts/catalogd/internal/render"
	"github.com/utsavgifts/catalogd/internal/verify"
)

func verifyCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the catalog page markup",
		Long: `Load the running catalog page in a headless browser and check the
markup the print pipeline depends on: the occasion filter, rupee price
display, and uniform title blocks.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, baseURL)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "http://127.0.0.1:8080", "running server URL")
	return cmd
}

func runVerify(cmd *cobra.Command, baseURL string) error {
	verifier, err := verify.NewVerifier(slog.Default())
	if err != nil {
		return err
	}
	defer func() { _ = verifier.Close() }()

	pageURL, err := render.PageURL(baseURL, model.DefaultCriteria(), 0)
	if err != nil {
		return err
	}

	result, err := verifier.Verify(cmd.Context(), pageURL)
	if err != nil {
		return err
	}

	var lines []string
	for _, check := range result.Checks {
		if check.Passed {
			lines = append(lines, cli.FormatSuccess(check.Name))
		} else {
			detail := check.Detail
			if detail != "" {
				detail = " (" + detail + ")"
			}
			lines = append(lines, cli.FormatError(check.Name+detail))
		}
	}
	fmt.Println(cli.RenderBox("Catalog page checks", strings.Join(lines, "\n")))

	if !result.Passed() {
		return fmt.Errorf("page verification failed")
	}
	return nil
}
