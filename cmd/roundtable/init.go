package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/roundtable/config"
	"github.com/hupe1980/roundtable/core"
)

var (
	initForce bool
	briefOut  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration and sample brief",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
	initCmd.Flags().StringVar(&briefOut, "brief", "brief.yaml", "where to write the sample brief")
}

func runInit(cmd *cobra.Command, args []string) error {
	if !initForce {
		if _, err := os.Stat(cfgPath); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", cfgPath)
		}
		if _, err := os.Stat(briefOut); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", briefOut)
		}
	}

	if err := config.Default().Write(cfgPath); err != nil {
		return err
	}

	sample := core.ProjectBrief{
		CompanyName:      "Acme Logistics",
		Industry:         "logistics",
		ProblemStatement: "dispatchers plan delivery routes by hand, losing hours every morning",
		TargetUsers:      "dispatchers at mid-size delivery fleets",
		Timeline:         "pilot in 3 months",
		Budget:           "two engineers and a designer",
		KeyFeatureIdea:   "automatic route suggestions that dispatchers can adjust",
	}
	data, err := yaml.Marshal(sample)
	if err != nil {
		return fmt.Errorf("encoding sample brief: %w", err)
	}
	if err := os.WriteFile(briefOut, data, 0o644); err != nil {
		return fmt.Errorf("writing sample brief: %w", err)
	}

	cmd.Printf("wrote %s and %s\n", cfgPath, briefOut)
	cmd.Println("next: roundtable run --brief", briefOut)
	return nil
}
