// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the effective interest profile as YAML",
	Long: `Profile prints the keywords and feed sources a run would use after
applying the config file, environment, and --profile. The output is a valid
--profile file.`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().String("profile", "", "interest profile YAML (keywords, feed_sources)")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg.Profile)
}
