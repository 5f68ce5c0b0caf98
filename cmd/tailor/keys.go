package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/model"
)

var (
	openAIKey    string
	anthropicKey string
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage provider API keys",
}

var keysSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save API keys",
	Long: "Saves the OpenAI and Anthropic API keys. A key not given as a flag is taken from OPENAI_API_KEY or " +
		"ANTHROPIC_API_KEY (a .env file is read too), otherwise the saved value is kept. Pass an empty flag to clear a slot.",
	Args: cobra.NoArgs,
	RunE: runKeysSet,
}

var keysShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved API keys (masked)",
	Args:  cobra.NoArgs,
	RunE:  runKeysShow,
}

func init() {
	keysSetCmd.Flags().StringVar(&openAIKey, "openai", "", "OpenAI API key (sk-...)")
	keysSetCmd.Flags().StringVar(&anthropicKey, "anthropic", "", "Anthropic API key (sk-ant-...)")
	keysCmd.AddCommand(keysSetCmd, keysShowCmd)
	rootCmd.AddCommand(keysCmd)
}

func runKeysSet(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		saved := a.ctrl.State().Credentials
		creds := model.Credentials{
			OpenAI:    resolveKey(cmd.Flags().Changed("openai"), openAIKey, os.Getenv("OPENAI_API_KEY"), saved.OpenAI),
			Anthropic: resolveKey(cmd.Flags().Changed("anthropic"), anthropicKey, os.Getenv("ANTHROPIC_API_KEY"), saved.Anthropic),
		}
		if err := a.ctrl.SetCredentials(creds); err != nil {
			return err
		}
		if err := a.ctrl.State().Credentials.Validate(); err != nil {
			a.logger.Warn("saved key has an unexpected format", "error", err)
		}
		return nil
	})
}

func runKeysShow(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		printKeys(cmd.OutOrStdout(), a.ctrl.State().Credentials)
		return nil
	})
}

// resolveKey picks a key slot value: explicit flag, then environment, then
// the saved value.
func resolveKey(flagSet bool, flagVal, envVal, saved string) string {
	switch {
	case flagSet:
		return flagVal
	case envVal != "":
		return envVal
	default:
		return saved
	}
}

func printKeys(w io.Writer, creds model.Credentials) {
	fmt.Fprintf(w, "openai:    %s\n", maskKey(creds.OpenAI))
	fmt.Fprintf(w, "anthropic: %s\n", maskKey(creds.Anthropic))
}

// maskKey hides all but a short prefix and the last four characters.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 10 {
		return "****"
	}
	prefix := key[:3]
	if len(key) > 14 && key[:7] == "sk-ant-" {
		prefix = key[:7]
	}
	return prefix + "****" + key[len(key)-4:]
}
