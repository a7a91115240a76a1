package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/revenue-risk/internal/pipelineconfig"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "파이프라인 설정 조회/검증",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "활성 파이프라인 설정 출력 (YAML + 해시)",
	Long: `Example:
  go run ./cmd/revenue config show
  go run ./cmd/revenue config show --pipeline-config configs/pipeline.yaml`,
	RunE: runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "파이프라인 설정 파일 검증",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	data, err := a.pipelineCfg.YAML()
	if err != nil {
		return err
	}
	hash, err := a.pipelineCfg.Hash()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# hash: %s\n", hash)
	_, err = out.Write(data)
	return err
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineconfig.Load(args[0])
	if err != nil {
		return err
	}
	hash, err := cfg.Hash()
	if err != nil {
		return err
	}

	PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s is valid (hash %s)", args[0], hash))
	return nil
}
