package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// appFs is the file system used to read inputs and write config files
var appFs = afero.NewOsFs()

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// viper unmarshals by the serialized names
	Store    string `json:"store" yaml:"store" mapstructure:"store"`
	LogLevel string `json:"loglevel" yaml:"loglevel" mapstructure:"loglevel"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty" mapstructure:"message"`
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setParams fills the flags left empty from the config
func (c *CLIConfig) setParams(flags *flagsT) {
	if flags.root.store == "" {
		flags.root.store = c.Store
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
	if flags.root.message == "" {
		flags.root.message = c.Message
	}
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage a config",
	Long: `Commands to manage the verstore CLI config.

Configuration for verstore is the common set of flags that are needed for most commands and do not change across runs.`,
}

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a config",
	Long:  "Create a config to use for verstore, from the current flags. The config file is placed in $HOME/.verstore/verstore.yaml unless specified",
	Run: func(cmd *cobra.Command, args []string) {
		target := params.config.path
		if target == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				wrapFatalln("could not get home directory for user", err)
				return
			}
			target = filepath.Join(home, ".verstore", defaultConfig+".yaml")
		}

		o, err := yaml.Marshal(CLIConfig{
			Store:    params.root.store,
			LogLevel: params.root.logLevel,
			Message:  params.root.message,
		})
		if err != nil {
			wrapFatalln("serialize config to yaml", err)
			return
		}
		if err = appFs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			wrapFatalln("create config directory", err)
			return
		}
		if err = afero.WriteFile(appFs, target, o, 0o644); err != nil {
			wrapFatalln("write config file", err)
			return
		}
		infoLogger.Println("config written to", target)
	},
}

func init() {
	addConfigPathFlag(configCreateCmd)
	addMessageFlag(configCreateCmd)

	configCmd.AddCommand(configCreateCmd)
	rootCmd.AddCommand(configCmd)
}
