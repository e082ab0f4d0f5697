// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/oneconcern/verstore/pkg/core"
	"github.com/oneconcern/verstore/pkg/dlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configEnv     = "VERSTORE_CONFIG"
	defaultStore  = "badger://.verstore"
	defaultConfig = "verstore"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "verstore",
	Short: "Verstore saves typed objects to a versioned store",
	Long: `Verstore saves typed objects to a versioned store, as files with properties.

Every write produces a new revision of the store. Any former revision may be read back.

This CLI demonstrates the store with a sample catalog of movies.
`,
	SilenceUsage: true,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addStoreFlag(rootCmd)
	addLogLevelFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("store", defaultStore)
	viper.SetDefault("loglevel", dlogger.LogLevelWarn)
	viper.SetDefault("message", core.DefaultCommitMessage)
	if os.Getenv(configEnv) != "" {
		// Use config file from the env.
		viper.SetConfigFile(os.Getenv(configEnv))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.verstore")
		viper.AddConfigPath("/etc/verstore")
		viper.SetConfigName(defaultConfig)
	}

	viper.SetEnvPrefix("verstore")
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		wrapFatalln("read config", err)
		return
	}
	config.setParams(&params)
}
