package cli

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	configBaseName = "movediff"
	envPrefix      = "MOVEDIFF"

	rpcURLKey           = "rpc.url"
	formatKey           = "output.format"
	contextLinesKey     = "diff.context_lines"
	ignoreWhitespaceKey = "diff.ignore_whitespace"

	defaultRPCURL       = "https://fullnode.mainnet.sui.io:443"
	defaultFormat       = "table"
	defaultContextLines = 3
)

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(rpcURLKey, defaultRPCURL)
	viper.SetDefault(formatKey, defaultFormat)
	viper.SetDefault(contextLinesKey, defaultContextLines)
	viper.SetDefault(ignoreWhitespaceKey, false)

	// A missing config file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}
