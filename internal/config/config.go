package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ytkit/internal/dirs"
	"ytkit/internal/model"
)

// Keys shared by flags, YTKIT_* environment variables and the config file.
const (
	KeyOutDir   = "out_dir"
	KeyVerbose  = "verbose"
	KeyDLBinary = "dl_binary"
)

// Init wires a Viper instance with config paths, env, and bindings for the
// root persistent flags.
// Precedence: flag > env (including .env) > config file > flag default.
func Init(flags *pflag.FlagSet) (*viper.Viper, error) {
	// .env in the working directory is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		v.AddConfigPath(cfgDir)
	}
	v.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: YTKIT_*
	v.SetEnvPrefix("YTKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, name := range map[string]string{
		KeyOutDir:   "out-dir",
		KeyVerbose:  "verbose",
		KeyDLBinary: "dl-binary",
	} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}
	return v, nil
}

// Options resolves the shared CLI options from v.
func Options(v *viper.Viper) model.CLIOptions {
	return model.CLIOptions{
		OutDir:   strings.TrimSpace(v.GetString(KeyOutDir)),
		DLBinary: strings.TrimSpace(v.GetString(KeyDLBinary)),
		Verbose:  v.GetBool(KeyVerbose),
	}
}
