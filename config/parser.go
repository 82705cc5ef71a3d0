package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config interface {
	EnvPrefix() string
	Binders() []Binder
}

// Parser reads the configuration of a command once cobra has parsed
// its flags
type Parser struct {
	Config Config

	file   *ConfigFile
	parsed bool

	cmd *cobra.Command
	v   *viper.Viper
}

// Parse configures every binder. The configuration file is configured
// first so that any parameters read from it are used as defaults for
// the other flags
func (p *Parser) Parse() error {
	if p.parsed {
		return ErrAlreadyParsed
	}

	var binders []Binder
	binders = append(binders, p.file)
	binders = append(binders, p.Config.Binders()...)

	for _, c := range binders {
		if err := c.Configure(p.v); err != nil {
			return err
		}
	}

	p.parsed = true
	return nil
}

func (p *Parser) Viper() *viper.Viper {
	return p.v
}

func (p *Parser) Usage() error {
	return p.cmd.Usage()
}

// Generate binds the flags of all the sections of config to cmd. All
// environment variables start with the prefix returned by
// config.EnvPrefix() and are derived from the key by replacing `.` with
// `_`. For example, key ledger.url can be set from the environment
// variable LOADGEN_LEDGER_URL
func Generate(cmd *cobra.Command, config Config) (*Parser, error) {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := ConfigFile{}
	var binders []Binder
	binders = append(binders, &file)
	binders = append(binders, config.Binders()...)

	for _, c := range binders {
		if err := c.Bind(v, cmd); err != nil {
			return nil, fmt.Errorf("failed to bind flags %s", err.Error())
		}
	}

	if err := bindFlagSet(v, cmd.PersistentFlags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags %s", err.Error())
	}

	return &Parser{file: &file, Config: config, cmd: cmd, v: v}, nil
}

func bindFlagSet(v *viper.Viper, flags *pflag.FlagSet) error {
	return v.BindPFlags(flags)
}
