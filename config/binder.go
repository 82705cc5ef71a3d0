package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pontem-network/flashloan-loadgen/log"
)

type Binder interface {
	Bind(*viper.Viper, *cobra.Command) error
	Configure(*viper.Viper) error
}

// Section is a Binder that logs the values it was configured with
type Section interface {
	Binder
	log.Loggable
}

// Sections groups the configuration sections of a command
type Sections []Section

func (s Sections) Binders() []Binder {
	binders := make([]Binder, 0, len(s))
	for _, section := range s {
		binders = append(binders, section)
	}
	return binders
}

func (s Sections) Log(fields log.Fields) {
	for _, section := range s {
		section.Log(fields)
	}
}
