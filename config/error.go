package config

import (
	"errors"
	"fmt"
	"strings"
)

type ErrKeyNotSet struct {
	Key string
}

func (e ErrKeyNotSet) Error() string {
	return fmt.Sprintf("configuration key needs to be set %s", e.Key)
}

type ErrInvalidValue struct {
	Key          string
	InvalidValue string
	Values       []string
}

func (e ErrInvalidValue) Error() string {
	if len(e.Values) == 0 {
		return fmt.Sprintf("configuration key %s set to invalid value %s", e.Key, e.InvalidValue)
	}

	return fmt.Sprintf("configuration key %s set to invalid value %s. "+
		"Accepted values are: %s.", e.Key, e.InvalidValue, strings.Join(e.Values, ", "))
}

var (
	ErrAlreadyParsed error = errors.New("configuration already parsed")
)
