// Package storage provides the SQLite persistence layer for the preference
// namespaces.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCustomName validates a custom name entry before save.
func validateCustomName(entry *model.CustomName) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if err := validateString(entry.RawMerchant, "rawMerchant"); err != nil {
		return err
	}
	return validateString(entry.CustomName, "customName")
}

// validateHistory validates a merchant history before save.
func validateHistory(history *model.MerchantHistory) error {
	if history == nil {
		return fmt.Errorf("%w: history", ErrNilParameter)
	}
	return validateString(history.OriginalName, "originalName")
}

// validateDefaults validates a merchant defaults record before save.
func validateDefaults(defaults *model.MerchantDefaults) error {
	if defaults == nil {
		return fmt.Errorf("%w: defaults", ErrNilParameter)
	}
	for i := range defaults.Defaults {
		if err := validateString(defaults.Defaults[i].Name, "default name"); err != nil {
			return err
		}
		if err := validateString(defaults.Defaults[i].Category, "default category"); err != nil {
			return err
		}
	}
	return nil
}

// validateMapping validates a raw data mapping before save.
func validateMapping(mapping *model.RawMapping) error {
	if mapping == nil {
		return fmt.Errorf("%w: mapping", ErrNilParameter)
	}
	if err := validateString(mapping.RawMerchant, "rawMerchant"); err != nil {
		return err
	}
	return validateString(mapping.MerchantName, "merchantName")
}
