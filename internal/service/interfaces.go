// Package service defines the persistence contracts between the preference
// services and the storage layer.
package service

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// Storage is the contract for the four preference namespaces. All Get
// operations return (nil, nil) on a lookup miss; errors are reserved for
// storage failures.
type Storage interface {
	// Custom merchant names, keyed by normalized raw identity.
	GetCustomName(ctx context.Context, key string) (*model.CustomName, error)
	SaveCustomName(ctx context.Context, key string, entry *model.CustomName) error
	DeleteCustomName(ctx context.Context, key string) error
	ListCustomNames(ctx context.Context) (map[string]model.CustomName, error)
	ClearCustomNames(ctx context.Context) error

	// Merchant category history, keyed by normalized merchant name.
	GetHistory(ctx context.Context, key string) (*model.MerchantHistory, error)
	SaveHistory(ctx context.Context, key string, history *model.MerchantHistory) error
	DeleteHistory(ctx context.Context, key string) error
	ListHistories(ctx context.Context) (map[string]model.MerchantHistory, error)
	ClearHistories(ctx context.Context) error

	// Named defaults, keyed by normalized merchant name.
	GetDefaults(ctx context.Context, key string) (*model.MerchantDefaults, error)
	SaveDefaults(ctx context.Context, key string, defaults *model.MerchantDefaults) error
	DeleteDefaults(ctx context.Context, key string) error
	ListDefaults(ctx context.Context) (map[string]model.MerchantDefaults, error)
	ClearDefaults(ctx context.Context) error

	// Raw data mappings, keyed by normalized raw identity, plus the
	// merchant-level auto-apply flag.
	GetMapping(ctx context.Context, key string) (*model.RawMapping, error)
	SaveMapping(ctx context.Context, key string, mapping *model.RawMapping) error
	DeleteMapping(ctx context.Context, key string) error
	ListMappings(ctx context.Context) (map[string]model.RawMapping, error)
	ClearMappings(ctx context.Context) error
	GetAutoApplyMerchant(ctx context.Context, merchantName string) (bool, error)
	SetAutoApplyMerchant(ctx context.Context, merchantName string, autoApply bool) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}
