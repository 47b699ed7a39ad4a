// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ironcore-dev/hardware-inventory/bmc"
	"github.com/ironcore-dev/hardware-inventory/internal/i18n"

	ctrl "sigs.k8s.io/controller-runtime"
)

const (
	// BiosAttributeRegistryURI is the BIOS attribute registry resource.
	BiosAttributeRegistryURI = "/redfish/v1/Registries/BiosAttributeRegistry/BiosAttributeRegistry"
	// MemoryRegionSizeAttribute is the BIOS attribute holding the logical memory block size.
	MemoryRegionSizeAttribute = "hb_memory_region_size"
)

// MemorySettings are the logical memory block sizes offered by the BIOS and the
// size currently configured.
type MemorySettings struct {
	AvailableSizeOptions []string `json:"availableSizeOptions"`
	CurrentSize          *string  `json:"currentSize"`
}

// MemoryStore caches the logical memory size settings of a system.
type MemoryStore struct {
	client  bmc.BMC
	options Options

	mu       sync.RWMutex
	settings MemorySettings
}

// NewMemoryStore creates a MemoryStore reading from client.
func NewMemoryStore(client bmc.BMC, options Options) *MemoryStore {
	return &MemoryStore{
		client:   client,
		options:  options.withDefaults(),
		settings: MemorySettings{AvailableSizeOptions: []string{}},
	}
}

// Settings returns a copy of the cached memory settings.
func (s *MemoryStore) Settings() MemorySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings := MemorySettings{AvailableSizeOptions: slices.Clone(s.settings.AvailableSizeOptions)}
	if s.settings.CurrentSize != nil {
		size := *s.settings.CurrentSize
		settings.CurrentSize = &size
	}
	return settings
}

// LogicalMemorySizeOptions returns the cached size options.
func (s *MemoryStore) LogicalMemorySizeOptions() []string {
	return s.Settings().AvailableSizeOptions
}

// LogicalMemorySize returns the cached current size, or nil if it is unknown.
func (s *MemoryStore) LogicalMemorySize() *string {
	return s.Settings().CurrentSize
}

func (s *MemoryStore) biosURI() string {
	return s.options.SystemURI + "/Bios"
}

func (s *MemoryStore) biosSettingsURI() string {
	return s.options.SystemURI + "/Bios/Settings"
}

// GetMemorySizeOptions reads the allowed logical memory sizes from the BIOS
// attribute registry. On failure the cached options stay unchanged.
func (s *MemoryStore) GetMemorySizeOptions(ctx context.Context) error {
	log := ctrl.LoggerFrom(ctx)

	registry := &bmc.Registry{}
	if err := s.client.GetEntityFromUri(ctx, BiosAttributeRegistryURI, registry); err != nil {
		log.Error(err, "Failed to get BIOS attribute registry")
		fetchFailures.WithLabelValues("bios_registry").Inc()
		return fmt.Errorf("failed to get BIOS attribute registry: %w", err)
	}

	options := []string{}
	if attribute, ok := registry.Attribute(MemoryRegionSizeAttribute); ok {
		for _, value := range attribute.Value {
			options = append(options, value.ValueName)
		}
	} else {
		log.V(1).Info("BIOS attribute not found in registry", "Attribute", MemoryRegionSizeAttribute)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.AvailableSizeOptions = options
	return nil
}

// GetLogicalMemorySize reads the configured logical memory size from the BIOS.
// On failure the cached size stays unchanged.
func (s *MemoryStore) GetLogicalMemorySize(ctx context.Context) error {
	log := ctrl.LoggerFrom(ctx)

	bios := &bmc.Bios{}
	if err := s.client.GetEntityFromUri(ctx, s.biosURI(), bios); err != nil {
		log.Error(err, "Failed to get BIOS")
		fetchFailures.WithLabelValues("bios").Inc()
		return fmt.Errorf("failed to get BIOS: %w", err)
	}

	var size *string
	if value, ok := bios.Attributes[MemoryRegionSizeAttribute]; ok && value != nil {
		current := fmt.Sprint(value)
		size = &current
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.CurrentSize = size
	return nil
}

// Refresh reads both the size options and the current size.
func (s *MemoryStore) Refresh(ctx context.Context) error {
	return errors.Join(s.GetMemorySizeOptions(ctx), s.GetLogicalMemorySize(ctx))
}

// SaveSettings stores size as the pending logical memory size and returns the
// localized confirmation. Failures are returned as *UserError.
func (s *MemoryStore) SaveSettings(ctx context.Context, size string) (string, error) {
	log := ctrl.LoggerFrom(ctx)
	printer := s.options.printer(ctx)

	payload := map[string]any{
		"Attributes": map[string]any{
			MemoryRegionSizeAttribute: size,
		},
	}
	if err := s.client.PatchEntity(ctx, s.biosSettingsURI(), payload); err != nil {
		log.Error(err, "Failed to save logical memory size", "Size", size)
		return "", newUserError(printer, i18n.ErrorSavingLogicalMemory, err)
	}

	s.mu.Lock()
	s.settings.CurrentSize = &size
	s.mu.Unlock()

	log.V(1).Info("Saved logical memory size", "Size", size)
	return printer.Sprintf(i18n.SuccessSavingLogicalMemory), nil
}
