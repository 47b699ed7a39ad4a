// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/stmcginnis/gofish"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/ironcore-dev/hardware-inventory/bmc"
	"github.com/ironcore-dev/hardware-inventory/internal/i18n"

	ctrl "sigs.k8s.io/controller-runtime"
)

// AbsentState is the status state of an empty DIMM slot.
const AbsentState = "Absent"

// CoreRecord is the view of one processor core.
type CoreRecord struct {
	Name                string `json:"name"`
	Status              string `json:"status"`
	ID                  string `json:"id"`
	Location            string `json:"location"`
	FunctionalState     string `json:"functionalState"`
	SettingsEnabled     bool   `json:"settingsEnabled"`
	URI                 string `json:"uri"`
	DeconfigurationType string `json:"deconfigurationType"`
	ProcessorID         string `json:"processorId"`
	PELID               string `json:"pelId"`
}

// DimmRecord is the view of one installed memory module.
type DimmRecord struct {
	ID                  string            `json:"id"`
	FunctionalState     string            `json:"functionalState"`
	CapacityMiB         int               `json:"capacityMiB"`
	Capacity            resource.Quantity `json:"capacity"`
	LocationCode        string            `json:"locationCode"`
	DeconfigurationType string            `json:"deconfigurationType"`
	SettingsEnabled     bool              `json:"settingsEnabled"`
	URI                 string            `json:"uri"`
	Availability        string            `json:"availability"`
}

// DeconfigurationStore caches the processor cores and DIMMs of a system and
// toggles whether they are enabled.
type DeconfigurationStore struct {
	client  bmc.BMC
	options Options

	mu    sync.RWMutex
	cores []CoreRecord
	dimms []DimmRecord
}

// NewDeconfigurationStore creates a DeconfigurationStore reading from client.
func NewDeconfigurationStore(client bmc.BMC, options Options) *DeconfigurationStore {
	return &DeconfigurationStore{
		client:  client,
		options: options.withDefaults(),
		cores:   []CoreRecord{},
		dimms:   []DimmRecord{},
	}
}

// Cores returns a copy of the cached cores.
func (s *DeconfigurationStore) Cores() []CoreRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cores)
}

// Dimms returns a copy of the cached DIMMs.
func (s *DeconfigurationStore) Dimms() []DimmRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.dimms)
}

func (s *DeconfigurationStore) setCores(cores []CoreRecord) {
	states := make([]string, 0, len(cores))
	for _, core := range cores {
		states = append(states, core.FunctionalState)
	}
	setStateGauge(coresGauge, states)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cores = cores
}

func (s *DeconfigurationStore) setDimms(dimms []DimmRecord) {
	states := make([]string, 0, len(dimms))
	for _, dimm := range dimms {
		states = append(states, dimm.FunctionalState)
	}
	setStateGauge(dimmsGauge, states)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimms = dimms
}

func (s *DeconfigurationStore) processorsURI() string {
	return s.options.SystemURI + "/Processors"
}

func (s *DeconfigurationStore) memoryURI() string {
	return s.options.SystemURI + "/Memory"
}

// GetProcessorsCollection returns the URIs of the processors of the system.
func (s *DeconfigurationStore) GetProcessorsCollection(ctx context.Context) ([]string, error) {
	log := ctrl.LoggerFrom(ctx)
	members, err := s.client.GetCollectionMembers(ctx, s.processorsURI())
	if err != nil {
		log.Error(err, "Failed to get processors collection")
		fetchFailures.WithLabelValues("processors").Inc()
		return nil, fmt.Errorf("failed to get processors collection: %w", err)
	}
	return members, nil
}

// GetProcessors reads the cores of all processors and replaces the cached
// cores. If the processor collection cannot be read nothing else is fetched and
// the cache stays unchanged. Processors are read first and their cores in a
// second pass, so at most Concurrency requests are in flight.
func (s *DeconfigurationStore) GetProcessors(ctx context.Context) error {
	log := ctrl.LoggerFrom(ctx)

	collection, err := s.GetProcessorsCollection(ctx)
	if err != nil {
		return err
	}

	perProcessor := fanOut(ctx, s.options.Concurrency, collection, s.getCoreRefs, func(uri string, err error) {
		log.Error(err, "Failed to get cores of processor", "Processor", uri)
	})

	var refs []coreRef
	for _, processorRefs := range perProcessor {
		refs = append(refs, processorRefs...)
	}
	cores := s.getCoreRecords(ctx, refs)
	s.setCores(cores)
	log.V(1).Info("Fetched processor cores", "Processors", len(collection), "Cores", len(cores))
	return nil
}

// GetCores reads the cores of the processor at processorURI. Cores that cannot
// be read are logged and skipped.
func (s *DeconfigurationStore) GetCores(ctx context.Context, processorURI string) ([]CoreRecord, error) {
	refs, err := s.getCoreRefs(ctx, processorURI)
	if err != nil {
		return nil, err
	}
	return s.getCoreRecords(ctx, refs), nil
}

// coreRef is a core URI together with the processor details copied into its record.
type coreRef struct {
	uri         string
	location    string
	processorID string
}

func (s *DeconfigurationStore) getCoreRefs(ctx context.Context, processorURI string) ([]coreRef, error) {
	processor := &bmc.Processor{}
	if err := s.client.GetEntityFromUri(ctx, processorURI, processor); err != nil {
		fetchFailures.WithLabelValues("processor").Inc()
		return nil, fmt.Errorf("failed to get processor: %w", err)
	}

	subProcessorsURI := processor.SubProcessors.String()
	if subProcessorsURI == "" {
		subProcessorsURI = processorURI + "/SubProcessors"
	}
	members, err := s.client.GetCollectionMembers(ctx, subProcessorsURI)
	if err != nil {
		fetchFailures.WithLabelValues("sub_processors").Inc()
		return nil, fmt.Errorf("failed to get sub processors: %w", err)
	}

	refs := make([]coreRef, 0, len(members))
	for _, uri := range members {
		refs = append(refs, coreRef{
			uri:         uri,
			location:    processor.Location.PartLocation.ServiceLabel,
			processorID: processor.ID,
		})
	}
	return refs, nil
}

func (s *DeconfigurationStore) getCoreRecords(ctx context.Context, refs []coreRef) []CoreRecord {
	log := ctrl.LoggerFrom(ctx)
	return fanOut(ctx, s.options.Concurrency, refs,
		func(ctx context.Context, ref coreRef) (CoreRecord, error) {
			core := &bmc.Processor{}
			if err := s.client.GetEntityFromUri(ctx, ref.uri, core); err != nil {
				return CoreRecord{}, err
			}
			return newCoreRecord(core, ref.uri, ref.location, ref.processorID), nil
		},
		func(ref coreRef, err error) {
			fetchFailures.WithLabelValues("core").Inc()
			log.Error(err, "Failed to get core", "Core", ref.uri)
		})
}

func newCoreRecord(core *bmc.Processor, uri, location, processorID string) CoreRecord {
	if core.ODataID != "" {
		uri = core.ODataID
	}
	return CoreRecord{
		Name:                core.Name,
		Status:              core.Status.Health,
		ID:                  core.ID,
		Location:            location,
		FunctionalState:     core.Status.Health,
		SettingsEnabled:     core.Enabled != nil && *core.Enabled,
		URI:                 uri,
		DeconfigurationType: DeconfigurationReason(core.Status.Conditions),
		ProcessorID:         processorID,
		PELID:               PELID(core.Status.Conditions),
	}
}

// GetDimms reads all DIMMs of the system and replaces the cached DIMMs. Empty
// slots are left out.
func (s *DeconfigurationStore) GetDimms(ctx context.Context) error {
	log := ctrl.LoggerFrom(ctx)

	members, err := s.client.GetCollectionMembers(ctx, s.memoryURI())
	if err != nil {
		log.Error(err, "Failed to get memory collection")
		fetchFailures.WithLabelValues("memory").Inc()
		return fmt.Errorf("failed to get memory collection: %w", err)
	}

	records := fanOut(ctx, s.options.Concurrency, members,
		func(ctx context.Context, uri string) (DimmRecord, error) {
			dimm := &bmc.Memory{}
			if err := s.client.GetEntityFromUri(ctx, uri, dimm); err != nil {
				return DimmRecord{}, err
			}
			return newDimmRecord(dimm, uri), nil
		},
		func(uri string, err error) {
			fetchFailures.WithLabelValues("dimm").Inc()
			log.Error(err, "Failed to get DIMM", "DIMM", uri)
		})

	dimms := slices.DeleteFunc(records, func(dimm DimmRecord) bool {
		return dimm.Availability == AbsentState
	})
	s.setDimms(dimms)
	log.V(1).Info("Fetched DIMMs", "Members", len(members), "Present", len(dimms))
	return nil
}

func newDimmRecord(dimm *bmc.Memory, uri string) DimmRecord {
	if dimm.ODataID != "" {
		uri = dimm.ODataID
	}
	capacityMiB := gofish.Deref(dimm.CapacityMiB)
	return DimmRecord{
		ID:                  dimm.ID,
		FunctionalState:     dimm.Status.Health,
		CapacityMiB:         capacityMiB,
		Capacity:            *resource.NewQuantity(int64(capacityMiB)*1024*1024, resource.BinarySI),
		LocationCode:        dimm.Location.PartLocation.ServiceLabel,
		DeconfigurationType: DeconfigurationReason(dimm.Status.Conditions),
		SettingsEnabled:     dimm.Enabled != nil && *dimm.Enabled,
		URI:                 uri,
		Availability:        dimm.Status.State,
	}
}

// Refresh reads cores and DIMMs.
func (s *DeconfigurationStore) Refresh(ctx context.Context) error {
	return errors.Join(s.GetProcessors(ctx), s.GetDimms(ctx))
}

// UpdateSettingsState enables or disables a DIMM. On failure the DIMMs are
// read again and a *UserError is returned.
func (s *DeconfigurationStore) UpdateSettingsState(ctx context.Context, state SettingsState) error {
	return s.updateEnabled(ctx, state, s.GetDimms)
}

// UpdateCoresSettingsState enables or disables a processor core. On failure the
// cores are read again and a *UserError is returned.
func (s *DeconfigurationStore) UpdateCoresSettingsState(ctx context.Context, state SettingsState) error {
	return s.updateEnabled(ctx, state, s.GetProcessors)
}

func (s *DeconfigurationStore) updateEnabled(
	ctx context.Context,
	state SettingsState,
	refresh func(context.Context) error,
) error {
	log := ctrl.LoggerFrom(ctx)
	printer := s.options.printer(ctx)

	err := s.client.PatchEntity(ctx, state.URI, map[string]any{"Enabled": state.Enabled})
	if err == nil {
		log.V(1).Info("Updated settings state", "URI", state.URI, "Enabled", state.Enabled)
		return nil
	}
	log.Error(err, "Failed to update settings state", "URI", state.URI, "Enabled", state.Enabled)

	// the cached view may show the requested state, read back what the BMC has
	if refreshErr := refresh(ctx); refreshErr != nil {
		log.Error(refreshErr, "Failed to refresh after failed update")
	}
	return newUserError(printer, settingsErrorKey(err, state.Enabled), err)
}

func settingsErrorKey(err error, enabled bool) string {
	if redfishErr, ok := bmc.AsRedfishError(err); ok && redfishErr.HasMessageID(bmc.MessageIDResourceCannotBeDeleted) {
		return i18n.ErrorResourceCannotBeDeleted
	}
	if enabled {
		return i18n.ErrorEnablingSetting
	}
	return i18n.ErrorDisablingSetting
}
