// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package bmc

import (
	"context"
	"strings"
)

// BMC defines an interface for reading and writing Redfish resources of a
// Baseboard Management Controller.
//
// The ctx of each call is checked before the request is sent. A request that
// is already in flight runs on the context the client was connected with, so
// cancelling ctx does not abort it.
type BMC interface {
	// GetEntityFromUri fetches the resource at uri and decodes it into entity.
	GetEntityFromUri(ctx context.Context, uri string, entity any) error

	// GetCollectionMembers returns the member URIs of the collection at uri.
	GetCollectionMembers(ctx context.Context, uri string) ([]string, error)

	// PatchEntity sends payload as a PATCH request to uri.
	PatchEntity(ctx context.Context, uri string, payload any) error

	// Logout closes the BMC client connection by logging out
	Logout()
}

// Link is a reference to another Redfish resource.
type Link struct {
	ODataID string `json:"@odata.id"`
}

// String returns the referenced URI.
func (l *Link) String() string {
	if l == nil {
		return ""
	}
	return l.ODataID
}

// LastSegment returns the trailing path segment of the referenced URI.
func (l *Link) LastSegment() string {
	uri := strings.TrimRight(l.String(), "/")
	if uri == "" {
		return ""
	}
	return uri[strings.LastIndex(uri, "/")+1:]
}

// Collection is a Redfish resource collection.
type Collection struct {
	ODataID      string `json:"@odata.id"`
	Name         string
	Members      []Link
	MembersCount int `json:"Members@odata.count"`
}

// Condition describes a condition reported in a resource status.
type Condition struct {
	Message     string
	MessageID   string `json:"MessageId"`
	MessageArgs []string
	Severity    string
	Timestamp   string
	// LogEntry links to the log entry that describes this condition, if any.
	LogEntry          *Link
	OriginOfCondition *Link
}

// Status is the common Redfish status object.
type Status struct {
	Health       string
	HealthRollup string
	State        string
	Conditions   []Condition
}

// PartLocation describes the location of a part within its enclosure.
type PartLocation struct {
	ServiceLabel         string
	LocationType         string
	LocationOrdinalValue *int
}

// Location describes where a resource is installed.
type Location struct {
	PartLocation PartLocation
}

// Processor represents a processor or a sub-processor (core) in the system.
type Processor struct {
	ODataID       string `json:"@odata.id"`
	ID            string `json:"Id"`
	Name          string
	Enabled       *bool
	Status        Status
	Location      Location
	ProcessorType string
	Model         string
	TotalCores    *int
	SubProcessors *Link
}

// Memory represents a memory device (DIMM).
type Memory struct {
	ODataID          string `json:"@odata.id"`
	ID               string `json:"Id"`
	Name             string
	Enabled          *bool
	CapacityMiB      *int
	MemoryDeviceType string
	Status           Status
	Location         Location
}

// Settings is the @Redfish.Settings annotation of a settable resource.
type Settings struct {
	SettingsObject Link
}

// Bios represents the BIOS resource of a system.
type Bios struct {
	ODataID    string `json:"@odata.id"`
	ID         string `json:"Id"`
	Attributes map[string]any
	Settings   Settings `json:"@Redfish.Settings"`
}

type AllowedValues struct {
	ValueDisplayName string
	ValueName        string
}

type RegistryEntryAttributes struct {
	AttributeName string
	CurrentValue  any
	DisplayName   string
	DisplayOrder  int
	HelpText      string
	Hidden        bool
	Immutable     bool
	MaxLength     int
	MenuPath      string
	MinLength     int
	ReadOnly      bool
	ResetRequired *bool
	Type          string
	WriteOnly     bool
	Value         []AllowedValues
}

type RegistryEntry struct {
	Attributes []RegistryEntryAttributes
}

// Registry describes an attribute registry such as the BIOS attribute registry.
type Registry struct {
	ODataID string `json:"@odata.id"`
	ID      string `json:"Id"`
	Name    string
	// Language is the RFC5646-conformant language code for the registry.
	Language string
	// RegistryVersion is the attribute registry version.
	RegistryVersion string
	RegistryEntries RegistryEntry
}

// Attribute returns the registry entry for name.
func (r *Registry) Attribute(name string) (RegistryEntryAttributes, bool) {
	for _, entry := range r.RegistryEntries.Attributes {
		if entry.AttributeName == name {
			return entry, true
		}
	}
	return RegistryEntryAttributes{}, false
}
