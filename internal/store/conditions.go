// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package store

import "github.com/ironcore-dev/hardware-inventory/bmc"

// DefaultDeconfigurationReason is reported for resources without a deconfiguration condition.
const DefaultDeconfigurationReason = "None"

// DeconfigurationReason returns the first message argument of the first
// condition, which names why the resource was deconfigured.
func DeconfigurationReason(conditions []bmc.Condition) string {
	if len(conditions) == 0 || len(conditions[0].MessageArgs) == 0 {
		return DefaultDeconfigurationReason
	}
	return conditions[0].MessageArgs[0]
}

// PELID returns the ID of the platform event log entry referenced by the first
// condition, or an empty string.
func PELID(conditions []bmc.Condition) string {
	if len(conditions) == 0 {
		return ""
	}
	return conditions[0].LogEntry.LastSegment()
}
