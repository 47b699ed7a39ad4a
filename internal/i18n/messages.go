// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package i18n

// Message keys of the user-facing texts.
const (
	ErrorEnablingSetting         = "pageDeconfigurationHardware.toast.errorEnablingSetting"
	ErrorDisablingSetting        = "pageDeconfigurationHardware.toast.errorDisablingSetting"
	ErrorResourceCannotBeDeleted = "pageDeconfigurationHardware.toast.errorResourceCannotBeDeleted"
	SuccessSavingLogicalMemory   = "pageMemory.toast.successSavingLogicalMemory"
	ErrorSavingLogicalMemory     = "pageMemory.toast.errorSavingLogicalMemory"
	ErrorInvalidRequest          = "api.error.invalidRequest"
	ErrorInventoryUnavailable    = "api.error.inventoryUnavailable"
)
