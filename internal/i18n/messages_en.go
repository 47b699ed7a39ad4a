// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Hardware deconfiguration
	message.SetString(lang, ErrorEnablingSetting, "Error enabling the setting.")
	message.SetString(lang, ErrorDisablingSetting, "Error disabling the setting.")
	message.SetString(lang, ErrorResourceCannotBeDeleted,
		"The resource cannot be deconfigured because the system requires at least one functional resource of this kind.")

	// Memory
	message.SetString(lang, SuccessSavingLogicalMemory, "Successfully saved logical memory block size.")
	message.SetString(lang, ErrorSavingLogicalMemory, "Error saving logical memory block size.")

	// API
	message.SetString(lang, ErrorInvalidRequest, "The request is invalid.")
	message.SetString(lang, ErrorInventoryUnavailable, "The hardware inventory is not available yet.")
}
