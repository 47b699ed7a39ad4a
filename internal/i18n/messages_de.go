// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.German

	// Hardware deconfiguration
	message.SetString(lang, ErrorEnablingSetting, "Fehler beim Aktivieren der Einstellung.")
	message.SetString(lang, ErrorDisablingSetting, "Fehler beim Deaktivieren der Einstellung.")
	message.SetString(lang, ErrorResourceCannotBeDeleted,
		"Die Ressource kann nicht dekonfiguriert werden, da das System mindestens eine funktionsfähige Ressource dieser Art benötigt.")

	// Memory
	message.SetString(lang, SuccessSavingLogicalMemory, "Die Größe des logischen Speicherblocks wurde gespeichert.")
	message.SetString(lang, ErrorSavingLogicalMemory, "Fehler beim Speichern der Größe des logischen Speicherblocks.")

	// API
	message.SetString(lang, ErrorInvalidRequest, "Die Anfrage ist ungültig.")
	message.SetString(lang, ErrorInventoryUnavailable, "Das Hardware-Inventar ist noch nicht verfügbar.")
}
