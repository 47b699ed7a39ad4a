// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package i18n_test

import (
	"context"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/text/language"

	"github.com/ironcore-dev/hardware-inventory/internal/i18n"
)

var _ = Describe("i18n", func() {
	DescribeTable("ResolveTag",
		func(target, acceptLanguage string, expected language.Tag) {
			r := httptest.NewRequest("GET", target, nil)
			if acceptLanguage != "" {
				r.Header.Set("Accept-Language", acceptLanguage)
			}
			Expect(i18n.ResolveTag(r)).To(Equal(expected))
		},
		Entry("default", "/api/v1/memory", "", language.English),
		Entry("query parameter", "/api/v1/memory?lang=de", "", language.German),
		Entry("query parameter wins over header", "/api/v1/memory?lang=en", "de-DE", language.English),
		Entry("Accept-Language with region", "/api/v1/memory", "de-DE,de;q=0.9,en;q=0.5", language.German),
		Entry("unsupported language", "/api/v1/memory", "ja", language.English),
		Entry("invalid query parameter", "/api/v1/memory?lang=%21%21", "de", language.German),
	)

	It("should fall back to the default for a nil request", func() {
		Expect(i18n.ResolveTag(nil)).To(Equal(i18n.Default()))
	})

	It("should parse supported tags", func() {
		tag, ok := i18n.ParseTag("de-AT")
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(language.German))

		_, ok = i18n.ParseTag("")
		Expect(ok).To(BeFalse())
	})

	It("should not let callers modify the supported tags", func() {
		tags := i18n.Supported()
		tags[0] = language.French
		Expect(i18n.Supported()).To(Equal([]language.Tag{language.English, language.German}))
	})

	It("should translate every message", func() {
		keys := []string{
			i18n.ErrorEnablingSetting,
			i18n.ErrorDisablingSetting,
			i18n.ErrorResourceCannotBeDeleted,
			i18n.SuccessSavingLogicalMemory,
			i18n.ErrorSavingLogicalMemory,
			i18n.ErrorInvalidRequest,
			i18n.ErrorInventoryUnavailable,
		}
		for _, tag := range i18n.Supported() {
			printer := i18n.Printer(tag)
			for _, key := range keys {
				Expect(printer.Sprintf(key)).NotTo(Equal(key), "missing %s translation of %s", tag, key)
			}
		}
		Expect(i18n.Printer(language.German).Sprintf(i18n.ErrorInvalidRequest)).To(Equal("Die Anfrage ist ungültig."))
	})

	It("should carry a printer in the context", func() {
		Expect(i18n.PrinterFromContext(context.Background())).To(BeNil())

		printer := i18n.Printer(language.German)
		ctx := i18n.IntoContext(context.Background(), printer)
		Expect(i18n.PrinterFromContext(ctx)).To(BeIdenticalTo(printer))
	})
})
