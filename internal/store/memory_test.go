// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/text/language"

	"github.com/ironcore-dev/hardware-inventory/bmc"
	"github.com/ironcore-dev/hardware-inventory/bmc/mock/server"
	"github.com/ironcore-dev/hardware-inventory/internal/i18n"
)

const biosSettingsURI = DefaultSystemURI + "/Bios/Settings"

var _ = Describe("MemoryStore", func() {
	var memoryStore *MemoryStore

	BeforeEach(func() {
		memoryStore = NewMemoryStore(client, Options{})
	})

	It("should start with empty settings", func() {
		Expect(memoryStore.LogicalMemorySizeOptions()).To(BeEmpty())
		Expect(memoryStore.LogicalMemorySize()).To(BeNil())
	})

	It("should read the size options from the attribute registry", func(ctx SpecContext) {
		Expect(memoryStore.GetMemorySizeOptions(ctx)).To(Succeed())
		Expect(memoryStore.LogicalMemorySizeOptions()).To(Equal([]string{"128MB", "256MB", "1024MB", "2048MB", "4096MB"}))
	})

	It("should read the current size from the BIOS", func(ctx SpecContext) {
		Expect(memoryStore.GetLogicalMemorySize(ctx)).To(Succeed())
		Expect(memoryStore.LogicalMemorySize()).To(HaveValue(Equal("256MB")))
	})

	It("should report no options when the registry lacks the attribute", func(ctx SpecContext) {
		mockServer.InjectFault(http.MethodGet, BiosAttributeRegistryURI, server.Fault{
			StatusCode: http.StatusOK,
			Body:       `{"Id":"BiosAttributeRegistry","RegistryEntries":{"Attributes":[]}}`,
		})
		Expect(memoryStore.GetMemorySizeOptions(ctx)).To(Succeed())
		Expect(memoryStore.LogicalMemorySizeOptions()).To(BeEmpty())
	})

	It("should keep the cached settings when a read fails", func(ctx SpecContext) {
		Expect(memoryStore.Refresh(ctx)).To(Succeed())

		mockServer.InjectFault(http.MethodGet, BiosAttributeRegistryURI, server.Fault{StatusCode: http.StatusInternalServerError})
		mockServer.InjectFault(http.MethodGet, DefaultSystemURI+"/Bios", server.Fault{StatusCode: http.StatusInternalServerError})
		Expect(memoryStore.Refresh(ctx)).NotTo(Succeed())

		Expect(memoryStore.LogicalMemorySizeOptions()).To(HaveLen(5))
		Expect(memoryStore.LogicalMemorySize()).To(HaveValue(Equal("256MB")))
	})

	It("should not expose the cache through returned settings", func(ctx SpecContext) {
		Expect(memoryStore.Refresh(ctx)).To(Succeed())
		settings := memoryStore.Settings()
		settings.AvailableSizeOptions[0] = "changed"
		*settings.CurrentSize = "changed"

		Expect(memoryStore.LogicalMemorySizeOptions()[0]).To(Equal("128MB"))
		Expect(memoryStore.LogicalMemorySize()).To(HaveValue(Equal("256MB")))
	})

	It("should save the size as pending BIOS setting", func(ctx SpecContext) {
		msg, err := memoryStore.SaveSettings(ctx, "1024MB")
		Expect(err).NotTo(HaveOccurred())
		Expect(msg).To(Equal("Successfully saved logical memory block size."))
		Expect(memoryStore.LogicalMemorySize()).To(HaveValue(Equal("1024MB")))

		pending := &bmc.Bios{}
		Expect(client.GetEntityFromUri(ctx, biosSettingsURI, pending)).To(Succeed())
		Expect(pending.Attributes).To(HaveKeyWithValue(MemoryRegionSizeAttribute, "1024MB"))
	})

	It("should localize the confirmation with the printer of the context", func(ctx SpecContext) {
		germanCtx := i18n.IntoContext(ctx, i18n.Printer(language.German))
		msg, err := memoryStore.SaveSettings(germanCtx, "2048MB")
		Expect(err).NotTo(HaveOccurred())
		Expect(msg).To(Equal("Die Größe des logischen Speicherblocks wurde gespeichert."))
	})

	It("should return a localized error when saving fails", func(ctx SpecContext) {
		Expect(memoryStore.GetLogicalMemorySize(ctx)).To(Succeed())
		mockServer.InjectFault(http.MethodPatch, biosSettingsURI, server.Fault{StatusCode: http.StatusInternalServerError})

		msg, err := memoryStore.SaveSettings(ctx, "4096MB")
		Expect(msg).To(BeEmpty())

		var userErr *UserError
		Expect(errors.As(err, &userErr)).To(BeTrue())
		Expect(userErr.Key).To(Equal(i18n.ErrorSavingLogicalMemory))
		Expect(userErr.Error()).To(Equal("Error saving logical memory block size."))
		_, isRedfishErr := bmc.AsRedfishError(err)
		Expect(isRedfishErr).To(BeTrue())

		Expect(memoryStore.LogicalMemorySize()).To(HaveValue(Equal("256MB")))
	})
})
