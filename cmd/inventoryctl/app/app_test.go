// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ironcore-dev/hardware-inventory/bmc/mock/server"
	"github.com/ironcore-dev/hardware-inventory/internal/store"
)

const (
	coreURI = "/redfish/v1/Systems/system/Processors/dcm0-cpu1/SubProcessors/core0"

	cannotBeDeletedBody = `{"error":{"code":"Base.1.8.GeneralError","message":"A general error has occurred.",` +
		`"@Message.ExtendedInfo":[{"MessageId":"Base.1.8.ResourceCannotBeDeleted"}]}}`
)

var _ = Describe("inventoryctl", func() {
	Describe("config", func() {
		var configPath string

		BeforeEach(func() {
			configPath = filepath.Join(GinkgoT().TempDir(), "config.yaml")
			Expect(os.WriteFile(configPath, []byte(
				"endpoint: https://file.example\nusername: file-user\nconcurrency: 4\nlanguage: de\n"), 0o600)).To(Succeed())
		})

		It("should prefer explicitly set flags over the config file", func() {
			root := NewCommand()
			Expect(root.ParseFlags([]string{
				"--config", configPath,
				"--endpoint", "https://flag.example",
				"--concurrency", "2",
				"--language", "en",
			})).To(Succeed())

			c, err := loadConfig(root)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Endpoint).To(Equal("https://flag.example"))
			Expect(c.Concurrency).To(Equal(2))
			Expect(c.Language).To(Equal("en"))
			Expect(c.Username).To(Equal("file-user"))
		})

		It("should keep config file values for flags left at their defaults", func() {
			root := NewCommand()
			Expect(root.ParseFlags([]string{"--config", configPath})).To(Succeed())

			c, err := loadConfig(root)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Endpoint).To(Equal("https://file.example"))
			Expect(c.Concurrency).To(Equal(4))
			Expect(c.Language).To(Equal("de"))
		})
	})

	Describe("output", func() {
		BeforeEach(func() {
			previous := output
			DeferCleanup(func() { output = previous })
		})

		state := store.SettingsState{URI: "/redfish/v1/Systems/system/Memory/dimm0", Enabled: true}

		It("should print YAML", func() {
			output = "yaml"
			var buf bytes.Buffer
			Expect(printObject(&buf, state)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("uri: /redfish/v1/Systems/system/Memory/dimm0\n"))
			Expect(buf.String()).To(ContainSubstring("enabled: true\n"))
		})

		It("should print JSON", func() {
			output = "json"
			var buf bytes.Buffer
			Expect(printObject(&buf, state)).To(Succeed())
			Expect(buf.String()).To(Equal("{\n  \"uri\": \"/redfish/v1/Systems/system/Memory/dimm0\",\n  \"enabled\": true\n}\n"))
		})

		It("should reject an unsupported format", func() {
			output = "xml"
			var buf bytes.Buffer
			Expect(printObject(&buf, state)).To(MatchError(`unsupported output format "xml"`))
			Expect(buf.Len()).To(BeZero())
		})
	})

	Describe("commands", func() {
		It("should list the cores as JSON", func(ctx SpecContext) {
			out, err := executeAgainstMock(ctx, "cores", "-o", "json")
			Expect(err).NotTo(HaveOccurred())

			var cores []store.CoreRecord
			Expect(json.Unmarshal([]byte(out), &cores)).To(Succeed())
			Expect(cores).To(HaveLen(3))
			Expect(cores[1].DeconfigurationType).To(Equal("Fatal Error"))
		})

		It("should list the present DIMMs as YAML", func(ctx SpecContext) {
			out, err := executeAgainstMock(ctx, "dimms")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("locationCode: U78DA.ND0.WZS004K-P0-C12"))
			Expect(out).NotTo(ContainSubstring("dimm2"))
		})

		It("should show the memory settings", func(ctx SpecContext) {
			out, err := executeAgainstMock(ctx, "memory")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("currentSize: 256MB"))
			Expect(out).To(ContainSubstring("- 4096MB"))
		})

		It("should set the memory size with a localized confirmation", func(ctx SpecContext) {
			out, err := executeAgainstMock(ctx, "memory", "set", "1024MB", "--language", "de")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("Die Größe des logischen Speicherblocks wurde gespeichert.\n"))
		})

		It("should disable a core", func(ctx SpecContext) {
			out, err := executeAgainstMock(ctx, "cores", "disable", coreURI)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("core " + coreURI + " disabled\n"))
		})

		It("should fail when the last functional core cannot be deconfigured", func(ctx SpecContext) {
			mockServer.InjectFault(http.MethodPatch, coreURI, server.Fault{
				StatusCode: http.StatusBadRequest,
				Body:       cannotBeDeletedBody,
			})

			out, err := executeAgainstMock(ctx, "cores", "disable", coreURI)
			Expect(err).To(MatchError(
				"The resource cannot be deconfigured because the system requires at least one functional resource of this kind."))
			Expect(out).To(BeEmpty())

			_, err = executeAgainstMock(ctx, "cores", "disable", coreURI, "--language", "de")
			Expect(err).To(MatchError(ContainSubstring("Die Ressource kann nicht dekonfiguriert werden")))
		})

		It("should fail with a localized message when enabling a DIMM fails", func(ctx SpecContext) {
			dimmURI := "/redfish/v1/Systems/system/Memory/dimm1"
			mockServer.InjectFault(http.MethodPatch, dimmURI, server.Fault{StatusCode: http.StatusInternalServerError})

			_, err := executeAgainstMock(ctx, "dimms", "enable", dimmURI)
			Expect(err).To(MatchError("Error enabling the setting."))
		})

		It("should reject an invalid language", func(ctx SpecContext) {
			_, err := executeAgainstMock(ctx, "cores", "--language", "!!")
			Expect(err).To(MatchError(`invalid language "!!"`))
		})

		It("should require an endpoint", func(ctx SpecContext) {
			_, err := execute(ctx, "cores")
			Expect(err).To(MatchError(ContainSubstring("endpoint must be set")))
		})

		It("should require a URI to toggle a core", func(ctx SpecContext) {
			_, err := executeAgainstMock(ctx, "cores", "enable")
			Expect(err).To(HaveOccurred())
		})
	})
})
