// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ironcore-dev/hardware-inventory/bmc"
)

var _ = Describe("Conditions", func() {
	DescribeTable("DeconfigurationReason",
		func(conditions []bmc.Condition, reason string) {
			Expect(DeconfigurationReason(conditions)).To(Equal(reason))
		},
		Entry("no conditions", nil, DefaultDeconfigurationReason),
		Entry("condition without arguments", []bmc.Condition{{MessageID: "OpenBMC.0.1.HardwareDeconfigured"}},
			DefaultDeconfigurationReason),
		Entry("first argument of the first condition", []bmc.Condition{
			{MessageArgs: []string{"Fatal Error", "ignored"}},
			{MessageArgs: []string{"Predictive Error"}},
		}, "Fatal Error"),
	)

	DescribeTable("PELID",
		func(conditions []bmc.Condition, id string) {
			Expect(PELID(conditions)).To(Equal(id))
		},
		Entry("no conditions", nil, ""),
		Entry("condition without log entry", []bmc.Condition{{MessageArgs: []string{"Fatal Error"}}}, ""),
		Entry("log entry of the first condition", []bmc.Condition{
			{LogEntry: &bmc.Link{ODataID: "/redfish/v1/Systems/system/LogServices/EventLog/Entries/50004C14"}},
			{LogEntry: &bmc.Link{ODataID: "/redfish/v1/Systems/system/LogServices/EventLog/Entries/ignored"}},
		}, "50004C14"),
	)
})
