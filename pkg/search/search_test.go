package search_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/timasoft/declair/pkg/search"
)

func TestSearch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Search Suite")
}

var _ = Describe("ParseResults", func() {
	It("decodes results sorted by attribute path", func() {
		data := []byte(`{
			"legacyPackages.x86_64-linux.vim": {"pname": "vim", "version": "9.1", "description": "The editor"},
			"legacyPackages.x86_64-linux.git": {"pname": "git", "version": "2.47.0", "description": "Distributed VCS"}
		}`)

		packages, err := search.ParseResults(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(packages).To(HaveLen(2))
		Expect(packages[0].Name).To(Equal("git"))
		Expect(packages[1].Name).To(Equal("vim"))
		Expect(packages[0].Version).To(Equal("2.47.0"))
	})

	It("tolerates a missing description", func() {
		data := []byte(`{"legacyPackages.x86_64-linux.hello": {"pname": "hello", "version": "2.12"}}`)

		packages, err := search.ParseResults(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(packages[0].Description).To(BeEmpty())
		Expect(packages[0].Label()).To(Equal("hello 2.12"))
	})

	It("falls back to the attribute leaf when pname is absent", func() {
		data := []byte(`{"legacyPackages.x86_64-linux.ripgrep": {"version": "14.1.0"}}`)

		packages, err := search.ParseResults(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(packages[0].Name).To(Equal("ripgrep"))
	})

	It("returns an empty slice for an empty object", func() {
		packages, err := search.ParseResults([]byte(`{}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(packages).To(BeEmpty())
	})

	It("surfaces a typed error for malformed JSON", func() {
		_, err := search.ParseResults([]byte(`not json`))
		var parseErr search.ParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
	})
})

var _ = Describe("Label", func() {
	It("joins name, version, and description", func() {
		p := search.Package{Name: "git", Version: "2.47.0", Description: "Distributed VCS"}
		Expect(p.Label()).To(Equal("git 2.47.0: Distributed VCS"))
	})
})
