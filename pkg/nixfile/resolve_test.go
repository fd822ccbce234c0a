package nixfile_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/timasoft/declair/pkg/nixfile"
)

func TestNixfile(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Nixfile Suite")
}

var _ = Describe("ExpandTilde", func() {
	It("expands a leading ~/", func() {
		home, err := os.UserHomeDir()
		Expect(err).NotTo(HaveOccurred())

		expanded, err := nixfile.ExpandTilde("~/nixos/configuration.nix")
		Expect(err).NotTo(HaveOccurred())
		Expect(expanded).To(Equal(filepath.Join(home, "nixos", "configuration.nix")))
	})

	It("leaves other paths alone", func() {
		expanded, err := nixfile.ExpandTilde("/etc/nixos")
		Expect(err).NotTo(HaveOccurred())
		Expect(expanded).To(Equal("/etc/nixos"))
	})

	It("does not expand a bare tilde in the middle", func() {
		expanded, err := nixfile.ExpandTilde("/srv/~backup")
		Expect(err).NotTo(HaveOccurred())
		Expect(expanded).To(Equal("/srv/~backup"))
	})
})

var _ = Describe("Resolve", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "declair-nixfile-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("returns a file path unchanged", func() {
		file := filepath.Join(tmpDir, "custom.nix")
		Expect(os.WriteFile(file, []byte("{}\n"), 0o644)).To(Succeed())

		resolved, err := nixfile.Resolve(file)
		Expect(err).NotTo(HaveOccurred())
		Expect(resolved).To(Equal(file))
	})

	It("probes a directory for candidate filenames in order", func() {
		Expect(os.WriteFile(filepath.Join(tmpDir, "home.nix"), []byte("{}\n"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(tmpDir, "flake.nix"), []byte("{}\n"), 0o644)).To(Succeed())

		resolved, err := nixfile.Resolve(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(resolved).To(Equal(filepath.Join(tmpDir, "flake.nix")))
	})

	It("fails for a directory without any candidate", func() {
		_, err := nixfile.Resolve(tmpDir)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("configuration.nix"))
	})

	It("fails for a missing path", func() {
		_, err := nixfile.Resolve(filepath.Join(tmpDir, "nope"))
		Expect(err).To(MatchError(os.ErrNotExist))
	})
})
