package declaircmder_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	declaircmder "github.com/timasoft/declair/cmd/declair"
	"github.com/timasoft/declair/pkg/block"
)

func TestDeclair(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Declair Command Suite")
}

var _ = Describe("NewDeclairCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := declaircmder.NewDeclairCmd()
		Expect(cmd.Use).To(Equal("declair"))
	})

	It("has all subcommands", func() {
		cmd := declaircmder.NewDeclairCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements(
			"add", "remove", "list", "search", "init", "config", "version",
		))
	})

	It("registers the global flags", func() {
		cmd := declaircmder.NewDeclairCmd()
		for _, name := range []string{"debug", "config-dir", "no-input", "no-rebuild"} {
			Expect(cmd.PersistentFlags().Lookup(name)).NotTo(BeNil())
		}
	})
})

var _ = Describe("Edit command execution", func() {
	var (
		tmpDir    string
		configDir string
		nixPath   string
	)

	const nixContent = `{ config, pkgs, ... }:
{
  environment.systemPackages = with pkgs; [
    git
  ];
}
`

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "declair-cmd-test-*")
		Expect(err).NotTo(HaveOccurred())

		configDir = filepath.Join(tmpDir, ".declair")
		Expect(os.MkdirAll(configDir, 0o755)).To(Succeed())

		nixPath = filepath.Join(tmpDir, "configuration.nix")
		Expect(os.WriteFile(nixPath, []byte(nixContent), 0o644)).To(Succeed())

		configTOML := "version = 0\n\n[nix]\npath = " + tomlQuote(nixPath) + "\n"
		Expect(os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(configTOML), 0o600)).To(Succeed())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	execute := func(args ...string) (string, error) {
		cmd := declaircmder.NewDeclairCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetIn(strings.NewReader(""))
		cmd.SetArgs(append(args, "--config-dir", configDir, "--no-rebuild"))
		err := cmd.Execute()
		return out.String(), err
	}

	Describe("add", func() {
		It("inserts the package and writes a backup", func() {
			_, err := execute("add", "vim", "--no-input")
			Expect(err).NotTo(HaveOccurred())

			entries, err := block.List(nixPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(Equal([]string{"git", "vim"}))

			backup, err := os.ReadFile(block.BackupPath(nixPath))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(backup)).To(Equal(nixContent))
		})

		It("fails on a duplicate entry", func() {
			_, err := execute("add", "git", "--no-input")
			Expect(err).To(HaveOccurred())

			data, err := os.ReadFile(nixPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(nixContent))
		})

		It("requires a package name under --no-input", func() {
			_, err := execute("add", "--no-input")
			Expect(err).To(HaveOccurred())
		})

		It("honors the --config flag over the config file", func() {
			other := filepath.Join(tmpDir, "other.nix")
			Expect(os.WriteFile(other, []byte("with pkgs; [ ]\n"), 0o644)).To(Succeed())

			_, err := execute("add", "htop", "--no-input", "--config", other)
			Expect(err).NotTo(HaveOccurred())

			entries, err := block.List(other)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(Equal([]string{"htop"}))

			// The configured file is untouched.
			data, err := os.ReadFile(nixPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(nixContent))
		})

		It("fails without a block to edit", func() {
			Expect(os.WriteFile(nixPath, []byte("{ }\n"), 0o644)).To(Succeed())

			_, err := execute("add", "vim", "--no-input")
			Expect(err).To(HaveOccurred())

			_, err = os.Stat(block.BackupPath(nixPath))
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})

	Describe("remove", func() {
		It("removes the package", func() {
			_, err := execute("remove", "git", "--no-input")
			Expect(err).NotTo(HaveOccurred())

			entries, err := block.List(nixPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("fails for an absent package and leaves the file unchanged", func() {
			_, err := execute("remove", "vim", "--no-input")
			Expect(err).To(HaveOccurred())

			data, err := os.ReadFile(nixPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(nixContent))
		})
	})

	Describe("list", func() {
		It("prints the entries with their source file", func() {
			out, err := execute("list")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Package"))
			Expect(out).To(ContainSubstring("git"))
			Expect(out).To(ContainSubstring(nixPath))
		})

		It("resolves a directory to its configuration file", func() {
			out, err := execute("list", "--config", tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("git"))
		})
	})
})

// tomlQuote quotes a string as a TOML value.
func tomlQuote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\\", "\\\\") + "\""
}
