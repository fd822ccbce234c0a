package block_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/timasoft/declair/pkg/block"
)

var _ = Describe("Editor", func() {
	var tmpDir, path string

	write := func(content string) {
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
	}

	read := func(p string) string {
		data, err := os.ReadFile(p)
		Expect(err).NotTo(HaveOccurred())
		return string(data)
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "declair-block-test-*")
		Expect(err).NotTo(HaveOccurred())
		path = filepath.Join(tmpDir, "configuration.nix")
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("BackupPath", func() {
		It("replaces the extension with the backup suffix", func() {
			Expect(block.BackupPath("/etc/nixos/configuration.nix")).
				To(Equal("/etc/nixos/configuration.declair.bak"))
		})

		It("appends the suffix when there is no extension", func() {
			Expect(block.BackupPath("/tmp/nixcfg")).
				To(Equal("/tmp/nixcfg.declair.bak"))
		})
	})

	Describe("List", func() {
		It("lists the entries of a multi-line block", func() {
			write("{\n  with pkgs; [\n    git\n    vim\n  ];\n}\n")
			Expect(block.List(path)).To(Equal([]string{"git", "vim"}))
		})

		It("fails with ErrNoBlock when the marker is missing", func() {
			write("{ boot.loader.grub.enable = true; }\n")
			_, err := block.List(path)
			Expect(err).To(MatchError(block.ErrNoBlock))
		})

		It("wraps read failures", func() {
			_, err := block.List(filepath.Join(tmpDir, "missing.nix"))
			Expect(err).To(MatchError(os.ErrNotExist))
		})
	})

	Describe("Insert", func() {
		It("appends to a multi-line block with doubled closing indentation", func() {
			write("{\n  with pkgs; [\n    git\n  ];\n}\n")
			Expect(block.Insert(path, "vim")).To(Succeed())
			Expect(read(path)).To(Equal("{\n  with pkgs; [\n    git\n    vim\n  ];\n}\n"))
		})

		It("writes a backup holding the exact original bytes", func() {
			original := "{\n  with pkgs; [\n    git\n  ];\n}\n"
			write(original)
			Expect(block.Insert(path, "vim")).To(Succeed())
			Expect(read(block.BackupPath(path))).To(Equal(original))
		})

		It("fills an empty bracket pair", func() {
			write("with pkgs; []\n")
			Expect(block.Insert(path, "git")).To(Succeed())
			Expect(read(path)).To(Equal("with pkgs; [ git ]\n"))
		})

		It("extends a non-empty single-line block", func() {
			write("with pkgs; [ git ]\n")
			Expect(block.Insert(path, "vim")).To(Succeed())
			Expect(read(path)).To(Equal("with pkgs; [ git vim ]\n"))
		})

		It("adds a separating space before a tight closing bracket", func() {
			write("with pkgs; [git]\n")
			Expect(block.Insert(path, "vim")).To(Succeed())
			Expect(read(path)).To(Equal("with pkgs; [git vim ]\n"))
		})

		It("lists the new entry after the existing ones", func() {
			write("{\n  with pkgs; [\n    git\n  ];\n}\n")
			Expect(block.Insert(path, "vim")).To(Succeed())
			Expect(block.List(path)).To(Equal([]string{"git", "vim"}))
		})

		It("fails the second insert of the same package and keeps the file unchanged", func() {
			write("{\n  with pkgs; [\n    git\n  ];\n}\n")
			Expect(block.Insert(path, "vim")).To(Succeed())
			after := read(path)

			err := block.Insert(path, "vim")
			Expect(err).To(BeAssignableToTypeOf(block.ErrAlreadyPresent{}))
			Expect(read(path)).To(Equal(after))
		})

		It("allows a package whose name is a substring of an existing entry", func() {
			write("{\n  with pkgs; [\n    gitea\n  ];\n}\n")
			Expect(block.Insert(path, "git")).To(Succeed())
			Expect(block.List(path)).To(Equal([]string{"gitea", "git"}))
		})

		It("does not create a backup when the block is missing", func() {
			write("{ boot.loader.grub.enable = true; }\n")
			before := read(path)

			Expect(block.Insert(path, "vim")).To(MatchError(block.ErrNoBlock))
			Expect(read(path)).To(Equal(before))
			_, err := os.Stat(block.BackupPath(path))
			Expect(err).To(MatchError(os.ErrNotExist))
		})

		It("overwrites a stale backup on the next edit", func() {
			write("{\n  with pkgs; [\n    git\n  ];\n}\n")
			Expect(block.Insert(path, "vim")).To(Succeed())
			intermediate := read(path)
			Expect(block.Insert(path, "bat")).To(Succeed())
			Expect(read(block.BackupPath(path))).To(Equal(intermediate))
		})
	})

	Describe("Remove", func() {
		It("rewrites a single-line block without the removed token", func() {
			write("with pkgs; [ git vim ]")
			Expect(block.Remove(path, "git")).To(Succeed())
			Expect(read(path)).To(Equal("with pkgs; [ vim ]"))
		})

		It("deletes the matching line of a multi-line block", func() {
			write("{\n  with pkgs; [\n    git\n    vim\n  ];\n}\n")
			Expect(block.Remove(path, "git")).To(Succeed())
			Expect(read(path)).To(Equal("{\n  with pkgs; [\n    vim\n  ];\n}\n"))
		})

		It("requires an exact token match", func() {
			write("with pkgs; [ gitea ]\n")
			err := block.Remove(path, "git")
			Expect(err).To(BeAssignableToTypeOf(block.ErrNotFound{}))
		})

		It("leaves the file byte-identical when the token is absent", func() {
			original := "{\n  with pkgs; [\n    git\n  ];\n}\n"
			write(original)

			err := block.Remove(path, "vim")
			Expect(err).To(BeAssignableToTypeOf(block.ErrNotFound{}))
			Expect(read(path)).To(Equal(original))
			_, statErr := os.Stat(block.BackupPath(path))
			Expect(statErr).To(MatchError(os.ErrNotExist))
		})

		It("removes exactly one occurrence", func() {
			write("{\n  with pkgs; [\n    git\n    git\n  ];\n}\n")
			Expect(block.Remove(path, "git")).To(Succeed())
			Expect(block.List(path)).To(Equal([]string{"git"}))
		})

		It("fails with ErrNoBlock when the marker is missing", func() {
			write("{}\n")
			Expect(block.Remove(path, "git")).To(MatchError(block.ErrNoBlock))
		})

		It("writes a backup before mutating", func() {
			original := "with pkgs; [ git vim ]"
			write(original)
			Expect(block.Remove(path, "vim")).To(Succeed())
			Expect(read(block.BackupPath(path))).To(Equal(original))
		})
	})
})
