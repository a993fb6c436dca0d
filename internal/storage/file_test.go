package storage_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flashdeck/flashdeck/internal/storage"
)

var _ = Describe("FileStore", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "storage-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("should report absence before the first write", func() {
		store := storage.NewFileStore(filepath.Join(tempDir, "decks.json"))
		_, ok, err := store.Read()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("should round-trip the record", func() {
		store := storage.NewFileStore(filepath.Join(tempDir, "decks.json"))
		Expect(store.Write([]byte(`[{"id":"deck-1"}]`))).To(Succeed())

		data, ok, err := store.Read()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(string(data)).To(Equal(`[{"id":"deck-1"}]`))
	})

	It("should create missing parent directories on write", func() {
		store := storage.NewFileStore(filepath.Join(tempDir, "nested", "dir", "decks.json"))
		Expect(store.Write([]byte("[]"))).To(Succeed())

		_, ok, err := store.Read()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})
})
