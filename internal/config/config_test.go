package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flashdeck/flashdeck/internal/config"
)

var _ = Describe("Config", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	Context("when the config file does not exist", func() {
		It("should return defaults without error", func() {
			cfg, err := config.Load(filepath.Join(tempDir, "missing.yaml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.DebounceMillis).To(Equal(300))
			Expect(cfg.DataFile).NotTo(BeEmpty())
		})
	})

	Context("when the config file exists", func() {
		It("should load the configured values", func() {
			path := filepath.Join(tempDir, "config.yaml")
			content := "data_file: /tmp/decks.json\ndebounce_millis: 150\nverbose: true\n"
			Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())

			cfg, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.DataFile).To(Equal("/tmp/decks.json"))
			Expect(cfg.DebounceMillis).To(Equal(150))
			Expect(cfg.Verbose).To(BeTrue())
		})

		It("should fill in defaults for omitted fields", func() {
			path := filepath.Join(tempDir, "config.yaml")
			Expect(os.WriteFile(path, []byte("verbose: true\n"), 0644)).To(Succeed())

			cfg, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.DataFile).NotTo(BeEmpty())
			Expect(cfg.DebounceMillis).To(Equal(300))
		})

		It("should reject malformed YAML", func() {
			path := filepath.Join(tempDir, "config.yaml")
			Expect(os.WriteFile(path, []byte("data_file: [broken\n"), 0644)).To(Succeed())

			_, err := config.Load(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
