package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/philipp01105/rlog/config"
	"github.com/philipp01105/rlog/core"
	"github.com/philipp01105/rlog/handler"
)

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
	return path
}

var _ = Describe("Config", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "rlog-config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
		os.Unsetenv("RLOG_LOGGING_LEVEL")
		os.Unsetenv("RLOG_CONSOLE_TARGET")
	})

	Describe("Load", func() {
		Context("with valid config file", func() {
			BeforeEach(func() {
				writeFile(tempDir, "rlog.yaml", `
logging:
  level: "notice"
  levels: "syslog"
  messages:
    server.started:
      level: "notice"
      message: "server started"
    db.failed:
      level: "err"
      message: "database unreachable"
console:
  target: "discard"
  error_rank: 3
`)
			})

			It("should load configuration successfully", func() {
				cfg, err := config.Load(tempDir)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg).NotTo(BeNil())
			})

			It("should parse logging settings", func() {
				cfg, _ := config.Load(tempDir)
				Expect(cfg.Logging.Level).To(Equal("notice"))
				Expect(cfg.Logging.Levels).To(Equal("syslog"))
				Expect(cfg.Console.Target).To(Equal(config.TargetDiscard))
				Expect(cfg.Console.ErrorRank).To(Equal(3))
			})

			It("should keep dotted message keys intact", func() {
				cfg, _ := config.Load(tempDir)
				Expect(cfg.Templates()).To(HaveKeyWithValue("server.started",
					core.Template{Level: "notice", Message: "server started"}))
				Expect(cfg.Templates()).To(HaveKey("db.failed"))
			})

			It("should let environment variables override the file", func() {
				os.Setenv("RLOG_LOGGING_LEVEL", "debug")
				cfg, err := config.Load(tempDir)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.Level).To(Equal("debug"))
			})

			It("should build a working logger", func() {
				cfg, err := config.Load(tempDir)
				Expect(err).NotTo(HaveOccurred())

				log, err := config.NewLogger(cfg)
				Expect(err).NotTo(HaveOccurred())
				defer log.Close()

				Expect(log.Level()).To(Equal(core.Level{Name: "notice", Rank: 5}))
				Expect(log.Keys()).To(Equal([]string{"db.failed", "server.started"}))

				emitted, err := log.Log("db.failed", map[string]string{"host": "db1"})
				Expect(err).NotTo(HaveOccurred())
				Expect(emitted).To(BeTrue())
			})
		})

		Context("without a config file", func() {
			It("should use defaults and fail validation without messages", func() {
				_, err := config.Load(tempDir)
				Expect(err).To(MatchError(config.ErrInvalidConfig))
				Expect(err.Error()).To(ContainSubstring("Messages"))
			})
		})

		Context("with a message catalog", func() {
			BeforeEach(func() {
				catalog := writeFile(tempDir, "messages.yaml", `
User.Login:
  level: info
  message: user logged in
server.started:
  level: info
  message: from catalog
`)
				writeFile(tempDir, "rlog.yaml", `
logging:
  catalog: "`+filepath.ToSlash(catalog)+`"
  messages:
    server.started:
      level: notice
      message: inline wins
`)
			})

			It("should merge catalog messages under inline ones", func() {
				cfg, err := config.Load(tempDir)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.Messages).To(HaveLen(2))
				Expect(cfg.Logging.Messages).To(HaveKeyWithValue("User.Login",
					core.Template{Level: "info", Message: "user logged in"}))
				Expect(cfg.Logging.Messages).To(HaveKeyWithValue("server.started",
					core.Template{Level: "notice", Message: "inline wins"}))
			})
		})

		Context("with a missing catalog", func() {
			BeforeEach(func() {
				writeFile(tempDir, "rlog.yaml", `
logging:
  catalog: "`+filepath.ToSlash(filepath.Join(tempDir, "nope.yaml"))+`"
`)
			})

			It("should return the open error", func() {
				_, err := config.Load(tempDir)
				Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
			})
		})

		Context("with malformed YAML", func() {
			BeforeEach(func() {
				writeFile(tempDir, "rlog.yaml", "logging: [unterminated\n")
			})

			It("should return the read error", func() {
				_, err := config.Load(tempDir)
				Expect(err).To(HaveOccurred())
				Expect(err).NotTo(MatchError(config.ErrInvalidConfig))
			})
		})
	})

	Describe("LoadCatalog", func() {
		It("should parse templates", func() {
			catalog, err := config.LoadCatalog(strings.NewReader(`
cache.miss: {level: debug, message: cache miss}
`))
			Expect(err).NotTo(HaveOccurred())
			Expect(catalog).To(Equal(map[string]core.Template{
				"cache.miss": {Level: "debug", Message: "cache miss"},
			}))
		})

		It("should return an empty catalog for an empty document", func() {
			catalog, err := config.LoadCatalog(strings.NewReader(""))
			Expect(err).NotTo(HaveOccurred())
			Expect(catalog).To(BeEmpty())
		})

		It("should reject unknown fields", func() {
			_, err := config.LoadCatalog(strings.NewReader(`
cache.miss: {level: debug, text: cache miss}
`))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Validate", func() {
		var cfg config.Config

		BeforeEach(func() {
			cfg = config.Config{
				Logging: config.LoggingConfig{
					Level:  "info",
					Levels: "syslog",
					Messages: map[string]config.MessageConfig{
						"a": {Level: "info", Message: "a"},
					},
				},
				Console: config.ConsoleConfig{Target: config.TargetStdout, ErrorRank: -1},
			}
		})

		It("should accept a valid configuration", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should reject an unknown preset", func() {
			cfg.Logging.Levels = "rfc9999"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should accept a preset name in any case", func() {
			cfg.Logging.Levels = "Syslog"
			Expect(cfg.Validate()).To(Succeed())

			ls, err := cfg.Levels()
			Expect(err).NotTo(HaveOccurred())
			Expect(ls.Names()).To(Equal(core.Syslog.Names()))
		})

		It("should reject a level outside the enumeration", func() {
			cfg.Logging.Level = "warn"
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())

			var verrs validation.Errors
			Expect(errors.As(err, &verrs)).To(BeTrue())
			Expect(verrs).To(HaveKey("Logging"))
		})

		It("should accept the standard preset", func() {
			cfg.Logging.Levels = "standard"
			cfg.Logging.Level = "warn"
			cfg.Logging.Messages = map[string]config.MessageConfig{"a": {Level: "error", Message: "a"}}
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should reject a message with an unknown level", func() {
			cfg.Logging.Messages["b"] = config.MessageConfig{Level: "loud", Message: "b"}
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject a message without text", func() {
			cfg.Logging.Messages["b"] = config.MessageConfig{Level: "info"}
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should accept unique custom levels", func() {
			cfg.Logging.Levels = ""
			cfg.Logging.CustomLevels = []string{"page", "ticket", "info"}
			Expect(cfg.Validate()).To(Succeed())

			ls, err := cfg.Levels()
			Expect(err).NotTo(HaveOccurred())
			Expect(ls.Names()).To(Equal([]string{"page", "ticket", "info"}))
		})

		It("should reject duplicate custom levels", func() {
			cfg.Logging.CustomLevels = []string{"info", "info"}
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject an unknown console target", func() {
			cfg.Console.Target = "syslogd"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject an error rank below -1", func() {
			cfg.Console.ErrorRank = -2
			Expect(cfg.Validate()).NotTo(Succeed())
		})
	})

	Describe("LoggerConfig", func() {
		It("should carry levels, level and messages", func() {
			cfg := config.Config{
				Logging: config.LoggingConfig{
					Level:    "warn",
					Levels:   "standard",
					Messages: map[string]config.MessageConfig{"x": {Level: "error", Message: "x"}},
				},
			}
			lc, err := cfg.LoggerConfig(handler.Discard)
			Expect(err).NotTo(HaveOccurred())
			Expect(lc.Level).To(Equal("warn"))
			Expect(lc.Levels.Names()).To(Equal(core.Standard.Names()))
			Expect(lc.Messages).To(HaveKey("x"))
			Expect(lc.Handler).To(Equal(handler.Discard))
		})

		It("should normalize level names", func() {
			cfg := config.Config{
				Logging: config.LoggingConfig{
					Level:    " WARNING ",
					Levels:   "syslog",
					Messages: map[string]config.MessageConfig{"x": {Level: "Err", Message: "x"}},
				},
				Console: config.ConsoleConfig{Target: config.TargetStdout},
			}
			Expect(cfg.Validate()).NotTo(HaveOccurred())

			lc, err := cfg.LoggerConfig(handler.Discard)
			Expect(err).NotTo(HaveOccurred())
			Expect(lc.Level).To(Equal("warning"))
			Expect(lc.Messages["x"].Level).To(Equal("err"))
		})

		It("should fail for an unknown preset", func() {
			cfg := config.Config{Logging: config.LoggingConfig{Levels: "nope"}}
			_, err := cfg.LoggerConfig(handler.Discard)
			Expect(err).To(MatchError(core.ErrInvalidLevels))
		})
	})
})
