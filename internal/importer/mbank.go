package importer

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cleared-dev/plbank/internal/cleaner"
	"github.com/cleared-dev/plbank/internal/config"
	"github.com/cleared-dev/plbank/internal/model"
	"github.com/cleared-dev/plbank/internal/textenc"
)

// MBank imports mBank semicolon-separated account history exports.
type MBank struct {
	name     string
	patterns []*regexp.Regexp
	account  string
	currency string
	logger   *log.Logger
}

// NewMBank creates an importer from its config entry.
func NewMBank(cfg config.ImporterConfig, logger *log.Logger) (*MBank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid importer config: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	patterns := make([]*regexp.Regexp, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		patterns = append(patterns, regexp.MustCompile(p))
	}

	return &MBank{
		name:     cfg.Name,
		patterns: patterns,
		account:  cfg.Account,
		currency: cfg.Currency,
		logger:   logger.With("importer", cfg.Name),
	}, nil
}

// Name returns the configured importer name.
func (m *MBank) Name() string { return m.name }

// Identify reports whether every file pattern matches path.
func (m *MBank) Identify(path string) bool {
	for _, re := range m.patterns {
		if !re.MatchString(path) {
			return false
		}
	}
	return true
}

// AccountFor returns the account the file's transactions belong to.
func (m *MBank) AccountFor(string) string { return m.account }

// Extract reads the export at path and returns its transactions. Existing
// entries are not consulted; deduplication is left to the caller.
func (m *MBank) Extract(path string, _ []model.Transaction) ([]model.Transaction, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return m.ExtractBytes(path, raw)
}

// ExtractBytes runs the pipeline over an export already in memory.
// filename is only recorded in metadata and log lines.
func (m *MBank) ExtractBytes(filename string, raw []byte) ([]model.Transaction, error) {
	decoded := textenc.Resolve(raw)
	m.logger.Debug("decoded export", "file", filename, "encoding", decoded.Encoding, "fallback", decoded.Fallback)

	results, err := ParseRows(strings.NewReader(cleaner.Clean(decoded.Text)))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	txns := Build(results, BuildOptions{
		Account:  m.account,
		Currency: m.currency,
		Filename: filename,
	}, m.logger)
	m.logger.Info("extracted", "file", filename, "rows", len(results), "transactions", len(txns))
	return txns, nil
}
