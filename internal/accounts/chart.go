// Package accounts maps template account roles to concrete chart-of-accounts entries.
package accounts

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default_chart.yaml
var defaultChartYAML []byte

// ErrUnmappedRole is returned when the chart has no account for a role.
var ErrUnmappedRole = errors.New("no account mapped for role")

// Chart is the on-disk chart-of-accounts mapping.
type Chart struct {
	Name  string                              `yaml:"name"`
	Roles map[domain.AccountRole]RoleAccounts `yaml:"roles"`
}

// RoleAccounts holds the account used for a role, optionally specialised per category.
type RoleAccounts struct {
	Default    domain.AccountRef            `yaml:"default"`
	Categories map[string]domain.AccountRef `yaml:"categories,omitempty"`
}

// Load reads a chart YAML file from disk.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a chart.
func Parse(data []byte) (*Chart, error) {
	var c Chart
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing chart of accounts: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the embedded chart.
func Default() *Chart {
	c, err := Parse(defaultChartYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded chart of accounts is invalid: %v", err))
	}
	return c
}

// LoadOrDefault loads path, or the embedded chart when path is empty.
func LoadOrDefault(path string) (*Chart, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Chart) validate() error {
	if len(c.Roles) == 0 {
		return errors.New("chart of accounts has no roles")
	}
	for role, ra := range c.Roles {
		if ra.Default.Code == "" {
			return fmt.Errorf("role %q: default account code is required", role)
		}
		for cat, ref := range ra.Categories {
			if ref.Code == "" {
				return fmt.Errorf("role %q category %q: account code is required", role, cat)
			}
		}
	}
	return nil
}

// Lookup returns the account for role. A category that the chart does not
// specialise falls back to the role's default account.
func (c *Chart) Lookup(role domain.AccountRole, category string) (domain.AccountRef, error) {
	ra, ok := c.Roles[role]
	if !ok {
		return domain.AccountRef{}, fmt.Errorf("%w %q", ErrUnmappedRole, role)
	}
	if category != "" {
		if ref, ok := ra.Categories[strings.ToLower(strings.TrimSpace(category))]; ok {
			return ref, nil
		}
	}
	return ra.Default, nil
}
