package adapters

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"go-checkout/internal/checkout/domain"
	"go-checkout/pkg/errors"
)

// RulePack is an ordered list of discount rules stored in YAML:
//
//	version: v1
//	rules:
//	  - id: seasonal
//	    type: percentage
//	    value: 10
//	  - id: voucher
//	    type: fixed
//	    value: 50
type RulePack struct {
	Version string       `yaml:"version"`
	Rules   []RuleConfig `yaml:"rules"`
}

// RuleConfig describes one rule of a pack. Value is decoded from its YAML
// text so amounts stay exact.
type RuleConfig struct {
	ID    string          `yaml:"id"`
	Type  string          `yaml:"type"`
	Value decimal.Decimal `yaml:"value"`
}

// LoadRulePack reads a rule pack from a YAML file
func LoadRulePack(path string) (*RulePack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule pack %s: %w", path, err)
	}
	return ParseRulePack(data)
}

// ParseRulePack decodes a rule pack from YAML
func ParseRulePack(data []byte) (*RulePack, error) {
	var pack RulePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, errors.NewValidation("invalid rule pack", err.Error())
	}
	return &pack, nil
}

// Calculator builds a discount calculator with the pack's rules in file order
func (p *RulePack) Calculator() (*domain.DiscountCalculator, error) {
	calc := domain.NewDiscountCalculator()
	for i, rc := range p.Rules {
		rule, err := domain.ParseRule(rc.Type, rc.Value)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("rule %d (%s)", i, rc.ID))
		}
		calc.AddRule(rule)
	}
	return calc, nil
}
