// Package data holds the protocol and vault snapshot every dashboard panel reads.
package data

import (
	"errors"
	"fmt"
)

// Risk bounds
const (
	MaxRiskScore = 100
	MaxRiskLevel = 10
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Protocol is a DeFi protocol's headline stats
type Protocol struct {
	Name      string  `json:"name"`
	APY       float64 `json:"apy"`
	TVL       string  `json:"tvl"`
	RiskScore int     `json:"riskScore"`
	Logo      string  `json:"logo"`
}

// Performance is the percentage return over the trailing period
type Performance struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
}

// Vault is one of the user's yield positions
type Vault struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	TotalValue  string      `json:"totalValue"`
	APY         float64     `json:"apy"`
	RiskLevel   int         `json:"riskLevel"`
	Tokens      []string    `json:"tokens"`
	Protocols   []string    `json:"protocols"`
	Performance Performance `json:"performance"`
}

// Snapshot is everything the panels render. Loading is the only field that changes.
type Snapshot struct {
	Protocols        []Protocol `json:"protocols"`
	Vaults           []Vault    `json:"vaults"`
	TotalTVL         string     `json:"totalTVL"`
	TotalYield       string     `json:"totalYield"`
	ActiveStrategies int        `json:"activeStrategies"`
	Loading          bool       `json:"isLoading"`
}

// Validate checks the risk bounds of every protocol and vault.
func (s Snapshot) Validate() error {
	for _, p := range s.Protocols {
		if p.RiskScore < 0 || p.RiskScore > MaxRiskScore {
			return fmt.Errorf("%w: protocol %s risk score %d outside [0,%d]", ErrInvalidSnapshot, p.Name, p.RiskScore, MaxRiskScore)
		}
	}
	for _, v := range s.Vaults {
		if v.RiskLevel < 0 || v.RiskLevel > MaxRiskLevel {
			return fmt.Errorf("%w: vault %s risk level %d outside [0,%d]", ErrInvalidSnapshot, v.Name, v.RiskLevel, MaxRiskLevel)
		}
		if _, err := ParseUSD(v.TotalValue); err != nil {
			return fmt.Errorf("%w: vault %s: %v", ErrInvalidSnapshot, v.Name, err)
		}
	}
	return nil
}

// clone copies the slices so callers can't mutate the store's arrays.
func (s Snapshot) clone() Snapshot {
	out := s
	out.Protocols = append([]Protocol(nil), s.Protocols...)
	out.Vaults = make([]Vault, len(s.Vaults))
	for i, v := range s.Vaults {
		v.Tokens = append([]string(nil), v.Tokens...)
		v.Protocols = append([]string(nil), v.Protocols...)
		out.Vaults[i] = v
	}
	return out
}
