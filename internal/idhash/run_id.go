package idhash

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"

	"tokenomics-lab/internal/domain"
)

// RunIDLength is the number of base58 characters kept after the prefix.
const RunIDLength = 16

// ComputeRunID computes a deterministic run ID for a simulation config.
// Formula: "run_" + base58(SHA256(price|pct|days|supply|symbol|svc...))[:16]
// where each service contributes "name:rate:volume" in config order.
// Equal configs always map to the same ID.
func ComputeRunID(cfg domain.SimulationConfig) string {
	var b strings.Builder
	b.WriteString(formatFloat(cfg.InitialPrice))
	b.WriteByte('|')
	b.WriteString(formatFloat(cfg.YearlyPriceChangePct))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(cfg.HorizonDays))
	b.WriteByte('|')
	b.WriteString(formatFloat(cfg.FixedSupply))
	b.WriteByte('|')
	b.WriteString(cfg.TokenSymbol)
	for _, svc := range cfg.Services {
		b.WriteByte('|')
		b.WriteString(svc.Name)
		b.WriteByte(':')
		b.WriteString(formatFloat(svc.BurnRate))
		b.WriteByte(':')
		b.WriteString(formatFloat(svc.DailyVolume))
	}

	hash := sha256.Sum256([]byte(b.String()))
	encoded := base58.Encode(hash[:])
	if len(encoded) > RunIDLength {
		encoded = encoded[:RunIDLength]
	}
	return "run_" + encoded
}

// formatFloat renders the canonical text form used for hashing. The 'g'
// format with -1 precision is the shortest representation that round-trips,
// so equal float64 values always hash identically.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
