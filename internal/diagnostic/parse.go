package diagnostic

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Format is a snapshot document encoding.
type Format string

// Supported snapshot encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a snapshot document leniently. Missing, null or non-numeric
// fields become 0 and numeric strings are accepted; the result is
// normalized. A missing conversionRates section falls back to the preset for
// the business type. Only a malformed document is an error.
func Parse(data []byte, format Format) (Snapshot, error) {
	var doc map[string]any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("decoding %s snapshot: %w", format, err)
	}
	return Normalize(fromDocument(doc)), nil
}

func fromDocument(doc map[string]any) Snapshot {
	financial := cast.ToStringMap(doc["financial"])
	benchmark := cast.ToStringMap(doc["benchmark"])
	history := cast.ToStringMap(doc["history"])
	investment := cast.ToStringMap(doc["investment"])
	validation := cast.ToStringMap(doc["validation"])

	businessType := BusinessType(strings.ToUpper(strings.TrimSpace(cast.ToString(benchmark["businessType"]))))
	if !businessType.Valid() {
		businessType = B2C
	}

	rates := DefaultsFor(businessType)
	if raw, ok := benchmark["conversionRates"]; ok {
		m := cast.ToStringMap(raw)
		rates = ConversionRates{
			ReachToClick: number(m["reachToClick"]),
			ClickToLead:  number(m["clickToLead"]),
			LeadToSale:   number(m["leadToSale"]),
		}
	}

	return Snapshot{
		Financial: Financial{
			AverageTicket:       number(financial["averageTicket"]),
			ProfitMargin:        number(financial["profitMargin"]),
			CurrentMonthlySales: count(financial["currentMonthlySales"]),
			MonthlyGoal:         count(financial["monthlyGoal"]),
		},
		Benchmark: Benchmark{
			BusinessType:    businessType,
			ConversionRates: rates,
		},
		History: History{
			HasHistory:            cast.ToBool(history["hasHistory"]),
			AverageLeadsPerMonth:  number(history["averageLeadsPerMonth"]),
			AverageConversionRate: number(history["averageConversionRate"]),
			AverageCAC:            number(history["averageCAC"]),
		},
		Investment: Investment{
			AvailableBudget:   number(investment["availableBudget"]),
			CurrentInvestment: number(investment["currentInvestment"]),
			MaxAcceptableCAC:  number(investment["maxAcceptableCAC"]),
		},
		Validation: Validation{
			TestDuration: count(validation["testDuration"]),
			TestBudget:   number(validation["testBudget"]),
			MinimumLeads: count(validation["minimumLeads"]),
		},
	}
}

// number coerces v to a float64, treating anything unparseable as 0.
func number(v any) float64 {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

// count coerces v to a whole non-negative number, truncating fractions.
func count(v any) int {
	f := money(number(v))
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(f))
}
