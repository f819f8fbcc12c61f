package diagnostic

// Benchmark conversion presets per business model.
var (
	// BenchmarkB2C applies to direct-to-consumer sales.
	BenchmarkB2C = ConversionRates{ReachToClick: 5, ClickToLead: 20, LeadToSale: 20}

	// BenchmarkB2B applies to sales to other companies.
	BenchmarkB2B = ConversionRates{ReachToClick: 5, ClickToLead: 32, LeadToSale: 12.5}
)

// DefaultsFor returns the default conversion rates for a business type.
// Anything other than B2B gets the B2C preset.
func DefaultsFor(t BusinessType) ConversionRates {
	if t == B2B {
		return BenchmarkB2B
	}
	return BenchmarkB2C
}

// BusinessTypes lists the supported business types in display order.
func BusinessTypes() []BusinessType {
	return []BusinessType{B2C, B2B}
}

// Describe returns a short human description of a business type.
func (t BusinessType) Describe() string {
	switch t {
	case B2B:
		return "Venda para outras empresas"
	case B2C:
		return "Venda direta para consumidor final"
	default:
		return ""
	}
}
