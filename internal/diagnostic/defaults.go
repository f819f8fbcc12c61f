package diagnostic

// Initial field values for a new diagnostic session.
const (
	DefaultProfitMargin = 30
	DefaultTestDuration = 30
	DefaultMinimumLeads = 50
)

// Defaults returns the snapshot a new wizard session starts from.
func Defaults() Snapshot {
	return Snapshot{
		Financial: Financial{
			ProfitMargin: DefaultProfitMargin,
		},
		Benchmark: Benchmark{
			BusinessType:    B2C,
			ConversionRates: DefaultsFor(B2C),
		},
		Validation: Validation{
			TestDuration: DefaultTestDuration,
			MinimumLeads: DefaultMinimumLeads,
		},
	}
}
