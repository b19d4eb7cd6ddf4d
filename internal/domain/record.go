package domain

// ServiceBurn is one service's burn contribution on a single day.
type ServiceBurn struct {
	Service string  // service name, as configured
	Tokens  float64 // tokens burned by this service today
}

// DailyRecord is one simulated day. Records are produced in day order,
// one per day of the horizon, with Day starting at 1.
type DailyRecord struct {
	Day              int           // 1-based day index
	PriceNoBurn      float64       // market price from growth alone, USD
	PriceWithBurn    float64       // supply-adjusted price, USD
	RemainingSupply  float64       // supply after today's burn, floored at 1
	DailyBurned      float64       // total tokens burned today
	CumulativeBurned float64       // nominal burns accumulated through today
	ServiceBurns     []ServiceBurn // per-service burns, config order
}

// BurnFor returns the day's burn for the named service and whether the
// service exists in the record.
func (r DailyRecord) BurnFor(service string) (float64, bool) {
	for _, sb := range r.ServiceBurns {
		if sb.Service == service {
			return sb.Tokens, true
		}
	}
	return 0, false
}
