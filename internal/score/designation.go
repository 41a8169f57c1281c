package score

// Designation maps a combined score onto the configured tier bands. Bands
// are validated at config load to be strictly decreasing and to end at
// min 0, which makes the mapping total and monotonic.
func (a *Aggregator) Designation(combined int) string {
	for _, band := range a.cfg.Bands {
		if combined >= band.Min {
			return band.Name
		}
	}
	// Unreachable with a validated config; the terminal band sits at 0.
	if len(a.cfg.Bands) > 0 {
		return a.cfg.Bands[len(a.cfg.Bands)-1].Name
	}
	return ""
}
