package scoring

// Tier labels with inclusive lower bounds.
const (
	TierExceptional = "Exceptional"
	TierStrong      = "Strong"
	TierGood        = "Good"
	TierPotential   = "Potential"
	TierLimited     = "Limited"
)

// TierFor buckets a compatibility score into its presentation label.
func TierFor(score float64) string {
	switch {
	case score >= 75:
		return TierExceptional
	case score >= 60:
		return TierStrong
	case score >= 45:
		return TierGood
	case score >= 30:
		return TierPotential
	default:
		return TierLimited
	}
}
