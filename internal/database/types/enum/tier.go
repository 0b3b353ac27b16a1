package enum

// Tier represents the ordered trust tiers a user can hold. Ordering is
// meaningful: a higher ordinal always means a more trusted user.
//
//go:generate go tool enumer -type=Tier -trimprefix=Tier -transform=lower -json -text
type Tier int

const (
	// TierNew indicates a freshly onboarded user with no history.
	TierNew Tier = iota
	// TierActive indicates a user with some positive activity.
	TierActive
	// TierEstablished indicates a user with a consistent track record.
	TierEstablished
	// TierTrusted indicates a user with a long, clean history.
	TierTrusted
	// TierDistinguished indicates the highest trust level.
	TierDistinguished
)
