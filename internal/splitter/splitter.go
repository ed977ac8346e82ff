// Package splitter implements the split strategy resolver and the
// balance aggregator. Everything here is pure: no I/O, no clock, and
// deterministic output for a given input.
package splitter

import (
	"sort"

	"github.com/splitledger/splitledger/internal/apperr"
	"github.com/splitledger/splitledger/internal/models"
)

// exactTolerance is how far the sum of EXACT amounts may drift from
// the expense total: one minor currency unit.
const exactTolerance = 1

// Strategy decomposes an expense total into per-participant owed
// amounts. Implementations validate their own input shape; the
// returned map covers exactly the given participants and sums to the
// total (EXACT may be off by at most exactTolerance, as supplied).
type Strategy interface {
	Type() models.SplitType

	// Split returns the owed amount per participant or a
	// *apperr.ValidationError describing why the decomposition is not
	// well-formed.
	Split(total models.Money, participants []string) (map[string]models.Money, error)
}

// validateParticipants rejects empty and duplicated participant lists
// and returns a sorted copy. The ascending-ID order is what makes
// remainder distribution stable.
func validateParticipants(participants []string) ([]string, error) {
	if len(participants) == 0 {
		return nil, apperr.Validation(apperr.EmptyParticipants, "at least one participant is required")
	}
	sorted := make([]string, len(participants))
	copy(sorted, participants)
	sort.Strings(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, apperr.Validation(apperr.DuplicateParticipant, "participant %q appears more than once", sorted[i])
		}
	}
	return sorted, nil
}

func validateTotal(total models.Money) error {
	if total <= 0 {
		return apperr.Validation(apperr.InvalidAmount, "amount must be positive, got %s", total)
	}
	return nil
}

// checkCoverage verifies the per-participant input names exactly the
// participant set: no participant without an entry, no entry for an
// unknown participant.
func checkCoverage(sorted []string, n int, has func(string) bool) error {
	for _, p := range sorted {
		if !has(p) {
			return apperr.Validation(apperr.ParticipantMismatch, "no input for participant %q", p)
		}
	}
	if n != len(sorted) {
		return apperr.Validation(apperr.ParticipantMismatch, "input names %d participants, list has %d", n, len(sorted))
	}
	return nil
}

// distribute allocates total proportionally to integer weights,
// flooring each share and then handing the leftover minor units one
// at a time to the earliest (ascending ID) participants with a
// positive weight. The result always sums to total exactly.
func distribute(total models.Money, sorted []string, weightOf func(string) int64, weightSum int64) map[string]models.Money {
	out := make(map[string]models.Money, len(sorted))
	allocated := models.Money(0)
	for _, p := range sorted {
		share := models.Money(int64(total) * weightOf(p) / weightSum)
		out[p] = share
		allocated += share
	}
	remainder := total - allocated
	for _, p := range sorted {
		if remainder == 0 {
			break
		}
		if weightOf(p) > 0 {
			out[p]++
			remainder--
		}
	}
	return out
}

// Equal divides the total evenly among the participants, with the
// indivisible remainder going one unit at a time to the first
// participants in ascending ID order.
type Equal struct{}

func (Equal) Type() models.SplitType { return models.SplitTypeEqual }

func (Equal) Split(total models.Money, participants []string) (map[string]models.Money, error) {
	sorted, err := validateParticipants(participants)
	if err != nil {
		return nil, err
	}
	if err := validateTotal(total); err != nil {
		return nil, err
	}
	return distribute(total, sorted, func(string) int64 { return 1 }, int64(len(sorted))), nil
}

// Percentage assigns each participant an integer percentage of the
// total. The percentages must sum to exactly 100.
type Percentage struct {
	Percents map[string]int
}

func (Percentage) Type() models.SplitType { return models.SplitTypePercentage }

func (s Percentage) Split(total models.Money, participants []string) (map[string]models.Money, error) {
	sorted, err := validateParticipants(participants)
	if err != nil {
		return nil, err
	}
	if err := validateTotal(total); err != nil {
		return nil, err
	}
	if err := checkCoverage(sorted, len(s.Percents), func(p string) bool {
		_, ok := s.Percents[p]
		return ok
	}); err != nil {
		return nil, err
	}
	sum := 0
	for p, pct := range s.Percents {
		if pct < 0 || pct > 100 {
			return nil, apperr.Validation(apperr.PercentageMismatch, "percentage for %q out of range: %d", p, pct)
		}
		sum += pct
	}
	if sum != 100 {
		return nil, apperr.Validation(apperr.PercentageMismatch, "percentages sum to %d, want 100", sum)
	}
	return distribute(total, sorted, func(p string) int64 { return int64(s.Percents[p]) }, 100), nil
}

// Exact takes an explicit owed amount per participant. The amounts
// must sum to the total within exactTolerance and are passed through
// unchanged.
type Exact struct {
	Amounts map[string]models.Money
}

func (Exact) Type() models.SplitType { return models.SplitTypeExact }

func (s Exact) Split(total models.Money, participants []string) (map[string]models.Money, error) {
	sorted, err := validateParticipants(participants)
	if err != nil {
		return nil, err
	}
	if err := validateTotal(total); err != nil {
		return nil, err
	}
	if err := checkCoverage(sorted, len(s.Amounts), func(p string) bool {
		_, ok := s.Amounts[p]
		return ok
	}); err != nil {
		return nil, err
	}
	sum := models.Money(0)
	for p, amt := range s.Amounts {
		if amt < 0 {
			return nil, apperr.Validation(apperr.InvalidAmount, "amount for %q must not be negative, got %s", p, amt)
		}
		sum += amt
	}
	diff := sum - total
	if diff < -exactTolerance || diff > exactTolerance {
		return nil, apperr.Validation(apperr.ExactAmountMismatch, "amounts sum to %s, want %s", sum, total)
	}
	out := make(map[string]models.Money, len(sorted))
	for _, p := range sorted {
		out[p] = s.Amounts[p]
	}
	return out, nil
}

// Shares divides the total proportionally to positive integer share
// counts.
type Shares struct {
	Shares map[string]int
}

func (Shares) Type() models.SplitType { return models.SplitTypeShares }

func (s Shares) Split(total models.Money, participants []string) (map[string]models.Money, error) {
	sorted, err := validateParticipants(participants)
	if err != nil {
		return nil, err
	}
	if err := validateTotal(total); err != nil {
		return nil, err
	}
	if err := checkCoverage(sorted, len(s.Shares), func(p string) bool {
		_, ok := s.Shares[p]
		return ok
	}); err != nil {
		return nil, err
	}
	sum := int64(0)
	for p, sh := range s.Shares {
		if sh <= 0 {
			return nil, apperr.Validation(apperr.InvalidShares, "shares for %q must be positive, got %d", p, sh)
		}
		sum += int64(sh)
	}
	return distribute(total, sorted, func(p string) int64 { return int64(s.Shares[p]) }, sum), nil
}
