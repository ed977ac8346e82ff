package service

import (
	"github.com/splitledger/splitledger/internal/apperr"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/splitter"
	"github.com/splitledger/splitledger/pkg/api"
)

func toAPIMember(m *models.Member) *api.Member {
	return &api.Member{
		ID:          m.ID,
		Username:    m.Username,
		DisplayName: m.DisplayName,
		AvatarURL:   m.AvatarURL,
		CreatedAt:   m.CreatedAt,
	}
}

// toAPIGroup joins the memberships with their directory records.
// Members missing from the directory (never expected; foreign keys
// prevent it) are rendered with the membership data alone.
func toAPIGroup(g *models.Group, members map[string]*models.Member) *api.Group {
	out := &api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Currency:    g.Currency,
		AvatarURL:   g.AvatarURL,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
		Members:     make([]*api.GroupMember, 0, len(g.Members)),
	}
	for _, m := range g.Members {
		gm := &api.GroupMember{
			MemberID: m.MemberID,
			Nickname: m.Nickname,
			IsAdmin:  m.IsAdmin,
			JoinedAt: m.JoinedAt,
		}
		if rec, ok := members[m.MemberID]; ok {
			gm.Username = rec.Username
			gm.DisplayName = rec.DisplayName
		}
		out.Members = append(out.Members, gm)
	}
	return out
}

func toAPISplit(s *models.Split) *api.Split {
	return &api.Split{
		ID:              s.ID,
		ExpenseID:       s.ExpenseID,
		PayerID:         s.PayerID,
		DebtorID:        s.DebtorID,
		AmountOwedCents: int64(s.AmountOwed),
		Status:          string(s.Status),
		SettledAt:       s.SettledAt,
	}
}

func toAPIExpense(e *models.GroupExpense) *api.Expense {
	out := &api.Expense{
		ID:            e.ID,
		GroupID:       e.GroupID,
		PaidBy:        e.PaidBy,
		AmountCents:   int64(e.Amount),
		Description:   e.Description,
		Date:          e.Date,
		Category:      string(e.Category),
		PaymentMethod: string(e.PaymentMethod),
		SplitType:     string(e.SplitType),
		CreatedAt:     e.CreatedAt,
		Splits:        make([]*api.Split, 0, len(e.Splits)),
	}
	for i := range e.Splits {
		out.Splits = append(out.Splits, toAPISplit(&e.Splits[i]))
	}
	return out
}

// strategyFromSpec turns the tagged wire input into a resolver
// strategy plus the participant set it applies to. Exactly one
// per-strategy field may be populated, and it must be the one the
// type selects; anything else is rejected rather than guessed at.
func strategyFromSpec(spec *api.SplitSpec) (splitter.Strategy, []string, error) {
	if spec == nil {
		return nil, nil, apperr.Validation(apperr.InvalidInput, "split specification is required")
	}
	splitType := models.SplitType(spec.Type)
	if !splitType.Valid() {
		return nil, nil, apperr.Validation(apperr.InvalidInput, "unknown split type %q", spec.Type)
	}

	populated := 0
	if len(spec.Participants) > 0 {
		populated++
	}
	if len(spec.Percentages) > 0 {
		populated++
	}
	if len(spec.AmountsCents) > 0 {
		populated++
	}
	if len(spec.Shares) > 0 {
		populated++
	}
	if populated > 1 {
		return nil, nil, apperr.Validation(apperr.InvalidInput, "split specification mixes inputs from different strategies")
	}

	switch splitType {
	case models.SplitTypeEqual:
		if populated == 1 && len(spec.Participants) == 0 {
			return nil, nil, apperr.Validation(apperr.InvalidInput, "EQUAL split takes only a participant list")
		}
		return splitter.Equal{}, spec.Participants, nil
	case models.SplitTypePercentage:
		if len(spec.Percentages) == 0 {
			return nil, nil, apperr.Validation(apperr.InvalidInput, "PERCENTAGE split requires per-member percentages")
		}
		return splitter.Percentage{Percents: spec.Percentages}, mapKeys(spec.Percentages), nil
	case models.SplitTypeExact:
		if len(spec.AmountsCents) == 0 {
			return nil, nil, apperr.Validation(apperr.InvalidInput, "EXACT split requires per-member amounts")
		}
		amounts := make(map[string]models.Money, len(spec.AmountsCents))
		for id, cents := range spec.AmountsCents {
			amounts[id] = models.Money(cents)
		}
		return splitter.Exact{Amounts: amounts}, mapKeys(spec.AmountsCents), nil
	default: // models.SplitTypeShares
		if len(spec.Shares) == 0 {
			return nil, nil, apperr.Validation(apperr.InvalidInput, "SHARES split requires per-member share counts")
		}
		return splitter.Shares{Shares: spec.Shares}, mapKeys(spec.Shares), nil
	}
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
