package engine

import (
	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/promptutil"
)

var certificationTiers = []tier{
	{30, catalog.CertExpiring30},
	{90, catalog.CertExpiring90},
}

// EvaluateCertifications warns about certifications approaching expiry.
// Certifications that have already lapsed are left to the tracker UI.
func (e *Evaluator) EvaluateCertifications(certs []domain.Certification, ctx Context) []domain.Nudge {
	var out []domain.Nudge
	for _, c := range certs {
		if c.ExpirationDate == nil || c.Type == "" {
			continue
		}
		days := promptutil.DaysUntil(*c.ExpirationDate, ctx.Now)
		if days < 0 {
			continue
		}
		promptID, ok := matchTier(certificationTiers, days)
		if !ok {
			continue
		}
		expires := formatDate(*c.ExpirationDate, ctx.Now.Location())
		out = append(out, e.build(ctx, nudgeDraft{
			promptID: promptID,
			keys:     promptutil.IDKeys{CertType: string(c.Type)},
			vals: promptutil.Values{
				"certName":       c.Label(),
				"dayCount":       promptutil.Pluralize(days, "day"),
				"expirationDate": expires,
			},
			facts: map[string]any{
				"certType":       string(c.Type),
				"certName":       c.Label(),
				"daysRemaining":  days,
				"expirationDate": expires,
			},
		}))
	}
	byDaysRemaining(out)
	return out
}
