// Package validate classifies certification and assurance claims found
// in purpose text. The classification is informational: it feeds the
// rendered report, never the scores.
package validate

import (
	"regexp"

	"github.com/dbisina/verdescore/internal/model"
)

// scheme is one recognizable certification with its assurance tier
type scheme struct {
	name    string
	pattern *regexp.Regexp
	tier    model.AssuranceTier
}

// CertificationClassifier scans text for certification mentions
type CertificationClassifier struct {
	schemes []scheme
}

// NewCertificationClassifier compiles the scheme catalogue. Named,
// externally accredited schemes are checked before the generic
// verification phrases so a LEED mention is never downgraded to a
// generic "certified" hit.
func NewCertificationClassifier() *CertificationClassifier {
	return &CertificationClassifier{
		schemes: []scheme{
			{"LEED", regexp.MustCompile(`(?i)\bLEED(\s+(Platinum|Gold|Silver|Certified))?\b`), model.TierAccredited},
			{"BREEAM", regexp.MustCompile(`(?i)\bBREEAM\b`), model.TierAccredited},
			{"ISO 14001", regexp.MustCompile(`(?i)\bISO\s*14001\b`), model.TierAccredited},
			{"ISO 50001", regexp.MustCompile(`(?i)\bISO\s*50001\b`), model.TierAccredited},
			{"Energy Star", regexp.MustCompile(`(?i)\benergy\s+star\b`), model.TierAccredited},
			{"Gold Standard", regexp.MustCompile(`(?i)\bgold\s+standard\b`), model.TierAccredited},
			{"FSC", regexp.MustCompile(`(?i)\bFSC[\s-]certified\b`), model.TierAccredited},
			{"Science Based Targets", regexp.MustCompile(`(?i)science[\s-]based\s+targets?\b`), model.TierAccredited},
			{"Third-party verification", regexp.MustCompile(`(?i)third[\s-]party\s+(verified|verification|audited?)|independently\s+(verified|audited)|externally\s+(verified|audited)`), model.TierVerified},
			{"Self-declared certification", regexp.MustCompile(`(?i)\bcertified\b|\bcertification\b`), model.TierDeclared},
		},
	}
}

// Classify returns every scheme mentioned in the text, at most once per
// scheme, in catalogue order. The generic self-declared entry is
// suppressed when a named scheme already matched.
func (c *CertificationClassifier) Classify(text string) []model.Certification {
	var out []model.Certification
	named := false

	for _, s := range c.schemes {
		loc := s.pattern.FindString(text)
		if loc == "" {
			continue
		}
		if s.tier == model.TierDeclared && named {
			continue
		}
		if s.tier == model.TierAccredited {
			named = true
		}
		out = append(out, model.Certification{
			Scheme:  s.name,
			Tier:    s.tier,
			Mention: loc,
		})
	}

	return out
}

// Strongest returns the highest assurance tier present, or "" when the
// text carries no certification language at all.
func Strongest(certs []model.Certification) model.AssuranceTier {
	var best model.AssuranceTier
	for _, c := range certs {
		switch c.Tier {
		case model.TierAccredited:
			return model.TierAccredited
		case model.TierVerified:
			best = model.TierVerified
		case model.TierDeclared:
			if best == "" {
				best = model.TierDeclared
			}
		}
	}
	return best
}
