package additional

import (
	"slices"
	"strings"

	"github.com/treejer/ranger/backend/internal/domain"
)

// FilterForms returns copies of forms keeping only the elements that apply to
// the given flow. forms is never modified.
//
// An empty or "all" (any case) tree type or registration type disables that
// filter. Sample trees of an on-site multiple registration are matched by
// the sample tree type, and sample trees are never filtered by registration
// type.
func FilterForms(forms []domain.Form, f domain.FormFilter) []domain.Form {
	treeType := f.TreeType
	byTree := treeType != "" && !strings.EqualFold(treeType, "all")
	if byTree && f.IsSampleTree && f.RegistrationType == domain.RegistrationOnSite && treeType == domain.TreeTypeMulti {
		treeType = domain.TreeTypeSample
	}
	byRegistration := f.RegistrationType != "" && !strings.EqualFold(f.RegistrationType, "all") && !f.IsSampleTree

	out := make([]domain.Form, 0, len(forms))
	for _, form := range forms {
		elements := make([]domain.Element, 0, len(form.Elements))
		for _, el := range form.Elements {
			if byTree && !slices.Contains(el.TreeType, treeType) {
				continue
			}
			if byRegistration && !slices.Contains(el.RegistrationType, f.RegistrationType) {
				continue
			}
			elements = append(elements, el)
		}
		form.Elements = elements
		out = append(out, form)
	}
	return out
}
