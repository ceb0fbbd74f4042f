package additional

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/treejer/ranger/backend/internal/domain"
)

// Import is a decoded additional-data file, ready to replace what is stored.
type Import struct {
	Forms    []domain.Form
	Metadata []domain.Detail
}

type importFile struct {
	FormData []importForm    `json:"formData"`
	Metadata []domain.Detail `json:"metadata"`
}

type importForm struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Order       int               `json:"order"`
	Elements    []json.RawMessage `json:"elements"`
}

type importElement struct {
	ID               string   `json:"id"`
	Key              string   `json:"key"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	TreeType         []string `json:"treeType"`
	RegistrationType []string `json:"registrationType"`
	AccessType       string   `json:"accessType"`

	SubElementID    string          `json:"subElementId"`
	DefaultValue    json.RawMessage `json:"defaultValue"`
	IsRequired      bool            `json:"isRequired"`
	DropdownOptions json.RawMessage `json:"dropdownOptions"`
	InputType       string          `json:"inputType"`
	RegexValidation string          `json:"regexValidation"`
}

var baseElementKeys = map[string]bool{
	"id": true, "key": true, "name": true, "type": true,
	"treeType": true, "registrationType": true, "accessType": true,
}

// ParseImport decodes an additional-data file of the form
// {"formData": [...], "metadata": [...]}.
//
// Each element is split into its base fields and, when it carries any other
// key, its type-specific properties: dropdown options for dropdowns, input
// type and regex for inputs, and sub-element id, default value and required
// flag for every type.
func ParseImport(raw []byte) (Import, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return Import{}, fmt.Errorf("%w: invalid JSON: %v", domain.ErrValidation, err)
	}
	_, hasForms := top["formData"]
	_, hasMetadata := top["metadata"]
	if !hasForms || !hasMetadata {
		return Import{}, fmt.Errorf("%w: incorrect JSON file format", domain.ErrValidation)
	}

	var file importFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return Import{}, fmt.Errorf("%w: incorrect JSON file format: %v", domain.ErrValidation, err)
	}

	out := Import{
		Forms:    make([]domain.Form, 0, len(file.FormData)),
		Metadata: file.Metadata,
	}
	for _, f := range file.FormData {
		form := domain.Form{
			ID:          f.ID,
			Title:       f.Title,
			Description: f.Description,
			Order:       f.Order,
			Elements:    make([]domain.Element, 0, len(f.Elements)),
		}
		for i, rawEl := range f.Elements {
			el, err := parseElement(rawEl)
			if err != nil {
				return Import{}, fmt.Errorf("%w: form %q element %d: %v", domain.ErrValidation, f.ID, i, err)
			}
			form.Elements = append(form.Elements, el)
		}
		out.Forms = append(out.Forms, form)
	}
	return out, nil
}

func parseElement(raw json.RawMessage) (domain.Element, error) {
	var in importElement
	if err := json.Unmarshal(raw, &in); err != nil {
		return domain.Element{}, err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return domain.Element{}, err
	}

	el := domain.Element{
		ID:               in.ID,
		Key:              in.Key,
		Name:             in.Name,
		Type:             in.Type,
		TreeType:         in.TreeType,
		RegistrationType: in.RegistrationType,
		AccessType:       in.AccessType,
	}
	if !hasTypeProperties(keys) {
		return el, nil
	}

	props := &domain.ElementTypeProps{
		ID:           in.SubElementID,
		ParentID:     in.ID,
		DefaultValue: in.DefaultValue,
		IsRequired:   in.IsRequired,
	}
	switch in.Type {
	case domain.ElementDropdown:
		props.DropdownOptions = in.DropdownOptions
	case domain.ElementInput:
		props.InputType = in.InputType
		props.RegexValidation = in.RegexValidation
	}
	el.TypeProps = props
	return el, nil
}

func hasTypeProperties(keys map[string]json.RawMessage) bool {
	for k := range keys {
		if !baseElementKeys[k] {
			return true
		}
	}
	return false
}
