package domain

import "github.com/goccy/go-json"

// Access types partition additional-data metadata.
const (
	AccessPublic  = "public"
	AccessPrivate = "private"
	AccessApp     = "app"
)

// Element types that carry type-specific properties on import.
const (
	ElementDropdown = "DROPDOWN"
	ElementInput    = "INPUT"
)

// Tree and registration types an element can be restricted to.
const (
	TreeTypeSingle      = "single"
	TreeTypeMulti       = "multiple"
	TreeTypeSample      = "sample"
	RegistrationOnSite  = "on-site"
	RegistrationOffSite = "off-site"
)

// Form is an ordered group of additional-data elements shown to the agent
// while registering a tree.
type Form struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	Elements    []Element `json:"elements"`
}

// Element is one input of a Form. TreeType and RegistrationType list the
// flows the element applies to.
type Element struct {
	ID               string            `json:"id"`
	Key              string            `json:"key"`
	Name             string            `json:"name"`
	Type             string            `json:"type"`
	TreeType         []string          `json:"treeType"`
	RegistrationType []string          `json:"registrationType"`
	AccessType       string            `json:"accessType"`
	TypeProps        *ElementTypeProps `json:"typeProps,omitempty"`
}

// ElementTypeProps holds the properties that depend on an element's type.
type ElementTypeProps struct {
	ID              string          `json:"id,omitempty"`
	ParentID        string          `json:"parentId"`
	DefaultValue    json.RawMessage `json:"defaultValue,omitempty"`
	IsRequired      bool            `json:"isRequired"`
	DropdownOptions json.RawMessage `json:"dropdownOptions,omitempty"`
	InputType       string          `json:"type,omitempty"`
	RegexValidation string          `json:"regexValidation,omitempty"`
}

// Detail is one flat metadata record.
type Detail struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	AccessType string `json:"accessType"`
}

// Metadata is metadata grouped by access type, then by key.
type Metadata map[string]map[string]any

// FormFilter selects which form elements apply to a registration flow.
// Empty or "all" values disable the corresponding filter.
type FormFilter struct {
	TreeType         string
	RegistrationType string
	IsSampleTree     bool
}
