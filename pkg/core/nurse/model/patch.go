package model

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent JSON key from an explicit null.
// Set is true whenever the key appeared in the document; Value is nil for null.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Some returns a present, non-null value.
func Some(s string) OptionalString {
	return OptionalString{Set: true, Value: &s}
}

// Null returns a present null, which clears an optional field.
func Null() OptionalString {
	return OptionalString{Set: true}
}

// NursePatch is a partial update. It carries no id or user field.
type NursePatch struct {
	Name         OptionalString `json:"name"`
	Pw           OptionalString `json:"pw"`
	Title        OptionalString `json:"title"`
	Specialty    OptionalString `json:"specialty"`
	Description  OptionalString `json:"description"`
	Location     OptionalString `json:"location"`
	Availability OptionalString `json:"availability"`
	Image        OptionalString `json:"image"`
}

// Apply merges the present fields into n. Name is required and pw must stay
// non-empty, so a null or empty value for either is ignored.
func (p NursePatch) Apply(n *Nurse) {
	if p.Name.Set && p.Name.Value != nil {
		n.Name = *p.Name.Value
	}
	if p.Pw.Set && p.Pw.Value != nil && *p.Pw.Value != "" {
		n.Pw = *p.Pw.Value
	}
	applyOptional(&n.Title, p.Title)
	applyOptional(&n.Specialty, p.Specialty)
	applyOptional(&n.Description, p.Description)
	applyOptional(&n.Location, p.Location)
	applyOptional(&n.Availability, p.Availability)
	applyOptional(&n.Image, p.Image)
}

// Columns returns the column assignments Apply would make, keyed by column name.
func (p NursePatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Name.Set && p.Name.Value != nil {
		cols["name"] = *p.Name.Value
	}
	if p.Pw.Set && p.Pw.Value != nil && *p.Pw.Value != "" {
		cols["pw"] = *p.Pw.Value
	}
	for col, v := range map[string]OptionalString{
		"title":        p.Title,
		"specialty":    p.Specialty,
		"description":  p.Description,
		"location":     p.Location,
		"availability": p.Availability,
		"image":        p.Image,
	} {
		if v.Set {
			cols[col] = v.Value
		}
	}
	return cols
}

// IsEmpty reports whether the patch would change nothing.
func (p NursePatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

func applyOptional(dst **string, v OptionalString) {
	if !v.Set {
		return
	}
	if v.Value == nil {
		*dst = nil
		return
	}
	s := *v.Value
	*dst = &s
}
