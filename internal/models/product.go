package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"restobar/internal/pricing"
)

// OptionKind is the closed set of option group behaviors.
type OptionKind string

const (
	OptionSingleChoice OptionKind = "single-choice"
	OptionMultiChoice  OptionKind = "multi-choice"
	OptionAddOn        OptionKind = "add-on"
	OptionRemoval      OptionKind = "removal"
)

func (k OptionKind) valid() bool {
	switch k {
	case OptionSingleChoice, OptionMultiChoice, OptionAddOn, OptionRemoval:
		return true
	}
	return false
}

// choiceBased reports whether the kind carries a list of selectable values.
func (k OptionKind) choiceBased() bool {
	return k == OptionSingleChoice || k == OptionMultiChoice
}

// OptionValue is one selectable choice within a choice-based option group.
type OptionValue struct {
	Label      string        `bson:"label" json:"label"`
	PriceDelta pricing.Money `bson:"priceDelta" json:"priceDelta"`
}

// OptionGroup is a configurable product attribute (size, extras, "sin X").
// Choice-based kinds carry Values; add-on and removal kinds carry only the
// group-level PriceDelta. Build groups through NewOptionGroup so the shape
// always matches the kind.
type OptionGroup struct {
	ID         string        `bson:"id" json:"id"`
	Name       string        `bson:"name" json:"name"`
	Kind       OptionKind    `bson:"kind" json:"kind"`
	Required   bool          `bson:"required" json:"required"`
	PriceDelta pricing.Money `bson:"priceDelta" json:"priceDelta"`
	Values     []OptionValue `bson:"values,omitempty" json:"values,omitempty"`
}

// NewOptionGroup validates the kind-dependent shape at construction time.
func NewOptionGroup(id, name string, kind OptionKind, required bool, delta pricing.Money, values []OptionValue) (OptionGroup, error) {
	if id == "" || name == "" {
		return OptionGroup{}, fmt.Errorf("option group id and name are required")
	}
	if !kind.valid() {
		return OptionGroup{}, fmt.Errorf("unknown option kind: %q", kind)
	}
	if kind.choiceBased() {
		if len(values) == 0 {
			return OptionGroup{}, fmt.Errorf("option group %q: kind %s requires at least one value", name, kind)
		}
	} else if len(values) > 0 {
		return OptionGroup{}, fmt.Errorf("option group %q: kind %s does not take values", name, kind)
	}
	if kind == OptionRemoval && delta != 0 {
		return OptionGroup{}, fmt.Errorf("option group %q: removals carry no price delta", name)
	}
	return OptionGroup{
		ID:         id,
		Name:       name,
		Kind:       kind,
		Required:   required,
		PriceDelta: delta,
		Values:     values,
	}, nil
}

// SelectedOption is a customer's choice for one option group. PriceDelta is
// the delta captured at selection time; the server never trusts it and
// resolves the authoritative delta again (see Product.ResolveSelection).
type SelectedOption struct {
	GroupID    string        `bson:"groupId" json:"groupId"`
	GroupName  string        `bson:"groupName" json:"groupName"`
	ValueLabel string        `bson:"valueLabel,omitempty" json:"valueLabel,omitempty"`
	PriceDelta pricing.Money `bson:"priceDelta" json:"priceDelta"`
}

// DisplayName is the human-readable form used in cart rows and the
// notification message.
func (s SelectedOption) DisplayName() string {
	if s.ValueLabel != "" {
		return fmt.Sprintf("%s: %s", s.GroupName, s.ValueLabel)
	}
	return s.GroupName
}

// Product is a catalog entry. A nil Stock means unlimited.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Price        pricing.Money      `bson:"price" json:"price"`
	CategoryID   string             `bson:"categoryId" json:"categoryId"`
	ImageURL     string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	IsAvailable  bool               `bson:"isAvailable" json:"isAvailable"`
	Stock        *int               `bson:"stock,omitempty" json:"stock,omitempty"`
	OptionGroups []OptionGroup      `bson:"optionGroups,omitempty" json:"optionGroups,omitempty"`
	IsDeleted    bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (p Product) optionGroup(id string) *OptionGroup {
	for i := range p.OptionGroups {
		if p.OptionGroups[i].ID == id {
			return &p.OptionGroups[i]
		}
	}
	return nil
}

// UnitPrice computes base price plus the captured deltas of the given
// selection, after checking the selection structurally belongs to this
// product: every referenced group and value must exist and every required
// group must be covered.
func (p Product) UnitPrice(selected []SelectedOption) (pricing.Money, error) {
	if err := p.checkSelection(selected); err != nil {
		return 0, err
	}
	deltas := make([]pricing.Money, 0, len(selected))
	for _, s := range selected {
		deltas = append(deltas, s.PriceDelta)
	}
	return pricing.UnitPrice(p.Price, deltas), nil
}

// ResolveSelection re-derives a selection against the product's current
// option data: the returned options carry the authoritative deltas and
// display names, and the returned price is base plus those deltas. Client
// captured deltas are ignored entirely.
func (p Product) ResolveSelection(selected []SelectedOption) ([]SelectedOption, pricing.Money, error) {
	if err := p.checkSelection(selected); err != nil {
		return nil, 0, err
	}

	resolved := make([]SelectedOption, 0, len(selected))
	deltas := make([]pricing.Money, 0, len(selected))
	for _, s := range selected {
		group := p.optionGroup(s.GroupID)
		delta := group.PriceDelta
		if group.Kind.choiceBased() {
			for _, v := range group.Values {
				if v.Label == s.ValueLabel {
					delta = v.PriceDelta
					break
				}
			}
		}
		resolved = append(resolved, SelectedOption{
			GroupID:    group.ID,
			GroupName:  group.Name,
			ValueLabel: s.ValueLabel,
			PriceDelta: delta,
		})
		deltas = append(deltas, delta)
	}
	return resolved, pricing.UnitPrice(p.Price, deltas), nil
}

func (p Product) checkSelection(selected []SelectedOption) error {
	for _, s := range selected {
		group := p.optionGroup(s.GroupID)
		if group == nil {
			return pricing.InvalidSelectionError{
				Reason: fmt.Sprintf("product %q has no option group %q", p.Name, s.GroupID),
			}
		}
		if group.Kind.choiceBased() {
			found := false
			for _, v := range group.Values {
				if v.Label == s.ValueLabel {
					found = true
					break
				}
			}
			if !found {
				return pricing.InvalidSelectionError{
					Reason: fmt.Sprintf("option group %q has no value %q", group.Name, s.ValueLabel),
				}
			}
		}
	}

	for _, g := range p.OptionGroups {
		if !g.Required {
			continue
		}
		covered := false
		for _, s := range selected {
			if s.GroupID == g.ID {
				covered = true
				break
			}
		}
		if !covered {
			return pricing.InvalidSelectionError{
				Reason: fmt.Sprintf("required option group %q has no selection", g.Name),
			}
		}
	}
	return nil
}
