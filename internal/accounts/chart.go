package accounts

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

var (
	// ErrDuplicateCode is returned when an account code is already used anywhere in the chart.
	ErrDuplicateCode = errors.New("account code already exists")
	// ErrDuplicateID is returned when an account id is already used anywhere in the chart.
	ErrDuplicateID = errors.New("account id already exists")
	// ErrParentNotFound is returned when an insert names a parent that is not in the chart.
	ErrParentNotFound = errors.New("parent account not found")
	// ErrAccountNotFound is returned when a lookup by id or code fails.
	ErrAccountNotFound = errors.New("account not found")
)

// FlatAccount is an account annotated with its position in the tree.
type FlatAccount struct {
	Account  model.Account
	Depth    int
	ParentID string
}

// FindByID searches the forest depth-first, children before siblings.
func FindByID(forest []model.Account, id string) (model.Account, bool) {
	for _, a := range forest {
		if a.ID == id {
			return a, true
		}
		if found, ok := FindByID(a.Children, id); ok {
			return found, true
		}
	}
	return model.Account{}, false
}

// FindByCode searches the forest for an account with the given business code.
func FindByCode(forest []model.Account, code string) (model.Account, bool) {
	for _, a := range forest {
		if a.Code == code {
			return a, true
		}
		if found, ok := FindByCode(a.Children, code); ok {
			return found, true
		}
	}
	return model.Account{}, false
}

// Insert returns a new forest with acct appended to the roots (parentID == "")
// or to the children of parentID. The input forest is never modified.
func Insert(forest []model.Account, acct model.Account, parentID string) ([]model.Account, error) {
	for _, fa := range Flatten([]model.Account{acct}) {
		if _, ok := FindByCode(forest, fa.Account.Code); ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, fa.Account.Code)
		}
		if _, ok := FindByID(forest, fa.Account.ID); ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, fa.Account.ID)
		}
	}

	if parentID == "" {
		out := make([]model.Account, len(forest), len(forest)+1)
		copy(out, forest)
		return append(out, acct), nil
	}

	out, ok := insertUnder(forest, acct, parentID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrParentNotFound, parentID)
	}
	return out, nil
}

// insertUnder copies every slice on the path to the parent so callers holding
// the old forest never observe the new child.
func insertUnder(list []model.Account, acct model.Account, parentID string) ([]model.Account, bool) {
	for i := range list {
		if list[i].ID == parentID {
			out := slices.Clone(list)
			children := make([]model.Account, len(list[i].Children), len(list[i].Children)+1)
			copy(children, list[i].Children)
			out[i].Children = append(children, acct)
			return out, true
		}
		if children, ok := insertUnder(list[i].Children, acct, parentID); ok {
			out := slices.Clone(list)
			out[i].Children = children
			return out, true
		}
	}
	return nil, false
}

// Flatten lists the forest in pre-order. Roots have depth 0.
func Flatten(forest []model.Account) []FlatAccount {
	var out []FlatAccount
	var walk func(list []model.Account, depth int, parentID string)
	walk = func(list []model.Account, depth int, parentID string) {
		for _, a := range list {
			out = append(out, FlatAccount{Account: a, Depth: depth, ParentID: parentID})
			walk(a.Children, depth+1, a.ID)
		}
	}
	walk(forest, 0, "")
	return out
}

// FlattenType is Flatten restricted to one account type, as offered when picking a parent.
func FlattenType(forest []model.Account, accountType model.AccountType) []FlatAccount {
	var out []FlatAccount
	for _, fa := range Flatten(forest) {
		if fa.Account.Type == accountType {
			out = append(out, fa)
		}
	}
	return out
}
