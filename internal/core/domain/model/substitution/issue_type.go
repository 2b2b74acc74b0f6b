package substitution

import (
	"fmt"

	"afrimercato/internal/pkg/errs"
)

// IssueType classifies why a picker could not pick an item as ordered.
type IssueType int

const (
	// IssueTypeUnknown represents an invalid or undefined issue type.
	IssueTypeUnknown IssueType = iota

	// IssueTypeOutOfStock means the shelf is empty.
	IssueTypeOutOfStock

	// IssueTypeQuality means the available stock is below standard.
	IssueTypeQuality

	// IssueTypeWrongItem means the catalog entry does not match the shelf.
	IssueTypeWrongItem

	// IssueTypePartialQuantity means only part of the ordered quantity exists.
	IssueTypePartialQuantity
)

func getIssueTypeStrings() map[IssueType]string {
	return map[IssueType]string{
		IssueTypeUnknown:         "Unknown",
		IssueTypeOutOfStock:      "OutOfStock",
		IssueTypeQuality:         "Quality",
		IssueTypeWrongItem:       "WrongItem",
		IssueTypePartialQuantity: "PartialQuantity",
	}
}

// String returns the canonical issue type name, or "Unknown" for invalid values.
func (t IssueType) String() string {
	if s, ok := getIssueTypeStrings()[t]; ok {
		return s
	}
	return "Unknown"
}

// Validate rejects IssueTypeUnknown and out-of-range values.
func (t IssueType) Validate() error {
	if _, ok := getIssueTypeStrings()[t]; !ok || t == IssueTypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause("issue type",
			fmt.Errorf("%d is not a valid issue type", t))
	}
	return nil
}

// IssueTypeFromString parses the canonical name into an IssueType.
func IssueTypeFromString(s string) (IssueType, error) {
	for t, name := range getIssueTypeStrings() {
		if name == s && t != IssueTypeUnknown {
			return t, nil
		}
	}
	return IssueTypeUnknown, errs.NewValueIsInvalidErrorWithCause("issue type",
		fmt.Errorf("%q is not a valid issue type", s))
}

// Decision is the customer's verdict on a proposal.
type Decision int

const (
	// DecisionUnknown represents an invalid or undefined decision.
	DecisionUnknown Decision = iota

	// DecisionPending means the proposal is open and awaiting the customer.
	DecisionPending

	// DecisionApproved means the customer accepted an alternative.
	DecisionApproved

	// DecisionRejected means the customer declined, or the deadline passed.
	DecisionRejected
)

func getDecisionStrings() map[Decision]string {
	return map[Decision]string{
		DecisionUnknown:  "Unknown",
		DecisionPending:  "Pending",
		DecisionApproved: "Approved",
		DecisionRejected: "Rejected",
	}
}

// String returns the canonical decision name, or "Unknown" for invalid values.
func (d Decision) String() string {
	if s, ok := getDecisionStrings()[d]; ok {
		return s
	}
	return "Unknown"
}

// Validate rejects DecisionUnknown and out-of-range values.
func (d Decision) Validate() error {
	if _, ok := getDecisionStrings()[d]; !ok || d == DecisionUnknown {
		return errs.NewValueIsInvalidErrorWithCause("decision",
			fmt.Errorf("%d is not a valid decision", d))
	}
	return nil
}
