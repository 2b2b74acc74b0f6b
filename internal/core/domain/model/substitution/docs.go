// Package substitution contains the Proposal aggregate raised when a picker
// cannot fulfill a line item as ordered. A proposal blocks the item until the
// customer approves an alternative, rejects, or the deadline expires and the
// system auto-rejects. Resolved proposals are immutable.
package substitution
