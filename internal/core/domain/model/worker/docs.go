// Package worker models the two kinds of fulfillment workers: pickers, who
// collect items inside a vendor's store, and riders, who deliver picked
// orders. A worker owns its own availability; dispatch may only book an idle
// worker, and booking is a single guarded state change so two orders can
// never hold the same worker at once.
package worker
