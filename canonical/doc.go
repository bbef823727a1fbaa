// Package canonical cross-checks host record layouts against the Component
// Model's Canonical ABI.
//
// A record whose fields are naturally aligned (alignment equal to size, for
// sizes 1, 2, 4, and 8) maps onto a WIT record of u8/u16/u32/u64 fields.
// For such records the Canonical ABI placement rules must produce the same
// offsets the host layout calculator does; a disagreement means the record
// would change shape on its way through a component boundary.
//
// Over-aligned fields have no WIT spelling. Converting them fails with an
// unsupported error, which is itself the diagnostic: such a record cannot
// cross the canonical ABI without losing its alignment contract.
package canonical
