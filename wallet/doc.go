/*
Package wallet implements the covenant core: a quorum-gated custody
engine.

A wallet is created with an ordered set of distinct owner addresses, an
approval threshold and an administrator. Any owner may submit a
transaction (an opaque payload addressed to a target, together with an
amount from the pool). Owners then approve or revoke their approval
individually. Once the number of distinct approvals reaches the
threshold the transaction becomes eligible for dispatch and any owner
may execute it, exactly once.

Two layers are exposed. Controller implements every operation against a
caller supplied KVStore and performs no transaction management on its
own. Service wraps a Controller and a CacheableKVStore and gives each
mutating operation all-or-nothing semantics: either every write of an
operation is committed and its events are emitted, or the store is left
untouched and nothing is emitted. Execute relies on this to guarantee
that a failed dispatch rolls the transaction back to its approved,
not-yet-executed state.

Re-entrancy is handled by ordering: the terminal executed state is
written to the store before the dispatcher is invoked, so a dispatcher
that calls back into the engine for the same transaction is rejected.
*/
package wallet
