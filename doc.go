/*
Package covenant defines the common types shared by all covenant
packages: identities (Address), persistence primitives (Persistent and
the key-value store interfaces) and nothing else.

Covenant is a quorum-gated custody engine. A set of owners shares
control over a pool of value. Any owner may propose an outgoing
transaction, but the transaction is dispatched only after a threshold
of distinct owner approvals was collected. The interesting code lives
in the wallet package; the remaining packages provide the storage,
error and amount plumbing it is built on.
*/
package covenant
