// Package lockmgr implements cooperative locks on top of the command
// surface of a gkv store. It keeps no state of its own: every lock lives as
// one key in the store, so any number of managers created over the same
// store coordinate correctly.
//
// Core Functionality:
//   - Lock acquisition with ownership verification
//   - Automatic lock expiration through configurable timeouts
//   - Safe release operations that verify ownership
//
// Implementation Approach:
//
//	Locks lean on the conditional write of the SET command:
//
//	- Acquisition issues SET key owner NX (plus PX when a timeout is
//	  given). The NX option guarantees that only one requester creates
//	  the key; the stored value is a randomly generated owner token.
//
//	- Timeouts hand expiration to the store. A crashed holder cannot
//	  deadlock the resource when the lock carries a deadline.
//
//	- Release reads the key first and only deletes it when the stored
//	  token matches the caller's. Releasing a lock that no longer exists
//	  succeeds, since an expired lock is an already released one.
//
// The manager runs commands through the CommandExecutor interface, so it
// works the same over a local store and over an RPC client.
//
// Security Considerations:
//
//	Owner tokens protect against accidental lock stealing, not against a
//	malicious party with direct access to the store.
package lockmgr
