package store

import "github.com/groupkv/gkv/lib/strval"

// --------------------------------------------------------------------------
// Reply Types
// --------------------------------------------------------------------------

// ReplyType discriminates the abstract reply of a command. Byte framing is
// the transport's concern; the command layer only produces these shapes.
type ReplyType uint8

const (
	ReplyStatus ReplyType = iota // status string, e.g. OK
	ReplyInt                     // signed 64-bit integer
	ReplyBulk                    // one byte-string value
	ReplyNil                     // nil marker (missing value / abort)
	ReplyArray                   // array of bulk-or-nil replies
	ReplyError                   // typed error
)

func (t ReplyType) String() string {
	switch t {
	case ReplyStatus:
		return "status"
	case ReplyInt:
		return "int"
	case ReplyBulk:
		return "bulk"
	case ReplyNil:
		return "nil"
	case ReplyArray:
		return "array"
	case ReplyError:
		return "error"
	default:
		return "unknown"
	}
}

// Reply is one abstract command reply.
type Reply struct {
	Type   ReplyType `json:"type"`
	Status string    `json:"status,omitempty"`
	Int    int64     `json:"int,omitempty"`
	Bulk   []byte    `json:"bulk,omitempty"`
	Array  []Reply   `json:"array,omitempty"`
	Err    *Error    `json:"err,omitempty"`
}

// IsError reports whether the reply carries an error.
func (r Reply) IsError() bool { return r.Type == ReplyError }

// Result is what one command execution yields: the reply for the caller
// and, when non-nil, a rewritten command the propagation collaborator must
// forward instead of the original argv.
type Result struct {
	Reply   Reply
	Rewrite [][]byte
}

// --------------------------------------------------------------------------
// Reply constructors
// --------------------------------------------------------------------------

func statusReply(s string) Reply { return Reply{Type: ReplyStatus, Status: s} }

func okReply() Reply { return statusReply("OK") }

func intReply(n int64) Reply { return Reply{Type: ReplyInt, Int: n} }

func bulkReply(b []byte) Reply { return Reply{Type: ReplyBulk, Bulk: b} }

// bulkValue renders a stored value into a bulk reply.
func bulkValue(v *strval.Value) Reply {
	return Reply{Type: ReplyBulk, Bulk: v.Bytes()}
}

func nilReply() Reply { return Reply{Type: ReplyNil} }

func arrayReply(items []Reply) Reply { return Reply{Type: ReplyArray, Array: items} }

func errorReply(code RetCode, msg string) Reply {
	return Reply{Type: ReplyError, Err: NewError(code, msg)}
}

// resultOf wraps a plain reply into a Result without rewrite.
func resultOf(r Reply) Result { return Result{Reply: r} }
