package util

import (
	"fmt"
	"strings"

	"github.com/groupkv/gkv/lib/store"
)

// FormatReply renders a command reply for terminal output.
func FormatReply(r store.Reply) string {
	switch r.Type {
	case store.ReplyStatus:
		return r.Status
	case store.ReplyInt:
		return fmt.Sprintf("(integer) %d", r.Int)
	case store.ReplyBulk:
		return fmt.Sprintf("%q", r.Bulk)
	case store.ReplyNil:
		return "(nil)"
	case store.ReplyArray:
		var sb strings.Builder
		for i, item := range r.Array {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprintf("%d) %s", i+1, FormatReply(item)))
		}
		if len(r.Array) == 0 {
			return "(empty array)"
		}
		return sb.String()
	case store.ReplyError:
		return fmt.Sprintf("(error) %s", r.Err.Msg)
	default:
		return fmt.Sprintf("(unknown reply type %d)", r.Type)
	}
}

// PrintResult prints a command result. Error replies are returned instead
// so the process exits non-zero.
func PrintResult(res store.Result) error {
	if res.Reply.IsError() {
		return fmt.Errorf("%s", res.Reply.Err.Msg)
	}
	fmt.Println(FormatReply(res.Reply))
	return nil
}
