package common

import (
	"encoding/json"
	"fmt"

	"github.com/groupkv/gkv/lib/store"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// Request only fields
	Argv [][]byte `json:"argv,omitempty"` // Used for: Command requests (command name first)

	// Response only fields
	Reply *store.Reply `json:"reply,omitempty"` // Used for: Command responses
	Err   string       `json:"err,omitempty"`   // Empty if no error, otherwise contains the error message

	// Meta information
	Meta []byte `json:"meta,omitempty"` // Used for: Info responses, custom adapters
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewCommandRequest creates a new command execution request.
func NewCommandRequest(argv [][]byte) *Message {
	return &Message{
		MsgType: MsgTCommand,
		Argv:    argv,
	}
}

// NewCommandResponse creates a new command execution response.
func NewCommandResponse(reply store.Reply) *Message {
	return &Message{
		MsgType: MsgTCommand,
		Reply:   &reply,
	}
}

// NewInfoRequest creates a new database info request.
func NewInfoRequest() *Message {
	return &Message{MsgType: MsgTInfo}
}

// NewInfoResponse creates a new database info response; meta carries the
// JSON-encoded info document.
func NewInfoResponse(meta []byte, err error) *Message {
	msg := &Message{
		MsgType: MsgTInfo,
		Meta:    meta,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewCustomRequest creates a new Custom request.
func NewCustomRequest(meta []byte) *Message {
	return &Message{
		MsgType: MsgTCustom,
		Meta:    meta,
	}
}

// NewCustomResponse creates a new Custom response.
func NewCustomResponse(meta []byte, err error) *Message {
	msg := &Message{
		MsgType: MsgTCustom,
		Meta:    meta,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewErrorResponse creates a new Error response.
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		Err:     err,
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTSuccess:
		return "success"
	case MsgTError:
		return "error"
	case MsgTCommand:
		return "command"
	case MsgTInfo:
		return "info"
	case MsgTCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "success":
		*t = MsgTSuccess
	case "error":
		*t = MsgTError
	case "command":
		*t = MsgTCommand
	case "info":
		*t = MsgTInfo
	case "custom":
		*t = MsgTCustom
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates an error occurred

	// Store operations

	MsgTCommand // Execute one command given as argv
	MsgTInfo    // Fetch database statistics

	// Custom operations

	MsgTCustom // Custom operation type
)
