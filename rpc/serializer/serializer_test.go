package serializer

import (
	"reflect"
	"testing"

	"github.com/groupkv/gkv/lib/store"
	"github.com/groupkv/gkv/rpc/common"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"JSON":   NewJSONSerializer,
	"GOB":    NewGOBSerializer,
	"Binary": NewBinarySerializer,
}

// testMessages creates a set of test messages with different fields filled
func testMessages() []common.Message {
	return []common.Message{
		// Basic message with just a type
		{MsgType: common.MsgTSuccess},

		// Command request
		{
			MsgType: common.MsgTCommand,
			Argv:    [][]byte{[]byte("SET"), []byte("test-key"), []byte("test-value")},
		},

		// Status response
		{
			MsgType: common.MsgTCommand,
			Reply:   &store.Reply{Type: store.ReplyStatus, Status: "OK"},
		},

		// Integer response
		{
			MsgType: common.MsgTCommand,
			Reply:   &store.Reply{Type: store.ReplyInt, Int: -42},
		},

		// Bulk response
		{
			MsgType: common.MsgTCommand,
			Reply:   &store.Reply{Type: store.ReplyBulk, Bulk: []byte("test-value")},
		},

		// Nil response
		{
			MsgType: common.MsgTCommand,
			Reply:   &store.Reply{Type: store.ReplyNil},
		},

		// Array response with mixed entries
		{
			MsgType: common.MsgTCommand,
			Reply: &store.Reply{
				Type: store.ReplyArray,
				Array: []store.Reply{
					{Type: store.ReplyBulk, Bulk: []byte("one")},
					{Type: store.ReplyNil},
					{Type: store.ReplyBulk, Bulk: []byte("three")},
				},
			},
		},

		// Typed command error response
		{
			MsgType: common.MsgTCommand,
			Reply: &store.Reply{
				Type: store.ReplyError,
				Err:  store.NewError(store.RetCRange, "increment or decrement would overflow"),
			},
		},

		// Transport level error response
		{
			MsgType: common.MsgTError,
			Err:     "test error message",
		},

		// Info response
		{
			MsgType: common.MsgTInfo,
			Meta:    []byte(`{"keys":3}`),
		},
	}
}

// TestSerializerRoundTrip tests that messages can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	messages := testMessages()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, msg := range messages {
				// Serialize
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message %d: %v", i, err)
					continue
				}

				// Deserialize
				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message %d: %v", i, err)
					continue
				}

				// Compare
				if !reflect.DeepEqual(msg, result) {
					t.Errorf("Message %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, msg, result)
				}
			}
		})
	}
}

// TestMessageTypes tests each message type with each serializer
func TestMessageTypes(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			// Test each message type (don't test MsgTUnknown since this should raise an error)
			for msgType := common.MsgTSuccess; msgType <= common.MsgTCustom; msgType++ {
				msg := common.Message{MsgType: msgType}

				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message type %s: %v", msgType.String(), err)
					continue
				}

				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message type %s: %v", msgType.String(), err)
					continue
				}

				if result.MsgType != msgType {
					t.Errorf("Message type doesn't match after round trip: Expected %s, got %s",
						msgType.String(), result.MsgType.String())
				}
			}
		})
	}
}

// TestBinarySerializerSpecific tests specific edge cases for the binary serializer
func TestBinarySerializerSpecific(t *testing.T) {
	serializer := NewBinarySerializer()

	testCases := []struct {
		name string
		msg  common.Message
	}{
		{
			name: "Empty message",
			msg:  common.Message{},
		},
		{
			name: "Command with empty argv element",
			msg: common.Message{
				MsgType: common.MsgTCommand,
				Argv:    [][]byte{[]byte("SET"), []byte("key"), {}},
			},
		},
		{
			name: "Bulk reply with nil payload",
			msg: common.Message{
				MsgType: common.MsgTCommand,
				Reply:   &store.Reply{Type: store.ReplyBulk, Bulk: nil},
			},
		},
		{
			name: "Bulk reply with empty payload",
			msg: common.Message{
				MsgType: common.MsgTCommand,
				Reply:   &store.Reply{Type: store.ReplyBulk, Bulk: []byte{}},
			},
		},
		{
			name: "Empty array reply",
			msg: common.Message{
				MsgType: common.MsgTCommand,
				Reply:   &store.Reply{Type: store.ReplyArray, Array: []store.Reply{}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := serializer.Serialize(tc.msg)
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			var result common.Message
			err = serializer.Deserialize(data, &result)
			if err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}

			if tc.msg.MsgType != result.MsgType {
				t.Errorf("MsgType mismatch: expected %v, got %v", tc.msg.MsgType, result.MsgType)
			}

			if len(tc.msg.Argv) != len(result.Argv) {
				t.Fatalf("Argv length mismatch: expected %d, got %d", len(tc.msg.Argv), len(result.Argv))
			}
			for i := range tc.msg.Argv {
				if string(tc.msg.Argv[i]) != string(result.Argv[i]) {
					t.Errorf("Argv element %d mismatch", i)
				}
			}

			if (tc.msg.Reply == nil) != (result.Reply == nil) {
				t.Fatalf("Reply presence mismatch: expected %v, got %v", tc.msg.Reply, result.Reply)
			}
			if tc.msg.Reply != nil {
				if tc.msg.Reply.Type != result.Reply.Type {
					t.Errorf("Reply type mismatch: expected %v, got %v", tc.msg.Reply.Type, result.Reply.Type)
				}

				// nil and empty bulk payloads must stay distinguishable
				if (tc.msg.Reply.Bulk == nil) != (result.Reply.Bulk == nil) {
					t.Errorf("Bulk nil/non-nil mismatch: expected %v, got %v", tc.msg.Reply.Bulk, result.Reply.Bulk)
				}
				if string(tc.msg.Reply.Bulk) != string(result.Reply.Bulk) {
					t.Errorf("Bulk content mismatch")
				}
			}
		})
	}
}

// TestBinarySerializerTruncated tests that truncated input is rejected
func TestBinarySerializerTruncated(t *testing.T) {
	serializer := NewBinarySerializer()

	msg := common.Message{
		MsgType: common.MsgTCommand,
		Argv:    [][]byte{[]byte("GET"), []byte("key")},
	}
	data, err := serializer.Serialize(msg)
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}

	for cut := 0; cut < len(data); cut++ {
		var result common.Message
		if err := serializer.Deserialize(data[:cut], &result); err == nil {
			t.Errorf("Expected error for input truncated to %d bytes", cut)
		}
	}
}

func TestBinarySerializerAbsurdCounts(t *testing.T) {
	serializer := NewBinarySerializer()

	// tiny frames claiming 2^32-1 elements must be rejected before any
	// allocation sized from the claimed count
	cases := map[string][]byte{
		"argv":  {byte(common.MsgTCommand), hasArgv, 0xFF, 0xFF, 0xFF, 0xFF},
		"array": {byte(common.MsgTCommand), hasReply, byte(store.ReplyArray), 0xFF, 0xFF, 0xFF, 0xFF},
	}

	for name, data := range cases {
		var result common.Message
		if err := serializer.Deserialize(data, &result); err == nil {
			t.Errorf("%s: expected error for oversized element count", name)
		}
	}
}
