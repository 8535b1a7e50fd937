package serializer

import (
	"encoding/binary"
	"fmt"

	"github.com/groupkv/gkv/lib/store"
	"github.com/groupkv/gkv/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements IRPCSerializer using a custom binary format
type binarySerializerImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasArgv  byte = 1 << 0
	hasReply byte = 1 << 1
	hasErr   byte = 1 << 2
	hasMeta  byte = 1 << 3
)

// marker for nil vs present bulk payloads inside a reply
const (
	bulkNil     byte = 0
	bulkPresent byte = 1
)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	// Calculate total size needed
	totalSize := b.sizeBytes(msg)
	result := make([]byte, totalSize)

	// Write message type
	result[0] = byte(msg.MsgType)

	var flags byte = 0
	pos := 2 // Start after MsgType and flags

	// Handle Argv
	if msg.Argv != nil {
		flags |= hasArgv
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.Argv)))
		pos += 4
		for _, arg := range msg.Argv {
			binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(arg)))
			pos += 4
			copy(result[pos:pos+len(arg)], arg)
			pos += len(arg)
		}
	}

	// Handle Reply
	if msg.Reply != nil {
		flags |= hasReply
		pos = writeReply(result, pos, msg.Reply)
	}

	// Handle Err
	if msg.Err != "" {
		flags |= hasErr
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.Err)))
		pos += 4
		copy(result[pos:pos+len(msg.Err)], msg.Err)
		pos += len(msg.Err)
	}

	// Handle Meta
	if msg.Meta != nil {
		flags |= hasMeta
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.Meta)))
		pos += 4
		copy(result[pos:pos+len(msg.Meta)], msg.Meta)
		pos += len(msg.Meta)
	}

	// Set flags byte after knowing which fields are present
	result[1] = flags

	return result, nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	// Check minimum size (MsgType + flags)
	if len(data) < 2 {
		return fmt.Errorf("data too short for message header")
	}

	msg.MsgType = common.MessageType(data[0])
	flags := data[1]
	pos := 2

	// Read Argv if present
	if flags&hasArgv != 0 {
		// every argv element carries at least its 4 byte length prefix
		count, newPos, err := readCount(data, pos, 4, "argv")
		if err != nil {
			return err
		}
		pos = newPos

		msg.Argv = make([][]byte, count)
		for i := uint32(0); i < count; i++ {
			arg, newPos, err := readBytes(data, pos, "argv element")
			if err != nil {
				return err
			}
			msg.Argv[i] = arg
			pos = newPos
		}
	} else {
		msg.Argv = nil
	}

	// Read Reply if present
	if flags&hasReply != 0 {
		reply, newPos, err := readReply(data, pos)
		if err != nil {
			return err
		}
		msg.Reply = &reply
		pos = newPos
	} else {
		msg.Reply = nil
	}

	// Read Err if present
	if flags&hasErr != 0 {
		errBytes, newPos, err := readBytes(data, pos, "error")
		if err != nil {
			return err
		}
		msg.Err = string(errBytes)
		pos = newPos
	} else {
		msg.Err = ""
	}

	// Read Meta if present
	if flags&hasMeta != 0 {
		meta, newPos, err := readBytes(data, pos, "meta")
		if err != nil {
			return err
		}
		msg.Meta = meta
		pos = newPos
	} else {
		msg.Meta = nil
	}

	return nil
}

// --------------------------------------------------------------------------
// Reply encoding
// --------------------------------------------------------------------------

// writeReply encodes one reply at pos and returns the new position. The
// buffer must have been sized with replySize beforehand.
func writeReply(buf []byte, pos int, r *store.Reply) int {
	buf[pos] = byte(r.Type)
	pos++

	switch r.Type {
	case store.ReplyStatus:
		binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(len(r.Status)))
		pos += 4
		copy(buf[pos:pos+len(r.Status)], r.Status)
		pos += len(r.Status)
	case store.ReplyInt:
		binary.BigEndian.PutUint64(buf[pos:pos+8], uint64(r.Int))
		pos += 8
	case store.ReplyBulk:
		if r.Bulk == nil {
			buf[pos] = bulkNil
			pos++
		} else {
			buf[pos] = bulkPresent
			pos++
			binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(len(r.Bulk)))
			pos += 4
			copy(buf[pos:pos+len(r.Bulk)], r.Bulk)
			pos += len(r.Bulk)
		}
	case store.ReplyNil:
		// type byte only
	case store.ReplyArray:
		binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(len(r.Array)))
		pos += 4
		for i := range r.Array {
			pos = writeReply(buf, pos, &r.Array[i])
		}
	case store.ReplyError:
		binary.BigEndian.PutUint64(buf[pos:pos+8], uint64(r.Err.Code))
		pos += 8
		binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(len(r.Err.Msg)))
		pos += 4
		copy(buf[pos:pos+len(r.Err.Msg)], r.Err.Msg)
		pos += len(r.Err.Msg)
	}
	return pos
}

// readReply decodes one reply at pos and returns it with the new position.
func readReply(data []byte, pos int) (store.Reply, int, error) {
	var r store.Reply

	if pos+1 > len(data) {
		return r, pos, fmt.Errorf("data too short for reply type")
	}
	r.Type = store.ReplyType(data[pos])
	pos++

	switch r.Type {
	case store.ReplyStatus:
		status, newPos, err := readBytes(data, pos, "status")
		if err != nil {
			return r, pos, err
		}
		r.Status = string(status)
		pos = newPos
	case store.ReplyInt:
		if pos+8 > len(data) {
			return r, pos, fmt.Errorf("data too short for int reply")
		}
		r.Int = int64(binary.BigEndian.Uint64(data[pos : pos+8]))
		pos += 8
	case store.ReplyBulk:
		if pos+1 > len(data) {
			return r, pos, fmt.Errorf("data too short for bulk marker")
		}
		marker := data[pos]
		pos++
		if marker == bulkPresent {
			bulk, newPos, err := readBytes(data, pos, "bulk")
			if err != nil {
				return r, pos, err
			}
			r.Bulk = bulk
			pos = newPos
		}
	case store.ReplyNil:
		// type byte only
	case store.ReplyArray:
		// every nested reply carries at least its type byte
		count, newPos, err := readCount(data, pos, 1, "array")
		if err != nil {
			return r, pos, err
		}
		pos = newPos
		r.Array = make([]store.Reply, count)
		for i := uint32(0); i < count; i++ {
			item, newPos, err := readReply(data, pos)
			if err != nil {
				return r, pos, err
			}
			r.Array[i] = item
			pos = newPos
		}
	case store.ReplyError:
		if pos+8 > len(data) {
			return r, pos, fmt.Errorf("data too short for error code")
		}
		code := store.RetCode(binary.BigEndian.Uint64(data[pos : pos+8]))
		pos += 8
		msgBytes, newPos, err := readBytes(data, pos, "error message")
		if err != nil {
			return r, pos, err
		}
		r.Err = store.NewError(code, string(msgBytes))
		pos = newPos
	default:
		return r, pos, fmt.Errorf("unknown reply type: %d", r.Type)
	}
	return r, pos, nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// readUint32 reads a big endian uint32 with bounds checking.
func readUint32(data []byte, pos int, what string) (uint32, int, error) {
	if pos+4 > len(data) {
		return 0, pos, fmt.Errorf("data too short for %s", what)
	}
	return binary.BigEndian.Uint32(data[pos : pos+4]), pos + 4, nil
}

// readCount reads an element count and rejects counts the remaining bytes
// cannot possibly hold, each element needing at least minBytes. This bounds
// the slice allocations below by the input size.
func readCount(data []byte, pos, minBytes int, what string) (uint32, int, error) {
	count, pos, err := readUint32(data, pos, what)
	if err != nil {
		return 0, pos, err
	}
	if int64(count)*int64(minBytes) > int64(len(data)-pos) {
		return 0, pos, fmt.Errorf("data too short for %d %s elements", count, what)
	}
	return count, pos, nil
}

// readBytes reads a length-prefixed byte slice with bounds checking. The
// returned slice is a copy so the caller may reuse the input buffer.
func readBytes(data []byte, pos int, what string) ([]byte, int, error) {
	length, pos, err := readUint32(data, pos, what+" length")
	if err != nil {
		return nil, pos, err
	}
	if pos+int(length) > len(data) {
		return nil, pos, fmt.Errorf("data too short for %s data", what)
	}
	out := make([]byte, length)
	copy(out, data[pos:pos+int(length)])
	return out, pos + int(length), nil
}

// sizeBytes calculates the total size needed for serialization
func (b binarySerializerImpl) sizeBytes(msg common.Message) int {
	// 1 byte for MsgType + 1 byte for flags
	size := 2

	if msg.Argv != nil {
		size += 4 // element count
		for _, arg := range msg.Argv {
			size += 4 + len(arg)
		}
	}
	if msg.Reply != nil {
		size += replySize(msg.Reply)
	}
	if msg.Err != "" {
		size += 4 + len(msg.Err)
	}
	if msg.Meta != nil {
		size += 4 + len(msg.Meta)
	}

	return size
}

// replySize calculates the encoded size of one reply.
func replySize(r *store.Reply) int {
	size := 1 // type byte
	switch r.Type {
	case store.ReplyStatus:
		size += 4 + len(r.Status)
	case store.ReplyInt:
		size += 8
	case store.ReplyBulk:
		size += 1 // nil marker
		if r.Bulk != nil {
			size += 4 + len(r.Bulk)
		}
	case store.ReplyArray:
		size += 4
		for i := range r.Array {
			size += replySize(&r.Array[i])
		}
	case store.ReplyError:
		size += 8 + 4 + len(r.Err.Msg)
	}
	return size
}
