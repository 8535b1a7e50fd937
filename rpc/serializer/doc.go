// Package serializer provides message serialization for the RPC system. It
// defines a common interface and multiple implementations for converting
// between Message objects and byte arrays.
//
// Key Components:
//
//   - IRPCSerializer: Core interface that all serializer implementations
//     must satisfy.
//
//   - binarySerializerImpl: Custom binary format optimized for speed and
//     space efficiency. Uses a flag-based approach to encode only present
//     fields, with a compact recursive encoding for command replies.
//
//   - gobSerializerImpl: Implementation using Go's built-in gob encoding,
//     offering good compatibility with Go's type system but with larger
//     serialized sizes.
//
//   - jsonSerializerImpl: Implementation using JSON encoding, useful for
//     debugging or interoperability with other systems, but with lower
//     performance.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent
//	use across multiple goroutines without additional synchronization.
//
// Usage:
//
//	Serializers are typically created once and reused throughout the
//	application:
//
//	  s := serializer.NewBinarySerializer()
//	  data, err := s.Serialize(message)
//	  // ... send data ...
//	  var receivedMsg common.Message
//	  err = s.Deserialize(receivedData, &receivedMsg)
package serializer
