// Package common provides the data structures shared across the RPC system:
// the wire protocol, the configuration structures, and logging.
//
// Key Components:
//
//   - Message: Core data structure for all RPC communication. A request
//     carries the raw command argv; a response carries the abstract reply
//     of the command layer. Factory functions build the well-formed shapes.
//
//   - MessageType: Enumeration of the supported message kinds: command
//     execution, database info, and the generic success/error/custom types.
//
//   - ServerConfig / ClientConfig: Configuration for the server and client
//     components, covering endpoints, timeouts, socket tuning, and logging.
//
//   - Logger: A leveled logger with consistent formatting across the
//     application, handed out per package through GetLogger.
package common
