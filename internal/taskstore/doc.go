// Package taskstore loads, validates, and updates the dated task file.
//
// The task file maps ISO dates to the ordered tasks of that day:
//
//	{
//	    "2024-03-15": [
//	        {
//	            "task": "Buy milk",
//	            "status": "pending"
//	        }
//	    ]
//	}
//
// A task has no identity beyond its position in its day. Deleting a task
// shifts the index of every later task on that day.
//
// # Invariants
//
//   - A date key is present only while its task list is non-empty.
//   - Task order is insertion order.
//   - Every mutation reads the whole file, applies one change, and writes
//     the whole file back. Two processes writing concurrently can lose each
//     other's changes; no locking is attempted.
//
// # File Format
//
// The codec is chosen by file extension: ".yaml" and ".yml" use YAML,
// anything else uses JSON with 4-space indentation and a trailing newline.
// Both decode through the same JSON Schema before use.
//
// # Missing Files
//
// With Options.CreateIfMissing set, a missing file reads as an empty store
// and is created by the first write. Otherwise Load fails with a
// StorageError wrapping fs.ErrNotExist.
package taskstore
