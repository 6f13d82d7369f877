// Package domain contains entity types without logic, just meta-data.
package domain

import "encoding/json"

// Profile is the user payload a client attaches when joining a room.
// The relay never inspects it; it is stored per connection and re-emitted
// verbatim to peers in add_peer and remove_peer messages.
type Profile = json.RawMessage
