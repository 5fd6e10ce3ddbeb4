package board

import (
	"encoding/json"
	"time"
)

// Backup is the full backup document written to disk. Board and item
// schemas are owned by the Miro API, so both are kept opaque and written
// back out untouched.
type Backup struct {
	Board    json.RawMessage   `json:"board"`
	Items    []json.RawMessage `json:"items"`
	Metadata Metadata          `json:"metadata"`
}

// Metadata describes the backup run itself.
type Metadata struct {
	BackupID   string    `json:"backup_id"`
	BackupDate time.Time `json:"backup_date"`
	ItemCount  int       `json:"item_count"`
	BoardName  string    `json:"board_name"`
}

// Name extracts the board's display name from its opaque document, falling
// back to "Unknown Board" when absent.
func Name(boardDoc json.RawMessage) string {
	var meta struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(boardDoc, &meta); err != nil || meta.Name == "" {
		return "Unknown Board"
	}
	return meta.Name
}
