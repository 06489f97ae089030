// Package dataset loads the country indicator table and keeps a JSON
// snapshot of everything a report run needs, so the scrape happens once and
// later runs work offline.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Database is the snapshot written by the create command and read by the
// report command: the parsed indicator rows plus the flattened membership
// token list, with enough provenance to tell where they came from.
type Database struct {
	DataSource    string
	MembershipURL string
	Rows          Table
	Membership    []string
	Downloaded    time.Time
}

// LoadIfExists reads a snapshot if one is present at dbFile. A missing file
// is not an error, it just means the create step has not run yet.
func LoadIfExists(dbFile string) (*Database, bool, error) {
	data, err := os.ReadFile(dbFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading database %s: %w", dbFile, err)
	}

	db := new(Database)
	if err := json.Unmarshal(data, db); err != nil {
		return nil, false, fmt.Errorf("parsing database %s: %w", dbFile, err)
	}
	return db, true, nil
}

func (db *Database) Save(dbFile string) error {
	js, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding database: %w", err)
	}
	if err := os.WriteFile(dbFile, js, 0o644); err != nil {
		return fmt.Errorf("writing database %s: %w", dbFile, err)
	}
	return nil
}

// Info prints a short summary of the snapshot contents.
func (db *Database) Info() {
	fmt.Printf(`
	Data Source       : %s
	Membership Source : %s
	Countries         : %d
	Membership Tokens : %d
	Downloaded        : %s
	`, db.DataSource, db.MembershipURL, len(db.Rows), len(db.Membership), db.Downloaded.Format(time.RFC3339))
	fmt.Println("")
}
