/*
Package hashstate tracks a content hash per report domain so unattended
runs skip rebuilding sheets whose source data did not change. Local runs
always rebuild and never touch the state file.
*/
package hashstate

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
Unattended reports whether this is a scheduled run, where the
skip-if-unchanged gate applies.
*/
func Unattended() bool {
	return os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true"
}

/*
Compute hashes a fetched dataset: SHA-256 over its JSON encoding. Struct
fields marshal in declaration order and map keys sorted, so equal data
always yields an equal hash.
*/
func Compute(value any) (hash string, e *xerr.Error) {
	jsonBytes, marshalErr := json.Marshal(value)
	if marshalErr != nil {
		e = xerr.NewError(marshalErr, "marshal dataset for hashing", "")
		return hash, e
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), e
}

/*
Load reads the hash state file. A missing file is an empty state; an
unreadable or corrupt one is logged and treated as empty, so every
domain rebuilds.
*/
func Load(path string) (hashes map[string]string) {
	hashes = map[string]string{}

	stateBytes, readErr := os.ReadFile(path)
	if readErr != nil {
		if !os.IsNotExist(readErr) {
			tl.Log(tl.Warning, palette.PurpleBright, "Could not read hash state '%s': %s", path, readErr)
		}
		return hashes
	}

	if unmarshalErr := json.Unmarshal(stateBytes, &hashes); unmarshalErr != nil {
		tl.Log(tl.Warning, palette.PurpleBright, "Could not parse hash state '%s': %s", path, unmarshalErr)
		return map[string]string{}
	}
	return hashes
}

/*
Save writes the hash state file with the run's freshly computed hashes.
*/
func Save(path string, hashes map[string]string) (e *xerr.Error) {
	jsonBytes, marshalErr := json.MarshalIndent(hashes, "", "  ")
	if marshalErr != nil {
		e = xerr.NewError(marshalErr, "marshal hash state", path)
		return e
	}

	writeErr := os.WriteFile(path, jsonBytes, 0o644)
	if writeErr != nil {
		e = xerr.NewError(writeErr, "write hash state file", path)
		return e
	}

	tl.Log(tl.Info1, palette.Green, "Saved hash state to '%s'", path)
	return e
}

/*
Tracker carries the previous run's hashes and collects this run's, one
domain key at a time.
*/
type Tracker struct {
	unattended bool
	path       string
	previous   map[string]string
	current    map[string]string
}

/*
NewTracker prepares the gate for one run. Previous hashes are loaded
only in unattended runs; attended runs start from an empty state.
*/
func NewTracker(path string) *Tracker {
	tracker := &Tracker{
		unattended: Unattended(),
		path:       path,
		previous:   map[string]string{},
		current:    map[string]string{},
	}
	if tracker.unattended {
		tracker.previous = Load(path)
	}
	return tracker
}

/*
Changed records the dataset's hash and reports whether the domain needs
a rebuild. Attended runs always rebuild; a dataset that cannot be
hashed rebuilds too.
*/
func (tracker *Tracker) Changed(key string, data any) bool {
	hash, e := Compute(data)
	if e != nil {
		tl.Log(tl.Warning, palette.PurpleBright, "Could not hash '%s' data, rebuilding", key)
		return true
	}
	tracker.current[key] = hash

	if !tracker.unattended {
		return true
	}
	if hash != tracker.previous[key] {
		return true
	}

	tl.Log(tl.Info, palette.Yellow, "No changes detected, skipping")
	return false
}

/*
Persist writes the collected hashes. Attended runs leave the state file
alone.
*/
func (tracker *Tracker) Persist() (e *xerr.Error) {
	if !tracker.unattended {
		return nil
	}
	return Save(tracker.path, tracker.current)
}
