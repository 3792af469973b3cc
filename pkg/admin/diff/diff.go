// Package diff compares pre- and post-mutation snapshots and classifies the
// change. The classification is the single source for both the audit record
// and the user-facing notification, so the two can never drift apart.
package diff

import (
	"reflect"
	"sort"
)

type Type string

const (
	TypeStatusChanged   Type = "status_changed"
	TypeDetailsModified Type = "details_modified"
	TypeProfileUpdated  Type = "profile_updated"
	TypeNoOp            Type = "no_op"
)

// Snapshot holds the tracked fields of a record keyed by column name.
// The "status" key is treated specially by Classify.
type Snapshot map[string]interface{}

const statusKey = "status"

type Classification struct {
	Type          Type
	OldStatus     string
	NewStatus     string
	ChangedFields []string
	// Old and New carry only the values that differ.
	Old Snapshot
	New Snapshot
}

// Classify compares two snapshots of a status-bearing record. A status
// transition wins over detail changes; equal snapshots classify as no_op,
// which the validator is expected to have rejected upstream.
func Classify(before, after Snapshot) Classification {
	oldStatus, _ := before[statusKey].(string)
	newStatus, _ := after[statusKey].(string)

	changed, oldVals, newVals := changedFields(before, after)

	if oldStatus != newStatus {
		return Classification{
			Type:          TypeStatusChanged,
			OldStatus:     oldStatus,
			NewStatus:     newStatus,
			ChangedFields: changed,
			Old:           oldVals,
			New:           newVals,
		}
	}

	if len(changed) == 0 {
		return Classification{Type: TypeNoOp}
	}

	return Classification{
		Type:          TypeDetailsModified,
		ChangedFields: changed,
		Old:           oldVals,
		New:           newVals,
	}
}

// ClassifyProfile compares profile snapshots, where any difference counts as
// a profile update.
func ClassifyProfile(before, after Snapshot) Classification {
	changed, oldVals, newVals := changedFields(before, after)
	if len(changed) == 0 {
		return Classification{Type: TypeNoOp}
	}
	return Classification{
		Type:          TypeProfileUpdated,
		ChangedFields: changed,
		Old:           oldVals,
		New:           newVals,
	}
}

func changedFields(before, after Snapshot) ([]string, Snapshot, Snapshot) {
	var changed []string
	oldVals := Snapshot{}
	newVals := Snapshot{}

	for key, oldVal := range before {
		newVal, ok := after[key]
		if !ok {
			continue
		}
		if !reflect.DeepEqual(oldVal, newVal) {
			changed = append(changed, key)
			oldVals[key] = oldVal
			newVals[key] = newVal
		}
	}

	sort.Strings(changed)
	return changed, oldVals, newVals
}
