// Package refdata holds the read-only vehicle reference table mapping
// make/model pairs to the license type the vehicle class demands. The table
// is built once at process start and shared by reference; it is never
// mutated afterwards.
package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	domainerrors "github.com/tech920/motor-claim-decision-api-sub000/pkg/domain-errors"
)

type entry struct {
	Make        string `json:"make"`
	Model       string `json:"model,omitempty"`
	LicenseType string `json:"license_type"`
}

type tableFile struct {
	Vehicles []entry `json:"vehicles"`
}

// Table resolves the license type a vehicle requires. Model-level entries
// take priority over make-level defaults.
type Table struct {
	byMakeModel map[string]string
	byMake      map[string]string
}

// Load reads the vehicle table from a JSON file. Entries without a model act
// as the default for the whole make. Duplicate keys are rejected so a
// misordered file cannot silently shadow entries.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vehicle table: %w", err)
	}
	return Parse(data)
}

// Parse builds a Table from raw JSON.
func Parse(data []byte) (*Table, error) {
	var file tableFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeBadRequest, "parse vehicle table")
	}

	t := &Table{
		byMakeModel: make(map[string]string, len(file.Vehicles)),
		byMake:      make(map[string]string),
	}
	for _, e := range file.Vehicles {
		if e.Make == "" || e.LicenseType == "" {
			return nil, domainerrors.New(domainerrors.CodeBadRequest,
				"vehicle table entry missing make or license_type")
		}
		if e.Model == "" {
			key := normalizeKey(e.Make)
			if _, dup := t.byMake[key]; dup {
				return nil, domainerrors.Newf(domainerrors.CodeBadRequest,
					"duplicate make entry %q", e.Make)
			}
			t.byMake[key] = e.LicenseType
			continue
		}
		key := normalizeKey(e.Make) + "|" + normalizeKey(e.Model)
		if _, dup := t.byMakeModel[key]; dup {
			return nil, domainerrors.Newf(domainerrors.CodeBadRequest,
				"duplicate vehicle entry %q %q", e.Make, e.Model)
		}
		t.byMakeModel[key] = e.LicenseType
	}
	return t, nil
}

// LicenseType returns the license type required for the given make and model.
// Lookup falls back from the exact make/model pair to the make-level default.
// The boolean reports whether any entry matched; callers must treat a miss as
// "unidentified" rather than substituting a value.
func (t *Table) LicenseType(vehicleMake, vehicleModel string) (string, bool) {
	if t == nil {
		return "", false
	}
	mk := normalizeKey(vehicleMake)
	if mk == "" {
		return "", false
	}
	if md := normalizeKey(vehicleModel); md != "" {
		if lt, ok := t.byMakeModel[mk+"|"+md]; ok {
			return lt, true
		}
	}
	lt, ok := t.byMake[mk]
	return lt, ok
}

// Size reports the number of loaded entries, for startup logging.
func (t *Table) Size() int {
	if t == nil {
		return 0
	}
	return len(t.byMakeModel) + len(t.byMake)
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
