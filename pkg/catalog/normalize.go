// Package catalog maps upstream exercise records onto planner.Exercise and
// provides the sources a catalog can be loaded from.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
)

// Field aliases observed in upstream records, in lookup order.
var (
	muscleFields = []string{
		"primary_muscle",
		"muscle_group",
		"category",
		"primary_muscle_group",
		"muscle",
		"target_muscle",
		"primaryMuscle",
		"muscleGroup",
	}
	nameFields = []string{"name", "exercise_name", "exercise"}
	idFields   = []string{"exercise_id", "id"}

	wrapperFields = []string{"exercises", "data", "items"}
)

// Normalize maps a loosely-typed record to an Exercise. ok is false only
// for an empty record; a record with no name is kept under the default name.
func Normalize(record map[string]interface{}) (ex planner.Exercise, ok bool) {
	if len(record) == 0 {
		return planner.Exercise{}, false
	}

	ex.ID = firstString(record, idFields)
	ex.Name = firstString(record, nameFields)
	if ex.Name == "" {
		ex.Name = planner.DefaultExerciseName
	}
	ex.PrimaryMuscle = firstString(record, muscleFields)
	return ex, true
}

// NormalizeAll maps every non-empty record.
func NormalizeAll(records []map[string]interface{}) []planner.Exercise {
	out := make([]planner.Exercise, 0, len(records))
	for _, r := range records {
		if ex, ok := Normalize(r); ok {
			out = append(out, ex)
		}
	}
	return out
}

// DecodeJSON accepts either a bare array of records or an object wrapping
// one under "exercises", "data" or "items".
func DecodeJSON(data []byte) ([]planner.Exercise, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCatalogInvalid, "failed to decode catalog JSON")
	}

	list, ok := raw.([]interface{})
	if !ok {
		obj, isObj := raw.(map[string]interface{})
		if !isObj {
			return nil, apperrors.New(apperrors.CodeCatalogInvalid, "catalog must be an array or an object")
		}
		for _, key := range wrapperFields {
			if l, found := obj[key].([]interface{}); found {
				list, ok = l, true
				break
			}
		}
		if !ok {
			return nil, apperrors.New(apperrors.CodeCatalogInvalid, "catalog object has no exercise list")
		}
	}

	records := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if m, isMap := item.(map[string]interface{}); isMap {
			records = append(records, m)
		}
	}
	return NormalizeAll(records), nil
}

// firstString returns the first alias holding a non-empty value.
func firstString(record map[string]interface{}, keys []string) string {
	for _, k := range keys {
		if s := stringify(record[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		if strings.TrimSpace(t) == "" {
			return ""
		}
		return t
	case json.Number:
		if t.String() == "0" {
			return ""
		}
		return t.String()
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case int64:
		if t == 0 {
			return ""
		}
		return strconv.FormatInt(t, 10)
	case bool:
		if !t {
			return ""
		}
		return "true"
	default:
		return fmt.Sprint(t)
	}
}
