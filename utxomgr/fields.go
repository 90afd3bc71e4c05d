package utxomgr

import (
	"encoding/json"
	"fmt"
)

// Response field extraction. Every helper takes the dotted path of the
// field it reads so a missing or mistyped field fails with that exact
// location in the error.

func decodeObject(raw json.RawMessage, path string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %s is not an object", ErrResponseShape, path)
	}
	return obj, nil
}

func fieldRaw(obj map[string]json.RawMessage, field, path string) (json.RawMessage, error) {
	raw, ok := obj[field]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %s", ErrResponseShape, path)
	}
	return raw, nil
}

func fieldString(obj map[string]json.RawMessage, field, path string) (string, error) {
	raw, err := fieldRaw(obj, field, path)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s is not a string", ErrResponseShape, path)
	}
	return s, nil
}

func fieldUint64(obj map[string]json.RawMessage, field, path string) (uint64, error) {
	raw, err := fieldRaw(obj, field, path)
	if err != nil {
		return 0, err
	}
	var n uint64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%w: %s is not an unsigned integer", ErrResponseShape, path)
	}
	return n, nil
}

func fieldInt64(obj map[string]json.RawMessage, field, path string) (int64, error) {
	raw, err := fieldRaw(obj, field, path)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrResponseShape, path)
	}
	return n, nil
}

func fieldBool(obj map[string]json.RawMessage, field, path string) (bool, error) {
	raw, err := fieldRaw(obj, field, path)
	if err != nil {
		return false, err
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, fmt.Errorf("%w: %s is not a boolean", ErrResponseShape, path)
	}
	return b, nil
}

func fieldArray(obj map[string]json.RawMessage, field, path string) ([]json.RawMessage, error) {
	raw, err := fieldRaw(obj, field, path)
	if err != nil {
		return nil, err
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("%w: %s is not an array", ErrResponseShape, path)
	}
	return arr, nil
}

func fieldObject(obj map[string]json.RawMessage, field, path string) (map[string]json.RawMessage, error) {
	raw, err := fieldRaw(obj, field, path)
	if err != nil {
		return nil, err
	}
	return decodeObject(raw, path)
}
