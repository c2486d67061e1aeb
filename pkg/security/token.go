package security

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	tokenKey    = "Token"
	passwordKey = "Password"
)

// Params converts a request struct into the flat parameter map used for signing.
func Params(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var m map[string]any

	err = dec.Decode(&m)
	if err != nil {
		return nil, fmt.Errorf("decode params: %w", err)
	}

	return m, nil
}

// Token signs the root level scalar params of an acquiring request.
// Nested objects and arrays do not take part in the signature.
func Token(password string, params map[string]any) string {
	values := make(map[string]string, len(params)+1)

	for k, v := range params {
		if strings.EqualFold(k, tokenKey) {
			continue
		}

		s, ok := scalar(v)
		if !ok {
			continue
		}

		values[k] = s
	}

	values[passwordKey] = password

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(values[k])
	}

	sum := sha256.Sum256([]byte(b.String()))

	return hex.EncodeToString(sum[:])
}

// Sign returns the params of v with the Token attached.
func Sign(password string, v any) (map[string]any, error) {
	params, err := Params(v)
	if err != nil {
		return nil, err
	}

	params[tokenKey] = Token(password, params)

	return params, nil
}

// VerifyToken checks the Token field of an incoming notification.
func VerifyToken(password string, params map[string]any) bool {
	got, ok := params[tokenKey].(string)
	if !ok || got == "" {
		return false
	}

	want := Token(password, params)

	return subtle.ConstantTimeCompare([]byte(strings.ToLower(got)), []byte(want)) == 1
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}
