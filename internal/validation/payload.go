package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/form/v4"
)

const maxBodyBytes = 1 << 20

var ErrBadPayload = errors.New("invalid request body")

// Payload es la forma cruda de un formulario: campo -> valor.
type Payload map[string]string

func (p Payload) Get(key string) string { return p[key] }

// With devuelve una copia con key=value.
func (p Payload) With(key, value string) Payload {
	out := make(Payload, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}

// FromValues toma el primer valor de cada campo.
func FromValues(v url.Values) Payload {
	out := make(Payload, len(v))
	for k, vals := range v {
		if len(vals) > 0 {
			out[k] = vals[0]
		}
	}
	return out
}

// FromJSON acepta un objeto plano; números y bools se pasan a string.
func FromJSON(m map[string]any) Payload {
	out := make(Payload, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case nil:
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out
}

// DecodeRequest lee JSON o formulario según Content-Type.
func DecodeRequest(r *http.Request) (Payload, error) {
	if r.Body == nil {
		return Payload{}, nil
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var m map[string]any
		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		return FromJSON(m), nil
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return FromValues(r.PostForm), nil
}

var formDecoder = form.NewDecoder()

// Bind decodifica p en dst (puntero a struct) según el tag `form`, recortando
// espacios antes. Structs embebidos comparten el espacio de nombres del padre.
func Bind(p Payload, dst any) error {
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, strings.TrimSpace(v))
	}
	if err := formDecoder.Decode(dst, values); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}
