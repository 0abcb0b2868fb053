package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// FetchJSONInto télécharge rawURL et décode le JSON dans dst (qui doit être un pointeur).
// Les champs inconnus sont ignorés.
func FetchJSONInto(ctx context.Context, rawURL string, opts Options, dst any) error {
	data, err := FetchBytes(ctx, rawURL, opts)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("fetch json: decode: %w", err)
	}
	return nil
}

// FetchJSON générique : fetch + unmarshal dans une valeur typée.
func FetchJSON[T any](ctx context.Context, rawURL string, opts Options) (T, error) {
	var v T
	if err := FetchJSONInto(ctx, rawURL, opts, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
