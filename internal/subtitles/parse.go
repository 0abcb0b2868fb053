package subtitles

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/patrickprogramme/ytxml/internal/classify"
	"github.com/patrickprogramme/ytxml/pkg/model"
)

// ParseJSON3Bytes décode un blob json3 en mémoire.
// Les champs non mappés sont ignorés (pas de DisallowUnknownFields).
func ParseJSON3Bytes(b []byte) (rawJSON3, error) {
	var raw rawJSON3
	if len(bytes.TrimSpace(b)) == 0 {
		return raw, fmt.Errorf("ParseJSON3Bytes: empty input")
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&raw); err != nil {
		return raw, fmt.Errorf("ParseJSON3Bytes: decode error: %w", err)
	}
	return raw, nil
}

// ExtractCaptions transforme une piste json3 en captions ordonnées.
// Events sans texte (retours à la ligne seuls, events de fenêtre) ignorés.
// Une piste illisible est une erreur classée URLUnclassified ; une piste
// valide mais vide retourne une liste vide (Aggregate tranche).
func ExtractCaptions(b []byte) ([]model.Caption, error) {
	raw, err := ParseJSON3Bytes(b)
	if err != nil {
		return nil, classify.Wrap(classify.URLUnclassified, "json3 track", err)
	}

	captions := make([]model.Caption, 0, len(raw.Events))
	for _, ev := range raw.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		txt := ev.text()
		if txt == "" {
			continue
		}
		captions = append(captions, model.Caption{
			Start: model.FromMilliseconds(ev.startMs()),
			Text:  txt,
		})
	}
	return captions, nil
}
