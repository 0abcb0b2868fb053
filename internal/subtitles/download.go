package subtitles

import (
	"context"

	"github.com/patrickprogramme/ytxml/internal/classify"
	"github.com/patrickprogramme/ytxml/internal/fetch"
	"github.com/patrickprogramme/ytxml/pkg/model"
)

// Download récupère la piste json3 à trackURL et en extrait les captions.
// Les échecs réseau passent par classify.FromTool : un 429 devient URLRateLimited,
// une annulation Cancelled.
func Download(ctx context.Context, trackURL string, opts fetch.Options) ([]model.Caption, error) {
	if trackURL == "" {
		return nil, classify.New(classify.URLTranscriptNotFound, "no subtitle track")
	}
	data, err := fetch.FetchBytes(ctx, trackURL, opts)
	if err != nil {
		return nil, classify.FromTool(err)
	}
	return ExtractCaptions(data)
}
