package typedcontent

import (
	"bytes"
	"image"
	"net/http"
	"strings"
	"unicode/utf8"

	// Image formats registered for dimension decoding. Anything that
	// sniffs as image/* but has no registered decoder is a
	// ClassificationError, not text.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// BuildBlock classifies a raw buffer and packages it into a content item
// block. It returns (nil, nil) when the buffer is neither an image nor
// valid UTF-8 text; that skip is an expected outcome, not a failure.
func BuildBlock(buf []byte) (*ContentItemBlock, error) {
	sizeBytes := uint64(len(buf))
	mimeType := http.DetectContentType(buf)

	if strings.HasPrefix(mimeType, "image/") {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(buf))
		if err != nil {
			return nil, &ClassificationError{MimeType: mimeType, Err: err}
		}

		item := ImageItem{
			Content: ImageContent{Buffer: bytes.Clone(buf)},
			Metadata: ImageMetadata{
				SizeBytes: sizeBytes,
				MimeType:  mimeType,
				WidthPx:   uint32(cfg.Width),
				HeightPx:  uint32(cfg.Height),
			},
		}
		return &ContentItemBlock{Item: item, SizeBytes: sizeBytes}, nil
	}

	if !utf8.Valid(buf) {
		return nil, nil
	}

	item := TextItem{
		Content:  TextContent{Text: string(buf)},
		Metadata: TextMetadata{SizeBytes: sizeBytes},
	}
	return &ContentItemBlock{Item: item, SizeBytes: sizeBytes}, nil
}
