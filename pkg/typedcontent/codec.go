package typedcontent

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Blocks are encoded as CBOR with Core Deterministic Encoding, so the
// same block always produces the same bytes and therefore the same
// identifier. Struct fields map through the json tags.
var (
	blockEncMode cbor.EncMode
	blockDecMode cbor.DecMode
)

func init() {
	var err error
	blockEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	blockDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

// blockEnvelope is the wire form of a ContentItemBlock: a kind tag plus
// exactly one variant payload.
type blockEnvelope struct {
	Kind      ContentKind `json:"kind"`
	Image     *ImageItem  `json:"image,omitempty"`
	Text      *TextItem   `json:"text,omitempty"`
	SizeBytes uint64      `json:"size_bytes"`
}

// EncodeBlock serializes a block to its canonical byte form.
func EncodeBlock(block *ContentItemBlock) ([]byte, error) {
	env := blockEnvelope{SizeBytes: block.SizeBytes}

	switch item := block.Item.(type) {
	case ImageItem:
		env.Kind = KindImage
		env.Image = &item
	case TextItem:
		env.Kind = KindText
		env.Text = &item
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, block.Item)
	}

	data, err := blockEncMode.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode block: %w", err)
	}
	return data, nil
}

// DecodeBlock deserializes a block from its canonical byte form. Unknown
// kind tags and envelopes whose tagged variant is absent are rejected.
func DecodeBlock(data []byte) (*ContentItemBlock, error) {
	var env blockEnvelope
	if err := blockDecMode.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode block: %w", err)
	}

	switch env.Kind {
	case KindImage:
		if env.Image == nil {
			return nil, fmt.Errorf("%w: kind %q", ErrMissingVariant, env.Kind)
		}
		return &ContentItemBlock{Item: *env.Image, SizeBytes: env.SizeBytes}, nil
	case KindText:
		if env.Text == nil {
			return nil, fmt.Errorf("%w: kind %q", ErrMissingVariant, env.Kind)
		}
		return &ContentItemBlock{Item: *env.Text, SizeBytes: env.SizeBytes}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Kind)
	}
}
