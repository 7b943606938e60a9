package typedcontent

// ContentKind is the domain type for content item variants.
type ContentKind string

// Content kind constants (typed).
const (
	KindImage ContentKind = "image"
	KindText  ContentKind = "text"
)

// ContentItem is a typed content payload. Exactly one concrete variant
// (ImageItem or TextItem) is behind the interface at any time; Kind
// reports which one without a type switch.
type ContentItem interface {
	// Kind returns the variant discriminator for this item.
	Kind() ContentKind
}

// ImageContent holds the raw encoded bytes of an image payload. The buffer
// is stored exactly as ingested; no resizing or re-encoding happens after
// construction.
type ImageContent struct {
	Buffer []byte `json:"buffer"`
}

// ImageMetadata describes an image payload.
type ImageMetadata struct {
	SizeBytes uint64 `json:"size_bytes"`
	MimeType  string `json:"mime_type"`
	WidthPx   uint32 `json:"width_px"`
	HeightPx  uint32 `json:"height_px"`
}

// ImageItem is the image variant of ContentItem.
type ImageItem struct {
	Content  ImageContent  `json:"content"`
	Metadata ImageMetadata `json:"metadata"`
}

// Kind returns KindImage.
func (ImageItem) Kind() ContentKind { return KindImage }

// TextContent holds a decoded UTF-8 text payload.
type TextContent struct {
	Text string `json:"text"`
}

// TextMetadata describes a text payload.
type TextMetadata struct {
	SizeBytes uint64 `json:"size_bytes"`
}

// TextItem is the text variant of ContentItem.
type TextItem struct {
	Content  TextContent  `json:"content"`
	Metadata TextMetadata `json:"metadata"`
}

// Kind returns KindText.
func (TextItem) Kind() ContentKind { return KindText }

// ContentItemBlock is the unit handed to a block store: a typed content
// item plus the byte size of the original input buffer. Blocks are
// immutable once constructed; the identifier of a stored block is derived
// from its canonical encoding (see EncodeBlock and IdentifyBlock).
type ContentItemBlock struct {
	Item      ContentItem `json:"item"`
	SizeBytes uint64      `json:"size_bytes"`
}
