package metcolour

import (
	"bytes"

	"github.com/bep/imagemeta"
)

// RightsMetadata holds the rights and attribution fields embedded in an image file.
type RightsMetadata struct {
	EXIFCopyright   string
	EXIFArtist      string
	IPTCCopyright   string
	IPTCCredit      string
	XMPLicense      string
	XMPWebStatement string
	DCRights        string
}

// Summary returns the most specific rights statement available, or "".
// License URLs beat free-text notices; credits are the last resort.
func (m *RightsMetadata) Summary() string {
	if m == nil {
		return ""
	}
	for _, f := range []string{
		m.XMPLicense,
		m.XMPWebStatement,
		m.DCRights,
		m.IPTCCopyright,
		m.EXIFCopyright,
		m.IPTCCredit,
		m.EXIFArtist,
	} {
		if f != "" {
			return f
		}
	}
	return ""
}

var rightsTags = map[imagemeta.Source]map[string]bool{
	imagemeta.IPTC: {
		"CopyrightNotice": true,
		"Credit":          true,
	},
	imagemeta.EXIF: {
		"Copyright": true,
		"Artist":    true,
	},
	imagemeta.XMP: {
		"License":      true,
		"WebStatement": true,
		"Rights":       true,
	},
}

// ExtractRightsMetadata parses EXIF/IPTC/XMP rights fields from raw image bytes.
// Returns nil when the data carries none or cannot be parsed; metadata is
// informational so parse failures are not errors.
func ExtractRightsMetadata(data []byte) *RightsMetadata {
	if len(data) == 0 {
		return nil
	}

	meta := &RightsMetadata{}
	found := false

	_, err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF | imagemeta.IPTC | imagemeta.XMP,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return rightsTags[ti.Source][ti.Tag]
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			if setRightsField(meta, ti) {
				found = true
			}
			return nil
		},
	})
	if err != nil || !found {
		return nil
	}
	return meta
}

// setRightsField stores ti in the matching field and reports whether it did.
func setRightsField(meta *RightsMetadata, ti imagemeta.TagInfo) bool {
	s := tagValueString(ti.Value)
	if s == "" {
		return false
	}

	var dst *string
	switch ti.Source {
	case imagemeta.IPTC:
		switch ti.Tag {
		case "CopyrightNotice":
			dst = &meta.IPTCCopyright
		case "Credit":
			dst = &meta.IPTCCredit
		}
	case imagemeta.EXIF:
		switch ti.Tag {
		case "Copyright":
			dst = &meta.EXIFCopyright
		case "Artist":
			dst = &meta.EXIFArtist
		}
	case imagemeta.XMP:
		switch ti.Tag {
		case "License":
			dst = &meta.XMPLicense
		case "WebStatement":
			dst = &meta.XMPWebStatement
		case "Rights":
			dst = &meta.DCRights
		}
	}
	if dst == nil {
		return false
	}
	*dst = s
	return true
}

// tagValueString extracts a string from a tag value.
// XMP values may be string or []string (from altList/seqList).
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
