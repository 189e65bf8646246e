package models

import (
	"encoding/json"
	"fmt"

	"github.com/etapi-go/etapi.go/pkg/constants"
)

// NoteType is the closed set of note types the server knows about.
type NoteType int

const (
	NoteTypeText NoteType = iota + 1
	NoteTypeCode
	NoteTypeRender
	NoteTypeFile
	NoteTypeImage
	NoteTypeSearch
	NoteTypeRelationMap
	NoteTypeBook
	NoteTypeNoteMap
	NoteTypeMermaid
)

var noteTypeTokens = map[NoteType]string{
	NoteTypeText:        "text",
	NoteTypeCode:        "code",
	NoteTypeRender:      "render",
	NoteTypeFile:        "file",
	NoteTypeImage:       "image",
	NoteTypeSearch:      "search",
	NoteTypeRelationMap: "relationMap",
	NoteTypeBook:        "book",
	NoteTypeNoteMap:     "noteMap",
	NoteTypeMermaid:     "mermaid",
}

var noteTypesByToken = invert(noteTypeTokens)

// NoteTypes lists every note type in declaration order.
func NoteTypes() []NoteType {
	return []NoteType{
		NoteTypeText, NoteTypeCode, NoteTypeRender, NoteTypeFile, NoteTypeImage,
		NoteTypeSearch, NoteTypeRelationMap, NoteTypeBook, NoteTypeNoteMap, NoteTypeMermaid,
	}
}

// ParseNoteType maps a wire token to a NoteType. Unknown tokens are an error.
func ParseNoteType(token string) (NoteType, error) {
	t, ok := noteTypesByToken[token]
	if !ok {
		return 0, fmt.Errorf("%w: note type %q", constants.ErrUnknownToken, token)
	}
	return t, nil
}

// String returns the wire token.
func (t NoteType) String() string {
	if token, ok := noteTypeTokens[t]; ok {
		return token
	}
	return fmt.Sprintf("NoteType(%d)", int(t))
}

func (t NoteType) Validate() error {
	if _, ok := noteTypeTokens[t]; !ok {
		return fmt.Errorf("%w: note type %d", constants.ErrUnknownToken, int(t))
	}
	return nil
}

func (t NoteType) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(noteTypeTokens[t])
}

func (t *NoteType) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}
	parsed, err := ParseNoteType(token)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AttributeType tells labels from relations.
type AttributeType int

const (
	AttributeTypeLabel AttributeType = iota + 1
	AttributeTypeRelation
)

var attributeTypeTokens = map[AttributeType]string{
	AttributeTypeLabel:    "label",
	AttributeTypeRelation: "relation",
}

var attributeTypesByToken = invert(attributeTypeTokens)

func ParseAttributeType(token string) (AttributeType, error) {
	t, ok := attributeTypesByToken[token]
	if !ok {
		return 0, fmt.Errorf("%w: attribute type %q", constants.ErrUnknownToken, token)
	}
	return t, nil
}

func (t AttributeType) String() string {
	if token, ok := attributeTypeTokens[t]; ok {
		return token
	}
	return fmt.Sprintf("AttributeType(%d)", int(t))
}

func (t AttributeType) Validate() error {
	if _, ok := attributeTypeTokens[t]; !ok {
		return fmt.Errorf("%w: attribute type %d", constants.ErrUnknownToken, int(t))
	}
	return nil
}

func (t AttributeType) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(attributeTypeTokens[t])
}

func (t *AttributeType) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}
	parsed, err := ParseAttributeType(token)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func invert[K comparable, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
