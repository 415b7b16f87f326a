package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

// Kind discriminates the Node variants.
type Kind int

// Node kinds.
const (
	KindScalar Kind = iota
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "scalar"
	}
}

// Member is one key/value pair of an object node.
type Member struct {
	Key   string
	Value *Node
}

// Node is a parsed JSON value. Exactly one of Members, Items or Text is
// meaningful, selected by Kind. Object members keep document order.
type Node struct {
	Kind    Kind
	Members []Member
	Items   []*Node
	// Text is the scalar's rendered form: strings unquoted, numbers and
	// literals as written.
	Text string
}

// ParseJSON reads a single JSON value from r.
func ParseJSON(r io.Reader) (*Node, error) {
	dec := jsontext.NewDecoder(r)
	node, err := parseNode(dec)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if _, err := dec.ReadToken(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parsing JSON: unexpected data after top-level value")
	}
	return node, nil
}

func parseNode(dec *jsontext.Decoder) (*Node, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}

	switch tok.Kind() {
	case '{':
		node := &Node{Kind: KindObject}
		for {
			kind, err := peekKind(dec)
			if err != nil {
				return nil, err
			}
			if kind == '}' {
				break
			}
			keyTok, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			// The token is only valid until the next decoder call.
			key := keyTok.String()
			value, err := parseNode(dec)
			if err != nil {
				return nil, err
			}
			node.Members = append(node.Members, Member{Key: key, Value: value})
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return node, nil
	case '[':
		node := &Node{Kind: KindArray}
		for {
			kind, err := peekKind(dec)
			if err != nil {
				return nil, err
			}
			if kind == ']' {
				break
			}
			item, err := parseNode(dec)
			if err != nil {
				return nil, err
			}
			node.Items = append(node.Items, item)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return node, nil
	case 'n':
		return &Node{Kind: KindScalar, Text: "null"}, nil
	case 't':
		return &Node{Kind: KindScalar, Text: "true"}, nil
	case 'f':
		return &Node{Kind: KindScalar, Text: "false"}, nil
	default:
		// Strings come back unescaped, numbers in their raw form.
		return &Node{Kind: KindScalar, Text: tok.String()}, nil
	}
}

// peekKind returns the kind of the next token, surfacing the decoder error
// when there is none.
func peekKind(dec *jsontext.Decoder) (jsontext.Kind, error) {
	if kind := dec.PeekKind(); kind != 0 {
		return kind, nil
	}
	_, err := dec.ReadToken()
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return 0, err
}

// RenderMarkdown renders node: each object key becomes a "## key" heading
// followed by its rendered value and a blank line, array items are rendered
// one after another each followed by a newline, and scalars render as text.
func RenderMarkdown(node *Node) string {
	var b strings.Builder
	renderNode(&b, node)
	return b.String()
}

func renderNode(b *strings.Builder, node *Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case KindObject:
		for _, m := range node.Members {
			b.WriteString("## " + m.Key + "\n")
			renderNode(b, m.Value)
			b.WriteString("\n")
		}
	case KindArray:
		for _, item := range node.Items {
			renderNode(b, item)
			b.WriteString("\n")
		}
	case KindScalar:
		b.WriteString(node.Text)
	}
}

// ConvertJSONToMarkdown parses data and renders it with RenderMarkdown.
func ConvertJSONToMarkdown(data []byte) (string, error) {
	node, err := ParseJSON(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return RenderMarkdown(node), nil
}
