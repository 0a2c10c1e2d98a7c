package issues

import (
	"strconv"
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

// getStringBuilder retrieves a builder from the pool and resets it.
func getStringBuilder() *strings.Builder {
	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// putStringBuilder returns a builder to the pool.
func putStringBuilder(sb *strings.Builder) {
	if sb == nil {
		return
	}
	stringBuilderPool.Put(sb)
}

// Segment is one step of a node path: a node kind and its position among
// same-kind siblings. Root segments use Index -1 and render without brackets.
type Segment struct {
	Kind  string
	Index int
}

// FormatPath formats a node path from segments, e.g. "document/list[0]/list_item[2]".
func FormatPath(segments ...Segment) string {
	if len(segments) == 0 {
		return ""
	}

	sb := getStringBuilder()
	for i, seg := range segments {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(seg.Kind)
		if seg.Index >= 0 {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
		}
	}
	result := sb.String()
	putStringBuilder(sb)
	return result
}
