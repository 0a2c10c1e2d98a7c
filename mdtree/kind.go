package mdtree

// Kind identifies the type of a node.
type Kind int

const (
	KindOther Kind = iota
	KindDocument
	KindHeading
	KindParagraph
	KindList
	KindListItem
	KindText
	KindEmphasis
	KindStrong
	KindCodeSpan
	KindCodeBlock
	KindLink
	KindImage
	KindThematicBreak
	KindBlockquote
	KindHTML
	KindTable
	KindTableRow
	KindTableCell
)

var kindNames = map[Kind]string{
	KindOther:         "other",
	KindDocument:      "document",
	KindHeading:       "heading",
	KindParagraph:     "paragraph",
	KindList:          "list",
	KindListItem:      "list_item",
	KindText:          "text",
	KindEmphasis:      "emphasis",
	KindStrong:        "strong_emphasis",
	KindCodeSpan:      "code_span",
	KindCodeBlock:     "code_block",
	KindLink:          "link",
	KindImage:         "image",
	KindThematicBreak: "thematic_break",
	KindBlockquote:    "blockquote",
	KindHTML:          "html",
	KindTable:         "table",
	KindTableRow:      "table_row",
	KindTableCell:     "table_cell",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Role is the structural role of a node, the only thing the validator's
// dispatcher looks at when pairing schema and input nodes.
type Role int

const (
	// RoleOther covers nodes with no validation semantics of their own.
	RoleOther Role = iota
	// RoleText is a textual leaf: plain text or raw HTML.
	RoleText
	// RoleContainer is an inline run holder: paragraph, emphasis, strong.
	RoleContainer
	// RoleHeading is both a top-level block and a container of inline content.
	RoleHeading
	RoleList
	RoleListItem
	RoleCodeSpan
	RoleCodeBlock
	// RoleLink covers links and images.
	RoleLink
	// RoleTopLevel is a block holding other blocks: document, blockquote.
	RoleTopLevel
	RoleRuler
	RoleTable
)

var roleNames = [...]string{
	RoleOther:     "other",
	RoleText:      "text",
	RoleContainer: "container",
	RoleHeading:   "heading",
	RoleList:      "list",
	RoleListItem:  "list item",
	RoleCodeSpan:  "code span",
	RoleCodeBlock: "code block",
	RoleLink:      "link",
	RoleTopLevel:  "top level",
	RoleRuler:     "ruler",
	RoleTable:     "table",
}

// String returns a readable name of the role.
func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// Role returns the structural role of the kind.
func (k Kind) Role() Role {
	switch k {
	case KindText, KindHTML:
		return RoleText
	case KindParagraph, KindEmphasis, KindStrong, KindTableCell:
		return RoleContainer
	case KindHeading:
		return RoleHeading
	case KindList:
		return RoleList
	case KindListItem:
		return RoleListItem
	case KindCodeSpan:
		return RoleCodeSpan
	case KindCodeBlock:
		return RoleCodeBlock
	case KindLink, KindImage:
		return RoleLink
	case KindDocument, KindBlockquote:
		return RoleTopLevel
	case KindThematicBreak:
		return RoleRuler
	case KindTable, KindTableRow:
		return RoleTable
	default:
		return RoleOther
	}
}

// IsInline reports whether the kind appears inside an inline run.
func (k Kind) IsInline() bool {
	switch k {
	case KindText, KindEmphasis, KindStrong, KindCodeSpan, KindLink, KindImage:
		return true
	default:
		return false
	}
}
