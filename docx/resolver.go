package docx

import (
	"strconv"
	"strings"
)

// ResolvedStyle contains the fully resolved properties for a style.
type ResolvedStyle struct {
	// Identity
	ID   string
	Name string
	Type string // paragraph, character, table

	// Heading info
	IsHeading    bool
	HeadingLevel int // 1-9, 0 if not a heading

	// Paragraph properties
	Alignment   string  // left, center, right, both (justify)
	SpaceBefore float64 // points
	SpaceAfter  float64 // points
	LineSpacing float64 // points (0 = auto)
	IndentLeft  float64 // points
	IndentRight float64 // points
	IndentFirst float64 // points (first line indent, can be negative for hanging)

	// Run/character properties
	FontName  string
	FontSize  float64 // points
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Color     string // hex color like "FF0000"
	Highlight string // highlight color name
}

// StyleResolver resolves styles with inheritance support.
//
// Properties apply in OOXML order: document defaults, then the default
// paragraph style for paragraphs without an explicit style, then the basedOn
// chain of the referenced style, then direct run formatting.
type StyleResolver struct {
	styles           map[string]*styleDefXML
	resolved         map[string]*ResolvedStyle
	defaultFont      string
	defaultSize      float64
	defaultParagraph string // style ID of the default paragraph style
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:      make(map[string]*styleDefXML),
		resolved:    make(map[string]*ResolvedStyle),
		defaultFont: DefaultFontName,
		defaultSize: DefaultFontSize,
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
		if style.Type == "paragraph" && isOn(style.Default) && sr.defaultParagraph == "" {
			sr.defaultParagraph = style.StyleID
		}
	}

	rpr := styles.DocDefaults.RPrDefault.RPr
	if rpr.Font.ASCII != "" {
		sr.defaultFont = rpr.Font.ASCII
	}
	if rpr.FontSize.Val != "" {
		if size := parseHalfPoints(rpr.FontSize.Val); size > 0 {
			sr.defaultSize = size
		}
	}

	return sr
}

// DefaultParagraphStyle returns the ID of the default paragraph style, or ""
// when the document defines none.
func (sr *StyleResolver) DefaultParagraphStyle() string {
	return sr.defaultParagraph
}

// Resolve returns the fully resolved style for the given style ID.
// An empty or unknown ID resolves to the default paragraph style.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	resolved := sr.defaultStyle()
	resolved.ID = styleID

	styleDef, ok := sr.styles[styleID]
	if !ok {
		if sr.defaultParagraph != "" && styleID != sr.defaultParagraph {
			base := *sr.Resolve(sr.defaultParagraph)
			base.ID = styleID
			resolved = &base
		}
		resolved.IsHeading, resolved.HeadingLevel = detectBuiltInHeading(styleID)
		sr.resolved[styleID] = resolved
		return resolved
	}

	resolved.Name = styleDef.Name.Val
	resolved.Type = styleDef.Type

	for _, sid := range sr.buildInheritanceChain(styleID) {
		if def, ok := sr.styles[sid]; ok {
			sr.applyStyleDef(resolved, def)
		}
	}

	resolved.IsHeading, resolved.HeadingLevel = sr.detectHeading(styleDef, resolved)

	sr.resolved[styleID] = resolved
	return resolved
}

// defaultStyle returns a style with document default values.
func (sr *StyleResolver) defaultStyle() *ResolvedStyle {
	return &ResolvedStyle{
		FontName:    sr.defaultFont,
		FontSize:    sr.defaultSize,
		Alignment:   "left",
		LineSpacing: 0, // Auto
	}
}

// buildInheritanceChain returns style IDs from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...)

		def, ok := sr.styles[current]
		if !ok {
			break
		}
		current = def.BasedOn.Val
	}

	return chain
}

// applyStyleDef applies a style definition's properties to a resolved style.
func (sr *StyleResolver) applyStyleDef(resolved *ResolvedStyle, def *styleDefXML) {
	ppr := def.PPr
	if ppr.Justification.Val != "" {
		resolved.Alignment = ppr.Justification.Val
	}
	if ppr.Spacing.Before != "" {
		resolved.SpaceBefore = parseTwips(ppr.Spacing.Before)
	}
	if ppr.Spacing.After != "" {
		resolved.SpaceAfter = parseTwips(ppr.Spacing.After)
	}
	if ppr.Spacing.Line != "" {
		resolved.LineSpacing = parseTwips(ppr.Spacing.Line)
	}
	if ppr.Indent.Left != "" {
		resolved.IndentLeft = parseTwips(ppr.Indent.Left)
	}
	if ppr.Indent.Right != "" {
		resolved.IndentRight = parseTwips(ppr.Indent.Right)
	}
	if ppr.Indent.FirstLine != "" {
		resolved.IndentFirst = parseTwips(ppr.Indent.FirstLine)
	}
	if ppr.Indent.Hanging != "" {
		resolved.IndentFirst = -parseTwips(ppr.Indent.Hanging)
	}

	applyRunProps(&resolved.FontName, &resolved.FontSize, def.RPr)

	rpr := def.RPr
	if rpr.Bold.XMLName.Local != "" {
		resolved.Bold = rpr.Bold.on()
	}
	if rpr.Italic.XMLName.Local != "" {
		resolved.Italic = rpr.Italic.on()
	}
	if rpr.Strike.XMLName.Local != "" {
		resolved.Strike = rpr.Strike.on()
	}
	if rpr.Underline.Val != "" {
		resolved.Underline = rpr.Underline.Val != "none"
	}
	if rpr.Color.Val != "" && rpr.Color.Val != "auto" {
		resolved.Color = rpr.Color.Val
	}
	if rpr.Highlight.Val != "" {
		resolved.Highlight = rpr.Highlight.Val
	}
}

// applyRunProps overrides font name and size when rpr sets them.
func applyRunProps(name *string, size *float64, rpr runPropsXML) {
	if rpr.Font.ASCII != "" {
		*name = rpr.Font.ASCII
	} else if rpr.Font.HAnsi != "" {
		*name = rpr.Font.HAnsi
	}
	if rpr.FontSize.Val != "" {
		if s := parseHalfPoints(rpr.FontSize.Val); s > 0 {
			*size = s
		}
	}
}

// detectHeading determines if a style represents a heading.
func (sr *StyleResolver) detectHeading(def *styleDefXML, resolved *ResolvedStyle) (bool, int) {
	if isHeading, level := detectBuiltInHeading(def.StyleID); isHeading {
		return true, level
	}

	name := strings.ToLower(def.Name.Val)
	if strings.HasPrefix(name, "heading") {
		for i := 1; i <= 9; i++ {
			if strings.Contains(name, strconv.Itoa(i)) {
				return true, i
			}
		}
		return true, 1
	}

	if def.PPr.OutlineLvl.Val != "" {
		level := parseOutlineLevel(def.PPr.OutlineLvl.Val)
		if level >= 0 && level <= 8 {
			return true, level + 1 // OutlineLvl is 0-based
		}
	}

	// Large bold text without a heading style is still treated as one.
	if resolved.Bold && resolved.FontSize >= 14 {
		return true, estimateHeadingLevel(resolved.FontSize)
	}

	return false, 0
}

// detectBuiltInHeading checks for Word's built-in heading style IDs.
func detectBuiltInHeading(styleID string) (bool, int) {
	id := strings.ToLower(styleID)

	headingMap := map[string]int{
		"heading1": 1, "heading2": 2, "heading3": 3,
		"heading4": 4, "heading5": 5, "heading6": 6,
		"heading7": 7, "heading8": 8, "heading9": 9,
		"title": 1, "subtitle": 2,
	}

	if level, ok := headingMap[id]; ok {
		return true, level
	}

	return false, 0
}

// estimateHeadingLevel estimates heading level from font size.
func estimateHeadingLevel(fontSize float64) int {
	switch {
	case fontSize >= 24:
		return 1
	case fontSize >= 18:
		return 2
	case fontSize >= 14:
		return 3
	case fontSize >= 12:
		return 4
	default:
		return 5
	}
}

// parseOutlineLevel parses an outline level string to an integer.
func parseOutlineLevel(s string) int {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || level < 0 || level > 8 {
		return -1
	}
	return level
}

// parseHalfPoints parses a size in half-points to points.
// Word uses half-points for font sizes (e.g., "24" = 12pt).
func parseHalfPoints(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 2
}

// parseTwips parses a size in twips to points.
// 1 point = 20 twips.
func parseTwips(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 20
}

// isOn interprets an OOXML on/off attribute value.
func isOn(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on":
		return true
	}
	return false
}

// ResolvedRun contains resolved properties for a text run.
type ResolvedRun struct {
	Text      string
	FontName  string
	FontSize  float64
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Color     string
	Highlight string
}

// ResolveRun resolves run properties, combining paragraph style with direct formatting.
func (sr *StyleResolver) ResolveRun(paragraphStyle string, runProps runPropsXML) *ResolvedRun {
	baseStyle := sr.Resolve(paragraphStyle)

	resolved := &ResolvedRun{
		FontName:  baseStyle.FontName,
		FontSize:  baseStyle.FontSize,
		Bold:      baseStyle.Bold,
		Italic:    baseStyle.Italic,
		Underline: baseStyle.Underline,
		Strike:    baseStyle.Strike,
		Color:     baseStyle.Color,
		Highlight: baseStyle.Highlight,
	}

	applyRunProps(&resolved.FontName, &resolved.FontSize, runProps)
	if runProps.Bold.XMLName.Local != "" {
		resolved.Bold = runProps.Bold.on()
	}
	if runProps.Italic.XMLName.Local != "" {
		resolved.Italic = runProps.Italic.on()
	}
	if runProps.Strike.XMLName.Local != "" {
		resolved.Strike = runProps.Strike.on()
	}
	if runProps.Underline.Val != "" {
		resolved.Underline = runProps.Underline.Val != "none"
	}
	if runProps.Color.Val != "" && runProps.Color.Val != "auto" {
		resolved.Color = runProps.Color.Val
	}
	if runProps.Highlight.Val != "" {
		resolved.Highlight = runProps.Highlight.Val
	}

	return resolved
}
