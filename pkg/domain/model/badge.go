package model

import (
	"strconv"
	"unicode/utf8"
)

const (
	BadgeLabel  = "Bluemix Deployments"
	ButtonLabel = "Deploy to Bluemix"

	// buttonLogoOffset leaves room for the logo glyph on the left of a button
	buttonLogoOffset = 48
)

type BadgeVariant string

const (
	BadgeVariantBadge  BadgeVariant = "badge"
	BadgeVariantButton BadgeVariant = "button"
)

// Badge is the layout of a two-part label. Widths are a character count
// heuristic, no text shaping is done.
type Badge struct {
	Left       string
	Right      string
	LeftWidth  float64
	RightWidth float64
	TotalWidth float64
	LeftX      float64
	RightX     float64
}

// RenderBadge lays out the small "deployments" badge.
func RenderBadge(left, right string) Badge {
	return layout(left, right, 6.5, 10, 7.5, 10, 0)
}

// RenderButton lays out the "deploy" button.
func RenderButton(left, right string) Badge {
	return layout(left, right, 11, 20, 12, 16, buttonLogoOffset)
}

func layout(left, right string, leftChar, leftPad, rightChar, rightPad, offset float64) Badge {
	b := Badge{
		Left:       left,
		Right:      right,
		LeftWidth:  float64(utf8.RuneCountInString(left))*leftChar + leftPad,
		RightWidth: float64(utf8.RuneCountInString(right))*rightChar + rightPad,
	}
	b.TotalWidth = b.LeftWidth + b.RightWidth
	b.LeftX = b.LeftWidth/2 + 1
	b.RightX = b.LeftWidth + b.RightWidth/2 - 1

	b.LeftWidth += offset
	b.TotalWidth += offset
	b.LeftX += offset
	b.RightX += offset

	return b
}

// Render lays out the variant for a deployment count.
func (x BadgeVariant) Render(count int64) (Badge, bool) {
	right := strconv.FormatInt(count, 10)
	switch x {
	case BadgeVariantBadge:
		return RenderBadge(BadgeLabel, right), true
	case BadgeVariantButton:
		return RenderButton(ButtonLabel, right), true
	default:
		return Badge{}, false
	}
}

// FormatNumber prints a layout number in its shortest exact form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
