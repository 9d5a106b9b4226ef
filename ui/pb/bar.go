// Package pb renders single line bars comparing two sizes, used to show how
// much smaller each minified artifact is than its inputs.
package pb

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

//nolint:gochecknoglobals
var (
	colorFaint   = color.New(color.Faint)
	statusColors = map[Status]*color.Color{
		Failed: color.New(color.FgRed),
		Warned: color.New(color.FgYellow),
		Done:   color.New(color.FgGreen),
	}
)

const (
	// DefaultWidth of the bar
	DefaultWidth = 40
	// threshold below which the ratio is rendered as a percentage instead
	// of a filling bar
	minWidth = 8
)

// Status of an artifact
type Status rune

// Status symbols
const (
	Pending Status = ' '
	Warned  Status = '!'
	Failed  Status = '✗'
	Done    Status = '✓'
)

// Bar is a thread-safe size bar.
type Bar struct {
	mutex  sync.RWMutex
	width  int
	logger logrus.FieldLogger
	status Status

	left  string
	ratio float64
	right []string
}

// BarOption modifies the bar parameters, either in the constructor or via
// the Modify() method.
type BarOption func(*Bar)

// WithLeft sets the left bar text, usually the artifact path.
func WithLeft(left string) BarOption {
	return func(b *Bar) { b.left = left }
}

// WithLogger sets the logger used to report out of range ratios.
func WithLogger(logger logrus.FieldLogger) BarOption {
	return func(b *Bar) { b.logger = logger }
}

// WithStatus sets the bar status.
func WithStatus(status Status) BarOption {
	return func(b *Bar) { b.status = status }
}

// WithSizes fills the bar with after/before and shows both sizes on the right.
func WithSizes(before, after int) BarOption {
	return func(b *Bar) {
		b.ratio = 0
		if before > 0 {
			b.ratio = float64(after) / float64(before)
		}
		b.right = []string{fmt.Sprintf("%s -> %s", FormatBytes(before), FormatBytes(after))}
	}
}

// WithRight appends additional right side values.
func WithRight(right ...string) BarOption {
	return func(b *Bar) { b.right = append(b.right, right...) }
}

// New creates and initializes a new Bar, calling all of the supplied options.
func New(options ...BarOption) *Bar {
	b := &Bar{width: DefaultWidth}
	b.Modify(options...)
	return b
}

// Left returns the left part of the bar in a thread-safe way.
func (b *Bar) Left() string {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	return b.renderLeft(0)
}

// renderLeft keeps the end of the left text, replacing the text exceeding
// maxLen with an ellipsis. Paths differ at their end, not their start.
func (b *Bar) renderLeft(maxLen int) string {
	l := b.left
	if maxLen > 3 && len(l) > maxLen {
		l = "..." + l[len(l)-maxLen+3:]
	}
	return l
}

// Modify changes the bar options in a thread-safe way.
func (b *Bar) Modify(options ...BarOption) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, option := range options {
		option(b)
	}
}

// Render stores the different rendered parts of the bar, so callers can pad
// and position them depending on the other bars on the screen.
type Render struct {
	Right                          []string
	ratio, ratioFill, ratioPadding string
	Left                           string
	status                         Status
	Color                          bool
}

// Status returns an optionally colorized status string
func (r *Render) Status() string {
	status := " "

	if r.status > 0 {
		status = string(r.status)
		if c, ok := statusColors[r.status]; r.Color && ok {
			status = c.Sprint(status)
		}
	}

	return status
}

// Ratio returns an assembled and optionally colorized ratio string
func (r *Render) Ratio() string {
	var body string
	if r.ratio != "" {
		body = fmt.Sprintf(" %s ", r.ratio)
	} else {
		padding := r.ratioPadding
		if r.Color {
			padding = colorFaint.Sprint(r.ratioPadding)
		}
		body = r.ratioFill + padding
	}
	return fmt.Sprintf("[%s]", body)
}

func (r Render) String() string {
	var right string
	if len(r.Right) > 0 {
		right = " " + strings.Join(r.Right, "  ")
	}
	return r.Left + " " + r.Status() + " " + r.Ratio() + right
}

// Render locks the bar for reading and returns its rendered parts.
//   - maxLeft is the maximum character length of the left-side text, the
//     start of longer text is replaced with an ellipsis. Passing <=0
//     disables this.
//   - widthDelta changes the bar width by the specified amount of
//     characters. If the resulting width is lower than minWidth, the ratio
//     is rendered as a percentage instead of a filling bar.
func (b *Bar) Render(maxLeft, widthDelta int) Render {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	var out Render
	ratio := b.ratio
	if clamped := Clampf(ratio, 0, 1); clamped != ratio {
		if b.logger != nil {
			b.logger.Debugf("size ratio %.2f exceeds valid range, clamped between 0 and 1", ratio)
		}
		ratio = clamped
	}
	out.Right = b.right

	width := int(Clampf(float64(b.width+widthDelta), minWidth, DefaultWidth))

	if width > minWidth {
		space := width - 2
		filled := int(float64(space) * ratio)

		out.ratioFill = strings.Repeat("=", filled)
		if space > filled {
			out.ratioPadding = strings.Repeat("-", space-filled)
		}
	} else {
		out.ratio = fmt.Sprintf("%3.f%%", ratio*100)
	}

	out.Left = b.renderLeft(maxLeft)
	out.status = b.status

	return out
}

// Clampf returns the given value, "clamped" to the range [min, max].
func Clampf(val, min, max float64) float64 {
	switch {
	case val < min:
		return min
	case val > max:
		return max
	default:
		return val
	}
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
