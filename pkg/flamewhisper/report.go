package flamewhisper

import (
	"fmt"
	"html"
	"math"
	"strings"
)

// NoFlameAdvisory is returned in place of a report when nothing in the
// image scored above the flame threshold.
const NoFlameAdvisory = "No flame visible. Try a closer shot with the flame centered and the room lights dimmed."

const reportTitle = "Flame Whisper"

type shapeRule struct {
	match func(heightRatio, widthRatio float64) bool
	shape Shape
}

type balanceRule struct {
	match   func(leftShare, rightShare float64) bool
	balance Balance
}

type stabilityRule struct {
	match     func(heightRatio, widthRatio float64) bool
	stability Stability
}

// Rules are evaluated in order; the first match wins.
var shapeRules = []shapeRule{
	{func(h, w float64) bool { return h > 0.7 && w < 0.5 }, ShapeTallTight},
	{func(h, w float64) bool { return h < 0.6 && w > 0.6 }, ShapeShortWide},
	{func(h, w float64) bool { return true }, ShapeIntermediate},
}

var balanceRules = []balanceRule{
	{func(l, r float64) bool { return math.Abs(l-r) < balanceTolerance }, BalanceBalanced},
	{func(l, r float64) bool { return l > r }, BalanceLeftHeavy},
	{func(l, r float64) bool { return true }, BalanceRightHeavy},
}

var stabilityRules = []stabilityRule{
	{func(h, w float64) bool { return h > 0.8 && w < 0.3 }, StabilityTooTight},
	{func(h, w float64) bool { return h < 0.4 && w > 0.7 }, StabilityTooScattered},
	{func(h, w float64) bool { return true }, StabilityStable},
}

var shapeText = map[Shape]string{
	ShapeTallTight:    "Tall and tight. The flame reaches upward in a narrow column.",
	ShapeShortWide:    "Short and wide. The flame spreads sideways more than it climbs.",
	ShapeIntermediate: "Moderate. Neither notably tall nor notably wide.",
}

var balanceText = map[Balance]string{
	BalanceBalanced:   "Balanced. Intensity is spread evenly left and right.",
	BalanceLeftHeavy:  "Left-heavy. More of the glow sits on the left side.",
	BalanceRightHeavy: "Right-heavy. More of the glow sits on the right side.",
}

var stabilityText = map[Stability]string{
	StabilityStable:       "Stable. The outline looks settled.",
	StabilityTooTight:     "Too tight. A thin, stretched flame can mean a strong draft.",
	StabilityTooScattered: "Too scattered. A low, sprawling flame can mean it is struggling.",
}

// Report is the qualitative description of one analysis. It is a value and
// is never modified after GenerateReport returns it.
type Report struct {
	Detected    bool
	WidthRatio  float64
	HeightRatio float64
	Shape       Shape
	Balance     Balance
	Stability   Stability
}

// GenerateReport derives shape, balance and stability from the mask
// statistics of an image of the given analysis size.
func GenerateReport(width, height int, mask MaskResult) Report {
	if !mask.Stats.Detected || mask.Box == nil || width <= 0 || height <= 0 {
		return Report{}
	}

	box := mask.Box
	heightRatio := float64(box.MaxY-box.MinY) / float64(height)
	widthRatio := float64(box.MaxX-box.MinX) / float64(width)

	total := math.Max(mask.Stats.TotalIntensity, 1)
	leftShare := mask.Stats.LeftIntensity / total
	rightShare := mask.Stats.RightIntensity / total

	return Report{
		Detected:    true,
		WidthRatio:  widthRatio,
		HeightRatio: heightRatio,
		Shape:       classifyShape(heightRatio, widthRatio),
		Balance:     classifyBalance(leftShare, rightShare),
		Stability:   classifyStability(heightRatio, widthRatio),
	}
}

func classifyShape(heightRatio, widthRatio float64) Shape {
	for _, rule := range shapeRules {
		if rule.match(heightRatio, widthRatio) {
			return rule.shape
		}
	}
	return ShapeIntermediate
}

func classifyBalance(leftShare, rightShare float64) Balance {
	for _, rule := range balanceRules {
		if rule.match(leftShare, rightShare) {
			return rule.balance
		}
	}
	return BalanceBalanced
}

func classifyStability(heightRatio, widthRatio float64) Stability {
	for _, rule := range stabilityRules {
		if rule.match(heightRatio, widthRatio) {
			return rule.stability
		}
	}
	return StabilityStable
}

// WidthPct is the horizontal coverage in percent.
func (r Report) WidthPct() float64 { return r.WidthRatio * 100 }

// HeightPct is the vertical coverage in percent.
func (r Report) HeightPct() float64 { return r.HeightRatio * 100 }

func (r Report) lines() []string {
	return []string{
		fmt.Sprintf("Coverage: %.1f%% wide, %.1f%% tall", r.WidthPct(), r.HeightPct()),
		"Shape: " + shapeText[r.Shape],
		"Balance: " + balanceText[r.Balance],
		"Stability: " + stabilityText[r.Stability],
	}
}

// Text renders the report as plain text, one judgement per line.
func (r Report) Text() string {
	if !r.Detected {
		return NoFlameAdvisory
	}
	return reportTitle + "\n\n" + strings.Join(r.lines(), "\n")
}

// HTML renders the report for direct insertion into a page.
func (r Report) HTML() string {
	if !r.Detected {
		return html.EscapeString(NoFlameAdvisory)
	}

	var sb strings.Builder
	sb.WriteString("<strong>" + reportTitle + "</strong><br><br>")
	for i, line := range r.lines() {
		head, body, _ := strings.Cut(line, ": ")
		if i > 0 {
			sb.WriteString("<br>")
		}
		fmt.Fprintf(&sb, "<strong>%s:</strong> %s", html.EscapeString(head), html.EscapeString(body))
	}
	return sb.String()
}

func (r Report) String() string {
	if !r.Detected {
		return "{Detected=false}"
	}
	return fmt.Sprintf("{Width=%.1f%%, Height=%.1f%%, Shape=%s, Balance=%s, Stability=%s}",
		r.WidthPct(), r.HeightPct(), r.Shape, r.Balance, r.Stability)
}
