package visual

import (
	"math"

	"github.com/arthrokinetix/akx-engine/pkg/random"
	"github.com/arthrokinetix/akx-engine/pkg/types/article"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

// Canvas geometry.  The tree grows upward from the base point; roots spread
// below it.
const (
	canvasWidth  = 800.0
	canvasHeight = 800.0
	baseX        = canvasWidth / 2
	baseY        = 650.0
)

// Trunk sizing.
const (
	maxTrunkHeight       = 300.0
	trunkHeightPerUnit   = 40.0
	trunkHeightBase      = 100.0
	trunkBaseThickness   = 8.0
	trunkThicknessScale  = 12.0
	branchBaseLength     = 40.0
	branchLengthScale    = 60.0
	branchBaseThickness  = 2.0
	branchThicknessScale = 6.0
	branchIntensity      = 0.6
)

// Branch arcs in degrees.  0° points right, 90° straight up, 180° left.
// Left branches sample [150,180], right branches [0,30]; jitter is applied
// away from vertical so a branch can never flip to the wrong side.
const (
	leftArcCenter  = 150.0
	rightArcCenter = 30.0
	maxJitter      = 30.0
)

// Sub-branch rule constants.
const (
	subBranchMinLength      = 80.0
	subBranchProbability    = 0.5
	subBranchPositionMin    = 0.6
	subBranchPositionSpread = 0.2
	subBranchLengthRatio    = 0.6
	subBranchThicknessRatio = 0.7
	subBranchMaxDeviation   = 20.0
	subBranchIntensity      = 0.4
)

// precisionGridThreshold is the technical density above which the grid layer
// appears.
const precisionGridThreshold = 0.6

// generator holds one document's generation state.  A fresh instance is
// built per call, so concurrent scene generation needs no locking.
type generator struct {
	profile  emotion.EmotionalProfile
	sections []article.ContentSection
	src      random.Source
	builder  *SceneBuilder
}

// GenerateScene produces the ordered Andry Tree scene graph for a profile
// and its content sections.  A nil src falls back to a time-seeded source;
// callers needing reproducible output inject a seeded one.  An empty section
// list is replaced by four fixed defaults so the tree is never bare.
func GenerateScene(profile emotion.EmotionalProfile, sections []article.ContentSection, src random.Source) []emotion.VisualElement {
	if src == nil {
		src = random.NewTimeSeeded()
	}
	g := &generator{
		profile:  profile,
		sections: normalizeSections(sections),
		src:      src,
		builder:  NewSceneBuilder(),
	}

	g.generateRoots()
	g.generateTrunkAndBranches()
	g.generateHealingElements()
	g.generateDataFlows()
	g.generateEmotionalFields()
	g.generateResearchConstellation()
	g.generateAtmosphere()

	return g.builder.Elements()
}

// normalizeSections substitutes the fixed defaults for an empty list and
// fills missing numeric fields with 0.5 and invalid tones with hope.
func normalizeSections(sections []article.ContentSection) []article.ContentSection {
	if len(sections) == 0 {
		return []article.ContentSection{
			{Title: "Introduction", Level: 1, Importance: 0.8, Complexity: 0.5, EmotionalTone: emotion.Confidence},
			{Title: "Main Content", Level: 1, Importance: 0.9, Complexity: 0.7, EmotionalTone: emotion.Breakthrough},
			{Title: "Results", Level: 1, Importance: 0.85, Complexity: 0.6, EmotionalTone: emotion.Healing},
			{Title: "Conclusion", Level: 1, Importance: 0.7, Complexity: 0.4, EmotionalTone: emotion.Hope},
		}
	}
	out := make([]article.ContentSection, len(sections))
	for i, s := range sections {
		if s.Importance == 0 {
			s.Importance = 0.5
		}
		if s.Complexity == 0 {
			s.Complexity = 0.5
		}
		if !s.EmotionalTone.Valid() {
			s.EmotionalTone = emotion.Hope
		}
		out[i] = s
	}
	return out
}

// trunkHeight is min(300, sections×40 + 100).
func trunkHeight(sectionCount int) float64 {
	h := float64(sectionCount)*trunkHeightPerUnit + trunkHeightBase
	return math.Min(maxTrunkHeight, h)
}

// ─────────────────────────────────────────────────────────────────────────────
// Generation phases, in compositing order
// ─────────────────────────────────────────────────────────────────────────────

func (g *generator) generateRoots() {
	count := 3 + int(clamp01(g.profile.EvidenceStrength)*4)
	color := ColorFor(emotion.Healing, 0.3)
	for i := 0; i < count; i++ {
		// Roots fan across the lower half-plane, 200°–340°.
		angle := 200 + 140*float64(i)/float64(count-1)
		g.builder.Append(emotion.VisualElement{
			Kind:      emotion.KindAndryRoot,
			X:         baseX,
			Y:         baseY,
			Color:     color,
			Emotion:   emotion.Healing,
			Intensity: 0.3,
			Angle:     angle,
			Length:    30 + g.src.Float64()*40,
			Thickness: 2 + g.src.Float64()*3,
		})
	}
}

func (g *generator) generateTrunkAndBranches() {
	n := len(g.sections)
	height := trunkHeight(n)
	dominant := g.profile.DominantBucket()

	g.builder.Append(emotion.VisualElement{
		Kind:      emotion.KindAndryTrunk,
		X:         baseX,
		Y:         baseY,
		Color:     ColorFor(dominant, 0.5),
		Emotion:   dominant,
		Intensity: 0.5,
		Angle:     90,
		Length:    height,
		Thickness: trunkBaseThickness + clamp01(g.profile.TechnicalDensity)*trunkThicknessScale,
	})

	for i, section := range g.sections {
		// Branch positions subdivide the trunk evenly, lowest first.
		y := baseY - height*float64(i+1)/float64(n+1)
		g.generateBranch(i, section, y)
	}
}

// generateBranch emits one branch for a section, plus at most one child
// sub-branch.  Side alternates strictly by index parity (even left, odd
// right); that alternation is what gives the tree bilateral symmetry.
func (g *generator) generateBranch(index int, section article.ContentSection, y float64) {
	jitter := g.src.Float64() * maxJitter
	var angle float64
	if index%2 == 0 {
		angle = leftArcCenter + jitter
	} else {
		angle = rightArcCenter - jitter
	}

	length := branchBaseLength + clamp01(section.Importance)*branchLengthScale
	thickness := branchBaseThickness + clamp01(section.Complexity)*branchThicknessScale

	g.builder.Append(emotion.VisualElement{
		Kind:      emotion.KindAndryBranch,
		X:         baseX,
		Y:         y,
		Color:     ColorFor(section.EmotionalTone, branchIntensity),
		Emotion:   section.EmotionalTone,
		Intensity: branchIntensity,
		Angle:     angle,
		Length:    length,
		Thickness: thickness,
	})

	if length <= subBranchMinLength {
		return
	}
	if g.src.Float64() >= subBranchProbability {
		return
	}

	// Child spawns 60–80% along the parent; depth is capped at one level.
	t := subBranchPositionMin + g.src.Float64()*subBranchPositionSpread
	deviation := g.src.Float64()*2*subBranchMaxDeviation - subBranchMaxDeviation
	rad := angle * math.Pi / 180
	g.builder.Append(emotion.VisualElement{
		Kind:      emotion.KindAndryBranch,
		X:         baseX + math.Cos(rad)*length*t,
		Y:         y - math.Sin(rad)*length*t,
		Color:     ColorFor(section.EmotionalTone, subBranchIntensity),
		Emotion:   section.EmotionalTone,
		Intensity: subBranchIntensity,
		Angle:     angle + deviation,
		Length:    length * subBranchLengthRatio,
		Thickness: thickness * subBranchThicknessRatio,
	})
}

func (g *generator) generateHealingElements() {
	healing := clamp01(g.profile.Mix.Healing)
	crownY := baseY - trunkHeight(len(g.sections))

	count := 5 + int(healing*15)
	color := ColorFor(emotion.Healing, 0.7)
	for i := 0; i < count; i++ {
		g.builder.Append(emotion.VisualElement{
			Kind:      emotion.KindHealingParticle,
			X:         baseX + (g.src.Float64()-0.5)*300,
			Y:         crownY + (g.src.Float64()-0.5)*200,
			Color:     color,
			Emotion:   emotion.Healing,
			Intensity: 0.7,
			Radius:    2 + g.src.Float64()*4,
		})
	}

	g.builder.Append(emotion.VisualElement{
		Kind:      emotion.KindHealingAura,
		X:         baseX,
		Y:         crownY,
		Color:     ColorFor(emotion.Healing, 0.4),
		Emotion:   emotion.Healing,
		Intensity: 0.4,
		Radius:    40 + healing*80,
	})
}

func (g *generator) generateDataFlows() {
	count := int(clamp01(g.profile.EvidenceStrength) * 5)
	color := ColorFor(emotion.Confidence, 0.5)
	for i := 0; i < count; i++ {
		start := emotion.Point{X: g.src.Float64() * canvasWidth, Y: g.src.Float64() * baseY}
		end := emotion.Point{X: g.src.Float64() * canvasWidth, Y: g.src.Float64() * baseY}
		g.builder.Append(emotion.VisualElement{
			Kind:      emotion.KindDataFlow,
			X:         start.X,
			Y:         start.Y,
			Color:     color,
			Emotion:   emotion.Confidence,
			Intensity: 0.5,
			Path: []emotion.Point{
				start,
				{X: start.X + (end.X-start.X)/3, Y: start.Y - 50},
				{X: start.X + 2*(end.X-start.X)/3, Y: end.Y - 50},
				end,
			},
		})
	}
}

func (g *generator) generateEmotionalFields() {
	for _, e := range emotion.AllEmotions {
		value := g.profile.Mix.Get(e)
		if value <= 0.1 {
			continue
		}
		g.builder.Append(emotion.VisualElement{
			Kind:      emotion.KindEmotionalField,
			X:         g.src.Float64() * canvasWidth,
			Y:         g.src.Float64() * canvasHeight,
			Color:     ColorFor(e, value),
			Emotion:   e,
			Intensity: value,
			Radius:    60 + value*100,
			Opacity:   0.1 + value*0.2,
		})
	}
}

func (g *generator) generateResearchConstellation() {
	count := 3 + int(clamp01(g.profile.EvidenceStrength)*10)
	color := ColorFor(emotion.Breakthrough, 0.8)
	for i := 0; i < count; i++ {
		g.builder.Append(emotion.VisualElement{
			Kind:      emotion.KindResearchStar,
			X:         g.src.Float64() * canvasWidth,
			Y:         g.src.Float64() * 200, // upper band of the canvas
			Color:     color,
			Emotion:   emotion.Breakthrough,
			Intensity: 0.8,
			Radius:    1 + g.src.Float64()*3,
		})
	}
}

func (g *generator) generateAtmosphere() {
	count := 10 + int(clamp01(g.profile.Mix.Uncertainty)*20)
	color := ColorFor(emotion.Uncertainty, 0.2)
	for i := 0; i < count; i++ {
		g.builder.Append(emotion.VisualElement{
			Kind:      emotion.KindAtmosphericParticle,
			X:         g.src.Float64() * canvasWidth,
			Y:         g.src.Float64() * canvasHeight,
			Color:     color,
			Emotion:   emotion.Uncertainty,
			Intensity: 0.2,
			Radius:    1 + g.src.Float64()*2,
		})
	}

	if g.profile.TechnicalDensity > precisionGridThreshold {
		g.builder.Append(emotion.VisualElement{
			Kind:    emotion.KindPrecisionGrid,
			X:       0,
			Y:       0,
			Color:   ColorFor(emotion.Confidence, 0.2),
			Length:  40, // cell size
			Opacity: 0.15,
		})
	}
}
